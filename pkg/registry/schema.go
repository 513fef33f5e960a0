// pkg/registry/schema.go
package registry

type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one service task the worker manager can serve.
type Activity struct {
	ID                   string   `json:"id"`
	DisplayName          string   `json:"displayName"`
	Description          string   `json:"description"`
	Category             string   `json:"category"`
	Version              string   `json:"version"`
	TaskType             string   `json:"taskType"`
	ImplementationStatus string   `json:"implementationStatus"`
	Inputs               []string `json:"inputs"`
	Outputs              []string `json:"outputs"`
	ErrorCodes           []string `json:"errorCodes"`
	Timeout              string   `json:"timeout"`
	Retries              int      `json:"retries"`
	Workflows            []string `json:"workflows"`
	Tags                 []string `json:"tags"`
}

const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusVerified   = "verified"
)

var validStatuses = map[string]bool{
	StatusPlanned:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusVerified:   true,
}
