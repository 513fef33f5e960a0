// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"jobbly-workers/internal/common/validation"
)

var ErrActivityNotFound = errors.New("activity not found")

func New() *ActivityRegistry {
	return &ActivityRegistry{
		Version:     "1.0.0",
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Activities:  []Activity{},
	}
}

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// LoadOrNew returns an empty registry when path does not exist yet.
func LoadOrNew(path string) (*ActivityRegistry, error) {
	reg, err := LoadRegistry(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	return reg, err
}

func (r *ActivityRegistry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

func (r *ActivityRegistry) Find(id string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].ID == id {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

func (r *ActivityRegistry) FindByTaskType(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

func (r *ActivityRegistry) Add(a Activity) error {
	if _, ok := r.Find(a.ID); ok {
		return fmt.Errorf("activity with ID %s already exists", a.ID)
	}
	r.Activities = append(r.Activities, a)
	r.touch()
	return nil
}

// Update sets a single named field on an activity.
func (r *ActivityRegistry) Update(id, field, value string) error {
	a, ok := r.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrActivityNotFound, id)
	}

	switch field {
	case "status":
		if !validStatuses[value] {
			return fmt.Errorf("invalid status %q", value)
		}
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "displayName":
		a.DisplayName = value
	case "description":
		a.Description = value
	case "category":
		a.Category = value
	case "taskType":
		a.TaskType = value
	case "timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout value: %w", err)
		}
		a.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	r.touch()
	return nil
}

// Sync brings every built-in activity into the registry. Existing entries keep
// their status and workflows; everything else is overwritten. It returns the
// ids that were added.
func (r *ActivityRegistry) Sync(builtin []Activity) []string {
	var added []string
	for _, b := range builtin {
		existing, ok := r.Find(b.ID)
		if !ok {
			r.Activities = append(r.Activities, b)
			added = append(added, b.ID)
			continue
		}
		status, workflows := existing.ImplementationStatus, existing.Workflows
		*existing = b
		existing.ImplementationStatus = status
		if len(workflows) > 0 {
			existing.Workflows = workflows
		}
	}
	r.touch()
	return added
}

func (r *ActivityRegistry) Validate() error {
	if len(r.Activities) == 0 {
		return errors.New("registry contains no activities")
	}

	ids := make(map[string]bool)
	taskTypes := make(map[string]string)
	for _, a := range r.Activities {
		if a.ID == "" {
			return errors.New("activity missing required field: ID")
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate activity ID: %s", a.ID)
		}
		ids[a.ID] = true

		if err := validation.ValidateActivityNaming(a.ID); err != nil {
			return fmt.Errorf("activity %s: %w", a.ID, err)
		}
		if a.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", a.ID)
		}
		if a.Category == "" {
			return fmt.Errorf("activity %s missing required field: Category", a.ID)
		}
		if a.TaskType == "" {
			return fmt.Errorf("activity %s missing required field: TaskType", a.ID)
		}
		if other, dup := taskTypes[a.TaskType]; dup {
			return fmt.Errorf("activities %s and %s share task type %s", other, a.ID, a.TaskType)
		}
		taskTypes[a.TaskType] = a.ID
		if a.ImplementationStatus != "" && !validStatuses[a.ImplementationStatus] {
			return fmt.Errorf("activity %s has invalid status %q", a.ID, a.ImplementationStatus)
		}
	}
	return nil
}

func (r *ActivityRegistry) touch() {
	r.LastUpdated = time.Now().UTC().Format(time.RFC3339)
}
