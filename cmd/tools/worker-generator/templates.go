// cmd/tools/worker-generator/templates.go
package main

const configTemplate = `// internal/workers/{{ .Dir }}/config.go
package {{ .PackageName }}

import (
	"time"

	"jobbly-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(w config.WorkerConfig) *Config {
	timeout := config.GetDuration(w.Timeout)
	if timeout <= 0 {
		timeout = {{ .TimeoutExpr }}
	}
	return &Config{Timeout: timeout}
}
`

const modelsTemplate = `// internal/workers/{{ .Dir }}/models.go
package {{ .PackageName }}
{{ if .HasIdentity }}
import "jobbly-workers/internal/identity"
{{ end }}
type Input struct {
{{- range .Inputs }}
	{{ .Name }} {{ .Type }} ` + "`json:\"{{ .JSON }}\"`" + `
{{- end }}
}

type Output struct {
{{- range .Outputs }}
	{{ .Name }} {{ .Type }} ` + "`json:\"{{ .JSON }}\"`" + `
{{- end }}
}
`

const handlerTemplate = `// internal/workers/{{ .Dir }}/handler.go
package {{ .PackageName }}

import (
	"context"
	"fmt"

	"jobbly-workers/internal/common/jobs"
	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/common/observability"
	"jobbly-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{ .TaskType }}"
)

var inputSchema = validation.MustCompile(TaskType, ` + "`" + `{
	"type": "object",
	"required": [{{ .RequiredList }}],
	"properties": {
{{- range $i, $f := .Inputs }}{{ if $i }},{{ end }}
		"{{ $f.JSON }}": {}
{{- end }}
	}
}` + "`" + `)

// Handler serves {{ .TaskType }}: {{ .Description }}.
type Handler struct {
	runner *jobs.Runner
}

func NewHandler(cfg *Config, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		runner: jobs.NewRunner(TaskType, cfg.Timeout, inputSchema, obs, log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	var input Input
	h.runner.Run(client, job, &input, func(ctx context.Context) (interface{}, error) {
		return h.Execute(ctx, &input)
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return nil, fmt.Errorf("%s: not implemented", TaskType)
}
`

const testTemplate = `// internal/workers/{{ .Dir }}/handler_test.go
package {{ .PackageName }}

import (
	"context"
	"testing"
	"time"

	"jobbly-workers/internal/common/errors"
	"jobbly-workers/internal/common/jobs"
	"jobbly-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_RequiresInputs(t *testing.T) {
	var in Input
	err := jobs.Decode(inputSchema, ` + "`{}`" + `, &in)

	var se *errors.StandardError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, errors.ErrCodeInvalidInput, se.Code)
}

func TestExecute_NotImplemented(t *testing.T) {
	h := NewHandler(&Config{Timeout: time.Second}, nil, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), &Input{})
	assert.Error(t, err)
}
`
