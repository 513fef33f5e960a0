package jobs

import (
	stderrors "errors"
	"testing"
	"time"

	"jobbly-workers/internal/common/errors"
	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/common/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = validation.MustCompile("runner-test", `{
	"type": "object",
	"required": ["jobId"],
	"properties": {"jobId": {"type": "integer", "minimum": 1}}
}`)

type testInput struct {
	JobID int64 `json:"jobId"`
}

func TestDecode(t *testing.T) {
	var in testInput
	require.NoError(t, Decode(testSchema, `{"jobId": 42}`, &in))
	assert.Equal(t, int64(42), in.JobID)
}

func TestDecode_SchemaViolation(t *testing.T) {
	var in testInput
	err := Decode(testSchema, `{"jobId": 0}`, &in)
	require.Error(t, err)

	var std *errors.StandardError
	require.True(t, stderrors.As(err, &std))
	assert.Equal(t, errors.ErrCodeInvalidInput, std.Code)
	assert.False(t, std.Retryable)
}

func TestDecode_MalformedJSON(t *testing.T) {
	var in testInput
	err := Decode(nil, `{"jobId": "x"}`, &in)

	var std *errors.StandardError
	require.True(t, stderrors.As(err, &std))
	assert.Equal(t, errors.ErrCodeInvalidInput, std.Code)
	assert.Contains(t, std.Details, "parse input")
}

func TestNewRunner_DefaultTimeout(t *testing.T) {
	r := NewRunner("runner-test", 0, nil, nil, logger.NewNoOpLogger())
	assert.Equal(t, 30*time.Second, r.timeout)
	assert.NotNil(t, r.errors)
}

func TestIsStandard(t *testing.T) {
	assert.True(t, isStandard(errors.NewInvalidInputError("x")))
	assert.False(t, isStandard(stderrors.New("plain")))
}
