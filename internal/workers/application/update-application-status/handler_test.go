// internal/workers/application/update-application-status/handler_test.go
package updateapplicationstatus

import (
	"context"
	"testing"
	"time"

	"jobbly-workers/internal/common/errors"
	"jobbly-workers/internal/common/jobs"
	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/identity"
	"jobbly-workers/internal/lifecycle"
	"jobbly-workers/internal/models"
	"jobbly-workers/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*Handler, int64) {
	mem := store.NewMemory()
	mem.PutJob(models.Job{ID: 1, CompanyID: 3, Title: "Designer", RequiredEducation: "Matric", Status: models.JobStatusActive})
	mem.PutSeeker(models.Seeker{ID: 2, Education: "BS"})

	log := logger.NewNoOpLogger()
	svc := lifecycle.NewService(mem, log)
	res, err := svc.Apply(context.Background(), identity.Seeker(20, 2), 1)
	require.NoError(t, err)

	h := NewHandler(&Config{Timeout: time.Second}, svc, nil, log)
	h.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }
	return h, res.Application.ID
}

func TestExecute_ChangesStatus(t *testing.T) {
	h, appID := setup(t)

	for _, status := range []string{"reviewed", "Shortlisted", " rejected ", "pending"} {
		out, err := h.Execute(context.Background(), &Input{
			Identity:      identity.Company(30, 3),
			ApplicationID: appID,
			Status:        status,
		})
		require.NoError(t, err, status)
		assert.Equal(t, appID, out.ApplicationID)
		assert.Equal(t, int64(1), out.JobID)
		assert.Equal(t, int64(2), out.SeekerID)
		assert.Equal(t, "2026-03-01T09:30:00Z", out.UpdatedAt)
	}
}

func TestExecute_Rejections(t *testing.T) {
	h, appID := setup(t)

	tests := []struct {
		name  string
		input *Input
		code  errors.ErrorCode
	}{
		{"unknown status", &Input{Identity: identity.Company(30, 3), ApplicationID: appID, Status: "hired"}, errors.ErrCodeInvalidStatus},
		{"other company", &Input{Identity: identity.Company(40, 4), ApplicationID: appID, Status: "reviewed"}, errors.ErrCodeForbidden},
		{"seeker caller", &Input{Identity: identity.Seeker(20, 2), ApplicationID: appID, Status: "reviewed"}, errors.ErrCodeForbidden},
		{"missing application", &Input{Identity: identity.Company(30, 3), ApplicationID: 999999, Status: "reviewed"}, errors.ErrCodeApplicationNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.FromEngineError(err).Code)
		})
	}
}

func TestInputSchema_AcceptsAnyStatusString(t *testing.T) {
	var in Input
	err := jobs.Decode(inputSchema, `{"identity": {"role": "company", "companyId": 3}, "applicationId": 5, "status": "hired"}`, &in)
	require.NoError(t, err)
	assert.Equal(t, "hired", in.Status)

	err = jobs.Decode(inputSchema, `{"identity": {"role": "company"}, "applicationId": 5}`, &in)
	assert.Error(t, err)
}
