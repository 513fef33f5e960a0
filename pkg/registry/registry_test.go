package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_IsValid(t *testing.T) {
	reg := New()
	added := reg.Sync(Builtin())

	assert.Len(t, added, 9)
	require.NoError(t, reg.Validate())

	a, ok := reg.Find("jobs.application.submit")
	require.True(t, ok)
	assert.Equal(t, "submit-application", a.TaskType)
	assert.Contains(t, a.ErrorCodes, "ALREADY_APPLIED")
}

func TestSync_KeepsStatusAndWorkflows(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Add(Activity{
		ID:                   "jobs.assessment.submit",
		DisplayName:          "Old name",
		Category:             "assessment",
		TaskType:             "submit-quiz",
		ImplementationStatus: StatusVerified,
		Workflows:            []string{"quiz-flow"},
	}))

	added := reg.Sync(Builtin())
	assert.Len(t, added, 7)

	a, ok := reg.Find("jobs.assessment.submit")
	require.True(t, ok)
	assert.Equal(t, "Submit Quiz", a.DisplayName)
	assert.Equal(t, StatusVerified, a.ImplementationStatus)
	assert.Equal(t, []string{"quiz-flow"}, a.Workflows)
}

func TestAdd_RejectsDuplicate(t *testing.T) {
	reg := New()
	a := Activity{ID: "jobs.eligibility.evaluate", DisplayName: "x", Category: "eligibility", TaskType: "evaluate-eligibility"}
	require.NoError(t, reg.Add(a))
	assert.Error(t, reg.Add(a))
}

func TestUpdate(t *testing.T) {
	reg := New()
	reg.Sync(Builtin())

	require.NoError(t, reg.Update("jobs.eligibility.list", "retries", "5"))
	require.NoError(t, reg.Update("jobs.eligibility.list", "status", StatusVerified))
	require.NoError(t, reg.Update("jobs.eligibility.list", "timeout", "20s"))

	a, _ := reg.Find("jobs.eligibility.list")
	assert.Equal(t, 5, a.Retries)
	assert.Equal(t, StatusVerified, a.ImplementationStatus)
	assert.Equal(t, "20s", a.Timeout)

	assert.Error(t, reg.Update("jobs.eligibility.list", "retries", "many"))
	assert.Error(t, reg.Update("jobs.eligibility.list", "status", "shipped"))
	assert.Error(t, reg.Update("jobs.eligibility.list", "timeout", "soon"))
	assert.Error(t, reg.Update("jobs.eligibility.list", "color", "red"))
	assert.ErrorIs(t, reg.Update("jobs.nothing.here", "status", StatusPlanned), ErrActivityNotFound)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		activities []Activity
		wantErr    string
	}{
		{name: "empty", wantErr: "no activities"},
		{
			name:       "bad naming",
			activities: []Activity{{ID: "SubmitApplication", DisplayName: "x", Category: "c", TaskType: "t"}},
			wantErr:    "domain.subdomain.action",
		},
		{
			name: "duplicate id",
			activities: []Activity{
				{ID: "jobs.application.submit", DisplayName: "x", Category: "c", TaskType: "a"},
				{ID: "jobs.application.submit", DisplayName: "x", Category: "c", TaskType: "b"},
			},
			wantErr: "duplicate activity ID",
		},
		{
			name: "shared task type",
			activities: []Activity{
				{ID: "jobs.application.submit", DisplayName: "x", Category: "c", TaskType: "a"},
				{ID: "jobs.application.resubmit", DisplayName: "x", Category: "c", TaskType: "a"},
			},
			wantErr: "share task type",
		},
		{
			name:       "missing task type",
			activities: []Activity{{ID: "jobs.application.submit", DisplayName: "x", Category: "c"}},
			wantErr:    "TaskType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &ActivityRegistry{Activities: tt.activities}
			err := reg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "activity-registry.json")

	reg, err := LoadOrNew(path)
	require.NoError(t, err)
	assert.Empty(t, reg.Activities)

	reg.Sync(Builtin())
	require.NoError(t, reg.Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Activities, 9)
	assert.NoError(t, loaded.Validate())
}

func TestFindByTaskType(t *testing.T) {
	reg := New()
	reg.Sync(Builtin())

	a, ok := reg.FindByTaskType("create-quiz")
	require.True(t, ok)
	assert.Equal(t, "jobs.assessment.create", a.ID)

	_, ok = reg.FindByTaskType("crm-user-create")
	assert.False(t, ok)
}
