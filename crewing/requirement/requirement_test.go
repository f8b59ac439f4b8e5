package requirement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seaforth/crewdesk/pkg/errx"
)

func newOpenRequirement(required, filled int) *Requirement {
	return &Requirement{
		ID:               "req-1",
		Client:           "Nordic Tankers",
		Position:         "Able Seaman",
		QuantityRequired: required,
		QuantityFilled:   filled,
		DateNeeded:       time.Now().AddDate(0, 1, 0),
		Status:           RequirementStatusOpen,
	}
}

func TestRecordPlacement_Increments(t *testing.T) {
	r := newOpenRequirement(3, 0)

	require.NoError(t, r.RecordPlacement())
	require.Equal(t, 1, r.QuantityFilled)
	require.Equal(t, RequirementStatusOpen, r.Status)
	require.Equal(t, 2, r.RemainingSlots())
}

func TestRecordPlacement_LastSlotFlipsStatus(t *testing.T) {
	r := newOpenRequirement(2, 1)

	require.NoError(t, r.RecordPlacement())
	require.Equal(t, 2, r.QuantityFilled)
	require.Equal(t, RequirementStatusFilled, r.Status)
	require.Equal(t, 0, r.RemainingSlots())
	require.True(t, r.IsFilled())
}

func TestRecordPlacement_AlreadyFilled(t *testing.T) {
	r := newOpenRequirement(1, 1)
	r.Status = RequirementStatusFilled

	err := r.RecordPlacement()
	require.Error(t, err)
	require.True(t, errx.IsCode(err, "REQUIREMENT:ALREADY_FILLED"))
	require.Equal(t, 1, r.QuantityFilled)
}

func TestSyncStatus(t *testing.T) {
	r := newOpenRequirement(2, 2)
	r.SyncStatus()
	require.Equal(t, RequirementStatusFilled, r.Status)

	// Raising the headcount reopens the requirement
	r.QuantityRequired = 3
	r.SyncStatus()
	require.Equal(t, RequirementStatusOpen, r.Status)
}

func TestRemainingSlots_NeverNegative(t *testing.T) {
	r := newOpenRequirement(1, 2)
	require.Equal(t, 0, r.RemainingSlots())
}

func TestIsActive(t *testing.T) {
	r := newOpenRequirement(2, 0)
	require.True(t, r.IsActive())

	r.QuantityFilled = 2
	require.False(t, r.IsActive())

	r = newOpenRequirement(2, 0)
	r.Status = RequirementStatusFilled
	require.False(t, r.IsActive())
}
