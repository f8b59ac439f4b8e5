package candidate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seaforth/crewdesk/pkg/errx"
	"github.com/seaforth/crewdesk/pkg/kernel"
)

func newDraft() *Candidate {
	return &Candidate{
		ID:       "cand-1",
		Name:     "Ivan Petrov",
		Position: "Chief Officer",
		Status:   CandidateStatusDraft,
		Version:  1,
	}
}

func TestRequestApproval_FromDraft(t *testing.T) {
	c := newDraft()

	err := c.RequestApproval()
	require.NoError(t, err)
	require.Equal(t, CandidateStatusPendingLead, c.Status)

	require.Len(t, c.History, 1)
	entry := c.History[0]
	require.Equal(t, CandidateStatusPendingLead, entry.Status)
	require.Equal(t, kernel.ActorSelectionTeam, entry.By)
	require.Equal(t, "Submitted for approval.", entry.Note)
	require.False(t, entry.At.IsZero())
}

func TestRequestApproval_AfterRejection(t *testing.T) {
	for _, status := range []CandidateStatus{CandidateStatusRejectedByLead, CandidateStatusRejectedByManager} {
		t.Run(string(status), func(t *testing.T) {
			c := newDraft()
			c.Status = status

			err := c.RequestApproval()
			require.NoError(t, err)
			require.Equal(t, CandidateStatusPendingLead, c.Status)
		})
	}
}

func TestRequestApproval_NotEligible(t *testing.T) {
	for _, status := range []CandidateStatus{
		CandidateStatusPendingLead,
		CandidateStatusPendingManager,
		CandidateStatusReadyForClient,
		CandidateStatusPlaced,
	} {
		t.Run(string(status), func(t *testing.T) {
			c := newDraft()
			c.Status = status

			err := c.RequestApproval()
			require.Error(t, err)
			require.True(t, errx.IsCode(err, "CANDIDATE:NOT_ELIGIBLE_FOR_APPROVAL"))
			require.Equal(t, status, c.Status)
			require.Empty(t, c.History)
		})
	}
}

func TestApproveByLead(t *testing.T) {
	c := newDraft()
	require.NoError(t, c.RequestApproval())

	err := c.ApproveByLead("")
	require.NoError(t, err)
	require.Equal(t, CandidateStatusPendingManager, c.Status)

	last := c.LastHistoryEntry()
	require.NotNil(t, last)
	require.Equal(t, kernel.ActorLeadOfSelection, last.By)
	require.Equal(t, "Approved", last.Note)
}

func TestApproveByLead_CustomNote(t *testing.T) {
	c := newDraft()
	require.NoError(t, c.RequestApproval())

	require.NoError(t, c.ApproveByLead("Strong STCW record"))
	require.Equal(t, "Strong STCW record", c.LastHistoryEntry().Note)
}

func TestApproveByLead_WrongStage(t *testing.T) {
	c := newDraft()

	err := c.ApproveByLead("")
	require.Error(t, err)
	require.True(t, errx.IsCode(err, "CANDIDATE:INVALID_TRANSITION"))
	require.Equal(t, CandidateStatusDraft, c.Status)
	require.Empty(t, c.History)
}

func TestRejectByLead(t *testing.T) {
	c := newDraft()
	require.NoError(t, c.RequestApproval())

	err := c.RejectByLead("Missing GMDSS certificate")
	require.NoError(t, err)
	require.Equal(t, CandidateStatusRejectedByLead, c.Status)

	last := c.LastHistoryEntry()
	require.Equal(t, kernel.ActorLeadOfSelection, last.By)
	require.Equal(t, "Missing GMDSS certificate", last.Note)
}

func TestRejectByLead_ReasonRequired(t *testing.T) {
	for _, reason := range []string{"", "   ", "\t\n"} {
		c := newDraft()
		require.NoError(t, c.RequestApproval())

		err := c.RejectByLead(reason)
		require.Error(t, err)
		require.True(t, errx.IsCode(err, "CANDIDATE:REJECTION_REASON_REQUIRED"))
		require.Equal(t, CandidateStatusPendingLead, c.Status)
		require.Len(t, c.History, 1)
	}
}

func TestApproveByManager(t *testing.T) {
	c := newDraft()
	require.NoError(t, c.RequestApproval())
	require.NoError(t, c.ApproveByLead(""))

	err := c.ApproveByManager("")
	require.NoError(t, err)
	require.Equal(t, CandidateStatusReadyForClient, c.Status)
	require.Equal(t, kernel.ActorCrewManager, c.LastHistoryEntry().By)
}

func TestRejectByManager(t *testing.T) {
	c := newDraft()
	require.NoError(t, c.RequestApproval())
	require.NoError(t, c.ApproveByLead(""))

	err := c.RejectByManager("Client wants more tanker time")
	require.NoError(t, err)
	require.Equal(t, CandidateStatusRejectedByManager, c.Status)
}

func TestRejectByManager_ReasonRequired(t *testing.T) {
	c := newDraft()
	require.NoError(t, c.RequestApproval())
	require.NoError(t, c.ApproveByLead(""))

	err := c.RejectByManager("  ")
	require.Error(t, err)
	require.True(t, errx.IsCode(err, "CANDIDATE:REJECTION_REASON_REQUIRED"))
	require.Equal(t, CandidateStatusPendingManager, c.Status)
}

func TestMarkPlaced(t *testing.T) {
	c := newDraft()
	require.NoError(t, c.RequestApproval())
	require.NoError(t, c.ApproveByLead(""))
	require.NoError(t, c.ApproveByManager(""))

	err := c.MarkPlaced()
	require.NoError(t, err)
	require.Equal(t, CandidateStatusPlaced, c.Status)

	last := c.LastHistoryEntry()
	require.Equal(t, kernel.ActorSystem, last.By)
	require.Equal(t, "Candidate placed.", last.Note)
}

func TestMarkPlaced_NotReady(t *testing.T) {
	for _, status := range []CandidateStatus{
		CandidateStatusDraft,
		CandidateStatusPendingLead,
		CandidateStatusRejectedByLead,
		CandidateStatusPendingManager,
		CandidateStatusRejectedByManager,
		CandidateStatusPlaced,
	} {
		t.Run(string(status), func(t *testing.T) {
			c := newDraft()
			c.Status = status

			err := c.MarkPlaced()
			require.Error(t, err)
			require.True(t, errx.IsCode(err, "CANDIDATE:NOT_READY_FOR_PLACEMENT"))
			require.Equal(t, status, c.Status)
		})
	}
}

func TestFullWorkflowHistory(t *testing.T) {
	c := newDraft()
	require.NoError(t, c.RequestApproval())
	require.NoError(t, c.RejectByLead("Incomplete paperwork"))
	require.NoError(t, c.RequestApproval())
	require.NoError(t, c.ApproveByLead(""))
	require.NoError(t, c.RejectByManager("Rate too high"))
	require.NoError(t, c.RequestApproval())
	require.NoError(t, c.ApproveByLead(""))
	require.NoError(t, c.ApproveByManager(""))
	require.NoError(t, c.MarkPlaced())

	require.Equal(t, CandidateStatusPlaced, c.Status)
	require.Len(t, c.History, 9)

	statuses := make([]CandidateStatus, len(c.History))
	for i, entry := range c.History {
		statuses[i] = entry.Status
	}
	require.Equal(t, []CandidateStatus{
		CandidateStatusPendingLead,
		CandidateStatusRejectedByLead,
		CandidateStatusPendingLead,
		CandidateStatusPendingManager,
		CandidateStatusRejectedByManager,
		CandidateStatusPendingLead,
		CandidateStatusPendingManager,
		CandidateStatusReadyForClient,
		CandidateStatusPlaced,
	}, statuses)
}

func TestCanTransitionTo_TerminalState(t *testing.T) {
	c := newDraft()
	c.Status = CandidateStatusPlaced

	for _, status := range AllStatuses {
		require.False(t, c.CanTransitionTo(status))
	}
}

func TestIsLinked(t *testing.T) {
	c := newDraft()
	require.False(t, c.IsLinked())

	empty := kernel.RequirementID("")
	c.RequirementID = &empty
	require.False(t, c.IsLinked())

	reqID := kernel.RequirementID("req-1")
	c.RequirementID = &reqID
	require.True(t, c.IsLinked())
}

func TestStatusPredicates(t *testing.T) {
	c := newDraft()

	c.Status = CandidateStatusPendingLead
	require.True(t, c.IsPending())
	c.Status = CandidateStatusPendingManager
	require.True(t, c.IsPending())

	c.Status = CandidateStatusRejectedByLead
	require.True(t, c.IsRejected())
	require.False(t, c.IsPending())

	c.Status = CandidateStatusPlaced
	require.True(t, c.IsPlaced())
	require.False(t, c.IsRejected())
}
