package dashboardsrv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/seaforth/crewdesk/crewing/candidate"
	"github.com/seaforth/crewdesk/crewing/requirement"
)

type stubRequirementRepo struct {
	mock.Mock
	requirement.Repository
}

func (m *stubRequirementRepo) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type stubCandidateRepo struct {
	mock.Mock
	candidate.Repository
}

func (m *stubCandidateRepo) CountByStatus(ctx context.Context) (map[candidate.CandidateStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[candidate.CandidateStatus]int), args.Error(1)
}

func TestGetStats(t *testing.T) {
	requirementRepo := new(stubRequirementRepo)
	candidateRepo := new(stubCandidateRepo)
	svc := NewDashboardService(requirementRepo, candidateRepo)
	ctx := context.Background()

	requirementRepo.On("CountActive", ctx).Return(int64(4), nil)
	candidateRepo.On("CountByStatus", ctx).Return(map[candidate.CandidateStatus]int{
		candidate.CandidateStatusDraft:             2,
		candidate.CandidateStatusPendingLead:       3,
		candidate.CandidateStatusPendingManager:    1,
		candidate.CandidateStatusRejectedByLead:    1,
		candidate.CandidateStatusRejectedByManager: 2,
		candidate.CandidateStatusReadyForClient:    2,
		candidate.CandidateStatusPlaced:            5,
	}, nil)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(4), stats.ActiveRequirements)
	require.Equal(t, 16, stats.TotalCandidates)
	require.Equal(t, 4, stats.PendingApprovals)
	require.Equal(t, 2, stats.ReadyForClient)
	require.Equal(t, 3, stats.RejectedCandidates)
	require.Equal(t, 5, stats.PlacedCandidates)
	require.Len(t, stats.CandidatesByStatus, len(candidate.AllStatuses))
}

func TestGetStats_ZeroFillsStatuses(t *testing.T) {
	requirementRepo := new(stubRequirementRepo)
	candidateRepo := new(stubCandidateRepo)
	svc := NewDashboardService(requirementRepo, candidateRepo)
	ctx := context.Background()

	requirementRepo.On("CountActive", ctx).Return(int64(0), nil)
	candidateRepo.On("CountByStatus", ctx).Return(map[candidate.CandidateStatus]int{}, nil)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, stats.TotalCandidates)
	require.Len(t, stats.CandidatesByStatus, len(candidate.AllStatuses))
	for _, count := range stats.CandidatesByStatus {
		require.Zero(t, count)
	}
}
