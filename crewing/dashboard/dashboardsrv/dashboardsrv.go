package dashboardsrv

import (
	"context"

	"github.com/seaforth/crewdesk/crewing/candidate"
	"github.com/seaforth/crewdesk/crewing/dashboard"
	"github.com/seaforth/crewdesk/crewing/requirement"
	"github.com/seaforth/crewdesk/pkg/errx"
)

// DashboardService aggregates stats across requirements and candidates
type DashboardService struct {
	requirementRepo requirement.Repository
	candidateRepo   candidate.Repository
}

// NewDashboardService creates a new instance of the dashboard service
func NewDashboardService(
	requirementRepo requirement.Repository,
	candidateRepo candidate.Repository,
) *DashboardService {
	return &DashboardService{
		requirementRepo: requirementRepo,
		candidateRepo:   candidateRepo,
	}
}

// GetStats computes the dashboard summary
func (s *DashboardService) GetStats(ctx context.Context) (*dashboard.StatsResponse, error) {
	activeRequirements, err := s.requirementRepo.CountActive(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to count active requirements", errx.TypeInternal)
	}

	counts, err := s.candidateRepo.CountByStatus(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to count candidates by status", errx.TypeInternal)
	}

	byStatus := make(map[string]int, len(candidate.AllStatuses))
	total := 0
	for _, status := range candidate.AllStatuses {
		count := counts[status]
		byStatus[string(status)] = count
		total += count
	}

	return &dashboard.StatsResponse{
		ActiveRequirements: activeRequirements,
		TotalCandidates:    total,
		PendingApprovals:   byStatus[string(candidate.CandidateStatusPendingLead)] + byStatus[string(candidate.CandidateStatusPendingManager)],
		ReadyForClient:     byStatus[string(candidate.CandidateStatusReadyForClient)],
		RejectedCandidates: byStatus[string(candidate.CandidateStatusRejectedByLead)] + byStatus[string(candidate.CandidateStatusRejectedByManager)],
		PlacedCandidates:   byStatus[string(candidate.CandidateStatusPlaced)],
		CandidatesByStatus: byStatus,
	}, nil
}
