// Package dashboard aggregates recruitment activity into the summary
// figures shown on the landing view.
package dashboard

// StatsResponse is the dashboard summary.
type StatsResponse struct {
	ActiveRequirements int64          `json:"active_requirements"`
	TotalCandidates    int            `json:"total_candidates"`
	PendingApprovals   int            `json:"pending_approvals"`
	ReadyForClient     int            `json:"ready_for_client"`
	RejectedCandidates int            `json:"rejected_candidates"`
	PlacedCandidates   int            `json:"placed_candidates"`
	CandidatesByStatus map[string]int `json:"candidates_by_status"`
}
