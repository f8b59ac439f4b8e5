package kernel

import "strings"

type ClientName string

type Position string

type CandidateName string

type Experience string

// HistoryActor identifies who performed a workflow transition.
type HistoryActor string

const (
	ActorSelectionTeam   HistoryActor = "Selection Team"
	ActorLeadOfSelection HistoryActor = "Lead of Selection"
	ActorCrewManager     HistoryActor = "Crew Manager"
	ActorSystem          HistoryActor = "System"
)

type CVSummary string

type CVEmbedding []float32

type BucketURL string

// Quantity is a crew headcount. Zero is valid for filled counts,
// required counts must be positive.
type Quantity int

func (q Quantity) IsPositive() bool { return q > 0 }

// NormalizeSearch lowers and trims free-text search input so substring
// matching is case-insensitive on both sides.
func NormalizeSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
