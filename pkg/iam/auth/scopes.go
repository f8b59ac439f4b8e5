package auth

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - Crew recruitment tracking
// ============================================================================

const (
	ScopeAll = "*"

	// Requirement scopes
	ScopeRequirementsAll    = "requirements:*"
	ScopeRequirementsRead   = "requirements:read"
	ScopeRequirementsWrite  = "requirements:write"
	ScopeRequirementsDelete = "requirements:delete"

	// Candidate scopes
	ScopeCandidatesAll    = "candidates:*"
	ScopeCandidatesRead   = "candidates:read"
	ScopeCandidatesWrite  = "candidates:write"
	ScopeCandidatesDelete = "candidates:delete"

	// Workflow scopes
	ScopeWorkflowSubmit  = "workflow:submit"  // Request approval
	ScopeWorkflowApprove = "workflow:approve" // Approve/reject at either stage
	ScopeWorkflowPlace   = "workflow:place"   // Mark candidates placed

	// CV document scopes
	ScopeDocumentsAll   = "documents:*"
	ScopeDocumentsRead  = "documents:read"
	ScopeDocumentsWrite = "documents:write"
)

// Role names accepted at login.
const (
	RoleSelectionTeam   = "selection_team"
	RoleLeadOfSelection = "lead_of_selection"
	RoleCrewManager     = "crew_manager"
	RoleAdmin           = "admin"
)

// RoleScopes maps each operator role to the scopes its token carries.
var RoleScopes = map[string][]string{
	RoleSelectionTeam: {
		ScopeRequirementsRead,
		ScopeRequirementsWrite,
		ScopeCandidatesAll,
		ScopeWorkflowSubmit,
		ScopeWorkflowPlace,
		ScopeDocumentsAll,
	},
	RoleLeadOfSelection: {
		ScopeRequirementsRead,
		ScopeCandidatesRead,
		ScopeWorkflowApprove,
		ScopeDocumentsRead,
	},
	RoleCrewManager: {
		ScopeRequirementsAll,
		ScopeCandidatesRead,
		ScopeWorkflowApprove,
		ScopeDocumentsRead,
	},
	RoleAdmin: {
		ScopeAll,
	},
}

// ScopeSatisfies reports whether a granted scope covers a required one,
// honoring the "*" and "<area>:*" wildcards.
func ScopeSatisfies(granted, required string) bool {
	if granted == ScopeAll || granted == required {
		return true
	}
	if len(granted) > 2 && granted[len(granted)-2:] == ":*" {
		area := granted[:len(granted)-1] // keep the colon
		return len(required) >= len(area) && required[:len(area)] == area
	}
	return false
}
