package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seaforth/crewdesk/pkg/kernel"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "crewdesk")

	userID := kernel.UserID("op-1")
	scopes := RoleScopes[RoleLeadOfSelection]

	token, err := svc.GenerateAccessToken(userID, RoleLeadOfSelection, scopes)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, RoleLeadOfSelection, claims.Role)
	require.Equal(t, scopes, claims.Scopes)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, "crewdesk")
	verifier := NewJWTService("secret-b", time.Hour, "crewdesk")

	token, err := issuer.GenerateAccessToken("op-1", RoleAdmin, RoleScopes[RoleAdmin])
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateAccessToken_WrongIssuer(t *testing.T) {
	issuer := NewJWTService("secret", time.Hour, "someone-else")
	verifier := NewJWTService("secret", time.Hour, "crewdesk")

	token, err := issuer.GenerateAccessToken("op-1", RoleAdmin, RoleScopes[RoleAdmin])
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute, "crewdesk")

	token, err := svc.GenerateAccessToken("op-1", RoleAdmin, RoleScopes[RoleAdmin])
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "crewdesk")
	_, err := svc.ValidateAccessToken("not.a.token")
	require.Error(t, err)
}

func TestScopeSatisfies(t *testing.T) {
	tests := []struct {
		granted  string
		required string
		want     bool
	}{
		{ScopeAll, ScopeCandidatesDelete, true},
		{ScopeCandidatesRead, ScopeCandidatesRead, true},
		{ScopeCandidatesAll, ScopeCandidatesWrite, true},
		{ScopeCandidatesAll, ScopeRequirementsRead, false},
		{ScopeCandidatesRead, ScopeCandidatesWrite, false},
		{ScopeWorkflowApprove, ScopeWorkflowPlace, false},
		{ScopeDocumentsAll, ScopeDocumentsRead, true},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ScopeSatisfies(tt.granted, tt.required),
			"granted=%s required=%s", tt.granted, tt.required)
	}
}

func TestRoleScopes_ApprovalSeparation(t *testing.T) {
	// Only the two approver roles and admin may approve
	hasApprove := func(role string) bool {
		for _, s := range RoleScopes[role] {
			if ScopeSatisfies(s, ScopeWorkflowApprove) {
				return true
			}
		}
		return false
	}

	require.False(t, hasApprove(RoleSelectionTeam))
	require.True(t, hasApprove(RoleLeadOfSelection))
	require.True(t, hasApprove(RoleCrewManager))
	require.True(t, hasApprove(RoleAdmin))
}

func TestBcryptPasswordService(t *testing.T) {
	svc := NewBcryptPasswordService()

	hash, err := svc.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, svc.Compare(hash, "correct horse battery staple"))
	require.False(t, svc.Compare(hash, "wrong password"))
}
