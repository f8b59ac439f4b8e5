package candidatesrv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/seaforth/crewdesk/crewing/candidate"
	"github.com/seaforth/crewdesk/crewing/requirement"
	"github.com/seaforth/crewdesk/pkg/errx"
	"github.com/seaforth/crewdesk/pkg/kernel"
)

type mockCandidateRepo struct {
	mock.Mock
}

func (m *mockCandidateRepo) Create(ctx context.Context, c *candidate.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCandidateRepo) Update(ctx context.Context, c *candidate.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCandidateRepo) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*candidate.Candidate), args.Error(1)
}

func (m *mockCandidateRepo) Delete(ctx context.Context, id kernel.CandidateID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCandidateRepo) List(ctx context.Context, req candidate.ListCandidatesRequest) (kernel.Paginated[candidate.Candidate], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(kernel.Paginated[candidate.Candidate]), args.Error(1)
}

func (m *mockCandidateRepo) ListByRequirement(ctx context.Context, requirementID kernel.RequirementID) ([]candidate.Candidate, error) {
	args := m.Called(ctx, requirementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]candidate.Candidate), args.Error(1)
}

func (m *mockCandidateRepo) UpdateWorkflowState(ctx context.Context, c *candidate.Candidate, expectedVersion int) error {
	return m.Called(ctx, c, expectedVersion).Error(0)
}

func (m *mockCandidateRepo) CountByStatus(ctx context.Context) (map[candidate.CandidateStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[candidate.CandidateStatus]int), args.Error(1)
}

func (m *mockCandidateRepo) CountByRequirement(ctx context.Context, requirementID kernel.RequirementID) (int, error) {
	args := m.Called(ctx, requirementID)
	return args.Int(0), args.Error(1)
}

type mockRequirementRepo struct {
	mock.Mock
}

func (m *mockRequirementRepo) Create(ctx context.Context, r *requirement.Requirement) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRequirementRepo) Update(ctx context.Context, id kernel.RequirementID, r *requirement.Requirement) error {
	return m.Called(ctx, id, r).Error(0)
}

func (m *mockRequirementRepo) GetByID(ctx context.Context, id kernel.RequirementID) (*requirement.Requirement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*requirement.Requirement), args.Error(1)
}

func (m *mockRequirementRepo) Delete(ctx context.Context, id kernel.RequirementID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRequirementRepo) List(ctx context.Context, req requirement.ListRequirementsRequest) (*kernel.Paginated[requirement.Requirement], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.Paginated[requirement.Requirement]), args.Error(1)
}

func (m *mockRequirementRepo) ListPositions(ctx context.Context) ([]kernel.Position, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.Position), args.Error(1)
}

func (m *mockRequirementRepo) Exists(ctx context.Context, id kernel.RequirementID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRequirementRepo) RecordPlacement(ctx context.Context, id kernel.RequirementID) (*requirement.Requirement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*requirement.Requirement), args.Error(1)
}

func (m *mockRequirementRepo) CountLinkedCandidates(ctx context.Context, id kernel.RequirementID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRequirementRepo) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newService() (*CandidateService, *mockCandidateRepo, *mockRequirementRepo) {
	candidateRepo := new(mockCandidateRepo)
	requirementRepo := new(mockRequirementRepo)
	return NewCandidateService(candidateRepo, requirementRepo), candidateRepo, requirementRepo
}

func draftCandidate(id string) *candidate.Candidate {
	return &candidate.Candidate{
		ID:       kernel.CandidateID(id),
		Name:     "Marko Kovac",
		Position: "Second Engineer",
		Status:   candidate.CandidateStatusDraft,
		Version:  1,
	}
}

func TestCreateCandidate_Validation(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.CreateCandidate(ctx, candidate.CreateCandidateRequest{Position: "Bosun"})
	require.True(t, errx.IsCode(err, "CANDIDATE:MISSING_REQUIRED_FIELD"))

	_, err = svc.CreateCandidate(ctx, candidate.CreateCandidateRequest{Name: "Jan Novak"})
	require.True(t, errx.IsCode(err, "CANDIDATE:MISSING_REQUIRED_FIELD"))
}

func TestCreateCandidate_LinkedRequirementMustExist(t *testing.T) {
	svc, _, requirementRepo := newService()
	ctx := context.Background()

	reqID := kernel.RequirementID("req-missing")
	requirementRepo.On("Exists", ctx, reqID).Return(false, nil)

	_, err := svc.CreateCandidate(ctx, candidate.CreateCandidateRequest{
		Name:          "Jan Novak",
		Position:      "Bosun",
		RequirementID: &reqID,
	})
	require.True(t, errx.IsCode(err, "CANDIDATE:REQUIREMENT_NOT_FOUND"))
}

func TestCreateCandidate_StartsAsDraft(t *testing.T) {
	svc, candidateRepo, _ := newService()
	ctx := context.Background()

	candidateRepo.On("Create", ctx, mock.AnythingOfType("*candidate.Candidate")).Return(nil)

	resp, err := svc.CreateCandidate(ctx, candidate.CreateCandidateRequest{
		Name:     "Jan Novak",
		Position: "Bosun",
	})
	require.NoError(t, err)
	require.Equal(t, candidate.CandidateStatusDraft, resp.Status)
	require.Equal(t, 1, resp.Version)
	require.Empty(t, resp.History)
	require.NotEmpty(t, resp.ID)
}

func TestRequestApproval_PersistsAgainstLoadedVersion(t *testing.T) {
	svc, candidateRepo, _ := newService()
	ctx := context.Background()

	entity := draftCandidate("cand-1")
	entity.Version = 4
	candidateRepo.On("GetByID", ctx, entity.ID).Return(entity, nil)
	candidateRepo.On("UpdateWorkflowState", ctx, entity, 4).Return(nil)

	resp, err := svc.RequestApproval(ctx, entity.ID)
	require.NoError(t, err)
	require.Equal(t, candidate.CandidateStatusPendingLead, resp.Status)
	candidateRepo.AssertExpectations(t)
}

func TestRequestApproval_StaleVersion(t *testing.T) {
	svc, candidateRepo, _ := newService()
	ctx := context.Background()

	entity := draftCandidate("cand-1")
	candidateRepo.On("GetByID", ctx, entity.ID).Return(entity, nil)
	candidateRepo.On("UpdateWorkflowState", ctx, entity, 1).
		Return(candidate.ErrStaleVersion(entity.ID.String()))

	_, err := svc.RequestApproval(ctx, entity.ID)
	require.True(t, errx.IsCode(err, "CANDIDATE:STALE_VERSION"))
}

func TestApproveByLead_WrongStageDoesNotPersist(t *testing.T) {
	svc, candidateRepo, _ := newService()
	ctx := context.Background()

	entity := draftCandidate("cand-1")
	candidateRepo.On("GetByID", ctx, entity.ID).Return(entity, nil)

	_, err := svc.ApproveByLead(ctx, entity.ID, "")
	require.True(t, errx.IsCode(err, "CANDIDATE:INVALID_TRANSITION"))
	candidateRepo.AssertNotCalled(t, "UpdateWorkflowState", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceCandidate_Unlinked(t *testing.T) {
	svc, candidateRepo, requirementRepo := newService()
	ctx := context.Background()

	entity := draftCandidate("cand-1")
	entity.Status = candidate.CandidateStatusReadyForClient
	candidateRepo.On("GetByID", ctx, entity.ID).Return(entity, nil)
	candidateRepo.On("UpdateWorkflowState", ctx, entity, 1).Return(nil)

	resp, err := svc.PlaceCandidate(ctx, entity.ID)
	require.NoError(t, err)
	require.Equal(t, candidate.CandidateStatusPlaced, resp.Candidate.Status)
	require.Empty(t, resp.ReconciliationNote)
	require.Nil(t, resp.RequirementFilled)
	requirementRepo.AssertNotCalled(t, "RecordPlacement", mock.Anything, mock.Anything)
}

func TestPlaceCandidate_LinkedFillsRequirement(t *testing.T) {
	svc, candidateRepo, requirementRepo := newService()
	ctx := context.Background()

	reqID := kernel.RequirementID("req-1")
	entity := draftCandidate("cand-1")
	entity.Status = candidate.CandidateStatusReadyForClient
	entity.RequirementID = &reqID

	candidateRepo.On("GetByID", ctx, entity.ID).Return(entity, nil)
	candidateRepo.On("UpdateWorkflowState", ctx, entity, 1).Return(nil)
	requirementRepo.On("RecordPlacement", ctx, reqID).Return(&requirement.Requirement{
		ID:               reqID,
		QuantityRequired: 2,
		QuantityFilled:   2,
		Status:           requirement.RequirementStatusFilled,
	}, nil)

	resp, err := svc.PlaceCandidate(ctx, entity.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.RequirementFilled)
	require.Equal(t, 2, *resp.RequirementFilled)
	require.Equal(t, 2, *resp.RequirementRequired)
	require.Equal(t, "FILLED", *resp.RequirementStatus)
	require.Empty(t, resp.ReconciliationNote)
}

func TestPlaceCandidate_RequirementAlreadyFilled(t *testing.T) {
	svc, candidateRepo, requirementRepo := newService()
	ctx := context.Background()

	reqID := kernel.RequirementID("req-1")
	entity := draftCandidate("cand-1")
	entity.Status = candidate.CandidateStatusReadyForClient
	entity.RequirementID = &reqID

	candidateRepo.On("GetByID", ctx, entity.ID).Return(entity, nil)
	candidateRepo.On("UpdateWorkflowState", ctx, entity, 1).Return(nil)
	requirementRepo.On("RecordPlacement", ctx, reqID).
		Return(nil, requirement.ErrRequirementAlreadyFilled())

	resp, err := svc.PlaceCandidate(ctx, entity.ID)
	require.NoError(t, err)
	require.Equal(t, candidate.CandidateStatusPlaced, resp.Candidate.Status)
	require.Equal(t, "Requirement already filled, placement not counted against it.", resp.ReconciliationNote)
	require.Nil(t, resp.RequirementFilled)
}

func TestPlaceCandidate_RequirementGone(t *testing.T) {
	svc, candidateRepo, requirementRepo := newService()
	ctx := context.Background()

	reqID := kernel.RequirementID("req-1")
	entity := draftCandidate("cand-1")
	entity.Status = candidate.CandidateStatusReadyForClient
	entity.RequirementID = &reqID

	candidateRepo.On("GetByID", ctx, entity.ID).Return(entity, nil)
	candidateRepo.On("UpdateWorkflowState", ctx, entity, 1).Return(nil)
	requirementRepo.On("RecordPlacement", ctx, reqID).
		Return(nil, requirement.ErrRequirementNotFound())

	resp, err := svc.PlaceCandidate(ctx, entity.ID)
	require.NoError(t, err)
	require.Equal(t, "Linked requirement no longer exists.", resp.ReconciliationNote)
}

func TestPlaceCandidate_NotReady(t *testing.T) {
	svc, candidateRepo, _ := newService()
	ctx := context.Background()

	entity := draftCandidate("cand-1")
	candidateRepo.On("GetByID", ctx, entity.ID).Return(entity, nil)

	_, err := svc.PlaceCandidate(ctx, entity.ID)
	require.True(t, errx.IsCode(err, "CANDIDATE:NOT_READY_FOR_PLACEMENT"))
	candidateRepo.AssertNotCalled(t, "UpdateWorkflowState", mock.Anything, mock.Anything, mock.Anything)
}

func TestListCandidates_RejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	bad := candidate.CandidateStatus("SHORTLISTED")
	_, err := svc.ListCandidates(ctx, candidate.ListCandidatesRequest{Status: &bad})
	require.True(t, errx.IsCode(err, "CANDIDATE:INVALID_STATUS"))
}

func TestUpdateCandidate_ClearRequirementWins(t *testing.T) {
	svc, candidateRepo, requirementRepo := newService()
	ctx := context.Background()

	linked := kernel.RequirementID("req-1")
	other := kernel.RequirementID("req-2")
	entity := draftCandidate("cand-1")
	entity.RequirementID = &linked

	candidateRepo.On("GetByID", ctx, entity.ID).Return(entity, nil)
	candidateRepo.On("Update", ctx, entity).Return(nil)

	resp, err := svc.UpdateCandidate(ctx, entity.ID, candidate.UpdateCandidateRequest{
		RequirementID:    &other,
		ClearRequirement: true,
	})
	require.NoError(t, err)
	require.Nil(t, resp.RequirementID)
	requirementRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestCountByStatus_ZeroFillsMissing(t *testing.T) {
	svc, candidateRepo, _ := newService()
	ctx := context.Background()

	candidateRepo.On("CountByStatus", ctx).Return(map[candidate.CandidateStatus]int{
		candidate.CandidateStatusDraft:  3,
		candidate.CandidateStatusPlaced: 1,
	}, nil)

	counts, err := svc.CountByStatus(ctx)
	require.NoError(t, err)
	require.Len(t, counts, len(candidate.AllStatuses))
	require.Equal(t, 3, counts[candidate.CandidateStatusDraft])
	require.Equal(t, 0, counts[candidate.CandidateStatusPendingManager])
}
