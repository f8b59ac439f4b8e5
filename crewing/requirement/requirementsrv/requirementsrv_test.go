package requirementsrv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/seaforth/crewdesk/crewing/requirement"
	"github.com/seaforth/crewdesk/pkg/errx"
	"github.com/seaforth/crewdesk/pkg/kernel"
)

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

func newService() (*RequirementService, *mockRequirementRepo) {
	repo := new(mockRequirementRepo)
	return NewRequirementService(repo), repo
}

func validCreateRequest() requirement.CreateRequirementRequest {
	return requirement.CreateRequirementRequest{
		Client:           "Baltic Shipping",
		Position:         "Chief Engineer",
		QuantityRequired: 2,
		DateNeeded:       time.Now().AddDate(0, 2, 0),
	}
}

func TestCreateRequirement_Validation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*requirement.CreateRequirementRequest)
		code   string
	}{
		{
			name:   "missing client",
			mutate: func(r *requirement.CreateRequirementRequest) { r.Client = "" },
			code:   "REQUIREMENT:MISSING_REQUIRED_FIELD",
		},
		{
			name:   "missing position",
			mutate: func(r *requirement.CreateRequirementRequest) { r.Position = "" },
			code:   "REQUIREMENT:MISSING_REQUIRED_FIELD",
		},
		{
			name:   "zero quantity",
			mutate: func(r *requirement.CreateRequirementRequest) { r.QuantityRequired = 0 },
			code:   "REQUIREMENT:INVALID_QUANTITY",
		},
		{
			name:   "negative quantity",
			mutate: func(r *requirement.CreateRequirementRequest) { r.QuantityRequired = -1 },
			code:   "REQUIREMENT:INVALID_QUANTITY",
		},
		{
			name:   "missing date",
			mutate: func(r *requirement.CreateRequirementRequest) { r.DateNeeded = time.Time{} },
			code:   "REQUIREMENT:MISSING_REQUIRED_FIELD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			_, err := svc.CreateRequirement(ctx, req)
			require.True(t, errx.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestCreateRequirement_StartsOpen(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*requirement.Requirement")).Return(nil)

	resp, err := svc.CreateRequirement(ctx, validCreateRequest())
	require.NoError(t, err)
	require.Equal(t, requirement.RequirementStatusOpen, resp.Status)
	require.Equal(t, 0, resp.QuantityFilled)
	require.Equal(t, 2, resp.RemainingSlots)
	require.NotEmpty(t, resp.ID)
}

func TestListRequirements_RejectsUnknownStatus(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.ListRequirements(ctx, requirement.ListRequirementsRequest{Status: "CANCELLED"})
	require.True(t, errx.IsCode(err, "REQUIREMENT:INVALID_STATUS"))
}

func TestUpdateRequirement_RederivesStatus(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	id := kernel.RequirementID("req-1")
	entity := &requirement.Requirement{
		ID:               id,
		Client:           "Baltic Shipping",
		Position:         "Chief Engineer",
		QuantityRequired: 3,
		QuantityFilled:   2,
		DateNeeded:       time.Now(),
		Status:           requirement.RequirementStatusOpen,
	}
	repo.On("GetByID", ctx, id).Return(entity, nil)
	repo.On("Update", ctx, id, entity).Return(nil)

	// Lowering the headcount to the filled count closes the requirement
	newRequired := 2
	resp, err := svc.UpdateRequirement(ctx, id, requirement.UpdateRequirementRequest{
		QuantityRequired: &newRequired,
	})
	require.NoError(t, err)
	require.Equal(t, requirement.RequirementStatusFilled, resp.Status)
	require.Equal(t, 0, resp.RemainingSlots)
}

func TestUpdateRequirement_NoChangesSkipsPersist(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	id := kernel.RequirementID("req-1")
	entity := &requirement.Requirement{
		ID:               id,
		Client:           "Baltic Shipping",
		Position:         "Chief Engineer",
		QuantityRequired: 1,
		Status:           requirement.RequirementStatusOpen,
	}
	repo.On("GetByID", ctx, id).Return(entity, nil)

	_, err := svc.UpdateRequirement(ctx, id, requirement.UpdateRequirementRequest{})
	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteRequirement_BlockedByLinkedCandidates(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	id := kernel.RequirementID("req-1")
	repo.On("Exists", ctx, id).Return(true, nil)
	repo.On("CountLinkedCandidates", ctx, id).Return(int64(2), nil)

	err := svc.DeleteRequirement(ctx, id)
	require.True(t, errx.IsCode(err, "REQUIREMENT:HAS_LINKED_CANDIDATES"))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteRequirement_NotFound(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	id := kernel.RequirementID("req-missing")
	repo.On("Exists", ctx, id).Return(false, nil)

	err := svc.DeleteRequirement(ctx, id)
	require.True(t, errx.IsCode(err, "REQUIREMENT:NOT_FOUND"))
}

func TestDeleteRequirement_Unlinked(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	id := kernel.RequirementID("req-1")
	repo.On("Exists", ctx, id).Return(true, nil)
	repo.On("CountLinkedCandidates", ctx, id).Return(int64(0), nil)
	repo.On("Delete", ctx, id).Return(nil)

	require.NoError(t, svc.DeleteRequirement(ctx, id))
	repo.AssertExpectations(t)
}
