package candidateinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/seaforth/crewdesk/crewing/candidate"
	"github.com/seaforth/crewdesk/pkg/kernel"
)

// PostgresCandidateRepository implements candidate.Repository using PostgreSQL
type PostgresCandidateRepository struct {
	db *sqlx.DB
}

// NewPostgresCandidateRepository creates a new PostgreSQL candidate repository
func NewPostgresCandidateRepository(db *sqlx.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type candidateModel struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	Position      string          `db:"position"`
	Experience    string          `db:"experience"`
	RequirementID sql.NullString  `db:"requirement_id"`
	Status        string          `db:"status"`
	History       json.RawMessage `db:"history"`
	Version       int             `db:"version"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *candidateModel) toEntity() (*candidate.Candidate, error) {
	history := []candidate.HistoryEntry{}
	if len(m.History) > 0 {
		if err := json.Unmarshal(m.History, &history); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history: %w", err)
		}
	}

	var requirementID *kernel.RequirementID
	if m.RequirementID.Valid && m.RequirementID.String != "" {
		id := kernel.RequirementID(m.RequirementID.String)
		requirementID = &id
	}

	return &candidate.Candidate{
		ID:            kernel.CandidateID(m.ID),
		Name:          kernel.CandidateName(m.Name),
		Position:      kernel.Position(m.Position),
		Experience:    kernel.Experience(m.Experience),
		RequirementID: requirementID,
		Status:        candidate.CandidateStatus(m.Status),
		History:       history,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// fromEntity converts domain entity to database model
func fromEntity(c *candidate.Candidate) (*candidateModel, error) {
	history := c.History
	if history == nil {
		history = []candidate.HistoryEntry{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}

	var requirementID sql.NullString
	if c.RequirementID != nil && !c.RequirementID.IsEmpty() {
		requirementID = sql.NullString{String: c.RequirementID.String(), Valid: true}
	}

	return &candidateModel{
		ID:            string(c.ID),
		Name:          string(c.Name),
		Position:      string(c.Position),
		Experience:    string(c.Experience),
		RequirementID: requirementID,
		Status:        string(c.Status),
		History:       historyJSON,
		Version:       c.Version,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}, nil
}

// sortColumns maps whitelisted sort keys to their ORDER BY expressions
var sortColumns = map[string]string{
	"name":       "LOWER(name)",
	"position":   "LOWER(position)",
	"experience": "LOWER(experience)",
	"status":     "status",
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new candidate
func (r *PostgresCandidateRepository) Create(ctx context.Context, entity *candidate.Candidate) error {
	model, err := fromEntity(entity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO candidates (
			id, name, position, experience, requirement_id,
			status, history, version, created_at, updated_at
		) VALUES (
			:id, :name, :position, :experience, :requirement_id,
			:status, :history, :version, :created_at, :updated_at
		)
	`

	_, err = r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" { // foreign_key_violation
				return candidate.ErrLinkedRequirementNotFound(model.RequirementID.String)
			}
		}
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	return nil
}

// Update updates profile fields of an existing candidate. The version
// bump lets concurrent workflow transitions detect the write.
func (r *PostgresCandidateRepository) Update(ctx context.Context, entity *candidate.Candidate) error {
	model, err := fromEntity(entity)
	if err != nil {
		return err
	}

	query := `
		UPDATE candidates SET
			name = :name,
			position = :position,
			experience = :experience,
			requirement_id = :requirement_id,
			version = version + 1,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" { // foreign_key_violation
				return candidate.ErrLinkedRequirementNotFound(model.RequirementID.String)
			}
		}
		return fmt.Errorf("failed to update candidate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return candidate.ErrNotFound(string(entity.ID))
	}

	entity.Version++
	return nil
}

// GetByID retrieves a candidate by ID
func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	query := `
		SELECT
			id, name, position, experience, requirement_id,
			status, history, version, created_at, updated_at
		FROM candidates
		WHERE id = $1
	`

	var model candidateModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrNotFound(id.String())
		}
		return nil, fmt.Errorf("failed to get candidate by id: %w", err)
	}

	return model.toEntity()
}

// Delete deletes a candidate by ID
func (r *PostgresCandidateRepository) Delete(ctx context.Context, id kernel.CandidateID) error {
	query := `DELETE FROM candidates WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return candidate.ErrNotFound(id.String())
	}

	return nil
}

// List retrieves candidates matching the filters with pagination
func (r *PostgresCandidateRepository) List(ctx context.Context, req candidate.ListCandidatesRequest) (kernel.Paginated[candidate.Candidate], error) {
	empty := kernel.Paginated[candidate.Candidate]{Items: []candidate.Candidate{}, Empty: true}

	// Build dynamic query
	whereConditions := []string{}
	args := []interface{}{}
	argCount := 1

	if req.Search != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("(name ILIKE $%d OR position ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+req.Search+"%")
		argCount++
	}

	if req.Status != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, string(*req.Status))
		argCount++
	}

	if req.RequirementID != nil && !req.RequirementID.IsEmpty() {
		whereConditions = append(whereConditions, fmt.Sprintf("requirement_id = $%d", argCount))
		args = append(args, req.RequirementID.String())
		argCount++
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = "WHERE " + whereConditions[0]
		for i := 1; i < len(whereConditions); i++ {
			whereClause += " AND " + whereConditions[i]
		}
	}

	// Count total
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM candidates %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return empty, fmt.Errorf("failed to count candidates: %w", err)
	}

	sortColumn, ok := sortColumns[req.Sort.Key]
	if !ok {
		sortColumn = "LOWER(name)"
	}
	direction := "ASC"
	if req.Sort.Order == kernel.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT
			id, name, position, experience, requirement_id,
			status, history, version, created_at, updated_at
		FROM candidates
		%s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, direction, argCount, argCount+1)

	args = append(args, req.Pagination.PageSize, req.Pagination.Offset())

	var models []candidateModel
	err := r.db.SelectContext(ctx, &models, query, args...)
	if err != nil {
		return empty, fmt.Errorf("failed to list candidates: %w", err)
	}

	entities := make([]candidate.Candidate, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return empty, err
		}
		entities = append(entities, *entity)
	}

	return kernel.Paginated[candidate.Candidate]{
		Items: entities,
		Page:  kernel.NewPage(req.Pagination, total),
		Empty: len(entities) == 0,
	}, nil
}

// ListByRequirement retrieves all candidates linked to a requirement
func (r *PostgresCandidateRepository) ListByRequirement(ctx context.Context, requirementID kernel.RequirementID) ([]candidate.Candidate, error) {
	query := `
		SELECT
			id, name, position, experience, requirement_id,
			status, history, version, created_at, updated_at
		FROM candidates
		WHERE requirement_id = $1
		ORDER BY LOWER(name) ASC, id ASC
	`

	var models []candidateModel
	err := r.db.SelectContext(ctx, &models, query, string(requirementID))
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates by requirement: %w", err)
	}

	entities := make([]candidate.Candidate, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}

	return entities, nil
}

// UpdateWorkflowState persists a status change and its history log in one
// statement guarded by the expected version. A zero row count means the
// candidate moved underneath the caller and the transition must be retried
// against fresh state.
func (r *PostgresCandidateRepository) UpdateWorkflowState(ctx context.Context, entity *candidate.Candidate, expectedVersion int) error {
	historyJSON, err := json.Marshal(entity.History)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	query := `
		UPDATE candidates SET
			status = $1,
			history = $2,
			version = version + 1,
			updated_at = $3
		WHERE id = $4 AND version = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		string(entity.Status), historyJSON, entity.UpdatedAt,
		string(entity.ID), expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update workflow state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		exists, existsErr := r.exists(ctx, entity.ID)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return candidate.ErrNotFound(entity.ID.String())
		}
		return candidate.ErrStaleVersion(entity.ID.String())
	}

	entity.Version = expectedVersion + 1
	return nil
}

// CountByStatus returns candidate counts grouped by workflow status
func (r *PostgresCandidateRepository) CountByStatus(ctx context.Context) (map[candidate.CandidateStatus]int, error) {
	query := `SELECT status, COUNT(*) AS count FROM candidates GROUP BY status`

	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count candidates by status: %w", err)
	}

	counts := make(map[candidate.CandidateStatus]int, len(rows))
	for _, row := range rows {
		counts[candidate.CandidateStatus(row.Status)] = row.Count
	}

	return counts, nil
}

// CountByRequirement counts candidates linked to a requirement
func (r *PostgresCandidateRepository) CountByRequirement(ctx context.Context, requirementID kernel.RequirementID) (int, error) {
	query := `SELECT COUNT(*) FROM candidates WHERE requirement_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, string(requirementID))
	if err != nil {
		return 0, fmt.Errorf("failed to count candidates by requirement: %w", err)
	}

	return count, nil
}

func (r *PostgresCandidateRepository) exists(ctx context.Context, id kernel.CandidateID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, string(id))
	if err != nil {
		return false, fmt.Errorf("failed to check candidate existence: %w", err)
	}

	return exists, nil
}
