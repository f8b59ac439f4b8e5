package requirementinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/seaforth/crewdesk/crewing/requirement"
	"github.com/seaforth/crewdesk/pkg/kernel"
)

// PostgresRequirementRepository implements requirement.Repository using PostgreSQL
type PostgresRequirementRepository struct {
	db *sqlx.DB
}

// NewPostgresRequirementRepository creates a new PostgreSQL requirement repository
func NewPostgresRequirementRepository(db *sqlx.DB) *PostgresRequirementRepository {
	return &PostgresRequirementRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type requirementModel struct {
	ID               string    `db:"id"`
	Client           string    `db:"client"`
	Position         string    `db:"position"`
	QuantityRequired int       `db:"quantity_required"`
	QuantityFilled   int       `db:"quantity_filled"`
	DateNeeded       time.Time `db:"date_needed"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *requirementModel) toEntity() *requirement.Requirement {
	return &requirement.Requirement{
		ID:               kernel.RequirementID(m.ID),
		Client:           kernel.ClientName(m.Client),
		Position:         kernel.Position(m.Position),
		QuantityRequired: m.QuantityRequired,
		QuantityFilled:   m.QuantityFilled,
		DateNeeded:       m.DateNeeded,
		Status:           requirement.RequirementStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(r *requirement.Requirement) *requirementModel {
	return &requirementModel{
		ID:               string(r.ID),
		Client:           string(r.Client),
		Position:         string(r.Position),
		QuantityRequired: r.QuantityRequired,
		QuantityFilled:   r.QuantityFilled,
		DateNeeded:       r.DateNeeded,
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// sortColumns maps whitelisted sort keys to their ORDER BY expressions.
// Text columns sort case-insensitively to match how the listing is read.
var sortColumns = map[string]string{
	"client":            "LOWER(client)",
	"position":          "LOWER(position)",
	"quantity_required": "quantity_required",
	"quantity_filled":   "quantity_filled",
	"date_needed":       "date_needed",
	"status":            "status",
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new requirement
func (r *PostgresRequirementRepository) Create(ctx context.Context, entity *requirement.Requirement) error {
	model := fromEntity(entity)

	query := `
		INSERT INTO requirements (
			id, client, position, quantity_required, quantity_filled,
			date_needed, status, created_at, updated_at
		) VALUES (
			:id, :client, :position, :quantity_required, :quantity_filled,
			:date_needed, :status, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return requirement.ErrRequirementAlreadyExists()
			}
		}
		return fmt.Errorf("failed to create requirement: %w", err)
	}

	return nil
}

// Update updates an existing requirement
func (r *PostgresRequirementRepository) Update(ctx context.Context, id kernel.RequirementID, entity *requirement.Requirement) error {
	model := fromEntity(entity)
	model.ID = string(id)

	query := `
		UPDATE requirements SET
			client = :client,
			position = :position,
			quantity_required = :quantity_required,
			quantity_filled = :quantity_filled,
			date_needed = :date_needed,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update requirement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return requirement.ErrRequirementNotFound()
	}

	return nil
}

// GetByID retrieves a requirement by ID
func (r *PostgresRequirementRepository) GetByID(ctx context.Context, id kernel.RequirementID) (*requirement.Requirement, error) {
	query := `
		SELECT
			id, client, position, quantity_required, quantity_filled,
			date_needed, status, created_at, updated_at
		FROM requirements
		WHERE id = $1
	`

	var model requirementModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, requirement.ErrRequirementNotFound()
		}
		return nil, fmt.Errorf("failed to get requirement by id: %w", err)
	}

	return model.toEntity(), nil
}

// Delete deletes a requirement by ID
func (r *PostgresRequirementRepository) Delete(ctx context.Context, id kernel.RequirementID) error {
	query := `DELETE FROM requirements WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" { // foreign_key_violation
				return requirement.ErrHasLinkedCandidates()
			}
		}
		return fmt.Errorf("failed to delete requirement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return requirement.ErrRequirementNotFound()
	}

	return nil
}

// List retrieves requirements matching the filters with pagination
func (r *PostgresRequirementRepository) List(ctx context.Context, req requirement.ListRequirementsRequest) (*kernel.Paginated[requirement.Requirement], error) {
	// Build dynamic query
	whereConditions := []string{}
	args := []interface{}{}
	argCount := 1

	if req.Status != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, req.Status)
		argCount++
	}

	if req.Position != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("position = $%d", argCount))
		args = append(args, req.Position)
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
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM requirements %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count requirements: %w", err)
	}

	// Sort key comes from a whitelist, never from raw input. The id
	// tiebreak keeps page boundaries stable between requests.
	sortColumn, ok := sortColumns[req.Sort.Key]
	if !ok {
		sortColumn = "LOWER(client)"
	}
	direction := "ASC"
	if req.Sort.Order == kernel.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT
			id, client, position, quantity_required, quantity_filled,
			date_needed, status, created_at, updated_at
		FROM requirements
		%s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, direction, argCount, argCount+1)

	args = append(args, req.Pagination.PageSize, req.Pagination.Offset())

	var models []requirementModel
	err := r.db.SelectContext(ctx, &models, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}

	entities := make([]requirement.Requirement, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return &kernel.Paginated[requirement.Requirement]{
		Items: entities,
		Page:  kernel.NewPage(req.Pagination, total),
		Empty: len(entities) == 0,
	}, nil
}

// ListPositions returns the distinct positions present across requirements
func (r *PostgresRequirementRepository) ListPositions(ctx context.Context) ([]kernel.Position, error) {
	query := `SELECT DISTINCT position FROM requirements ORDER BY position ASC`

	var positions []string
	err := r.db.SelectContext(ctx, &positions, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	result := make([]kernel.Position, 0, len(positions))
	for _, p := range positions {
		result = append(result, kernel.Position(p))
	}

	return result, nil
}

// Exists checks if a requirement exists by ID
func (r *PostgresRequirementRepository) Exists(ctx context.Context, id kernel.RequirementID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM requirements WHERE id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, string(id))
	if err != nil {
		return false, fmt.Errorf("failed to check requirement existence: %w", err)
	}

	return exists, nil
}

// RecordPlacement atomically counts one placement against the requirement.
// The guard on quantity_filled and the status flip live in the same
// statement, so two concurrent placements can never both take the last
// slot or lose an increment.
func (r *PostgresRequirementRepository) RecordPlacement(ctx context.Context, id kernel.RequirementID) (*requirement.Requirement, error) {
	query := `
		UPDATE requirements
		SET quantity_filled = quantity_filled + 1,
		    status = CASE
		        WHEN quantity_filled + 1 >= quantity_required THEN 'FILLED'
		        ELSE status
		    END,
		    updated_at = $1
		WHERE id = $2 AND quantity_filled < quantity_required
		RETURNING
			id, client, position, quantity_required, quantity_filled,
			date_needed, status, created_at, updated_at
	`

	var model requirementModel
	err := r.db.GetContext(ctx, &model, query, time.Now(), string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			// Either the requirement is gone or every slot is taken
			exists, existsErr := r.Exists(ctx, id)
			if existsErr != nil {
				return nil, existsErr
			}
			if !exists {
				return nil, requirement.ErrRequirementNotFound().WithDetail("requirement_id", id.String())
			}
			return nil, requirement.ErrRequirementAlreadyFilled().WithDetail("requirement_id", id.String())
		}
		return nil, fmt.Errorf("failed to record placement: %w", err)
	}

	return model.toEntity(), nil
}

// CountLinkedCandidates counts candidates referencing the requirement
func (r *PostgresRequirementRepository) CountLinkedCandidates(ctx context.Context, id kernel.RequirementID) (int64, error) {
	query := `SELECT COUNT(*) FROM candidates WHERE requirement_id = $1`

	var count int64
	err := r.db.GetContext(ctx, &count, query, string(id))
	if err != nil {
		return 0, fmt.Errorf("failed to count linked candidates: %w", err)
	}

	return count, nil
}

// CountActive counts requirements that are open and under-filled
func (r *PostgresRequirementRepository) CountActive(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM requirements WHERE status = 'OPEN' AND quantity_filled < quantity_required`

	var count int64
	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count active requirements: %w", err)
	}

	return count, nil
}
