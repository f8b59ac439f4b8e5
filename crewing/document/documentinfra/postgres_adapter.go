package documentinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/seaforth/crewdesk/crewing/document"
	"github.com/seaforth/crewdesk/pkg/kernel"
)

// PostgresDocumentRepository implements document.Repository using
// PostgreSQL with the pgvector extension
type PostgresDocumentRepository struct {
	db *sqlx.DB
}

// NewPostgresDocumentRepository creates a new PostgreSQL document repository
func NewPostgresDocumentRepository(db *sqlx.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type documentModel struct {
	ID          string          `db:"id"`
	CandidateID string          `db:"candidate_id"`
	FileName    string          `db:"file_name"`
	FileType    string          `db:"file_type"`
	BucketURL   string          `db:"bucket_url"`
	Summary     string          `db:"summary"`
	Embedding   pgvector.Vector `db:"embedding"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *documentModel) toEntity() *document.CVDocument {
	return &document.CVDocument{
		ID:          kernel.DocumentID(m.ID),
		CandidateID: kernel.CandidateID(m.CandidateID),
		FileName:    m.FileName,
		FileType:    m.FileType,
		BucketURL:   kernel.BucketURL(m.BucketURL),
		Summary:     kernel.CVSummary(m.Summary),
		Embedding:   kernel.CVEmbedding(m.Embedding.Slice()),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new CV document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *document.CVDocument) error {
	query := `
		INSERT INTO cv_documents (
			id, candidate_id, file_name, file_type, bucket_url,
			summary, embedding, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		string(doc.ID), string(doc.CandidateID), doc.FileName, doc.FileType,
		string(doc.BucketURL), string(doc.Summary),
		pgvector.NewVector(doc.Embedding),
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("candidate does not exist: %w", err)
			}
		}
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// GetByID retrieves a CV document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id kernel.DocumentID) (*document.CVDocument, error) {
	query := `
		SELECT
			id, candidate_id, file_name, file_type, bucket_url,
			summary, embedding, created_at, updated_at
		FROM cv_documents
		WHERE id = $1
	`

	var model documentModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, document.ErrDocumentNotFound()
		}
		return nil, fmt.Errorf("failed to get document by id: %w", err)
	}

	return model.toEntity(), nil
}

// ListByCandidate retrieves all CV documents for a candidate
func (r *PostgresDocumentRepository) ListByCandidate(ctx context.Context, candidateID kernel.CandidateID) ([]document.CVDocument, error) {
	query := `
		SELECT
			id, candidate_id, file_name, file_type, bucket_url,
			summary, embedding, created_at, updated_at
		FROM cv_documents
		WHERE candidate_id = $1
		ORDER BY created_at DESC
	`

	var models []documentModel
	err := r.db.SelectContext(ctx, &models, query, string(candidateID))
	if err != nil {
		return nil, fmt.Errorf("failed to list documents by candidate: %w", err)
	}

	entities := make([]document.CVDocument, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return entities, nil
}

// Delete deletes a CV document
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id kernel.DocumentID) error {
	query := `DELETE FROM cv_documents WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return document.ErrDocumentNotFound()
	}

	return nil
}

// Match ranks stored CV embeddings by cosine similarity to the query
// vector, best matches first
func (r *PostgresDocumentRepository) Match(ctx context.Context, embedding kernel.CVEmbedding, limit int) ([]document.MatchResult, error) {
	query := `
		SELECT
			id AS document_id,
			candidate_id,
			file_name,
			summary,
			1 - (embedding <=> $1) AS similarity
		FROM cv_documents
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2
	`

	var results []document.MatchResult
	err := r.db.SelectContext(ctx, &results, query, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to match documents: %w", err)
	}

	return results, nil
}
