package documentsrv

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/seaforth/crewdesk/crewing/document"
	"github.com/seaforth/crewdesk/internal/ai/cvparser"
	"github.com/seaforth/crewdesk/internal/ai/embeddings"
	"github.com/seaforth/crewdesk/internal/pdf"
	"github.com/seaforth/crewdesk/pkg/errx"
	"github.com/seaforth/crewdesk/pkg/fsx"
	"github.com/seaforth/crewdesk/pkg/kernel"
)

const (
	MaxUploadBytes = 10 << 20 // 10MB
	DefaultMatches = 10
	MaxMatches     = 50
)

// SupportedFileTypes lists the accepted CV upload formats
var SupportedFileTypes = []string{"pdf", "jpg", "jpeg", "png"}

// Service orchestrates CV storage, parsing, and matching
type Service struct {
	repo     document.Repository
	jobRepo  document.JobRepository
	parser   *cvparser.CVParser
	embedGen *embeddings.Generator
	files    fsx.FileSystem
	queue    document.JobQueue
}

// NewService creates a new document service
func NewService(
	repo document.Repository,
	jobRepo document.JobRepository,
	parser *cvparser.CVParser,
	embedGen *embeddings.Generator,
	files fsx.FileSystem,
	queue document.JobQueue,
) *Service {
	return &Service{
		repo:     repo,
		jobRepo:  jobRepo,
		parser:   parser,
		embedGen: embedGen,
		files:    files,
		queue:    queue,
	}
}

// ============================================================================
// Upload
// ============================================================================

// UploadCV stores the file and queues it for parsing. The returned job id
// is the handle for polling progress.
func (s *Service) UploadCV(ctx context.Context, candidateID kernel.CandidateID, fileName string, data []byte) (*document.JobStatusResponse, error) {
	if len(data) == 0 {
		return nil, document.ErrFileMissing()
	}
	if len(data) > MaxUploadBytes {
		return nil, document.ErrFileTooLarge().
			WithDetail("size_bytes", len(data)).
			WithDetail("max_bytes", MaxUploadBytes)
	}

	fileType := normalizeFileType(fileName)
	if !isSupportedFileType(fileType) {
		return nil, document.ErrInvalidFileFormat().
			WithDetail("file_type", fileType).
			WithDetail("supported_formats", SupportedFileTypes)
	}

	filePath := s.files.Join("cvs", candidateID.String(), uuid.NewString()+"."+fileType)
	if err := s.files.WriteFile(ctx, filePath, data); err != nil {
		return nil, document.ErrUploadFailed().
			WithDetail("file_name", fileName).
			WithDetails(map[string]any{"error": err.Error()})
	}

	return s.enqueueParseJob(ctx, document.ParseCVRequest{
		CandidateID: candidateID,
		FilePath:    filePath,
		FileName:    fileName,
		FileType:    fileType,
	})
}

// ============================================================================
// Read
// ============================================================================

// GetDocumentByID retrieves a CV document by ID
func (s *Service) GetDocumentByID(ctx context.Context, documentID kernel.DocumentID) (*document.DocumentResponse, error) {
	doc, err := s.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, document.ErrDocumentNotFound().WithDetail("document_id", documentID.String())
	}

	resp := document.ToDocumentResponse(doc)
	return &resp, nil
}

// ListDocumentsByCandidate retrieves all CV documents for a candidate
func (s *Service) ListDocumentsByCandidate(ctx context.Context, candidateID kernel.CandidateID) ([]document.DocumentResponse, error) {
	docs, err := s.repo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list documents", errx.TypeInternal)
	}

	responses := make([]document.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		responses = append(responses, document.ToDocumentResponse(&d))
	}

	return responses, nil
}

// DeleteDocument removes a CV document and its stored file
func (s *Service) DeleteDocument(ctx context.Context, documentID kernel.DocumentID) error {
	doc, err := s.repo.GetByID(ctx, documentID)
	if err != nil {
		return document.ErrDocumentNotFound().WithDetail("document_id", documentID.String())
	}

	if err := s.repo.Delete(ctx, documentID); err != nil {
		return errx.Wrap(err, "failed to delete document", errx.TypeInternal)
	}

	// Best effort, an orphaned object is harmless
	_ = s.files.Delete(ctx, string(doc.BucketURL))

	return nil
}

// ============================================================================
// Matching
// ============================================================================

// MatchCandidates embeds the description and ranks stored CVs by cosine
// similarity
func (s *Service) MatchCandidates(ctx context.Context, req document.MatchRequest) ([]document.MatchResult, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, document.ErrInvalidFileFormat().WithDetail("message", "description is required")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultMatches
	}
	if limit > MaxMatches {
		limit = MaxMatches
	}

	queryVector, err := s.embedGen.Embed(ctx, description)
	if err != nil {
		return nil, document.ErrEmbeddingFailed().
			WithDetails(map[string]any{"error": err.Error()})
	}

	matches, err := s.repo.Match(ctx, queryVector, limit)
	if err != nil {
		return nil, document.ErrMatchFailed().
			WithDetails(map[string]any{"error": err.Error()})
	}

	return matches, nil
}

// ============================================================================
// Parsing helpers
// ============================================================================

// parseCV runs the vision extraction for the given file type
func (s *Service) parseCV(ctx context.Context, fileType string, fileData []byte) (*cvparser.CVData, error) {
	switch fileType {
	case "pdf":
		pages, err := pdf.RenderPages(fileData)
		if err != nil {
			return nil, fmt.Errorf("failed to render PDF: %w", err)
		}
		return s.parser.ParseCVFromPages(ctx, pages)
	case "jpg", "jpeg", "png":
		jpegData, err := pdf.ToJPEG(fileData)
		if err != nil {
			return nil, fmt.Errorf("failed to convert image: %w", err)
		}
		return s.parser.ParseCVFromImage(ctx, jpegData)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}
}

// summarize flattens parsed CV data into the text that gets embedded
func summarize(data *cvparser.CVData) string {
	var b strings.Builder

	if data.Name != "" {
		fmt.Fprintf(&b, "%s. ", data.Name)
	}
	if data.Rank != "" {
		fmt.Fprintf(&b, "Rank: %s. ", data.Rank)
	}
	if data.YearsAtSea != "" {
		fmt.Fprintf(&b, "Sea experience: %s. ", data.YearsAtSea)
	}
	if len(data.VesselTypes) > 0 {
		fmt.Fprintf(&b, "Vessel types: %s. ", strings.Join(data.VesselTypes, ", "))
	}
	if len(data.Certificates) > 0 {
		fmt.Fprintf(&b, "Certificates: %s. ", strings.Join(data.Certificates, ", "))
	}
	if data.Summary != "" {
		b.WriteString(data.Summary)
	}

	return strings.TrimSpace(b.String())
}

func normalizeFileType(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return ""
	}
	return strings.ToLower(fileName[idx+1:])
}

func isSupportedFileType(fileType string) bool {
	for _, t := range SupportedFileTypes {
		if t == fileType {
			return true
		}
	}
	return false
}
