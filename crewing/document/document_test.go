package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessingJobCanRetry(t *testing.T) {
	job := &ProcessingJob{AttemptCount: 0, MaxAttempts: 3}
	require.True(t, job.CanRetry())

	job.AttemptCount = 2
	require.True(t, job.CanRetry())

	job.AttemptCount = 3
	require.False(t, job.CanRetry())
}

func TestCVDocumentPredicates(t *testing.T) {
	doc := &CVDocument{}
	require.False(t, doc.IsParsed())
	require.False(t, doc.HasEmbedding())

	doc.Summary = "Chief Officer, 12 years at sea"
	doc.Embedding = []float32{0.1, 0.2}
	require.True(t, doc.IsParsed())
	require.True(t, doc.HasEmbedding())

	resp := ToDocumentResponse(doc)
	require.True(t, resp.Parsed)
}
