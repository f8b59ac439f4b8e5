package documentsrv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seaforth/crewdesk/internal/ai/cvparser"
)

func TestNormalizeFileType(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"cv.pdf", "pdf"},
		{"Scan.JPG", "jpg"},
		{"photo.jpeg", "jpeg"},
		{"cv.final.PNG", "png"},
		{"noextension", ""},
		{"trailing.", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, normalizeFileType(tt.fileName), tt.fileName)
	}
}

func TestIsSupportedFileType(t *testing.T) {
	for _, ft := range SupportedFileTypes {
		require.True(t, isSupportedFileType(ft))
	}
	require.False(t, isSupportedFileType("docx"))
	require.False(t, isSupportedFileType(""))
}

func TestSummarize(t *testing.T) {
	data := &cvparser.CVData{
		Name:         "Ivan Petrov",
		Rank:         "Chief Officer",
		YearsAtSea:   "12 years",
		VesselTypes:  []string{"Tanker", "Bulk Carrier"},
		Certificates: []string{"STCW II/2", "GMDSS"},
		Summary:      "Experienced deck officer.",
	}

	text := summarize(data)
	require.Contains(t, text, "Ivan Petrov")
	require.Contains(t, text, "Rank: Chief Officer")
	require.Contains(t, text, "Sea experience: 12 years")
	require.Contains(t, text, "Tanker, Bulk Carrier")
	require.Contains(t, text, "STCW II/2, GMDSS")
	require.Contains(t, text, "Experienced deck officer.")
}

func TestSummarize_SkipsEmptyFields(t *testing.T) {
	text := summarize(&cvparser.CVData{Name: "Jan Novak"})
	require.Equal(t, "Jan Novak.", text)

	require.Equal(t, "", summarize(&cvparser.CVData{}))
}
