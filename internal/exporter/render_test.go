package exporter

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobprep-backend/internal/extract"
	"jobprep-backend/internal/interviews"
	"jobprep-backend/internal/resumes"
	"jobprep-backend/internal/users"
)

func sampleReport() Report {
	return BuildReport(
		users.User{ID: 1, Name: "Ada"},
		[]resumes.Resume{{ID: 1, OriginalText: "Line one\nLine two & <more>", EditedText: strPtr("Edited body"), Feedback: strPtr("Be concise")}},
		[]interviews.Question{{ID: 1, QuestionText: "Why Go?"}},
		[]interviews.AnswerWithQuestion{{Answer: interviews.Answer{ID: 1, AnswerText: "Because", Score: floatPtr(3.5), Feedback: strPtr("Expand")}, QuestionText: "Why Go?"}},
		fixedNow,
	)
}

func TestRenderDOCXPackageParts(t *testing.T) {
	data, err := RenderDOCX(sampleReport())
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/styles.xml"} {
		assert.True(t, names[want], want)
	}

	styles := readZipEntry(t, zr, "word/styles.xml")
	assert.Contains(t, styles, `w:styleId="Title"`)
	assert.Contains(t, styles, `w:styleId="Heading1"`)

	doc := readZipEntry(t, zr, "word/document.xml")
	assert.Contains(t, doc, `<w:pStyle w:val="Title"/>`)
	assert.Contains(t, doc, "Line two &amp; &lt;more&gt;")
}

func TestRenderDOCXTextReadsBack(t *testing.T) {
	data, err := RenderDOCX(sampleReport())
	require.NoError(t, err)

	text, err := extract.Text(context.Background(), data, extract.MimeDOCX, "report.docx")
	require.NoError(t, err)
	for _, want := range []string{
		"Ada's Job Prep Report",
		"1. Resumes",
		"Original: Line one\nLine two & <more>",
		"Edited: Edited body",
		"Feedback: Be concise",
		"1. Why Go?",
		"1. Q: Why Go?",
		"A: Because",
		"Score: 3.5",
	} {
		assert.Contains(t, text, want)
	}
}

func TestRenderPDFTextReadsBack(t *testing.T) {
	data, err := RenderPDF(sampleReport())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	text, err := extract.Text(context.Background(), data, extract.MimePDF, "report.pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "Job Prep Report")
	assert.Contains(t, text, "Interview Questions")
	assert.Contains(t, text, "Edited body")
}

func TestRenderPDFEmptyReport(t *testing.T) {
	data, err := RenderPDF(BuildReport(users.User{ID: 2, Name: "Bob"}, nil, nil, nil, fixedNow))
	require.NoError(t, err)

	text, err := extract.Text(context.Background(), data, extract.MimePDF, "report.pdf")
	require.NoError(t, err)
	assert.Contains(t, text, NoResumes)
	assert.Contains(t, text, NoAnswers)
}

func readZipEntry(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(raw)
	}
	t.Fatalf("zip entry %s missing", name)
	return ""
}
