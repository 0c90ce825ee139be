package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobprep-backend/internal/shared/storage/object"
)

func TestPutCreatesDirectoriesAndOverwrites(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	ctx := context.Background()

	n, err := store.Put(ctx, "exported_docs/report_user_1.docx", "application/octet-stream", strings.NewReader("first"))
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	_, err = store.Put(ctx, "exported_docs/report_user_1.docx", "application/octet-stream", strings.NewReader("second write"))
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "exported_docs", "report_user_1.docx"))
	require.NoError(t, err)
	assert.Equal(t, "second write", string(raw))

	rc, err := store.Open(ctx, "exported_docs/report_user_1.docx")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second write", string(body))
}

func TestOpenMissingReturnsNotFound(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Open(context.Background(), "exported_pdfs/report_user_9.pdf")
	assert.ErrorIs(t, err, object.ErrNotFound)
}

func TestRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	_, err := store.Put(ctx, "../escape.txt", "text/plain", strings.NewReader("x"))
	assert.Error(t, err)
	_, err = store.Open(ctx, "/etc/passwd")
	assert.Error(t, err)
}

func TestPutLeavesNoPartialFiles(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	_, err := store.Put(context.Background(), "exported_pdfs/report_user_3.pdf", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "exported_pdfs"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report_user_3.pdf", entries[0].Name())
}
