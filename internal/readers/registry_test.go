package readers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// fakeReader is a test double recording dispatches.
type fakeReader struct {
	format domain.Format
	exts   []string
	calls  int
}

func (f *fakeReader) Format() domain.Format  { return f.format }
func (f *fakeReader) Extensions() []string   { return f.exts }
func (f *fakeReader) Read(_ context.Context, _ string) (*domain.Document, error) {
	f.calls++
	return &domain.Document{Format: f.format, Title: "fake"}, nil
}

func writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("content"), 0600))
	return path
}

func TestRegistry_Dispatch(t *testing.T) {
	reg := NewRegistry()
	txt := &fakeReader{format: domain.FormatText, exts: []string{".txt"}}
	reg.Register(txt)

	doc, err := reg.Read(context.Background(), writeFile(t, "book.txt"))
	require.NoError(t, err)
	assert.Equal(t, domain.FormatText, doc.Format)
	assert.Equal(t, 1, txt.calls)
}

func TestRegistry_DispatchIsCaseInsensitive(t *testing.T) {
	reg := NewRegistry()
	txt := &fakeReader{format: domain.FormatText, exts: []string{".txt"}}
	reg.Register(txt)

	_, err := reg.Read(context.Background(), writeFile(t, "BOOK.TXT"))
	require.NoError(t, err)
	assert.Equal(t, 1, txt.calls)
}

func TestRegistry_UnsupportedFormat(t *testing.T) {
	reg := NewRegistry()
	txt := &fakeReader{format: domain.FormatText, exts: []string{".txt"}}
	reg.Register(txt)

	_, err := reg.Read(context.Background(), writeFile(t, "report.docx"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Zero(t, txt.calls)
}

func TestRegistry_NotFoundBeforeDispatch(t *testing.T) {
	reg := NewRegistry()
	txt := &fakeReader{format: domain.FormatText, exts: []string{".txt"}}
	reg.Register(txt)

	// Missing path reports not-found even for an unsupported extension.
	_, err := reg.Read(context.Background(), filepath.Join(t.TempDir(), "missing.docx"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, txt.calls)
}

func TestRegistry_SupportedExtensions(t *testing.T) {
	reg := NewRegistry()
	assert.Empty(t, reg.SupportedExtensions())

	reg.Register(&fakeReader{format: domain.FormatText, exts: []string{".txt"}})
	reg.Register(&fakeReader{format: domain.FormatEPUB, exts: []string{".epub"}})

	assert.Equal(t, []string{".epub", ".txt"}, reg.SupportedExtensions())
}
