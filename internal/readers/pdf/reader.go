// Package pdf reads PDF book files.
package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.Reader = (*Reader)(nil)

// Reader handles PDF files. Text is extracted page by page in page
// order; each non-empty page becomes one chapter. A file the backend
// cannot parse fails with a ReadError rather than degrading silently.
type Reader struct{}

// New creates a new PDF reader.
func New() *Reader {
	return &Reader{}
}

// Format identifies the document format this reader produces.
func (r *Reader) Format() domain.Format {
	return domain.FormatPDF
}

// Extensions returns the file extensions this reader handles.
func (r *Reader) Extensions() []string {
	return []string{".pdf"}
}

// Read parses the PDF at path into a Document, one chapter per
// non-empty page.
func (r *Reader) Read(_ context.Context, path string) (doc *domain.Document, err error) {
	// The extraction backend panics on some malformed cross-reference
	// tables; surface those as parse failures.
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = domain.NewReadError(domain.FormatPDF, path, fmt.Errorf("malformed PDF: %v", rec))
		}
	}()

	f, pr, err := pdf.Open(path)
	if err != nil {
		return nil, domain.NewReadError(domain.FormatPDF, path, err)
	}
	defer f.Close()

	title := infoTitle(pr)
	if title == "" {
		title = filepath.Base(path)
	}

	var chapters []domain.Chapter
	for pageNum := 1; pageNum <= pr.NumPage(); pageNum++ {
		page := pr.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// One unreadable page does not fail the whole document.
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		chapters = append(chapters, domain.Chapter{
			Title:   fmt.Sprintf("Page %d", pageNum),
			Content: text,
		})
	}

	contents := make([]string, len(chapters))
	for i, ch := range chapters {
		contents[i] = ch.Content
	}

	return &domain.Document{
		Format:   domain.FormatPDF,
		Title:    title,
		Content:  strings.Join(contents, "\n\n"),
		Chapters: chapters,
	}, nil
}

// infoTitle reads the document title from the Info dictionary, if any.
func infoTitle(pr *pdf.Reader) string {
	info := pr.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	title := info.Key("Title")
	if title.Kind() != pdf.String {
		return ""
	}
	return strings.TrimSpace(title.Text())
}
