// Package epub reads EPUB (OCF/OPF) book files.
package epub

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.Reader = (*Reader)(nil)

// Reader handles EPUB files. It parses the OCF container to locate the
// OPF package document, takes title and author from the package
// metadata, and emits one chapter per spine content document with
// markup stripped.
type Reader struct{}

// New creates a new EPUB reader.
func New() *Reader {
	return &Reader{}
}

// Format identifies the document format this reader produces.
func (r *Reader) Format() domain.Format {
	return domain.FormatEPUB
}

// Extensions returns the file extensions this reader handles.
func (r *Reader) Extensions() []string {
	return []string{".epub"}
}

// UnknownAuthor is used when the package metadata carries no creator.
const UnknownAuthor = "Unknown"

// Read parses the EPUB archive at path into a Document.
func (r *Reader) Read(_ context.Context, path string) (*domain.Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, domain.NewReadError(domain.FormatEPUB, path, fmt.Errorf("invalid EPUB archive: %w", err))
	}
	defer zr.Close()

	doc, err := parse(&zr.Reader, filepath.Base(path))
	if err != nil {
		return nil, domain.NewReadError(domain.FormatEPUB, path, err)
	}
	return doc, nil
}

func parse(zr *zip.Reader, filename string) (*domain.Document, error) {
	opfPath, err := containerRootfile(zr)
	if err != nil {
		return nil, err
	}

	opfData, err := readArchiveFile(zr, opfPath)
	if err != nil {
		return nil, fmt.Errorf("reading package document: %w", err)
	}

	opf, err := xmlquery.Parse(strings.NewReader(string(opfData)))
	if err != nil {
		return nil, fmt.Errorf("parsing package document: %w", err)
	}

	title := textOf(opf, "//metadata//title")
	if title == "" {
		title = filename
	}
	author := textOf(opf, "//metadata//creator")
	if author == "" {
		author = UnknownAuthor
	}

	chapters := contentChapters(zr, opf, path.Dir(opfPath))

	contents := make([]string, len(chapters))
	for i, ch := range chapters {
		contents[i] = ch.Content
	}

	return &domain.Document{
		Format:   domain.FormatEPUB,
		Title:    title,
		Author:   author,
		Content:  strings.Join(contents, "\n\n"),
		Chapters: chapters,
	}, nil
}

// textOf returns the trimmed inner text of the first node matching the
// XPath expression, or "" when none matches.
func textOf(doc *xmlquery.Node, expr string) string {
	if node := xmlquery.FindOne(doc, expr); node != nil {
		return strings.TrimSpace(node.InnerText())
	}
	return ""
}

// containerRootfile resolves the OPF path from META-INF/container.xml,
// falling back to the first .opf member for archives without one.
func containerRootfile(zr *zip.Reader) (string, error) {
	data, err := readArchiveFile(zr, "META-INF/container.xml")
	if err == nil {
		container, perr := xmlquery.Parse(strings.NewReader(string(data)))
		if perr == nil {
			if node := xmlquery.FindOne(container, "//rootfile"); node != nil {
				if full := node.SelectAttr("full-path"); full != "" {
					return full, nil
				}
			}
		}
	}

	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, ".opf") {
			return f.Name, nil
		}
	}
	return "", errors.New("no package document found")
}

// contentChapters extracts every spine content document in container
// order. Items that strip down to empty text are skipped.
func contentChapters(zr *zip.Reader, opf *xmlquery.Node, opfDir string) []domain.Chapter {
	items := make(map[string]manifestItem)
	for _, node := range xmlquery.Find(opf, "//manifest//item") {
		id := node.SelectAttr("id")
		items[id] = manifestItem{
			href:      node.SelectAttr("href"),
			mediaType: node.SelectAttr("media-type"),
		}
	}

	var hrefs []string
	for _, node := range xmlquery.Find(opf, "//spine//itemref") {
		item, ok := items[node.SelectAttr("idref")]
		if ok && item.isContent() {
			hrefs = append(hrefs, item.href)
		}
	}
	if len(hrefs) == 0 {
		// No usable spine; fall back to manifest order.
		for _, node := range xmlquery.Find(opf, "//manifest//item") {
			item := items[node.SelectAttr("id")]
			if item.isContent() {
				hrefs = append(hrefs, item.href)
			}
		}
	}

	var chapters []domain.Chapter
	for _, href := range hrefs {
		data, err := readArchiveFile(zr, resolveHref(opfDir, href))
		if err != nil {
			continue
		}
		text := stripMarkup(string(data))
		if text == "" {
			continue
		}
		chapters = append(chapters, domain.Chapter{
			Title:   fmt.Sprintf("Chapter %d", len(chapters)+1),
			Content: text,
		})
	}
	return chapters
}

type manifestItem struct {
	href      string
	mediaType string
}

func (m manifestItem) isContent() bool {
	return m.mediaType == "application/xhtml+xml" || m.mediaType == "text/html"
}

func resolveHref(opfDir, href string) string {
	if opfDir == "." || opfDir == "" {
		return href
	}
	return path.Join(opfDir, href)
}

func readArchiveFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("archive member %s not found", name)
}

// Pre-compiled regular expressions for markup stripping.
var (
	scriptTag   = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag    = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	xmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)
	allTags     = regexp.MustCompile(`<[^>]+>`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// stripMarkup removes tags from an XHTML content document and
// collapses whitespace runs to single spaces.
func stripMarkup(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = xmlComments.ReplaceAllString(content, "")
	content = allTags.ReplaceAllString(content, " ")
	content = html.UnescapeString(content)
	content = whitespace.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}
