// Package paginator splits a document into bounded display pages.
//
// Pagination uses a cheap estimated-line-count heuristic rather than
// true layout measurement; real layout is a rendering concern that
// belongs to the host.
package paginator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// DefaultLinesPerPage is the default page budget in estimated lines.
const DefaultLinesPerPage = 25

// charsPerLine is the assumed rendered line width for the estimate.
const charsPerLine = 80

// separatorWidth is the width of the title/content separator rule.
const separatorWidth = 50

var (
	lineEndings     = regexp.MustCompile(`\r\n?`)
	paragraphBreaks = regexp.MustCompile(`\n\s*\n`)
	innerWhitespace = regexp.MustCompile(`\s+`)
)

// Page is one display unit of paragraphs sized to the line budget.
type Page struct {
	Paragraphs []string

	// StartLine is the 1-indexed line in the document content where the
	// page's first paragraph begins. Pages holding only header material
	// (title, byline) report line 1.
	StartLine int
}

// Text joins the page's paragraphs with blank lines.
func (p Page) Text() string {
	return strings.Join(p.Paragraphs, "\n\n")
}

// Paginator splits document content into pages and tracks the current
// reading position within them.
type Paginator struct {
	linesPerPage int
	pages        []Page
	current      int
}

// Option configures the paginator.
type Option func(*Paginator)

// WithLinesPerPage sets the page budget in estimated lines.
func WithLinesPerPage(lines int) Option {
	return func(p *Paginator) {
		if lines > 0 {
			p.linesPerPage = lines
		}
	}
}

// New paginates the given document.
func New(doc *domain.Document, opts ...Option) *Paginator {
	p := &Paginator{
		linesPerPage: DefaultLinesPerPage,
	}
	for _, opt := range opts {
		opt(p)
	}

	blob, headerLines := buildBlob(doc)
	p.pages = paginate(blob, headerLines, p.linesPerPage)
	return p
}

// buildBlob assembles the logical text presented to the reader: title,
// author byline, separator rule, then the full content. headerLines is
// the number of blob lines preceding the content, so blob line numbers
// translate back to content line numbers.
func buildBlob(doc *domain.Document) (blob string, headerLines int) {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(doc.Title)
		b.WriteString("\n\n")
	}
	if doc.Author != "" {
		b.WriteString("by " + doc.Author)
		b.WriteString("\n\n")
	}
	if b.Len() > 0 {
		b.WriteString(strings.Repeat("=", separatorWidth))
		b.WriteString("\n\n")
	}
	headerLines = strings.Count(b.String(), "\n")
	b.WriteString(doc.Content)
	return b.String(), headerLines
}

// estimateLines guesses how many rendered lines a paragraph occupies:
// its length at the assumed line width, plus two for paragraph spacing.
func estimateLines(paragraph string) int {
	lines := len(paragraph) / charsPerLine
	if lines < 1 {
		lines = 1
	}
	return lines + 2
}

// paginate greedily packs paragraphs into pages. A paragraph is never
// split across pages; a page holds at least one paragraph even when
// that paragraph alone exceeds the budget.
func paginate(blob string, headerLines, linesPerPage int) []Page {
	paragraphs := splitParagraphs(blob)
	if len(paragraphs) == 0 {
		// Even empty content yields one placeholder page.
		return []Page{{Paragraphs: []string{"(empty document)"}, StartLine: 1}}
	}

	var pages []Page
	var current []string
	used := 0
	startLine := 1

	for _, p := range paragraphs {
		cost := estimateLines(p.text)
		if len(current) > 0 && used+cost > linesPerPage {
			pages = append(pages, Page{Paragraphs: current, StartLine: startLine})
			current = nil
			used = 0
		}
		if len(current) == 0 {
			startLine = p.line - headerLines
			if startLine < 1 {
				startLine = 1
			}
		}
		current = append(current, p.text)
		used += cost
	}
	pages = append(pages, Page{Paragraphs: current, StartLine: startLine})

	return pages
}

// paragraph is a normalised paragraph plus the 1-indexed blob line its
// first non-blank character sits on.
type paragraph struct {
	text string
	line int
}

// splitParagraphs breaks text on blank-line boundaries, collapsing
// intra-paragraph whitespace and recording where each paragraph starts.
func splitParagraphs(text string) []paragraph {
	text = lineEndings.ReplaceAllString(text, "\n")

	var paragraphs []paragraph
	line := 1
	emit := func(raw string) {
		normalised := strings.TrimSpace(innerWhitespace.ReplaceAllString(raw, " "))
		if normalised == "" {
			return
		}
		lead := len(raw) - len(strings.TrimLeft(raw, " \t\n"))
		paragraphs = append(paragraphs, paragraph{
			text: normalised,
			line: line + strings.Count(raw[:lead], "\n"),
		})
	}

	start := 0
	for _, sep := range paragraphBreaks.FindAllStringIndex(text, -1) {
		emit(text[start:sep[0]])
		line += strings.Count(text[start:sep[1]], "\n")
		start = sep[1]
	}
	emit(text[start:])

	return paragraphs
}

// PageCount returns the number of pages, always at least one.
func (p *Paginator) PageCount() int {
	return len(p.pages)
}

// CurrentPage returns the 1-indexed current page number.
func (p *Paginator) CurrentPage() int {
	return p.current + 1
}

// Page returns the current page.
func (p *Paginator) Page() Page {
	return p.pages[p.current]
}

// GoTo moves to the 1-indexed page number. It returns false and leaves
// the position unchanged when the number is out of range.
func (p *Paginator) GoTo(pageNumber int) bool {
	if pageNumber < 1 || pageNumber > len(p.pages) {
		return false
	}
	p.current = pageNumber - 1
	return true
}

// Next advances one page, returning false at the last page.
func (p *Paginator) Next() bool {
	if p.current >= len(p.pages)-1 {
		return false
	}
	p.current++
	return true
}

// Previous moves back one page, returning false at the first page.
func (p *Paginator) Previous() bool {
	if p.current <= 0 {
		return false
	}
	p.current--
	return true
}

// Progress reports reading progress through the pages as a percentage.
func (p *Paginator) Progress() float64 {
	return float64(p.current+1) / float64(len(p.pages)) * 100
}

// PagePosition returns the content position of the current page's
// first paragraph, suitable for storing as a reading position.
func (p *Paginator) PagePosition() domain.Position {
	return domain.NewPosition(p.Page().StartLine, 0)
}

// Position returns a display string such as "3 / 12".
func (p *Paginator) Position() string {
	return fmt.Sprintf("%d / %d", p.CurrentPage(), p.PageCount())
}
