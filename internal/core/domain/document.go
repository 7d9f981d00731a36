package domain

// Format identifies a supported book file format.
type Format string

// Supported book formats.
const (
	FormatText Format = "text"
	FormatEPUB Format = "epub"
	FormatPDF  Format = "pdf"
)

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// Document is the canonical representation of a book after reading.
// It is immutable once produced by a reader and is not persisted;
// only annotations derived from it survive across sessions.
type Document struct {
	// Format identifies which reader produced the document.
	Format Format

	// Title is the human-readable title, falling back to the filename.
	Title string

	// Author is the document author, empty when the format carries none.
	Author string

	// Content is the full normalised text content.
	Content string

	// Chapters holds the content chunks in container order.
	// Chapters are a reader concern, distinct from display pages.
	Chapters []Chapter
}

// Chapter is a named content chunk produced by a reader.
type Chapter struct {
	Title   string
	Content string
}
