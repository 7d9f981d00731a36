// Package text reads plain text book files.
package text

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.Reader = (*Reader)(nil)

// Reader handles plain text files. Files are decoded with the first
// encoding in a fixed fallback chain that accepts the bytes.
type Reader struct{}

// New creates a new plain text reader.
func New() *Reader {
	return &Reader{}
}

// Format identifies the document format this reader produces.
func (r *Reader) Format() domain.Format {
	return domain.FormatText
}

// Extensions returns the file extensions this reader handles.
func (r *Reader) Extensions() []string {
	return []string{".txt"}
}

// fallbackDecoder pairs an encoding name with its decoder. UTF-8 is
// tried first via utf8.Valid; the single-byte charmaps accept any byte
// sequence, so cp1252 is only reachable when latin1 is removed from the
// chain. The order matches the decode chain used by comparable readers.
type fallbackDecoder struct {
	name    string
	decoder *encoding.Decoder
}

func decoders() []fallbackDecoder {
	return []fallbackDecoder{
		{"utf-16", unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()},
		{"latin1", charmap.ISO8859_1.NewDecoder()},
		{"cp1252", charmap.Windows1252.NewDecoder()},
	}
}

// Read parses the file at path into a single-chapter Document.
func (r *Reader) Read(_ context.Context, path string) (*domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewReadError(domain.FormatText, path, err)
	}

	content, err := decode(raw)
	if err != nil {
		return nil, domain.NewReadError(domain.FormatText, path, err)
	}

	title := filepath.Base(path)
	return &domain.Document{
		Format:  domain.FormatText,
		Title:   title,
		Content: content,
		Chapters: []domain.Chapter{
			{Title: "Full Text", Content: content},
		},
	}, nil
}

// decode converts raw bytes to a string using the first encoding in
// the fallback chain that accepts them.
func decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	for _, fd := range decoders() {
		decoded, err := fd.decoder.Bytes(raw)
		if err == nil && utf8.Valid(decoded) {
			return string(decoded), nil
		}
	}
	return "", errors.New("could not decode file with any supported encoding")
}
