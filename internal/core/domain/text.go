package domain

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// WordCount counts the words in text.
func WordCount(text string) int {
	return len(wordPattern.FindAllString(text, -1))
}

// DefaultWordsPerMinute is the reading speed used for time estimates.
const DefaultWordsPerMinute = 200

// EstimateReadingTime returns the estimated reading time in minutes,
// never less than one. A non-positive wordsPerMinute falls back to
// DefaultWordsPerMinute.
func EstimateReadingTime(text string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	minutes := (WordCount(text) + wordsPerMinute/2) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// TruncateText shortens text to at most maxLength runes, appending an
// ellipsis when truncation occurs.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}

// TextPreview extracts the text surrounding a position, with
// contextLength characters on either side and ellipses marking
// truncated ends. A position that cannot be resolved yields a preview
// of the start of the text.
func TextPreview(text string, pos Position, contextLength int) string {
	line, char, ok := pos.parse()
	if !ok || line < 1 {
		return TruncateText(text, contextLength+3)
	}

	lines := strings.Split(text, "\n")
	if line > len(lines) {
		return TruncateText(text, contextLength+3)
	}

	// Character offset of the position within the full text. A char
	// offset past the end of the text clamps to the end.
	offset := char
	for _, l := range lines[:line-1] {
		offset += len(l) + 1
	}
	if offset > len(text) {
		offset = len(text)
	}

	start := offset - contextLength
	if start < 0 {
		start = 0
	}
	end := offset + contextLength
	if end > len(text) {
		end = len(text)
	}

	preview := text[start:end]
	if start > 0 {
		preview = "..." + preview
	}
	if end < len(text) {
		preview += "..."
	}
	return preview
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename replaces characters that are unsafe in filenames and
// trims leading/trailing spaces and dots. An empty result becomes
// "untitled".
func SanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " .")
	if name == "" {
		return "untitled"
	}
	return name
}
