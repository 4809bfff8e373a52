package fs

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Filesystem limits push the title part well under typical 255-byte name
// caps once the prefix and extension are added.
const maxFilenameBytes = 120

var (
	controlRe    = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	unsafeRe     = regexp.MustCompile(`[\\/:*?"<>|]`)
	underscoreRe = regexp.MustCompile(`_+`)
)

// SafeFilenamePart sanitizes document title text for use inside a filename.
// Whitespace collapses to underscores, path-hostile characters are
// replaced, and the result is truncated by UTF-8 byte length so multibyte
// Japanese titles cannot blow past OS name limits. Empty results become
// "pdf".
func SafeFilenamePart(text string) string {
	s := strings.Join(strings.Fields(text), " ")
	s = controlRe.ReplaceAllString(s, "")
	s = unsafeRe.ReplaceAllString(s, "_")
	s = strings.ReplaceAll(s, " ", "_")
	s = underscoreRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "._ ")
	if s == "" {
		return "pdf"
	}
	s = strings.TrimRight(truncateUTF8(s, maxFilenameBytes), "._ ")
	if s == "" {
		return "pdf"
	}
	return s
}

// truncateUTF8 cuts s to at most maxBytes without splitting a rune.
func truncateUTF8(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := s[:maxBytes]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}

// SelectedFileName builds the save name for the i-th selected document,
// 1-based, from its title text and original filename's extension.
func SelectedFileName(i int, title, originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	if ext == "" {
		ext = ".pdf"
	}
	return fmt.Sprintf("selected-%02d-%s%s", i, SafeFilenamePart(title), ext)
}
