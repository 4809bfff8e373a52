package score

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	materialIDTextRe = regexp.MustCompile(`資料\s*(\d+(?:-\d+)?)`)
	materialIDFileRe = regexp.MustCompile(`(?:shiryou|material)[_-]?(\d+(?:[-_]\d+)?)`)
)

// MaterialID extracts a normalized material identifier ("資料3", "資料1-2")
// from a candidate's display text, falling back to the filename. Returns
// the empty string when no identifier is present.
func MaterialID(text, filename string) string {
	t := strings.Join(strings.Fields(text), " ")
	if m := materialIDTextRe.FindStringSubmatch(t); m != nil {
		return "資料" + m[1]
	}
	fl := strings.ToLower(filename)
	if m := materialIDFileRe.FindStringSubmatch(fl); m != nil {
		return "資料" + strings.ReplaceAll(m[1], "_", "-")
	}
	return ""
}

// MentionIndex counts material-identifier references in a minutes text.
type MentionIndex map[string]int

// BuildMentionIndex scans the minutes text for material references.
func BuildMentionIndex(minutesText string) MentionIndex {
	counts := make(MentionIndex)
	for _, m := range materialIDTextRe.FindAllStringSubmatch(minutesText, -1) {
		counts[fmt.Sprintf("資料%s", m[1])]++
	}
	return counts
}

// Count returns the number of mentions recorded for a material identifier.
func (idx MentionIndex) Count(materialID string) int {
	if materialID == "" {
		return 0
	}
	return idx[materialID]
}

// Total returns the total number of material mentions in the index.
func (idx MentionIndex) Total() int {
	var n int
	for _, c := range idx {
		n += c
	}
	return n
}
