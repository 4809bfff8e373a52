// Package score turns raw scraped link records into scored, adjusted
// candidates: it normalizes duplicates, classifies each link into the closed
// category set, applies the base-score table with bonuses and penalties, and
// runs the set-wide adjustment rules.
package score

import (
	"strings"

	"github.com/knakagawa/shingidoc"
)

// minutesFamily are label keywords that identify minutes-like documents.
// When duplicate labels disagree, the one carrying such a keyword is the
// more informative variant.
var minutesFamily = []string{"議事録", "議事要旨", "議事概要", "会議録"}

// Normalize merges raw link records into one record per URL, preserving
// first-seen order. Duplicate display texts keep the first non-empty value
// unless a later one is strictly more informative; category hints keep the
// first non-other value.
func Normalize(links []shingidoc.RawLink) []shingidoc.RawLink {
	index := make(map[string]int)
	out := make([]shingidoc.RawLink, 0, len(links))

	for _, link := range links {
		url := strings.TrimSpace(link.URL)
		if url == "" {
			continue
		}
		link.URL = url
		link.Text = collapseSpace(link.Text)

		i, seen := index[url]
		if !seen {
			if link.EstimatedCategory == "" {
				link.EstimatedCategory = shingidoc.CategoryOther
			}
			index[url] = len(out)
			out = append(out, link)
			continue
		}

		if preferText(out[i].Text, link.Text) {
			out[i].Text = link.Text
		}
		if out[i].Filename == "" && link.Filename != "" {
			out[i].Filename = link.Filename
		}
		if isOther(out[i].EstimatedCategory) && !isOther(link.EstimatedCategory) {
			out[i].EstimatedCategory = link.EstimatedCategory
		}
	}
	return out
}

// preferText reports whether candidate should replace current as the
// display text of a merged record.
func preferText(current, candidate string) bool {
	if candidate == "" {
		return false
	}
	if current == "" {
		return true
	}
	// Replace encoding-corrupted text with a clean variant.
	if corrupted(current) && !corrupted(candidate) {
		return true
	}
	// Prefer text carrying a minutes-family keyword.
	if !hasMinutesKeyword(current) && hasMinutesKeyword(candidate) {
		return true
	}
	return false
}

func corrupted(s string) bool {
	return strings.ContainsRune(s, '�')
}

func hasMinutesKeyword(s string) bool {
	for _, kw := range minutesFamily {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func isOther(c shingidoc.Category) bool {
	return c == "" || c == shingidoc.CategoryOther
}

// collapseSpace trims and collapses runs of whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
