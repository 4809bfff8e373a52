package score

import (
	"context"
	"regexp"
	"strings"

	"github.com/knakagawa/shingidoc"
)

// Ensure Rules implements shingidoc.Classifier at compile time.
var _ shingidoc.Classifier = (*Rules)(nil)

// Rules is the deterministic keyword classifier. Rules are evaluated in a
// fixed priority order; the first match wins. It never errors and never
// consults the network, so it always runs before the oracle in a chain.
type Rules struct{}

// NewRules creates the rule-based classifier.
func NewRules() *Rules {
	return &Rules{}
}

var (
	materialColonRe  = regexp.MustCompile(`^資料\s*[：:]`)
	materialNumRe    = regexp.MustCompile(`^資料\s*\d+`)
	ministryDescRe   = regexp.MustCompile(`[^\s]+(?:省|府|庁)説明資料`)
	agendaKeywords   = []string{"議事次第", "次第"}
	minutesKeywords  = []string{"議事録", "議事要旨", "会議録", "議事概要"}
	rosterKeywords   = []string{"委員名簿", "出席者名簿"}
	seatingKeywords  = []string{"座席表", "座席配置"}
	disclosureWords  = []string{"公開方法", "傍聴"}
	execKeywords     = []string{"とりまとめ", "取りまとめ", "概要", "Executive Summary", "エグゼクティブサマリー"}
	minutesFileWords = []string{"gijiroku", "gijiyoshi", "minutes"}
)

// Classify assigns a category from the display text and filename.
func (r *Rules) Classify(_ context.Context, text, filename, _ string) (shingidoc.Category, error) {
	t := strings.Join(strings.Fields(text), " ")
	fl := strings.ToLower(filename)

	switch {
	case containsAny(t, agendaKeywords):
		return shingidoc.CategoryAgenda, nil
	case containsAny(t, minutesKeywords):
		return shingidoc.CategoryMinutes, nil
	case containsAny(t, rosterKeywords):
		return shingidoc.CategoryParticipants, nil
	case containsAny(t, seatingKeywords):
		return shingidoc.CategorySeating, nil
	case containsAny(t, disclosureWords):
		return shingidoc.CategoryDisclosureMethod, nil
	case containsAny(t, execKeywords):
		return shingidoc.CategoryExecutiveSummary, nil
	case strings.Contains(t, "参考資料"), strings.Contains(t, "参考"), strings.Contains(fl, "sankou"):
		return shingidoc.CategoryReference, nil
	case materialColonRe.MatchString(t),
		strings.Contains(t, "説明資料"),
		strings.Contains(t, "事務局資料"),
		ministryDescRe.MatchString(t):
		return shingidoc.CategoryMaterial, nil
	case materialNumRe.MatchString(t):
		return shingidoc.CategoryMaterial, nil
	case containsAny(fl, minutesFileWords):
		return shingidoc.CategoryMinutes, nil
	}
	return shingidoc.CategoryOther, nil
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// Ensure Chain implements shingidoc.Classifier at compile time.
var _ shingidoc.Classifier = (*Chain)(nil)

// Chain composes classifiers as a fallback sequence: each is consulted in
// order until one returns a category other than "other". A failing
// classifier is skipped, its error reported through OnError; classification
// failures are never fatal.
type Chain struct {
	Classifiers []shingidoc.Classifier

	// OnError, if set, receives errors from failing classifiers.
	OnError func(url string, err error)
}

// Classify consults the chain in order.
func (c *Chain) Classify(ctx context.Context, text, filename, url string) (shingidoc.Category, error) {
	for _, cl := range c.Classifiers {
		cat, err := cl.Classify(ctx, text, filename, url)
		if err != nil {
			if c.OnError != nil {
				c.OnError(url, err)
			}
			continue
		}
		if cat.Valid() && cat != shingidoc.CategoryOther {
			return cat, nil
		}
	}
	return shingidoc.CategoryOther, nil
}
