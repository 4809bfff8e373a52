// Package pair detects "summary vs. full" duplicate documents on the same
// topic, converts them into pending decision groups, and resolves each group
// to exactly one winner once a page-count probe is available.
package pair

import (
	"regexp"
	"strings"
)

var (
	leadingMaterialRe = regexp.MustCompile(`^資料\s*\d+(?:-\d+)?\s*`)
	pdfParenRe        = regexp.MustCompile(`(?i)[（(][^）)]*pdf[^）)]*[）)]`)
	parenRe           = regexp.MustCompile(`[（(][^）)]*[）)]`)
	connectorRe       = regexp.MustCompile(`[・／/,:：\-ー_　\s]+`)
	trailingRes       = []*regexp.Regexp{
		regexp.MustCompile(`の$`),
		regexp.MustCompile(`について$`),
		regexp.MustCompile(`に関する$`),
		regexp.MustCompile(`に係る$`),
	}
)

// Keyer normalizes display texts to topic keys. Two texts with the same
// key are considered the same topic at different granularity.
type Keyer struct {
	hintRes []*regexp.Regexp
}

// NewKeyer builds a Keyer that strips the given summary and full hint words
// during normalization.
func NewKeyer(summaryHints, fullHints []string) *Keyer {
	k := &Keyer{}
	for _, h := range append(append([]string{}, summaryHints...), fullHints...) {
		if h == "" {
			continue
		}
		k.hintRes = append(k.hintRes, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(h)))
	}
	return k
}

// Key normalizes a display text to its topic key: strip the leading 資料N
// prefix, parenthetical suffixes, summary/full hint words, trailing
// connectives, and remaining connector symbols. Texts whose label is nothing
// but the material number plus a hint word ("資料1概要", "資料1全文") key on
// the material number itself. An empty key means the text carries no
// comparable topic.
func (k *Keyer) Key(text string) string {
	t := strings.Join(strings.Fields(text), " ")
	prefix := strings.ReplaceAll(leadingMaterialRe.FindString(t), " ", "")
	t = leadingMaterialRe.ReplaceAllString(t, "")
	t = pdfParenRe.ReplaceAllString(t, "")
	t = parenRe.ReplaceAllString(t, "")
	for _, re := range k.hintRes {
		t = re.ReplaceAllString(t, "")
	}
	for _, re := range trailingRes {
		t = re.ReplaceAllString(t, "")
	}
	t = connectorRe.ReplaceAllString(t, "")
	if t == "" {
		return prefix
	}
	return t
}
