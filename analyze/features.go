// Package analyze classifies finally selected documents: it extracts a
// structural/lexical feature vector from each document's first pages and
// decides the layout type that picks the downstream reading strategy. Work
// is spread over a bounded worker pool; tasks never share mutable state.
package analyze

import (
	"math"
	"regexp"
	"strings"

	"github.com/knakagawa/shingidoc"
)

var (
	sentenceEndRe   = regexp.MustCompile(`[。．.!！?？]$`)
	bulletGlyphRe   = regexp.MustCompile(`(?m)^\s*[●・○◯■□◆◇▶▷➢①②③④⑤⑥⑦⑧⑨⑩]\s*`)
	bulletDashRe    = regexp.MustCompile(`(?m)^\s*[\-\*]\s+`)
	symbolBulletRe  = regexp.MustCompile(`(?m)^\s*[^\wぁ-んァ-ン一-龥A-Za-z0-9\s]{1,2}\s+`)
	nominalEndRe    = regexp.MustCompile(`(について|に関して|の推進|の強化|の検討|の概要|の方針|の方向性)$`)
	paragraphSepRe  = regexp.MustCompile(`\n\s*\n`)
	particleRe      = regexp.MustCompile(`[はがをにでと]`)
	politeRe        = regexp.MustCompile(`です|ます`)
	dearuRe         = regexp.MustCompile(`である|だ。`)
	citationRe      = regexp.MustCompile(`によれば|によると|として|示す`)
	referenceExprRe = regexp.MustCompile(`下図|次の表|以下|上記|図\d|表\d`)
	topicWordRe     = regexp.MustCompile(`議題|資料|方針|概要|案|について|に関して|調査|対策|検討`)
	pageNumberRe    = regexp.MustCompile(`(?m)^\s*\d{1,3}\s*$`)
)

// Maximum rune lengths for short-line and topic-line detection. Slides wrap
// text into much shorter lines than prose.
const (
	shortLineMax = 24
	topicLineMax = 40
)

// ExtractFeatures computes the feature vector from a document's first-pages
// text sample.
func ExtractFeatures(text string) *shingidoc.Features {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(raw); t != "" {
			lines = append(lines, t)
		}
	}
	joined := strings.Join(lines, "\n")

	f := &shingidoc.Features{LineCount: len(lines)}

	var shortLines int
	for _, line := range lines {
		n := len([]rune(line))
		if sentenceEndRe.MatchString(line) {
			f.SentenceLikeCount++
		}
		if nominalEndRe.MatchString(line) {
			f.NominalEndingCount++
		}
		if n <= shortLineMax {
			shortLines++
		}
		if n <= topicLineMax && topicWordRe.MatchString(line) {
			f.TopicLineCount++
		}
	}

	f.SymbolBulletCount = len(symbolBulletRe.FindAllString(text, -1))
	f.BulletCount = len(bulletGlyphRe.FindAllString(text, -1)) +
		len(bulletDashRe.FindAllString(text, -1)) +
		f.SymbolBulletCount

	for _, p := range paragraphSepRe.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			f.ParagraphCount++
		}
	}

	f.ParticleCount = len(particleRe.FindAllString(joined, -1))
	f.PoliteStyleCount = len(politeRe.FindAllString(joined, -1))
	f.DearuStyleCount = len(dearuRe.FindAllString(joined, -1))
	f.CitationCount = len(citationRe.FindAllString(joined, -1))
	f.ReferenceExprCount = len(referenceExprRe.FindAllString(joined, -1))
	f.PageNumberLineCount = len(pageNumberRe.FindAllString(text, -1))

	if len(lines) > 0 {
		f.SentenceDensity = round4(float64(f.SentenceLikeCount) / float64(len(lines)))
		f.ShortLineRatio = round4(float64(shortLines) / float64(len(lines)))
	}
	return f
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
