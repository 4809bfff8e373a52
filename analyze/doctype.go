package analyze

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/knakagawa/shingidoc"
)

var timePatternRe = regexp.MustCompile(`\d{1,2}[:：]\d{2}`)

// Margin a weighted score must win by before a document is called
// prose-like or slide-like rather than mixed.
const classifyMargin = 2

// Caps on raw counts feeding the weighted scores, so one pathological
// feature cannot dominate the decision.
const (
	sentenceCountCap = 8
	bulletCountCap   = 8
	nominalEndCap    = 4
)

// ClassifyType decides a document's layout type from its title, first-pages
// text, and feature vector. Title-keyword rules run first in priority
// order; otherwise the weighted prose/slide scores decide. The returned
// reason string is for audit output.
func ClassifyType(title, sample string, f *shingidoc.Features) (shingidoc.DocumentType, string) {
	t := strings.TrimSpace(title)

	if strings.Contains(t, "委員名簿") || strings.Contains(t, "出席者名簿") {
		return shingidoc.TypeParticipantsList, "名簿系キーワード"
	}
	if (strings.Contains(t, "議事次第") || strings.Contains(t, "次第")) &&
		(timePatternRe.MatchString(sample) || strings.Contains(sample, "配布資料")) {
		return shingidoc.TypeAgenda, "議事次第キーワード + 時刻/資料記載"
	}
	if strings.Contains(t, "プレスリリース") || strings.Contains(t, "報道発表") {
		return shingidoc.TypePressRelease, "報道系キーワード"
	}
	if strings.Contains(t, "調査結果") || strings.Contains(t, "アンケート") {
		return shingidoc.TypeSurveyReport, "調査系キーワード"
	}

	wordScore := wordScore(f)
	pptScore := pptScore(f)

	switch {
	case wordScore >= pptScore+classifyMargin:
		return shingidoc.TypeWordLike, fmt.Sprintf("word_score=%d, ppt_score=%d", wordScore, pptScore)
	case pptScore >= wordScore+classifyMargin:
		return shingidoc.TypePowerPointLike, fmt.Sprintf("ppt_score=%d, word_score=%d", pptScore, wordScore)
	default:
		return shingidoc.TypeMixed, fmt.Sprintf("close_scores word=%d, ppt=%d", wordScore, pptScore)
	}
}

// wordScore rewards prose signals: full sentences, paragraphs, particle
// density, formal style, citations.
func wordScore(f *shingidoc.Features) int {
	s := min(f.SentenceLikeCount, sentenceCountCap)
	if f.ParagraphCount >= 3 {
		s += 2
	}
	if f.ParticleCount >= 20 {
		s += 2
	}
	if f.PoliteStyleCount+f.DearuStyleCount >= 3 {
		s++
	}
	if f.CitationCount >= 2 {
		s++
	}
	return s
}

// pptScore rewards slide signals: bullets, nominal endings, short lines,
// topic lines, figure references, visible page numbers.
func pptScore(f *shingidoc.Features) int {
	s := min(f.BulletCount, bulletCountCap)
	s += min(f.NominalEndingCount, nominalEndCap)
	if f.ShortLineRatio >= 0.45 {
		s += 2
	}
	if f.TopicLineCount >= 4 {
		s += 2
	}
	if f.ReferenceExprCount >= 2 {
		s++
	}
	if f.PageNumberLineCount >= 2 {
		s += 2
	}
	// Dense slide layout: many short lines, few sentences, page numbers.
	if f.ShortLineRatio >= 0.6 && f.SentenceDensity <= 0.2 && f.PageNumberLineCount >= 2 {
		s += 4
	}
	return s
}

// StrategyFor maps a document layout type to its downstream reading
// strategy. Unmatched types fall back to the hybrid strategy.
func StrategyFor(t shingidoc.DocumentType) shingidoc.SummaryStrategy {
	switch t {
	case shingidoc.TypeWordLike:
		return shingidoc.StrategyLongform
	case shingidoc.TypePowerPointLike:
		return shingidoc.StrategySlideBullet
	case shingidoc.TypeAgenda:
		return shingidoc.StrategyAgendaStructure
	case shingidoc.TypeParticipantsList:
		return shingidoc.StrategyNameList
	case shingidoc.TypePressRelease:
		return shingidoc.StrategyNewsStyle
	case shingidoc.TypeSurveyReport:
		return shingidoc.StrategyDataPoints
	default:
		return shingidoc.StrategyHybrid
	}
}
