package score

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/config"
)

// canonicalFilenames are naming patterns used by ministries for the main
// deliverable of a meeting (numbered shiryou, honpen, gaiyou, torimatome).
var canonicalFilenames = []*regexp.Regexp{
	regexp.MustCompile(`shiryou[01]\.`),
	regexp.MustCompile(`shiryou[01]-\d+\.`),
	regexp.MustCompile(`honpen\.`),
	regexp.MustCompile(`gaiyou\.`),
	regexp.MustCompile(`torimatome\.`),
}

// Engine scores normalized candidates. Classification prefers the upstream
// category hint, then the classifier chain; the final priority score is the
// base table value plus bonuses and penalties, clamped to at least 1.
type Engine struct {
	policy     *config.Policy
	classifier shingidoc.Classifier
}

// NewEngine creates a scoring engine.
func NewEngine(policy *config.Policy, classifier shingidoc.Classifier) *Engine {
	return &Engine{policy: policy, classifier: classifier}
}

// ScoreAll classifies and scores every normalized link. The returned
// candidates are in input order; use Sort for the ranking order.
func (e *Engine) ScoreAll(ctx context.Context, links []shingidoc.RawLink, mentions MentionIndex) []*shingidoc.Candidate {
	hasExecSummary := false
	for _, l := range links {
		if l.EstimatedCategory == shingidoc.CategoryExecutiveSummary {
			hasExecSummary = true
			break
		}
	}

	out := make([]*shingidoc.Candidate, 0, len(links))
	for _, l := range links {
		cat := l.EstimatedCategory
		if isOther(cat) {
			cat, _ = e.classifier.Classify(ctx, l.Text, l.Filename, l.URL)
			if !cat.Valid() {
				cat = shingidoc.CategoryOther
			}
		}

		base := e.policy.BaseScore(cat)
		fileBonus := filenameBonus(l.Filename)
		materialID := MaterialID(l.Text, l.Filename)
		mentionBonus := e.mentionBonus(materialID, mentions)
		penalty := e.categoryPenalty(cat, hasExecSummary)

		score := base + fileBonus + mentionBonus + penalty
		if score < 1 {
			score = 1
		}

		out = append(out, &shingidoc.Candidate{
			Text:       l.Text,
			URL:        l.URL,
			Filename:   l.Filename,
			Category:   cat,
			MaterialID: materialID,
			Components: shingidoc.ScoreComponents{
				Base:            base,
				FilenameBonus:   fileBonus,
				MentionBonus:    mentionBonus,
				CategoryPenalty: penalty,
			},
			PriorityScore: score,
			Adjustments:   []string{},
		})
	}
	return out
}

// mentionBonus rewards materials referenced repeatedly in the minutes.
func (e *Engine) mentionBonus(materialID string, mentions MentionIndex) int {
	c := mentions.Count(materialID)
	switch {
	case c >= e.policy.MentionBonusHigh:
		return 2
	case c >= e.policy.MentionBonusLow:
		return 1
	default:
		return 0
	}
}

// categoryPenalty demotes excluded categories outright and softens
// reference/personal materials when an executive summary already covers
// the meeting.
func (e *Engine) categoryPenalty(cat shingidoc.Category, hasExecSummary bool) int {
	switch {
	case e.policy.Excluded(cat):
		return -10
	case cat == shingidoc.CategoryReference && hasExecSummary:
		return -1
	case cat == shingidoc.CategoryPersonalMaterial && hasExecSummary:
		return -2
	default:
		return 0
	}
}

func filenameBonus(filename string) int {
	fl := strings.ToLower(filename)
	for _, re := range canonicalFilenames {
		if re.MatchString(fl) {
			return 1
		}
	}
	return 0
}

// Sort orders candidates by priority score descending, with category and
// filename as stable descending tie-breakers so the ranking is
// deterministic across runs.
func Sort(candidates []*shingidoc.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.PriorityScore != b.PriorityScore {
			return a.PriorityScore > b.PriorityScore
		}
		if a.Category != b.Category {
			return a.Category > b.Category
		}
		return a.Filename > b.Filename
	})
}
