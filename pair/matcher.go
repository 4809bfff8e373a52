package pair

import (
	"fmt"
	"strings"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/config"
)

// fullHintBonus dominates any priority score, so an explicit "full" hint
// always outranks a higher-scored candidate without one.
const fullHintBonus = 100

// Matcher partitions candidates by summary hints and pairs each summary
// with the best unclaimed full candidate sharing its topic key.
type Matcher struct {
	policy *config.Policy
	keyer  *Keyer
}

// NewMatcher creates a matcher for the given policy.
func NewMatcher(policy *config.Policy) *Matcher {
	return &Matcher{
		policy: policy,
		keyer:  NewKeyer(policy.SummaryHints, policy.FullHints),
	}
}

// Rule describes the resolution rule applied to groups built by this
// matcher, for audit output.
func (m *Matcher) Rule() string {
	return fmt.Sprintf("prefer_full_if_pages_le_%d_else_summary", m.policy.FullPageThreshold)
}

// Match scans candidates in ranking order and builds pending deferred
// groups. It returns the groups and the set of URLs forced into the working
// set regardless of score. A full candidate is claimed by at most one
// summary; candidates without a topic match stay ordinary.
func (m *Matcher) Match(candidates []*shingidoc.Candidate) ([]*shingidoc.DeferredGroup, map[string]bool) {
	var summaries, fulls []*shingidoc.Candidate
	for _, c := range candidates {
		if m.isSummary(c.Text) {
			summaries = append(summaries, c)
		} else {
			fulls = append(fulls, c)
		}
	}

	var groups []*shingidoc.DeferredGroup
	forced := make(map[string]bool)
	claimed := make(map[string]bool)

	for _, s := range summaries {
		key := m.keyer.Key(s.Text)
		if key == "" {
			continue
		}

		var best *shingidoc.Candidate
		bestScore := -1
		for _, f := range fulls {
			if f.URL == "" || claimed[f.URL] {
				continue
			}
			if m.keyer.Key(f.Text) != key {
				continue
			}
			sc := f.PriorityScore
			if m.isFull(f.Text) {
				sc += fullHintBonus
			}
			if sc > bestScore {
				best = f
				bestScore = sc
			}
		}
		if best == nil || s.URL == "" {
			continue
		}

		claimed[best.URL] = true
		forced[s.URL] = true
		forced[best.URL] = true
		groups = append(groups, &shingidoc.DeferredGroup{
			GroupID: fmt.Sprintf("deferred-%02d", len(groups)+1),
			Status:  shingidoc.GroupPending,
			Rule:    m.Rule(),
			Summary: snapshot(s),
			Full:    snapshot(best),
		})
	}
	return groups, forced
}

// Annotate tags selected candidates with their group membership.
func Annotate(selected []*shingidoc.Candidate, groups []*shingidoc.DeferredGroup) {
	membership := make(map[string]*shingidoc.DeferredGroup)
	roles := make(map[string]shingidoc.Role)
	for _, g := range groups {
		membership[g.Summary.URL] = g
		roles[g.Summary.URL] = shingidoc.RoleSummary
		membership[g.Full.URL] = g
		roles[g.Full.URL] = shingidoc.RoleFull
	}
	for _, c := range selected {
		if g, ok := membership[c.URL]; ok {
			c.DecisionPending = true
			c.DecisionGroupID = g.GroupID
			c.DecisionRole = roles[c.URL]
		} else {
			c.DecisionPending = false
		}
	}
}

func (m *Matcher) isSummary(text string) bool {
	return containsHint(text, m.policy.SummaryHints)
}

func (m *Matcher) isFull(text string) bool {
	return containsHint(text, m.policy.FullHints)
}

func containsHint(text string, hints []string) bool {
	t := strings.ToLower(strings.Join(strings.Fields(text), " "))
	for _, h := range hints {
		if strings.Contains(t, strings.ToLower(h)) {
			return true
		}
	}
	return false
}

func snapshot(c *shingidoc.Candidate) shingidoc.GroupMember {
	return shingidoc.GroupMember{
		URL:           c.URL,
		Text:          c.Text,
		PriorityScore: c.PriorityScore,
	}
}
