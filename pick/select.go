// Package pick builds the working candidate set from scores and forced
// deferred-pair members, and merges resolved deferred decisions into the
// definitive document list.
package pick

import (
	"fmt"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/config"
	"github.com/knakagawa/shingidoc/score"
)

// Select builds the working set from candidates in ranking order: everything
// scoring at least the policy floor, plus every URL forced by a pending
// deferred group. The numeric cap applies only to the score-based portion;
// forced candidates are never capped. The result is deduplicated by URL,
// first occurrence kept.
func Select(p *config.Policy, candidates []*shingidoc.Candidate, forced map[string]bool) []*shingidoc.Candidate {
	var forcedPicks, scorePicks []*shingidoc.Candidate
	for _, c := range candidates {
		switch {
		case forced[c.URL]:
			forcedPicks = append(forcedPicks, c)
		case c.PriorityScore >= p.MinScore:
			scorePicks = append(scorePicks, c)
		}
	}

	score.Sort(scorePicks)
	if len(scorePicks) > p.MaxSelected {
		scorePicks = scorePicks[:p.MaxSelected]
	}

	return dedupe(append(forcedPicks, scorePicks...))
}

// Rule describes the selection policy for audit output.
func Rule(p *config.Policy) string {
	return fmt.Sprintf("score>=%d with cap %d for score-based picks; deferred summary/full pairs are force-included",
		p.MinScore, p.MaxSelected)
}

// Merge drops every candidate rejected by a resolved group and flags chosen
// deferred candidates as resolved. No cap applies at this stage.
func Merge(selected []*shingidoc.Candidate, resolved []*shingidoc.ResolvedGroup) []*shingidoc.Candidate {
	rejected := make(map[string]bool)
	chosen := make(map[string]bool)
	for _, r := range resolved {
		if r.RejectedURL != "" {
			rejected[r.RejectedURL] = true
		}
		if r.ChosenURL != "" {
			chosen[r.ChosenURL] = true
		}
	}

	out := make([]*shingidoc.Candidate, 0, len(selected))
	seen := make(map[string]bool)
	for _, c := range selected {
		if c.URL == "" || seen[c.URL] || rejected[c.URL] {
			continue
		}
		seen[c.URL] = true
		if chosen[c.URL] {
			c.DecisionPending = false
			c.DecisionResolved = true
		}
		out = append(out, c)
	}
	return out
}

func dedupe(candidates []*shingidoc.Candidate) []*shingidoc.Candidate {
	seen := make(map[string]bool)
	out := make([]*shingidoc.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.URL == "" || seen[c.URL] {
			continue
		}
		seen[c.URL] = true
		out = append(out, c)
	}
	return out
}
