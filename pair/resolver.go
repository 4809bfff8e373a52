package pair

import (
	"fmt"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/config"
)

// Resolver transitions pending groups to resolved using the page-count
// probe of each group's full candidate. The transition is one-way and
// happens at most once per group.
type Resolver struct {
	policy *config.Policy
}

// NewResolver creates a resolver for the given policy.
func NewResolver(policy *config.Policy) *Resolver {
	return &Resolver{policy: policy}
}

// Resolve decides every pending group. A full candidate with a known page
// count at or below the threshold wins; above the threshold, or with an
// unknown count, the summary wins. Already-resolved groups are skipped.
func (r *Resolver) Resolve(groups []*shingidoc.DeferredGroup, pageCounts map[string]*int) []*shingidoc.ResolvedGroup {
	resolved := make([]*shingidoc.ResolvedGroup, 0, len(groups))
	for _, g := range groups {
		if g.Status != shingidoc.GroupPending {
			continue
		}
		g.Status = shingidoc.GroupResolved

		role := shingidoc.RoleSummary
		reason := "default_to_summary"
		if pages, ok := pageCounts[g.Full.URL]; ok && pages != nil {
			if *pages <= r.policy.FullPageThreshold {
				role = shingidoc.RoleFull
				reason = fmt.Sprintf("full_page_count=%d <= %d", *pages, r.policy.FullPageThreshold)
			} else {
				reason = fmt.Sprintf("full_page_count=%d > %d", *pages, r.policy.FullPageThreshold)
			}
		}

		chosen, rejected := g.Summary, g.Full
		if role == shingidoc.RoleFull {
			chosen, rejected = g.Full, g.Summary
		}
		resolved = append(resolved, &shingidoc.ResolvedGroup{
			GroupID:      g.GroupID,
			Status:       shingidoc.GroupResolved,
			Rule:         g.Rule,
			ChosenRole:   role,
			ChosenURL:    chosen.URL,
			ChosenText:   chosen.Text,
			RejectedURL:  rejected.URL,
			RejectedText: rejected.Text,
			Reason:       reason,
		})
	}
	return resolved
}
