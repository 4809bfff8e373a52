package score

import (
	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/config"
)

// Personal-material bounds under the adjustment pass. The cap applies when
// official materials exist; the floor applies when they do not.
const (
	personalCap   = 2
	personalFloor = 3
)

// AdjustRule is one named, set-wide adjustment. Rules observe the whole
// candidate set and may rewrite individual scores; the name of every rule
// that changed a score is appended to that candidate's adjustment log.
type AdjustRule struct {
	Name  string
	Apply func(p *config.Policy, set []*shingidoc.Candidate)
}

// AdjustRules returns the adjustment rules in application order.
func AdjustRules() []AdjustRule {
	return []AdjustRule{
		{Name: "agenda_cap", Apply: agendaCap},
		{Name: "reference_cap", Apply: referenceCap},
		{Name: "personal_bounds", Apply: personalBounds},
		{Name: "score_floor", Apply: scoreFloor},
	}
}

// Adjust applies every adjustment rule, in order, over the whole set.
func Adjust(p *config.Policy, set []*shingidoc.Candidate) {
	for _, rule := range AdjustRules() {
		rule.Apply(p, set)
	}
}

// agendaCap demotes an agenda that outranks substantial materials: when any
// executive summary or material scores at least the selection floor, an
// agenda scoring above it is capped down to the floor.
func agendaCap(p *config.Policy, set []*shingidoc.Candidate) {
	if !hasSubstantialMaterials(p, set) {
		return
	}
	for _, c := range set {
		if c.Category == shingidoc.CategoryAgenda && c.PriorityScore >= p.MinScore+1 {
			c.PriorityScore = p.MinScore
			c.Adjustments = append(c.Adjustments, "agenda_cap_to_4")
		}
	}
}

// referenceCap keeps reference materials from outranking normal materials.
func referenceCap(p *config.Policy, set []*shingidoc.Candidate) {
	if !hasNormalMaterials(set) {
		return
	}
	for _, c := range set {
		if c.Category == shingidoc.CategoryReference && c.PriorityScore > p.MinScore {
			c.PriorityScore = p.MinScore
			c.Adjustments = append(c.Adjustments, "reference_cap_to_4")
		}
	}
}

// personalBounds caps personal materials when official materials exist and
// raises them when they are the only substantive documents available.
func personalBounds(_ *config.Policy, set []*shingidoc.Candidate) {
	hasOfficial := hasNormalMaterials(set)
	for _, c := range set {
		if c.Category != shingidoc.CategoryPersonalMaterial {
			continue
		}
		if hasOfficial {
			if c.PriorityScore > personalCap {
				c.PriorityScore = personalCap
				c.Adjustments = append(c.Adjustments, "personal_cap_with_official")
			}
		} else if c.PriorityScore < personalFloor {
			c.PriorityScore = personalFloor
			c.Adjustments = append(c.Adjustments, "personal_raise_without_official")
		}
	}
}

// scoreFloor re-clamps every score to the minimum of 1 after adjustments.
func scoreFloor(_ *config.Policy, set []*shingidoc.Candidate) {
	for _, c := range set {
		if c.PriorityScore < 1 {
			c.PriorityScore = 1
		}
	}
}

func hasSubstantialMaterials(p *config.Policy, set []*shingidoc.Candidate) bool {
	for _, c := range set {
		if isNormalMaterial(c.Category) && c.PriorityScore >= p.MinScore {
			return true
		}
	}
	return false
}

func hasNormalMaterials(set []*shingidoc.Candidate) bool {
	for _, c := range set {
		if isNormalMaterial(c.Category) {
			return true
		}
	}
	return false
}

func isNormalMaterial(cat shingidoc.Category) bool {
	return cat == shingidoc.CategoryExecutiveSummary || cat == shingidoc.CategoryMaterial
}
