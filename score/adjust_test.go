package score_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/config"
	"github.com/knakagawa/shingidoc/score"
)

func TestAdjust_AgendaCappedWhenSubstantialMaterialsExist(t *testing.T) {
	t.Parallel()

	set := []*shingidoc.Candidate{
		{URL: "m", Category: shingidoc.CategoryMaterial, PriorityScore: 5},
		{URL: "a", Category: shingidoc.CategoryAgenda, PriorityScore: 6},
	}

	score.Adjust(config.Default(), set)

	assert.Equal(t, 4, set[1].PriorityScore)
	assert.Contains(t, set[1].Adjustments, "agenda_cap_to_4")
	assert.Empty(t, set[0].Adjustments, "unaffected candidates log nothing")
}

func TestAdjust_AgendaKeptWithoutSubstantialMaterials(t *testing.T) {
	t.Parallel()

	set := []*shingidoc.Candidate{
		{URL: "m", Category: shingidoc.CategoryMaterial, PriorityScore: 3},
		{URL: "a", Category: shingidoc.CategoryAgenda, PriorityScore: 5},
	}

	score.Adjust(config.Default(), set)

	assert.Equal(t, 5, set[1].PriorityScore, "no material scores >= 4, agenda keeps its score")
}

func TestAdjust_ReferenceCappedAlongsideNormalMaterials(t *testing.T) {
	t.Parallel()

	set := []*shingidoc.Candidate{
		{URL: "m", Category: shingidoc.CategoryExecutiveSummary, PriorityScore: 3},
		{URL: "r", Category: shingidoc.CategoryReference, PriorityScore: 6},
	}

	score.Adjust(config.Default(), set)

	assert.Equal(t, 4, set[1].PriorityScore)
	assert.Contains(t, set[1].Adjustments, "reference_cap_to_4")
}

func TestAdjust_PersonalMaterialBounds(t *testing.T) {
	t.Parallel()

	t.Run("capped when official materials exist", func(t *testing.T) {
		t.Parallel()
		set := []*shingidoc.Candidate{
			{URL: "m", Category: shingidoc.CategoryMaterial, PriorityScore: 4},
			{URL: "p", Category: shingidoc.CategoryPersonalMaterial, PriorityScore: 4},
		}
		score.Adjust(config.Default(), set)
		assert.Equal(t, 2, set[1].PriorityScore)
		assert.Contains(t, set[1].Adjustments, "personal_cap_with_official")
	})

	t.Run("raised when no official materials exist", func(t *testing.T) {
		t.Parallel()
		set := []*shingidoc.Candidate{
			{URL: "p", Category: shingidoc.CategoryPersonalMaterial, PriorityScore: 2},
		}
		score.Adjust(config.Default(), set)
		assert.Equal(t, 3, set[0].PriorityScore)
		assert.Contains(t, set[0].Adjustments, "personal_raise_without_official")
	})
}

func TestAdjust_ReclampsToFloor(t *testing.T) {
	t.Parallel()

	set := []*shingidoc.Candidate{
		{URL: "x", Category: shingidoc.CategoryOther, PriorityScore: 0},
	}

	score.Adjust(config.Default(), set)

	assert.Equal(t, 1, set[0].PriorityScore)
}

func TestAdjustRules_Order(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, 4)
	for _, r := range score.AdjustRules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"agenda_cap", "reference_cap", "personal_bounds", "score_floor"}, names)
}
