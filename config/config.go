// Package config loads selection policy configuration. The scoring table,
// adjustment thresholds, and hint word lists are policy data rather than
// invariants, so they live in an optional YAML file layered over
// compiled-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/knakagawa/shingidoc"
)

// Policy holds every tunable constant of the selection and analysis core.
type Policy struct {
	// BaseScores maps category → base priority score.
	BaseScores map[shingidoc.Category]int `yaml:"base_scores"`

	// ExcludedCategories receive a large negative penalty, effectively
	// removing them from consideration.
	ExcludedCategories []shingidoc.Category `yaml:"excluded_categories"`

	// SummaryHints mark a candidate as the "summary" side of a deferred
	// pair; FullHints mark the "full" side.
	SummaryHints []string `yaml:"summary_hints"`
	FullHints    []string `yaml:"full_hints"`

	// MinScore is the selection floor; candidates below it are only
	// selected when forced by a deferred group.
	MinScore int `yaml:"min_score"`

	// MaxSelected caps the score-based portion of the working set.
	// Forced deferred-pair members are exempt.
	MaxSelected int `yaml:"max_selected"`

	// FullPageThreshold resolves deferred pairs: a full document with at
	// most this many pages wins over its summary.
	FullPageThreshold int `yaml:"full_page_threshold"`

	// Mention bonus thresholds over the minutes text.
	MentionBonusHigh  int `yaml:"mention_bonus_high"`  // mentions for +2
	MentionBonusLow   int `yaml:"mention_bonus_low"`   // mentions for +1
	AnalysisWorkers   int `yaml:"analysis_workers"`    // worker pool size
	AnalysisPageLimit int `yaml:"analysis_page_limit"` // pages sampled per document
}

// Default returns the built-in policy.
func Default() *Policy {
	return &Policy{
		BaseScores: map[shingidoc.Category]int{
			shingidoc.CategoryExecutiveSummary: 5,
			shingidoc.CategoryMaterial:         4,
			shingidoc.CategoryAgenda:           3,
			shingidoc.CategoryMinutes:          3,
			shingidoc.CategoryReference:        2,
			shingidoc.CategoryPersonalMaterial: 2,
			shingidoc.CategoryParticipants:     1,
			shingidoc.CategorySeating:          1,
			shingidoc.CategoryDisclosureMethod: 1,
			shingidoc.CategoryOther:            2,
		},
		ExcludedCategories: []shingidoc.Category{
			shingidoc.CategoryParticipants,
			shingidoc.CategorySeating,
			shingidoc.CategoryDisclosureMethod,
		},
		SummaryHints: []string{
			"概要",
			"要約",
			"サマリー",
			"エグゼクティブサマリー",
			"executive summary",
		},
		FullHints: []string{
			"本文",
			"本編",
			"全文",
			"報告書",
			"とりまとめ",
			"取りまとめ",
			"詳細",
		},
		MinScore:          4,
		MaxSelected:       5,
		FullPageThreshold: 20,
		MentionBonusHigh:  5,
		MentionBonusLow:   2,
		AnalysisWorkers:   4,
		AnalysisPageLimit: 5,
	}
}

// Load reads a YAML policy file and layers it over the defaults. Missing
// fields keep their default values; an unreadable or malformed file is an
// error since guessing policy is worse than stopping.
func Load(path string) (*Policy, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, shingidoc.Errorf(shingidoc.EINVALID, "malformed policy file %q: %v", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate returns an error if the policy contains unusable values.
func (p *Policy) Validate() error {
	if p.MaxSelected < 1 {
		return shingidoc.Errorf(shingidoc.EINVALID, "max_selected must be >= 1")
	}
	if p.FullPageThreshold < 1 {
		return shingidoc.Errorf(shingidoc.EINVALID, "full_page_threshold must be >= 1")
	}
	if p.AnalysisWorkers < 1 {
		return shingidoc.Errorf(shingidoc.EINVALID, "analysis_workers must be >= 1")
	}
	for cat := range p.BaseScores {
		if !cat.Valid() {
			return shingidoc.Errorf(shingidoc.EINVALID, "unknown category %q in base_scores", cat)
		}
	}
	return nil
}

// BaseScore returns the base score for a category, falling back to the
// "other" weight for anything unknown.
func (p *Policy) BaseScore(cat shingidoc.Category) int {
	if s, ok := p.BaseScores[cat]; ok {
		return s
	}
	return p.BaseScores[shingidoc.CategoryOther]
}

// Excluded reports whether a category is excluded from selection.
func (p *Policy) Excluded(cat shingidoc.Category) bool {
	for _, e := range p.ExcludedCategories {
		if cat == e {
			return true
		}
	}
	return false
}
