package shingidoc

import "context"

// Category classifies a candidate document link. The set is closed; scoring
// weights are keyed by it.
type Category string

// Document categories recognized by the rule-based and oracle classifiers.
const (
	CategoryExecutiveSummary Category = "executive_summary"
	CategoryMaterial         Category = "material"
	CategoryAgenda           Category = "agenda"
	CategoryMinutes          Category = "minutes"
	CategoryReference        Category = "reference"
	CategoryPersonalMaterial Category = "personal_material"
	CategoryParticipants     Category = "participants"
	CategorySeating          Category = "seating"
	CategoryDisclosureMethod Category = "disclosure_method"
	CategoryOther            Category = "other"
)

// Categories returns every recognized category in scoring-weight order.
func Categories() []Category {
	return []Category{
		CategoryExecutiveSummary,
		CategoryMaterial,
		CategoryAgenda,
		CategoryMinutes,
		CategoryReference,
		CategoryPersonalMaterial,
		CategoryParticipants,
		CategorySeating,
		CategoryDisclosureMethod,
		CategoryOther,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// RawLink is one candidate document link as produced by an upstream
// extractor. The same URL may appear multiple times with different label
// text or category hints; normalization merges them.
type RawLink struct {
	Text              string   `json:"text"`
	URL               string   `json:"url"`
	Filename          string   `json:"filename"`
	EstimatedCategory Category `json:"estimated_category"`
}

// ScoreComponents is the audit breakdown of a candidate's priority score.
type ScoreComponents struct {
	Base            int `json:"base"`
	FilenameBonus   int `json:"filename_bonus"`
	MentionBonus    int `json:"minutes_mention_bonus"`
	CategoryPenalty int `json:"category_penalty"`
}

// Candidate is one normalized, scored document link awaiting selection.
// After scoring, candidates are read-only except for the adjustment pass
// and deferred-group membership tagging.
type Candidate struct {
	Text       string   `json:"text"`
	URL        string   `json:"url"`
	Filename   string   `json:"filename"`
	Category   Category `json:"document_category"`
	MaterialID string   `json:"material_id,omitempty"`

	Components    ScoreComponents `json:"score_components"`
	PriorityScore int             `json:"priority_score"`
	Adjustments   []string        `json:"adjustments"`

	// Deferred-group membership, set by the selection stage.
	DecisionPending  bool   `json:"decision_pending"`
	DecisionGroupID  string `json:"decision_group_id,omitempty"`
	DecisionRole     Role   `json:"decision_role,omitempty"`
	DecisionResolved bool   `json:"decision_resolved,omitempty"`
}

// Validate returns an error if the candidate contains invalid fields.
func (c *Candidate) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "candidate URL required")
	}
	if c.PriorityScore < 1 {
		return Errorf(EINVALID, "candidate priority score must be >= 1")
	}
	return nil
}

// Classifier assigns a category to a document link from its title, filename,
// and URL alone. Implementations include the deterministic keyword rules and
// the external oracle; a fallback chain composes them.
type Classifier interface {
	Classify(ctx context.Context, text, filename, url string) (Category, error)
}
