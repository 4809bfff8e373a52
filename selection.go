package shingidoc

// Role identifies which side of a deferred pair a candidate sits on.
type Role string

// Deferred-pair roles.
const (
	RoleSummary Role = "summary"
	RoleFull    Role = "full"
)

// GroupStatus is the lifecycle state of a deferred decision group.
// The transition is one-way: pending → resolved.
type GroupStatus string

// Deferred group statuses.
const (
	GroupPending  GroupStatus = "pending"
	GroupResolved GroupStatus = "resolved"
)

// GroupMember is a score snapshot of one side of a deferred pair, taken at
// matching time so later adjustments cannot change the recorded state.
type GroupMember struct {
	URL           string `json:"url"`
	Text          string `json:"text"`
	PriorityScore int    `json:"priority_score"`
}

// DeferredGroup is a pending choice between two candidates believed to cover
// the same topic at different granularity. A candidate belongs to at most
// one group.
type DeferredGroup struct {
	GroupID string      `json:"group_id"`
	Status  GroupStatus `json:"status"`
	Rule    string      `json:"rule"`
	Summary GroupMember `json:"summary_candidate"`
	Full    GroupMember `json:"full_candidate"`
}

// ResolvedGroup records the outcome of a deferred group. Exactly one of the
// two members is chosen; the other is rejected.
type ResolvedGroup struct {
	GroupID      string      `json:"group_id"`
	Status       GroupStatus `json:"status"`
	Rule         string      `json:"rule"`
	ChosenRole   Role        `json:"chosen_role"`
	ChosenURL    string      `json:"chosen_url"`
	ChosenText   string      `json:"chosen_text"`
	RejectedURL  string      `json:"rejected_url"`
	RejectedText string      `json:"rejected_text"`
	Reason       string      `json:"reason"`
}

// SelectionResult is the output of the scoring and selection stages: every
// scored candidate for audit, the working set, and any pending deferred
// decisions.
type SelectionResult struct {
	AllCandidates []*Candidate     `json:"all_candidates"`
	SelectionRule string           `json:"selection_rule"`
	Selected      []*Candidate     `json:"selected_candidates"`
	Deferred      []*DeferredGroup `json:"deferred_decisions"`
	Downloads     []DownloadRecord `json:"downloaded_files"`
}

// ResolutionResult is the output of the deferred resolution stage: the probe
// observations, the resolved groups, and the definitive document list.
type ResolutionResult struct {
	ProbePageCounts map[string]*int  `json:"deferred_resolution_probe"`
	Resolved        []*ResolvedGroup `json:"resolved_deferred_decisions"`
	FinalSelected   []*Candidate     `json:"final_selected"`
}
