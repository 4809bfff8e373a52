package pair_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/config"
	"github.com/knakagawa/shingidoc/pair"
)

func newGroup() *shingidoc.DeferredGroup {
	return &shingidoc.DeferredGroup{
		GroupID: "deferred-01",
		Status:  shingidoc.GroupPending,
		Rule:    "prefer_full_if_pages_le_20_else_summary",
		Summary: shingidoc.GroupMember{URL: "https://example.go.jp/s.pdf", Text: "概要", PriorityScore: 5},
		Full:    shingidoc.GroupMember{URL: "https://example.go.jp/f.pdf", Text: "本文", PriorityScore: 3},
	}
}

func intPtr(n int) *int { return &n }

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pages      *int
		wantRole   shingidoc.Role
		wantChosen string
		wantReason string
	}{
		{"short full wins", intPtr(15), shingidoc.RoleFull, "https://example.go.jp/f.pdf", "full_page_count=15 <= 20"},
		{"long full loses", intPtr(25), shingidoc.RoleSummary, "https://example.go.jp/s.pdf", "full_page_count=25 > 20"},
		{"unknown defaults to summary", nil, shingidoc.RoleSummary, "https://example.go.jp/s.pdf", "default_to_summary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := newGroup()
			pageCounts := map[string]*int{"https://example.go.jp/f.pdf": tt.pages}

			resolved := pair.NewResolver(config.Default()).Resolve([]*shingidoc.DeferredGroup{g}, pageCounts)
			require.Len(t, resolved, 1)

			r := resolved[0]
			assert.Equal(t, shingidoc.GroupResolved, r.Status)
			assert.Equal(t, tt.wantRole, r.ChosenRole)
			assert.Equal(t, tt.wantChosen, r.ChosenURL)
			assert.Equal(t, tt.wantReason, r.Reason)
			assert.NotEqual(t, r.ChosenURL, r.RejectedURL, "exactly one side wins")
			assert.Equal(t, shingidoc.GroupResolved, g.Status, "group transitions to resolved")
		})
	}
}

func TestResolver_Resolve_MissingProbeEntry(t *testing.T) {
	t.Parallel()

	g := newGroup()

	resolved := pair.NewResolver(config.Default()).Resolve([]*shingidoc.DeferredGroup{g}, map[string]*int{})
	require.Len(t, resolved, 1)
	assert.Equal(t, shingidoc.RoleSummary, resolved[0].ChosenRole)
	assert.Equal(t, "default_to_summary", resolved[0].Reason)
}

func TestResolver_Resolve_OneWayTransition(t *testing.T) {
	t.Parallel()

	g := newGroup()
	r := pair.NewResolver(config.Default())
	pages := map[string]*int{"https://example.go.jp/f.pdf": intPtr(10)}

	first := r.Resolve([]*shingidoc.DeferredGroup{g}, pages)
	require.Len(t, first, 1)

	second := r.Resolve([]*shingidoc.DeferredGroup{g}, pages)
	assert.Empty(t, second, "a resolved group is never revisited")
}

func TestResolver_CustomThreshold(t *testing.T) {
	t.Parallel()

	p := config.Default()
	p.FullPageThreshold = 10
	g := newGroup()

	resolved := pair.NewResolver(p).Resolve(
		[]*shingidoc.DeferredGroup{g},
		map[string]*int{"https://example.go.jp/f.pdf": intPtr(15)},
	)
	require.Len(t, resolved, 1)
	assert.Equal(t, shingidoc.RoleSummary, resolved[0].ChosenRole)
	assert.Equal(t, "full_page_count=15 > 10", resolved[0].Reason)
}
