package pair_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knakagawa/shingidoc/config"
	"github.com/knakagawa/shingidoc/pair"
)

func newKeyer() *pair.Keyer {
	p := config.Default()
	return pair.NewKeyer(p.SummaryHints, p.FullHints)
}

func TestKeyer_Key(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"summary form", "資料1 政策概要について", "政策"},
		{"full form", "資料1-2 政策概要（本文）", "政策"},
		{"different topic", "資料2 別施策の概要", "別施策"},
		{"pdf parenthetical stripped", "報告書の概要（PDF形式:123KB）", ""},
		{"trailing connective", "施策の推進に関する", "施策の推進"},
		{"connector symbols collapsed", "環境・エネルギー政策", "環境エネルギー政策"},
		{"empty after stripping", "概要", ""},
		{"bare material summary keys on number", "資料1概要", "資料1"},
		{"bare material full keys on number", "資料1全文", "資料1"},
		{"bare sub-numbered material", "資料1-2 概要", "資料1-2"},
	}

	k := newKeyer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, k.Key(tt.text))
		})
	}
}

func TestKeyer_SameTopicDifferentGranularity(t *testing.T) {
	t.Parallel()

	k := newKeyer()

	summary := k.Key("資料1 政策概要について")
	full := k.Key("資料1-2 政策概要（本文）")
	other := k.Key("資料2 別施策の概要")

	assert.Equal(t, summary, full, "summary and full variants share a key")
	assert.NotEqual(t, summary, other, "different topics must not pair")
}
