package score_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/mock"
	"github.com/knakagawa/shingidoc/score"
)

func TestRules_Classify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		filename string
		want     shingidoc.Category
	}{
		{"agenda keyword", "議事次第", "giji.pdf", shingidoc.CategoryAgenda},
		{"agenda wins over material prefix", "資料1 議事次第", "shiryou1.pdf", shingidoc.CategoryAgenda},
		{"minutes keyword", "第5回議事録", "005.pdf", shingidoc.CategoryMinutes},
		{"participants roster", "委員名簿", "meibo.pdf", shingidoc.CategoryParticipants},
		{"seating chart", "座席表", "zaseki.pdf", shingidoc.CategorySeating},
		{"disclosure method", "会議の公開方法について", "koukai.pdf", shingidoc.CategoryDisclosureMethod},
		{"executive summary", "とりまとめ（案）", "torimatome.pdf", shingidoc.CategoryExecutiveSummary},
		{"gaiyou is executive summary", "政策の概要", "gaiyou.pdf", shingidoc.CategoryExecutiveSummary},
		{"reference material", "参考資料1", "sankou1.pdf", shingidoc.CategoryReference},
		{"material with colon", "資料：今後の方針", "shiryou.pdf", shingidoc.CategoryMaterial},
		{"ministry explanation", "総務省説明資料", "soumu.pdf", shingidoc.CategoryMaterial},
		{"numbered material", "資料3 検討状況", "shiryou3.pdf", shingidoc.CategoryMaterial},
		{"minutes by filename", "", "dai5_gijiroku.pdf", shingidoc.CategoryMinutes},
		{"no match", "その他のお知らせ", "oshirase.pdf", shingidoc.CategoryOther},
	}

	r := score.NewRules()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := r.Classify(context.Background(), tt.text, tt.filename, "https://example.go.jp/x.pdf")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChain_FallsBackToOracle(t *testing.T) {
	t.Parallel()

	oracle := &mock.Classifier{
		ClassifyFn: func(_ context.Context, _, _, _ string) (shingidoc.Category, error) {
			return shingidoc.CategoryPersonalMaterial, nil
		},
	}
	chain := &score.Chain{Classifiers: []shingidoc.Classifier{score.NewRules(), oracle}}

	got, err := chain.Classify(context.Background(), "委員提出メモ", "memo.pdf", "https://example.go.jp/memo.pdf")
	require.NoError(t, err)
	assert.Equal(t, shingidoc.CategoryPersonalMaterial, got)
}

func TestChain_RuleMatchSkipsOracle(t *testing.T) {
	t.Parallel()

	called := false
	oracle := &mock.Classifier{
		ClassifyFn: func(_ context.Context, _, _, _ string) (shingidoc.Category, error) {
			called = true
			return shingidoc.CategoryOther, nil
		},
	}
	chain := &score.Chain{Classifiers: []shingidoc.Classifier{score.NewRules(), oracle}}

	got, err := chain.Classify(context.Background(), "議事次第", "giji.pdf", "https://example.go.jp/giji.pdf")
	require.NoError(t, err)
	assert.Equal(t, shingidoc.CategoryAgenda, got)
	assert.False(t, called, "oracle must not be consulted when rules match")
}

func TestChain_OracleFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	var reportedURL string
	var reportedErr error
	oracle := &mock.Classifier{
		ClassifyFn: func(_ context.Context, _, _, _ string) (shingidoc.Category, error) {
			return "", errors.New("missing credentials")
		},
	}
	chain := &score.Chain{
		Classifiers: []shingidoc.Classifier{score.NewRules(), oracle},
		OnError: func(url string, err error) {
			reportedURL = url
			reportedErr = err
		},
	}

	got, err := chain.Classify(context.Background(), "不明な文書", "x.pdf", "https://example.go.jp/x.pdf")
	require.NoError(t, err)
	assert.Equal(t, shingidoc.CategoryOther, got, "candidate stays other on oracle failure")
	assert.Equal(t, "https://example.go.jp/x.pdf", reportedURL)
	assert.EqualError(t, reportedErr, "missing credentials")
}
