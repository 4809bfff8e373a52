package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/trafilatura"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>第5回検討会 - 資料一覧</title>
<meta property="og:title" content="第5回検討会">
</head>
<body>
<nav>ホーム &gt; 審議会 &gt; 検討会</nav>
<main>
<h1>第5回検討会</h1>
<p>議事録では資料1に基づく検討状況の報告が行われました。</p>
<p>資料2の調査結果についても議論されています。</p>
</main>
<footer>Copyright Ministry</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "第5回検討会", result.Title)
		assert.Contains(t, result.ContentHTML, "検討状況の報告")
		assert.Contains(t, result.ContentHTML, "調査結果")
		assert.NotContains(t, result.ContentHTML, "Copyright Ministry")
	})

	t.Run("empty input returns EINVALID", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, shingidoc.EINVALID, shingidoc.ErrorCode(err))
	})

	t.Run("strips navigation boilerplate", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		sb.WriteString(`<html><head><title>会議ページ</title></head><body>`)
		sb.WriteString(`<nav><ul>`)
		for i := 0; i < 20; i++ {
			sb.WriteString(`<li><a href="/menu">メニュー項目</a></li>`)
		}
		sb.WriteString(`</ul></nav><article>`)
		for i := 0; i < 10; i++ {
			sb.WriteString(`<p>本文の段落です。施策の検討状況について報告します。</p>`)
		}
		sb.WriteString(`</article></body></html>`)

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(sb.String())

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "本文の段落")
		assert.NotContains(t, result.ContentHTML, "メニュー項目")
	})
}
