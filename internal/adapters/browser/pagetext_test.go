package browser

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageText(t *testing.T) {
	page := `<html><head>
		<style>body { color: red; }</style>
		<script>window.dataLayer = [];</script>
	</head><body>
		<article>
			<h1>3.5 rooms on Dizengoff</h1>
			<p>Renovated apartment with a sunny balcony. Asking 2,150,000 NIS.</p>
			<p>Contact: Dana, 050-0000000.</p>
		</article>
		<noscript>Please enable JavaScript.</noscript>
	</body></html>`

	t.Run("keeps the listing content", func(t *testing.T) {
		text, err := PageText(page, "https://www.yad2.co.il/item/1", 0)
		require.NoError(t, err)
		assert.Contains(t, text, "3.5 rooms on Dizengoff")
		assert.Contains(t, text, "2,150,000")
	})

	t.Run("drops scripts, styles and noscript blocks", func(t *testing.T) {
		text, err := PageText(page, "https://www.yad2.co.il/item/1", 0)
		require.NoError(t, err)
		assert.NotContains(t, text, "dataLayer")
		assert.NotContains(t, text, "color: red")
		assert.NotContains(t, text, "enable JavaScript")
	})

	t.Run("bounds the output to maxChars", func(t *testing.T) {
		long := "<html><body><p>" + strings.Repeat("word ", 5000) + "</p></body></html>"
		text, err := PageText(long, "https://example.com/", 100)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(text), 100)
	})

	t.Run("truncation never splits a multi-byte rune", func(t *testing.T) {
		hebrew := "<html><body><p>" + strings.Repeat("דירת שלושה חדרים ברחוב דיזנגוף ", 200) + "</p></body></html>"
		for _, max := range []int{50, 101, 1000} {
			text, err := PageText(hebrew, "https://www.yad2.co.il/item/1", max)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(text), max)
			assert.True(t, utf8.ValidString(text), "cut at %d bytes produced invalid UTF-8", max)
		}
	})

	t.Run("an unparseable page url still converts", func(t *testing.T) {
		text, err := PageText("<p>plain content</p>", "://bad", 0)
		require.NoError(t, err)
		assert.Contains(t, text, "plain content")
	})
}
