package browser

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	readability "github.com/go-shiori/go-readability"
)

var (
	scriptRe         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptRe       = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	excessiveLinesRe = regexp.MustCompile(`\n{4,}`)
)

// PageText reduces raw page HTML to markdown-ish text bounded to
// maxChars, suitable for an extraction prompt. Readability pulls the
// main content first; when it finds nothing usable the whole document
// goes through the converter after a basic cleanup.
func PageText(rawHTML, pageURL string, maxChars int) (string, error) {
	content := rawHTML

	if parsed, err := url.Parse(pageURL); err == nil {
		if article, err := readability.FromReader(strings.NewReader(rawHTML), parsed); err == nil && article.Content != "" {
			content = article.Content
		}
	}

	content = scriptRe.ReplaceAllString(content, "")
	content = styleRe.ReplaceAllString(content, "")
	content = noscriptRe.ReplaceAllString(content, "")

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	markdown, err := converter.ConvertString(content)
	if err != nil {
		return "", fmt.Errorf("failed to convert page to text: %w", err)
	}

	markdown = excessiveLinesRe.ReplaceAllString(markdown, "\n\n\n")
	markdown = strings.TrimSpace(markdown)

	if maxChars > 0 && len(markdown) > maxChars {
		markdown = truncateToRune(markdown, maxChars)
	}
	return markdown, nil
}

// truncateToRune cuts s to at most max bytes without splitting a
// multi-byte rune. Listing pages are mostly Hebrew, so a byte-boundary
// cut would regularly end in invalid UTF-8.
func truncateToRune(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
