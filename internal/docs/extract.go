package docs

import (
	"regexp"
	"strings"
)

var (
	scriptRe     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`[\s\v\p{Z}\x{85}\x{1c}-\x{1f}]+`)
)

// Extract reduces markup to plain text. Script and style blocks go first so
// their bodies are never mistaken for ordinary tags, then every remaining tag
// is dropped and whitespace is collapsed. Whitespace includes the Unicode
// separators, so non-breaking spaces split sentences like plain ones.
// Malformed markup is over-stripped rather than rejected.
func Extract(raw string) string {
	text := scriptRe.ReplaceAllString(raw, "")
	text = styleRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
