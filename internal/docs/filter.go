package docs

import "strings"

const (
	sentenceSep    = ". "
	contextBefore  = 2
	contextAfter   = 2
	fallbackLength = 500
	ellipsis       = "..."
)

// Contains reports whether text contains query, ignoring case.
func Contains(text, query string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}

// Filter narrows text to the sentences around each case-insensitive match of
// query. Sentences are the pieces between literal ". " separators; each match
// pulls in two neighbours on either side. Overlapping windows keep the first
// copy of a sentence. With no match the first 500 characters are returned.
func Filter(text, query string) string {
	if query == "" {
		return text
	}

	sentences := strings.Split(text, sentenceSep)
	q := strings.ToLower(query)

	var relevant []string
	for i, sentence := range sentences {
		if !strings.Contains(strings.ToLower(sentence), q) {
			continue
		}
		start := max(0, i-contextBefore)
		end := min(len(sentences), i+contextAfter+1)
		relevant = append(relevant, sentences[start:end]...)
	}

	if len(relevant) == 0 {
		return Truncate(text, fallbackLength)
	}

	seen := make(map[string]bool, len(relevant))
	filtered := make([]string, 0, len(relevant))
	for _, sentence := range relevant {
		if seen[sentence] {
			continue
		}
		seen[sentence] = true
		filtered = append(filtered, sentence)
	}

	return strings.Join(filtered, sentenceSep)
}

// Truncate caps s at limit characters, appending "..." when it cuts.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}
