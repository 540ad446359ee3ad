package docs

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	t.Run("empty query returns text unchanged", func(t *testing.T) {
		text := "Intro. Hooks let you run code. Done."
		assert.Equal(t, text, Filter(text, ""))
	})

	t.Run("windows a single match", func(t *testing.T) {
		text := "Intro. Hooks let you run code. They fire on events. Done."
		assert.Equal(t, "Intro. Hooks let you run code. They fire on events. Done.", Filter(text, "hooks"))
	})

	t.Run("clips window to two neighbours", func(t *testing.T) {
		text := "S0. S1. S2. S3. needle here. S5. S6. S7. S8"
		assert.Equal(t, "S2. S3. needle here. S5. S6", Filter(text, "NEEDLE"))
	})

	t.Run("clips window at the start", func(t *testing.T) {
		text := "needle first. S1. S2. S3. S4"
		assert.Equal(t, "needle first. S1. S2", Filter(text, "needle"))
	})

	t.Run("overlapping windows are deduplicated", func(t *testing.T) {
		text := "S0. S1. match one. S3. match two. S5. S6. S7"
		assert.Equal(t, "S0. S1. match one. S3. match two. S5. S6", Filter(text, "match"))
	})

	t.Run("repeated sentence text appears once", func(t *testing.T) {
		text := "Same. needle. Same. Other"
		assert.Equal(t, "Same. needle. Other", Filter(text, "needle"))
	})

	t.Run("no match falls back to the first 500 characters", func(t *testing.T) {
		text := strings.Repeat("a", 600)
		assert.Equal(t, strings.Repeat("a", 500)+"...", Filter(text, "zzz"))
	})

	t.Run("no match on short text returns it whole", func(t *testing.T) {
		assert.Equal(t, "short text", Filter("short text", "zzz"))
	})

	t.Run("query spanning a separator never matches a unit", func(t *testing.T) {
		text := "One. Two. Three"
		assert.Equal(t, text, Filter(text, "one. two"))
	})
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("Google Vertex AI", "vertex"))
	assert.True(t, Contains("anything", ""))
	assert.False(t, Contains("Amazon Bedrock", "vertex"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab...", Truncate("abc", 2))
	assert.Equal(t, "hé...", Truncate("héllo", 2))
}

func TestFilterProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("empty query is the identity", prop.ForAll(
		func(text string) bool {
			return Filter(text, "") == text
		},
		gen.AnyString(),
	))

	// Units are distinct, so the output of a single match must be a contiguous
	// run of at most five of them.
	properties.Property("single match yields a contiguous window of at most five units", prop.ForAll(
		func(n, at int) bool {
			at = at % n
			units := make([]string, n)
			for i := range units {
				units[i] = fmt.Sprintf("unit%d", i)
			}
			units[at] = "the needle"
			text := strings.Join(units, sentenceSep)

			got := strings.Split(Filter(text, "needle"), sentenceSep)
			start := max(0, at-contextBefore)
			end := min(n, at+contextAfter+1)
			if len(got) > 5 || len(got) != end-start {
				return false
			}
			for i, u := range got {
				if u != units[start+i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 40),
		gen.IntRange(0, 1000),
	))

	properties.Property("output never repeats a unit", prop.ForAll(
		func(words []string) bool {
			if len(words) == 0 {
				return true
			}
			for i := range words {
				if i%3 == 0 {
					words[i] = "needle " + words[i]
				}
			}
			text := strings.Join(words, sentenceSep)
			out := Filter(text, "needle")

			seen := make(map[string]bool)
			for _, u := range strings.Split(out, sentenceSep) {
				if seen[u] {
					return false
				}
				seen[u] = true
			}
			return true
		},
		gen.SliceOf(gen.OneConstOf("alpha", "beta", "gamma", "delta")),
	))

	properties.TestingRun(t)
}
