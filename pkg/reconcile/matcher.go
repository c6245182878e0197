package reconcile

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matcher scores name similarity between a candidate's reported name and an
// existing canonical name. Scores are in [0, 1] with 1 meaning the
// normalized names are identical.
type Matcher interface {
	Similarity(a, b string) float64
}

// corporateSuffixes are naming noise dropped before comparison: the same
// operating entity is reported as "Acme Power", "Acme Power Co", and
// "Acme Power Company" across filings.
var corporateSuffixes = map[string]bool{
	"co":           true,
	"corp":         true,
	"inc":          true,
	"llc":          true,
	"llp":          true,
	"lp":           true,
	"ltd":          true,
	"company":      true,
	"corporation":  true,
	"incorporated": true,
	"cooperative":  true,
	"coop":         true,
}

// stripDiacritics removes combining marks after NFD decomposition.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a reported entity name for comparison: diacritics
// folded, lowercased, punctuation dropped, corporate suffixes removed, and
// whitespace collapsed.
func Normalize(name string) string {
	folded, _, err := transform.String(stripDiacritics, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	// Suffixes are only noise at the end of a name: "Co-op Light" keeps
	// its "co", "Acme Power Co" loses it.
	words := strings.Fields(b.String())
	for len(words) > 1 && corporateSuffixes[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// nameMatcher is the default Matcher: normalized Levenshtein similarity.
type nameMatcher struct{}

// NewNameMatcher returns the default name-similarity matcher.
func NewNameMatcher() Matcher {
	return nameMatcher{}
}

// Similarity returns 1 - editDistance/maxLen over the normalized names.
func (nameMatcher) Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	dist := levenshtein(na, nb)
	maxLen := len([]rune(na))
	if l := len([]rune(nb)); l > maxLen {
		maxLen = l
	}
	return 1 - float64(dist)/float64(maxLen)
}

// levenshtein computes edit distance with the two-row dynamic program.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
