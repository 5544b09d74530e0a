// ABOUTME: String matching primitives for station name search.
// ABOUTME: Levenshtein distance, similarity scoring, and Swedish-character folding.

package search

import "strings"

// Levenshtein computes the edit distance between a and b using unit costs
// for substitution, insertion, and deletion. Case-sensitive; callers that
// want case-insensitive behavior lower-case first.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := 0; j <= len(ra); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min(prev[j-1]+1, min(curr[j-1]+1, prev[j]+1))
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity returns a score in [0,1] for how alike a and b are, based on
// the Levenshtein distance of their lower-cased forms. Two empty strings
// are considered identical.
func Similarity(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}

	distance := Levenshtein(strings.ToLower(a), strings.ToLower(b))
	return 1.0 - float64(distance)/float64(maxLen)
}

// swedishFolder maps Swedish and accented characters to their ASCII
// approximations so that queries like "Tarnaby" match "Tärnaby".
var swedishFolder = strings.NewReplacer(
	"å", "a", "ä", "a",
	"ö", "o",
	"é", "e", "è", "e",
)

// Normalize lower-cases s and folds å/ä→a, ö→o, é/è→e. This is the single
// canonical normalizer; every search path must use it so query and station
// names fold identically.
func Normalize(s string) string {
	return swedishFolder.Replace(strings.ToLower(s))
}
