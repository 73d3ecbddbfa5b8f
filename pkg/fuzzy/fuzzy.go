// Package fuzzy scores approximate string matches on a 0-100 scale.
//
// The same primitive backs both catalog resolution ("which movie") and
// subtitle quote lookup ("which line"), so the two stay consistent.
package fuzzy

import (
	"math"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Ratio returns a character-level edit-distance similarity between a and b
// as an integer percentage. Identical strings score 100, disjoint strings 0.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	sim, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		// Only reachable with an unknown algorithm constant.
		return 0
	}
	return int(math.Round(float64(sim) * 100))
}

// TokenSetRatio compares the sorted unique-token forms of a and b,
// scoring the shared-token core against each side's additions. A string
// fully contained in the other's vocabulary scores 100 regardless of the
// extra words.
func TokenSetRatio(a, b string) int {
	setA := tokenSet(a)
	setB := tokenSet(b)

	var shared, onlyA, onlyB []string
	for _, tok := range setA {
		if contains(setB, tok) {
			shared = append(shared, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for _, tok := range setB {
		if !contains(setA, tok) {
			onlyB = append(onlyB, tok)
		}
	}

	core := strings.Join(shared, " ")
	withA := strings.TrimSpace(core + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(core + " " + strings.Join(onlyB, " "))

	best := Ratio(core, withA)
	if s := Ratio(core, withB); s > best {
		best = s
	}
	if s := Ratio(withA, withB); s > best {
		best = s
	}
	return best
}

// QuoteScore blends the plain ratio with a discounted token-set ratio,
// so a quote missing a leading word still clears the lookup threshold.
func QuoteScore(a, b string) int {
	score := Ratio(a, b)
	if ts := int(math.Round(0.95 * float64(TokenSetRatio(a, b)))); ts > score {
		score = ts
	}
	return score
}

func tokenSet(s string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, tok := range strings.Fields(s) {
		if !seen[tok] {
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}
	sort.Strings(tokens)
	return tokens
}

func contains(tokens []string, tok string) bool {
	for _, t := range tokens {
		if t == tok {
			return true
		}
	}
	return false
}

// BestMatch scans candidates in order and returns the index and score of
// the best match for query under the given scorer. The best-so-far is
// replaced only on strict improvement, so ties keep the earlier
// candidate. Returns (-1, 0) when candidates is empty.
func BestMatch(query string, candidates []string, scorer func(a, b string) int) (int, int) {
	best := -1
	bestScore := 0
	for i, c := range candidates {
		if score := scorer(query, c); score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best == -1 && len(candidates) > 0 {
		// Every candidate scored zero; fall back to the first so callers
		// always have a suggestion to surface.
		best = 0
	}
	return best, bestScore
}
