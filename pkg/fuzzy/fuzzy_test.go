package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "taxi driver 1976", "taxi driver 1976", 100},
		{"empty both", "", "", 100},
		{"disjoint", "abc", "xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ratio(tt.a, tt.b))
		})
	}
}

func TestRatioSymmetric(t *testing.T) {
	a, b := "the godfather 1972", "the godfather part ii 1974"
	assert.Equal(t, Ratio(a, b), Ratio(b, a))
}

func TestRatioClose(t *testing.T) {
	// One edit out of sixteen characters stays well above the movie
	// acceptance threshold.
	score := Ratio("taxi driver 1976", "taxi driver 1975")
	assert.Greater(t, score, 90)
	assert.Less(t, score, 100)
}

func TestBestMatch(t *testing.T) {
	candidates := []string{"alien 1979", "aliens 1986", "alien 3 1992"}

	idx, score := BestMatch("aliens 1986", candidates, Ratio)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 100, score)
}

func TestBestMatchTieKeepsEarlier(t *testing.T) {
	// Both candidates are the same string, so the scores tie exactly;
	// the first one scanned must win.
	candidates := []string{"solaris 1972", "solaris 1972"}

	idx, score := BestMatch("solaris 1972", candidates, Ratio)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 100, score)
}

func TestBestMatchEmpty(t *testing.T) {
	idx, score := BestMatch("anything", nil, Ratio)
	assert.Equal(t, -1, idx)
	assert.Equal(t, 0, score)
}

func TestTokenSetRatio(t *testing.T) {
	// Every query token appears in the candidate, so the shared core
	// matches one side exactly.
	assert.Equal(t, 100, TokenSetRatio(
		"gonna be a bridesmaid",
		"i'm gonna be a bridesmaid",
	))

	assert.Less(t, TokenSetRatio("completely different words", "hello there"), 50)
}

func TestQuoteScore(t *testing.T) {
	// Plain ratio alone lands below 87 here; the token-set blend is
	// what lets a quote missing its leading word still match.
	plain := Ratio("gonna be a bridesmaid", "i'm gonna be a bridesmaid")
	assert.Less(t, plain, 87)

	blended := QuoteScore("gonna be a bridesmaid", "i'm gonna be a bridesmaid")
	assert.GreaterOrEqual(t, blended, 87)
}
