package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kinograb/kinograb/internal/timecode"
	"github.com/kinograb/kinograb/pkg/fuzzy"
)

// quoteThreshold is the minimum fuzzy score for a non-exact quote match.
const quoteThreshold = 87

// lengthSlack is the maximum tolerated length difference between a
// normalized quote and its best cue match.
const lengthSlack = 5

// languageSuffixes maps request languages to the tag embedded in
// subtitle file names ("movie.en.srt").
var languageSuffixes = map[string]string{
	"en": "en",
	"es": "es",
	"pt": "pt",
	"fr": "fr",
	"it": "it",
	"de": "de",
	"ja": "ja",
}

// AddLanguage registers or overrides the filename tag for a language,
// e.g. AddLanguage("pt", "pt-BR") for tracks named movie.pt-BR.srt.
// Call during startup, before lookups begin.
func AddLanguage(lang, tag string) {
	languageSuffixes[lang] = tag
}

// SiblingPath derives the subtitle path for a media file: same base
// name, language-tagged .srt extension.
func SiblingPath(mediaPath, lang string) (string, error) {
	suffix, ok := languageSuffixes[lang]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	base := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
	return fmt.Sprintf("%s.%s.srt", base, suffix), nil
}

// Load parses the subtitle track sitting next to a media file.
// Returns ErrSubtitlesMissing when the derived path does not exist and
// ErrSubtitlesCorrupted when it exists but cannot be parsed.
func Load(mediaPath, lang string) ([]Cue, error) {
	path, err := SiblingPath(mediaPath, lang)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSubtitlesMissing, path)
		}
		return nil, fmt.Errorf("read subtitles %s: %w", path, err)
	}

	cues, err := ParseSRT(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cues, nil
}

// LookupQuote finds the cue whose text best matches quote. An exact
// normalized match wins immediately; otherwise the best fuzzy candidate
// must score at least 87 and stay within 5 characters of the quote's
// normalized length. Failures carry the nearest cue text as a
// suggestion.
func LookupQuote(cues []Cue, quote string) (Cue, error) {
	if len(cues) == 0 {
		return Cue{}, fmt.Errorf("%w: empty cue sequence", ErrQuoteNotFound)
	}

	wanted := Normalize(quote, false)
	for _, cue := range cues {
		if wanted == Normalize(cue.Text, false) {
			return cue, nil
		}
	}

	cleaned := make([]string, len(cues))
	for i, cue := range cues {
		cleaned[i] = Normalize(cue.Text, true)
	}

	lowered := Normalize(quote, true)
	best, score := fuzzy.BestMatch(lowered, cleaned, fuzzy.QuoteScore)
	difference := abs(len(lowered) - len(cleaned[best]))

	if score < quoteThreshold || difference >= lengthSlack {
		return Cue{}, fmt.Errorf("%w: %q (maybe you meant %q?)",
			ErrQuoteNotFound, quote, Normalize(cues[best].Text, false))
	}
	return cues[best], nil
}

// LookupTimestamp parses an explicit time literal with no cue lookup.
func LookupTimestamp(text string) (timecode.Offset, error) {
	return timecode.Parse(text)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
