package subtitle

import "errors"

var (
	// ErrSubtitlesMissing indicates no subtitle file exists at the path
	// derived from the media location.
	ErrSubtitlesMissing = errors.New("subtitles not found")

	// ErrSubtitlesCorrupted indicates the subtitle file exists but its
	// timestamps or cue syntax cannot be parsed.
	ErrSubtitlesCorrupted = errors.New("subtitles corrupted")

	// ErrQuoteNotFound indicates no cue matched the requested quote
	// above the acceptance threshold.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrUnknownLanguage indicates a language with no configured
	// subtitle suffix.
	ErrUnknownLanguage = errors.New("language not found")
)
