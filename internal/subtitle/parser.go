// Package subtitle parses SRT tracks into cue sequences and answers
// quote and timestamp lookups against them.
package subtitle

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kinograb/kinograb/internal/timecode"
)

// Cue is one subtitle entry: a time interval plus the text spoken
// during it. Sequences returned by this package are sorted by Start.
type Cue struct {
	Index int
	Start timecode.Offset
	End   timecode.Offset
	Text  string
}

// ParseSRT reads the sequential-cue text format: an index line, a
// `start --> end` timestamp line, text lines, and a blank separator.
// Parsing the same content twice yields identical sequences.
func ParseSRT(content string) ([]Cue, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	var cues []Cue
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			return nil, fmt.Errorf("%w: truncated cue %q", ErrSubtitlesCorrupted, block)
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: bad cue index %q", ErrSubtitlesCorrupted, lines[0])
		}

		start, end, err := parseCueTimes(lines[1])
		if err != nil {
			return nil, err
		}

		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.Join(lines[2:], "\n"),
		})
	}

	// Rippers occasionally emit cues out of order; lookups assume a
	// sorted sequence.
	sort.SliceStable(cues, func(i, j int) bool {
		a, b := cues[i].Start, cues[j].Start
		if a.Seconds != b.Seconds {
			return a.Seconds < b.Seconds
		}
		return a.Millis < b.Millis
	})

	return cues, nil
}

// parseCueTimes reads a `HH:MM:SS,mmm --> HH:MM:SS,mmm` line. A period
// before the milliseconds is tolerated, as some tools emit it.
func parseCueTimes(line string) (timecode.Offset, timecode.Offset, error) {
	startText, endText, ok := strings.Cut(line, "-->")
	if !ok {
		return timecode.Offset{}, timecode.Offset{}, fmt.Errorf(
			"%w: missing arrow in %q", ErrSubtitlesCorrupted, line)
	}

	start, err := parseCueTime(startText)
	if err != nil {
		return timecode.Offset{}, timecode.Offset{}, err
	}
	end, err := parseCueTime(endText)
	if err != nil {
		return timecode.Offset{}, timecode.Offset{}, err
	}

	if end.Seconds < start.Seconds ||
		(end.Seconds == start.Seconds && end.Millis < start.Millis) {
		return timecode.Offset{}, timecode.Offset{}, fmt.Errorf(
			"%w: cue ends before it starts in %q", ErrSubtitlesCorrupted, line)
	}
	return start, end, nil
}

func parseCueTime(text string) (timecode.Offset, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	if strings.Count(text, ":") != 2 {
		return timecode.Offset{}, fmt.Errorf("%w: bad timestamp %q", ErrSubtitlesCorrupted, text)
	}
	offset, err := timecode.Parse(text)
	if err != nil {
		return timecode.Offset{}, fmt.Errorf("%w: bad timestamp %q", ErrSubtitlesCorrupted, text)
	}
	return offset, nil
}
