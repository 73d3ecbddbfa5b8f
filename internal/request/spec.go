// Package request runs the resolve-then-extract pipeline: one free-text
// query plus a batch of bracketed frame specs in, decoded frames out.
package request

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kinograb/kinograb/internal/timecode"
)

// maxNudgeMillis bounds the --plus/--minus adjustment per bracket.
const maxNudgeMillis = 3000

// timestampRegex recognizes bracket content that is a time literal
// rather than a quote: digits and colons, optional fractional part.
var timestampRegex = regexp.MustCompile(`^\d+(:\d+){0,2}(\.\d+)?$`)

// Spec is one parsed bracket: either a quote to look up in the subtitle
// track or an explicit timestamp, with an optional millisecond nudge.
type Spec struct {
	Quote  string
	Offset timecode.Offset
	Nudge  int

	isQuote bool
}

// ByQuote builds a quote spec directly.
func ByQuote(text string) Spec {
	return Spec{Quote: text, isQuote: true}
}

// ByTimestamp builds a timestamp spec directly.
func ByTimestamp(offset timecode.Offset) Spec {
	return Spec{Offset: offset}
}

// IsQuote reports whether the spec needs a subtitle lookup.
func (s Spec) IsQuote() bool { return s.isQuote }

// String renders the spec the way it would appear in a request.
func (s Spec) String() string {
	if s.isQuote {
		return s.Quote
	}
	return s.Offset.String()
}

// ParseSpec parses raw bracket text. Surrounding brackets are optional.
// Content made of digits and colons is a timestamp, anything else a
// quote. Trailing "--plus N" / "--minus N" tokens shift the final
// offset by N milliseconds, capped at 3000 either way.
func ParseSpec(raw string) (Spec, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")

	var content []string
	var nudge int

	fields := strings.Fields(text)
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "--plus", "--minus":
			if i+1 >= len(fields) {
				return Spec{}, fmt.Errorf("%w: %s needs a value in %q", ErrInvalidSpec, fields[i], raw)
			}
			n, err := strconv.Atoi(fields[i+1])
			if err != nil || n < 0 {
				return Spec{}, fmt.Errorf("%w: bad %s value %q", ErrInvalidSpec, fields[i], fields[i+1])
			}
			if n > maxNudgeMillis {
				return Spec{}, fmt.Errorf("%w: nudge %dms exceeds %dms", ErrInvalidSpec, n, maxNudgeMillis)
			}
			if fields[i] == "--minus" {
				n = -n
			}
			nudge += n
			i++
		default:
			content = append(content, fields[i])
		}
	}

	if len(content) == 0 {
		return Spec{}, fmt.Errorf("%w: empty bracket %q", ErrInvalidSpec, raw)
	}

	joined := strings.Join(content, " ")
	if timestampRegex.MatchString(joined) {
		offset, err := timecode.Parse(joined)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
		}
		return Spec{Offset: offset, Nudge: nudge}, nil
	}
	return Spec{Quote: joined, Nudge: nudge, isQuote: true}, nil
}

// ParseSpecs parses a batch of raw brackets in order.
func ParseSpecs(raw []string) ([]Spec, error) {
	specs := make([]Spec, 0, len(raw))
	for _, r := range raw {
		spec, err := ParseSpec(r)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
