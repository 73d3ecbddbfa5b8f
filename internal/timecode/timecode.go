// Package timecode handles seek offsets and their textual forms.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalid indicates a timestamp literal that cannot be parsed.
var ErrInvalid = errors.New("invalid timestamp")

// Offset is the canonical seek coordinate: whole seconds plus a
// millisecond remainder in [0, 999].
type Offset struct {
	Seconds int
	Millis  int
}

// Parse reads a timestamp literal. Accepted forms are SS, MM:SS and
// HH:MM:SS, each with an optional .millis fraction ("12:03", "1:02:03.500").
func Parse(text string) (Offset, error) {
	text = strings.TrimSpace(text)

	var millis int
	if base, frac, ok := strings.Cut(text, "."); ok {
		frac = strings.TrimSpace(frac)
		n, err := strconv.Atoi(frac)
		if err != nil || n < 0 || n > 999 {
			return Offset{}, fmt.Errorf("%w: bad fraction %q", ErrInvalid, text)
		}
		millis = n
		text = base
	}

	parts := strings.Split(text, ":")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}

	var seconds int
	switch len(parts) {
	case 1:
		s, err := strconv.Atoi(parts[0])
		if err != nil {
			return Offset{}, fmt.Errorf("%w: %q", ErrInvalid, text)
		}
		seconds = s
	case 2:
		m, err1 := strconv.Atoi(parts[0])
		s, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return Offset{}, fmt.Errorf("%w: %q", ErrInvalid, text)
		}
		seconds = m*60 + s
	case 3:
		h, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		s, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return Offset{}, fmt.Errorf("%w: %q", ErrInvalid, text)
		}
		seconds = h*3600 + m*60 + s
	default:
		return Offset{}, fmt.Errorf("%w: %q (use mm:ss or hh:mm:ss)", ErrInvalid, text)
	}

	if seconds < 0 {
		return Offset{}, fmt.Errorf("%w: negative offset %q", ErrInvalid, text)
	}
	return Offset{Seconds: seconds, Millis: millis}, nil
}

// String renders the canonical HH:MM:SS.mmm form.
func (o Offset) String() string {
	h := o.Seconds / 3600
	m := (o.Seconds % 3600) / 60
	s := o.Seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, o.Millis)
}

// TotalSeconds returns the offset as fractional seconds.
func (o Offset) TotalSeconds() float64 {
	return float64(o.Seconds) + float64(o.Millis)/1000
}

// FrameIndex computes the target frame number at the given frame rate.
func (o Offset) FrameIndex(fps float64) int {
	return int(math.Round(fps*float64(o.Seconds))) +
		int(math.Round(fps*float64(o.Millis)/1000))
}

// AddMillis shifts the offset by n milliseconds (n may be negative),
// carrying into seconds and clamping at zero.
func (o Offset) AddMillis(n int) Offset {
	total := o.Seconds*1000 + o.Millis + n
	if total < 0 {
		total = 0
	}
	return Offset{Seconds: total / 1000, Millis: total % 1000}
}
