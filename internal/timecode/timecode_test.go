package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Offset
	}{
		{"45", Offset{Seconds: 45}},
		{"12:03", Offset{Seconds: 723}},
		{"20:34", Offset{Seconds: 1234}},
		{"01:00:01", Offset{Seconds: 3601}},
		{"23:32.200", Offset{Seconds: 1412, Millis: 200}},
		{"0:00", Offset{}},
		{" 12:03 ", Offset{Seconds: 723}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1:2:3:4", "12:xx", "-5", "10.5000", "1:02.-3"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	offsets := []Offset{
		{},
		{Seconds: 59},
		{Seconds: 61, Millis: 1},
		{Seconds: 1234},
		{Seconds: 3601, Millis: 999},
		{Seconds: 7322, Millis: 40},
	}

	for _, o := range offsets {
		t.Run(o.String(), func(t *testing.T) {
			back, err := Parse(o.String())
			require.NoError(t, err)
			assert.Equal(t, o, back)
		})
	}
}

func TestFrameIndex(t *testing.T) {
	tests := []struct {
		name   string
		offset Offset
		fps    float64
		want   int
	}{
		{"whole seconds", Offset{Seconds: 10}, 25, 250},
		{"with millis", Offset{Seconds: 10, Millis: 500}, 24, 252},
		{"ntsc rate", Offset{Seconds: 60}, 23.976, 1439},
		{"zero", Offset{}, 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.offset.FrameIndex(tt.fps))
		})
	}
}

func TestAddMillis(t *testing.T) {
	assert.Equal(t, Offset{Seconds: 11, Millis: 200}, Offset{Seconds: 10, Millis: 700}.AddMillis(500))
	assert.Equal(t, Offset{Seconds: 9, Millis: 900}, Offset{Seconds: 10, Millis: 400}.AddMillis(-500))
	assert.Equal(t, Offset{}, Offset{Millis: 100}.AddMillis(-3000))
}
