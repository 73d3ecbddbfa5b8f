package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinograb/kinograb/internal/timecode"
)

func TestParseSpecTimestamp(t *testing.T) {
	tests := []struct {
		raw  string
		want timecode.Offset
	}{
		{"[12:03]", timecode.Offset{Seconds: 723}},
		{"12:03", timecode.Offset{Seconds: 723}},
		{"[01:02:03]", timecode.Offset{Seconds: 3723}},
		{"[45]", timecode.Offset{Seconds: 45}},
		{"[23:32.200]", timecode.Offset{Seconds: 1412, Millis: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			spec, err := ParseSpec(tt.raw)
			require.NoError(t, err)
			assert.False(t, spec.IsQuote())
			assert.Equal(t, tt.want, spec.Offset)
		})
	}
}

func TestParseSpecQuote(t *testing.T) {
	spec, err := ParseSpec("[you talking to me]")
	require.NoError(t, err)
	assert.True(t, spec.IsQuote())
	assert.Equal(t, "you talking to me", spec.Quote)
	assert.Zero(t, spec.Nudge)
}

func TestParseSpecNudge(t *testing.T) {
	spec, err := ParseSpec("[12:03 --plus 300]")
	require.NoError(t, err)
	assert.Equal(t, 300, spec.Nudge)

	spec, err = ParseSpec("[you talking to me --minus 250]")
	require.NoError(t, err)
	assert.True(t, spec.IsQuote())
	assert.Equal(t, "you talking to me", spec.Quote)
	assert.Equal(t, -250, spec.Nudge)
}

func TestParseSpecNudgeCapped(t *testing.T) {
	_, err := ParseSpec("[12:03 --plus 3001]")
	assert.ErrorIs(t, err, ErrInvalidSpec)

	_, err = ParseSpec("[12:03 --minus 5000]")
	assert.ErrorIs(t, err, ErrInvalidSpec)

	spec, err := ParseSpec("[12:03 --plus 3000]")
	require.NoError(t, err)
	assert.Equal(t, 3000, spec.Nudge)
}

func TestParseSpecInvalid(t *testing.T) {
	for _, raw := range []string{
		"[]",
		"[--plus 300]",
		"[12:03 --plus]",
		"[12:03 --plus abc]",
		"[12:03 --minus -5]",
	} {
		_, err := ParseSpec(raw)
		assert.ErrorIs(t, err, ErrInvalidSpec, raw)
	}
}

func TestParseSpecDigitsWithWordsIsQuote(t *testing.T) {
	spec, err := ParseSpec("[route 66]")
	require.NoError(t, err)
	assert.True(t, spec.IsQuote())
}

func TestParseSpecs(t *testing.T) {
	specs, err := ParseSpecs([]string{"[12:03]", "[you talking to me]"})
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.False(t, specs[0].IsQuote())
	assert.True(t, specs[1].IsQuote())

	_, err = ParseSpecs([]string{"[12:03]", "[]"})
	assert.ErrorIs(t, err, ErrInvalidSpec)
}
