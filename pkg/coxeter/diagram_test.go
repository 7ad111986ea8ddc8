package coxeter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse(" x5/2o3f ")
	require.NoError(t, err)

	require.Len(t, d.Nodes, 3)
	assert.Equal(t, 'x', d.Nodes[0].Symbol)
	assert.True(t, d.Nodes[0].Ringed())
	assert.False(t, d.Nodes[1].Ringed())
	assert.InDelta(t, (1+math.Sqrt(5))/2, d.Nodes[2].Length, 1e-12)

	assert.Equal(t, []Mark{{P: 5, Q: 2}, {P: 3, Q: 1}}, d.Marks)
	assert.InDelta(t, 2*math.Pi/5, d.Marks[0].Angle(), 1e-12)
	assert.Equal(t, "x5/2o3f", d.String())
	assert.Equal(t, "f3o5/2x", d.Reversed().String())
}

func TestParseMultiDigitMark(t *testing.T) {
	d, err := Parse("x12o")
	require.NoError(t, err)
	assert.Equal(t, []Mark{{P: 12, Q: 1}}, d.Marks)
	assert.Equal(t, 2, d.Rank())
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "3x", "x3", "x3y", "xo", "x1o", "x5/5o", "x5/o", "x3o3"} {
		_, err := Parse(input)
		assert.ErrorIs(t, err, ErrSyntax, input)
	}

	_, err := Parse("x3o3o *b3o")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestClassify(t *testing.T) {
	cases := map[string]string{
		"x":       "A1",
		"x3o3o":   "A3",
		"x4o3o":   "B3",
		"o3o4x":   "B3",
		"x3o5o":   "H3",
		"x5/2o3o": "H3",
		"x6o":     "I2(6)",
		"x4o2x":   "I2(4) × A1",
		"x2x2x":   "A1 × A1 × A1",
		"x3o3o3o": "A4",
		"x3o4o3o": "F4",
		"x5o3o3o": "H4",
		"o3o3o5x": "H4",
	}
	for input, want := range cases {
		got, err := Classify(MustParse(input))
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{"x3o6o", "x4o4o", "x5o5o", "x4o3o4o", "x3o3o3o3o5o"} {
		_, err := Classify(MustParse(input))
		assert.ErrorIs(t, err, ErrNotFinite, input)
	}
}
