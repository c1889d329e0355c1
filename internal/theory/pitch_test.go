package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePitchClass(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "natural", input: "C", want: "C"},
		{name: "sharp", input: "F#", want: "F#"},
		{name: "flat", input: "Bb", want: "Bb"},
		{name: "flat_respelled", input: "Db", want: "C#"},
		{name: "double_sharp", input: "C##", want: "D"},
		{name: "double_flat", input: "Cbb", want: "Bb"},
		{name: "lowercase_letter", input: "g", want: "G"},
		{name: "whitespace", input: " Eb ", want: "Eb"},
		{name: "empty", input: "", wantErr: true},
		{name: "bad_letter", input: "H", wantErr: true},
		{name: "bad_accidental", input: "C%", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, err := ParsePitchClass(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, pc.String())
		})
	}
}

func TestTransposeWraps(t *testing.T) {
	c := PitchClass(0)
	assert.Equal(t, "C#", c.Transpose(13).String())
	assert.Equal(t, "B", c.Transpose(-1).String())
	assert.Equal(t, "C", c.Transpose(-24).String())
}

func TestFifthsDistance(t *testing.T) {
	c, _ := ParsePitchClass("C")
	g, _ := ParsePitchClass("G")
	f, _ := ParsePitchClass("F")
	fs, _ := ParsePitchClass("F#")

	assert.Equal(t, 0, FifthsDistance(c, c))
	assert.Equal(t, 1, FifthsDistance(c, g))
	assert.Equal(t, 1, FifthsDistance(c, f))
	assert.Equal(t, 6, FifthsDistance(c, fs))
	assert.Equal(t, FifthsDistance(c, g), FifthsDistance(g, c), "distance is symmetric")
}

func TestRootMotion(t *testing.T) {
	c, _ := ParsePitchClass("C")
	g, _ := ParsePitchClass("G")
	cs, _ := ParsePitchClass("C#")

	assert.Equal(t, 0, RootMotion(c, c))
	assert.Equal(t, 5, RootMotion(c, g), "fifths fold to the inverted fourth")
	assert.Equal(t, 1, RootMotion(c, cs))
	assert.Equal(t, RootMotion(g, c), RootMotion(c, g))
}
