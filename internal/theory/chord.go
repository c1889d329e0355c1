package theory

// Quality is the chord quality: triads plus the common seventh forms.
type Quality int

const (
	QualityMajor Quality = iota
	QualityMinor
	QualityDiminished
	QualityAugmented
	QualityMajor7
	QualityMinor7
	QualityDominant7
	QualityHalfDiminished7
	QualityDiminished7
)

// qualityIntervals lists semitone offsets from the root.
var qualityIntervals = map[Quality][]int{
	QualityMajor:           {0, 4, 7},
	QualityMinor:           {0, 3, 7},
	QualityDiminished:      {0, 3, 6},
	QualityAugmented:       {0, 4, 8},
	QualityMajor7:          {0, 4, 7, 11},
	QualityMinor7:          {0, 3, 7, 10},
	QualityDominant7:       {0, 4, 7, 10},
	QualityHalfDiminished7: {0, 3, 6, 10},
	QualityDiminished7:     {0, 3, 6, 9},
}

var qualitySuffixes = map[Quality]string{
	QualityMajor:           "",
	QualityMinor:           "m",
	QualityDiminished:      "dim",
	QualityAugmented:       "aug",
	QualityMajor7:          "maj7",
	QualityMinor7:          "m7",
	QualityDominant7:       "7",
	QualityHalfDiminished7: "m7b5",
	QualityDiminished7:     "dim7",
}

// Extension is an upper-structure tension added above a seventh chord.
type Extension int

const (
	Extension9 Extension = iota
	Extension11
	Extension13
)

var extensionIntervals = map[Extension]int{
	Extension9:  14,
	Extension11: 17,
	Extension13: 21,
}

var extensionSuffixes = map[Extension]string{
	Extension9:  "add9",
	Extension11: "add11",
	Extension13: "add13",
}

// Chord is a root pitch class, a quality, and an ordered extension set.
// Value type; chords are compared by symbol.
type Chord struct {
	Root       PitchClass
	Quality    Quality
	Extensions []Extension
}

// IsSeventh reports whether the quality already contains a seventh.
func (q Quality) IsSeventh() bool {
	return q >= QualityMajor7
}

// Symbol renders the lead-sheet symbol, e.g. "Cmaj7", "G7", "Bm7b5".
func (c Chord) Symbol() string {
	s := c.Root.String() + qualitySuffixes[c.Quality]
	for _, ext := range c.Extensions {
		s += extensionSuffixes[ext]
	}
	return s
}

// PitchClasses resolves the sounding pitch classes, root first.
// Display-only: the planner never searches over individual tones.
func (c Chord) PitchClasses() []PitchClass {
	intervals := qualityIntervals[c.Quality]
	out := make([]PitchClass, 0, len(intervals)+len(c.Extensions))
	for _, step := range intervals {
		out = append(out, c.Root.Transpose(step))
	}
	for _, ext := range c.Extensions {
		out = append(out, c.Root.Transpose(extensionIntervals[ext]))
	}
	return out
}

func (c Chord) sameAs(other Chord) bool {
	return c.Symbol() == other.Symbol()
}

// Complexity is the normalized extension/alteration measure in [0,1]:
// plain triads score 0, sevenths 0.4, and each tension adds 0.3.
func (c Chord) Complexity() float64 {
	score := 0.0
	if c.Quality.IsSeventh() {
		score = 0.4
	}
	score += 0.3 * float64(len(c.Extensions))
	if score > 1 {
		score = 1
	}
	return score
}
