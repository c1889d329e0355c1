package theory

import (
	"fmt"
	"strings"
)

// Mode is the key mode. Major and minor cover the supported vocabulary;
// minor keys use harmonic-minor treatment on degrees 5 and 7 so that
// dominant-function chords carry a leading tone.
type Mode int

const (
	ModeMajor Mode = iota
	ModeMinor
)

func (m Mode) String() string {
	if m == ModeMinor {
		return "minor"
	}
	return "major"
}

// ParseMode accepts "major"/"minor" (and the short forms "maj"/"min"/"m").
func ParseMode(input string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "major", "maj", "":
		return ModeMajor, nil
	case "minor", "min", "m":
		return ModeMinor, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (expected major or minor)", input)
	}
}

// Key is a tonal center: tonic pitch class plus mode. Immutable.
type Key struct {
	Tonic PitchClass
	Mode  Mode
}

// degreeOffsets holds semitone offsets from the tonic for degrees 1-7.
// Minor uses the harmonic form for the leading tone (degree 7).
var degreeOffsets = map[Mode][7]int{
	ModeMajor: {0, 2, 4, 5, 7, 9, 11},
	ModeMinor: {0, 2, 3, 5, 7, 8, 11},
}

// degreeTriads holds the diatonic triad quality at each degree 1-7.
var degreeTriads = map[Mode][7]Quality{
	ModeMajor: {QualityMajor, QualityMinor, QualityMinor, QualityMajor, QualityMajor, QualityMinor, QualityDiminished},
	ModeMinor: {QualityMinor, QualityDiminished, QualityMajor, QualityMinor, QualityMajor, QualityMajor, QualityDiminished},
}

// degreeSevenths holds the diatonic seventh quality at each degree 1-7.
var degreeSevenths = map[Mode][7]Quality{
	ModeMajor: {QualityMajor7, QualityMinor7, QualityMinor7, QualityMajor7, QualityDominant7, QualityMinor7, QualityHalfDiminished7},
	ModeMinor: {QualityMinor7, QualityHalfDiminished7, QualityMajor7, QualityMinor7, QualityDominant7, QualityMajor7, QualityDiminished7},
}

// NewKey builds a key from a tonic spelling and mode name.
// Returns an error when either part cannot be resolved.
func NewKey(tonic, mode string) (Key, error) {
	pc, err := ParsePitchClass(tonic)
	if err != nil {
		return Key{}, err
	}
	m, err := ParseMode(mode)
	if err != nil {
		return Key{}, err
	}
	return Key{Tonic: pc, Mode: m}, nil
}

// Label renders the key as "C major", "F# minor", etc.
func (k Key) Label() string {
	return k.Tonic.String() + " " + k.Mode.String()
}

// DegreePitch returns the pitch class at the given 1-indexed scale degree.
func (k Key) DegreePitch(degree int) (PitchClass, bool) {
	if degree < 1 || degree > 7 {
		return 0, false
	}
	return k.Tonic.Transpose(degreeOffsets[k.Mode][degree-1]), true
}

// DegreeOf returns the 1-indexed scale degree for a pitch class,
// or false when the pitch class is chromatic in this key.
func (k Key) DegreeOf(pc PitchClass) (int, bool) {
	for i, offset := range degreeOffsets[k.Mode] {
		if k.Tonic.Transpose(offset) == pc {
			return i + 1, true
		}
	}
	return 0, false
}

// DiatonicTriad returns the literal diatonic triad at a degree.
func (k Key) DiatonicTriad(degree int) (Chord, bool) {
	root, ok := k.DegreePitch(degree)
	if !ok {
		return Chord{}, false
	}
	return Chord{Root: root, Quality: degreeTriads[k.Mode][degree-1]}, true
}

// DiatonicSeventh returns the diatonic seventh chord at a degree.
func (k Key) DiatonicSeventh(degree int) (Chord, bool) {
	root, ok := k.DegreePitch(degree)
	if !ok {
		return Chord{}, false
	}
	return Chord{Root: root, Quality: degreeSevenths[k.Mode][degree-1]}, true
}

// Parallel returns the parallel key (same tonic, opposite mode).
func (k Key) Parallel() Key {
	if k.Mode == ModeMajor {
		return Key{Tonic: k.Tonic, Mode: ModeMinor}
	}
	return Key{Tonic: k.Tonic, Mode: ModeMajor}
}

// Relative returns the relative key (shared signature, opposite mode).
func (k Key) Relative() Key {
	if k.Mode == ModeMajor {
		return Key{Tonic: k.Tonic.Transpose(9), Mode: ModeMinor}
	}
	return Key{Tonic: k.Tonic.Transpose(3), Mode: ModeMajor}
}
