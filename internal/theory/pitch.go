package theory

import (
	"fmt"
	"strings"
)

// PitchClass is a 12-TET pitch class in the range 0-11 (C = 0).
type PitchClass int

// Canonical labels used for chord symbols and key names.
// Mixed sharp/flat spelling follows common lead-sheet convention.
var pitchClassLabels = [12]string{
	"C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B",
}

var noteLetterSemitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

func (p PitchClass) String() string {
	return pitchClassLabels[((int(p)%12)+12)%12]
}

// Transpose moves the pitch class by the given number of semitones (may be negative).
func (p PitchClass) Transpose(semitones int) PitchClass {
	return PitchClass((((int(p) + semitones) % 12) + 12) % 12)
}

// ParsePitchClass parses tonic spellings like "C", "F#", "Bb", "C##".
// Accidentals stack, so "Cbb" resolves to Bb.
func ParsePitchClass(input string) (PitchClass, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, fmt.Errorf("pitch class cannot be empty")
	}

	letter := strings.ToUpper(trimmed[:1])[0]
	base, ok := noteLetterSemitones[letter]
	if !ok {
		return 0, fmt.Errorf("pitch class must begin with A-G, got %q", trimmed)
	}

	offset := 0
	for i := 1; i < len(trimmed); i++ {
		switch trimmed[i] {
		case '#':
			offset++
		case 'b':
			offset--
		default:
			return 0, fmt.Errorf("unrecognized accidental %q in %q (use # or b)", trimmed[i], trimmed)
		}
	}

	return PitchClass(0).Transpose(base + offset), nil
}

// FifthsDistance returns the minimal distance between two pitch classes
// around the circle of fifths (0-6). Used to bound modulation targets.
func FifthsDistance(a, b PitchClass) int {
	// Position around the circle of fifths: semitones * 7 mod 12.
	pa := (int(a) * 7) % 12
	pb := (int(b) * 7) % 12
	diff := ((pa - pb) % 12 + 12) % 12
	if diff > 6 {
		diff = 12 - diff
	}
	return diff
}

// RootMotion returns the smaller of the ascending/descending semitone
// intervals between two roots (0-6). Small values mean smooth motion.
func RootMotion(a, b PitchClass) int {
	diff := ((int(a) - int(b)) % 12 + 12) % 12
	if diff > 6 {
		diff = 12 - diff
	}
	return diff
}
