package theory

// FunctionKind buckets a chord's tonal role inside a key.
type FunctionKind int

const (
	FunctionTonic FunctionKind = iota
	FunctionSupertonic
	FunctionMediant
	FunctionSubdominant
	FunctionDominant
	FunctionSubmediant
	FunctionLeadingTone
	// FunctionChromatic marks roots outside the diatonic scale
	// (secondary dominants, tritone substitutes, borrowed roots).
	FunctionChromatic
)

var functionNames = map[FunctionKind]string{
	FunctionTonic:       "tonic",
	FunctionSupertonic:  "supertonic",
	FunctionMediant:     "mediant",
	FunctionSubdominant: "subdominant",
	FunctionDominant:    "dominant",
	FunctionSubmediant:  "submediant",
	FunctionLeadingTone: "leading_tone",
	FunctionChromatic:   "chromatic",
}

var degreeFunctions = [7]FunctionKind{
	FunctionTonic,
	FunctionSupertonic,
	FunctionMediant,
	FunctionSubdominant,
	FunctionDominant,
	FunctionSubmediant,
	FunctionLeadingTone,
}

func (f FunctionKind) String() string {
	return functionNames[f]
}

// ClassifyFunction resolves the harmonic function of a chord root in a key.
// A dominant-quality chord rooted a fifth above any diatonic degree still
// classifies by its root; chromatic roots bucket as FunctionChromatic.
func ClassifyFunction(chord Chord, key Key) FunctionKind {
	degree, ok := key.DegreeOf(chord.Root)
	if !ok {
		return FunctionChromatic
	}
	return degreeFunctions[degree-1]
}

var romanNumerals = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}
var romanNumeralsLower = [7]string{"i", "ii", "iii", "iv", "v", "vi", "vii"}

// Numeral renders the scale-degree numeral of a chord in a key, cased by
// quality ("IV", "ii", "vii°", "V7"). Chromatic roots render as the chord
// symbol prefixed with "?": callers surface those as-is.
func Numeral(chord Chord, key Key) string {
	degree, ok := key.DegreeOf(chord.Root)
	if !ok {
		return "?" + chord.Symbol()
	}
	var base string
	switch chord.Quality {
	case QualityMinor, QualityMinor7:
		base = romanNumeralsLower[degree-1]
	case QualityDiminished, QualityDiminished7, QualityHalfDiminished7:
		base = romanNumeralsLower[degree-1] + "°"
	default:
		base = romanNumerals[degree-1]
	}
	if chord.Quality.IsSeventh() {
		base += "7"
	}
	return base
}
