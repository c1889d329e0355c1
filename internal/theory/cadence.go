package theory

// CadenceKind classifies a closing chord pair at a cadence slot.
type CadenceKind int

const (
	CadenceNone CadenceKind = iota
	CadenceAuthentic
	CadencePlagal
	CadenceDeceptive
	CadenceHalf
)

var cadenceNames = map[CadenceKind]string{
	CadenceNone:      "none",
	CadenceAuthentic: "authentic",
	CadencePlagal:    "plagal",
	CadenceDeceptive: "deceptive",
	CadenceHalf:      "half",
}

func (c CadenceKind) String() string {
	return cadenceNames[c]
}

// ClassifyCadence classifies the (penultimate, final) chord pair in a key:
// dominant-to-tonic is authentic, subdominant-family-to-tonic is plagal,
// dominant-to-submediant is deceptive, and any arrival on the dominant is
// a half cadence.
func ClassifyCadence(prev, last Chord, key Key) CadenceKind {
	prevFn := ClassifyFunction(prev, key)
	lastFn := ClassifyFunction(last, key)

	switch lastFn {
	case FunctionTonic:
		switch prevFn {
		case FunctionDominant, FunctionLeadingTone:
			return CadenceAuthentic
		case FunctionSubdominant, FunctionSupertonic:
			return CadencePlagal
		}
		// Secondary dominants resolving home still close authentically.
		if prevFn == FunctionChromatic && prev.Quality == QualityDominant7 {
			return CadenceAuthentic
		}
	case FunctionSubmediant:
		if prevFn == FunctionDominant || prevFn == FunctionLeadingTone {
			return CadenceDeceptive
		}
	case FunctionDominant:
		return CadenceHalf
	}
	return CadenceNone
}
