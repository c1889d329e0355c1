package theory

// CandidateKind tags how a candidate relates to the literal diatonic chord.
type CandidateKind int

const (
	KindLiteral CandidateKind = iota
	KindSubstitution
	KindModulation
)

var candidateKindNames = map[CandidateKind]string{
	KindLiteral:      "literal",
	KindSubstitution: "substitution",
	KindModulation:   "modulation",
}

func (k CandidateKind) String() string {
	return candidateKindNames[k]
}

// Candidate is one chord option at a scale degree, tagged with the metadata
// the planner's cost model consumes. Distance measures divergence from the
// literal diatonic chord (0 = the literal chord itself); Commonality ranks
// how idiomatic the choice is in common practice (0 = most idiomatic).
type Candidate struct {
	Chord       Chord
	Kind        CandidateKind
	Degree      int
	Distance    float64
	Complexity  float64
	Commonality float64
	// TargetKey is set for modulation candidates: the key the search
	// continues in once the candidate is chosen.
	TargetKey *Key
}

// Substitution distances, on the same scale as StyleProfile.ReharmDepth.
const (
	distanceSeventh      = 0.1
	distanceSecondaryDom = 0.35
	distanceBorrowed     = 0.55
	distanceTritoneSub   = 0.8
)

// degreeCommonality ranks how idiomatic each scale degree is as a target,
// before kind-specific offsets. Derived from common-practice frequency.
var degreeCommonality = [7]float64{0.0, 0.2, 0.4, 0.1, 0.05, 0.25, 0.5}

// degreeSuccessors lists the idiomatic next degrees after each degree,
// ordered most-common-first. Degree 0 (no chord yet) moves to the tonic.
var degreeSuccessors = map[int][]int{
	0: {1},
	1: {4, 5, 2, 6, 3, 7},
	2: {5, 7, 1, 4},
	3: {6, 4, 2},
	4: {5, 1, 2, 7},
	5: {1, 6, 4, 3},
	6: {2, 4, 5, 3},
	7: {1, 3},
}

// NextDegrees returns the idiomatic successor degrees for a progression
// position. The ordering is part of the deterministic candidate order.
func NextDegrees(prevDegree int) []int {
	return degreeSuccessors[prevDegree]
}

// ResolutionDegrees returns the degrees a cadence slot may resolve to,
// given the function of the chord preceding the slot. Dominant-function
// chords resolve to the tonic or deceptively to the submediant; everything
// else closes on the tonic.
func ResolutionDegrees(prevFunction FunctionKind) []int {
	switch prevFunction {
	case FunctionDominant, FunctionLeadingTone:
		return []int{1, 6}
	default:
		return []int{1}
	}
}

// TurnaroundDegrees are the dominant-preparation degrees allowed in
// turnaround slots.
func TurnaroundDegrees() []int {
	return []int{5, 2}
}

// CandidatesForDegree enumerates the chord vocabulary at one scale degree:
// the literal triad, the diatonic seventh, the secondary dominant, the
// parallel-mode borrowed chord, and the tritone substitute. Callers filter
// by distance (reharm depth) and complexity; the full set is always
// returned in deterministic order.
func CandidatesForDegree(key Key, degree int) []Candidate {
	triad, ok := key.DiatonicTriad(degree)
	if !ok {
		return nil
	}
	base := degreeCommonality[degree-1]

	out := make([]Candidate, 0, 5)
	out = append(out, Candidate{
		Chord:       triad,
		Kind:        KindLiteral,
		Degree:      degree,
		Distance:    0,
		Complexity:  triad.Complexity(),
		Commonality: base,
	})

	if seventh, ok := key.DiatonicSeventh(degree); ok {
		out = append(out, Candidate{
			Chord:       seventh,
			Kind:        KindSubstitution,
			Degree:      degree,
			Distance:    distanceSeventh,
			Complexity:  seventh.Complexity(),
			Commonality: clampUnit(base + 0.05),
		})
	}

	// Secondary dominant V7/x: a dominant seventh a fifth above the degree
	// root. Skipped for the tonic (that is just the primary dominant, which
	// has its own degree) and the leading tone (no stable target).
	if degree != 1 && degree != 7 {
		root, _ := key.DegreePitch(degree)
		secondary := Chord{Root: root.Transpose(7), Quality: QualityDominant7}
		out = append(out, Candidate{
			Chord:       secondary,
			Kind:        KindSubstitution,
			Degree:      degree,
			Distance:    distanceSecondaryDom,
			Complexity:  secondary.Complexity(),
			Commonality: clampUnit(base + 0.3),
		})

		// Tritone substitute of that secondary dominant.
		tritone := Chord{Root: root.Transpose(1), Quality: QualityDominant7}
		out = append(out, Candidate{
			Chord:       tritone,
			Kind:        KindSubstitution,
			Degree:      degree,
			Distance:    distanceTritoneSub,
			Complexity:  tritone.Complexity(),
			Commonality: clampUnit(base + 0.6),
		})
	}

	// Borrowed chord: the same degree in the parallel mode, when it
	// actually differs from the literal triad.
	if borrowed, ok := key.Parallel().DiatonicTriad(degree); ok {
		if !borrowed.sameAs(triad) {
			out = append(out, Candidate{
				Chord:       borrowed,
				Kind:        KindSubstitution,
				Degree:      degree,
				Distance:    distanceBorrowed,
				Complexity:  borrowed.Complexity(),
				Commonality: clampUnit(base + 0.45),
			})
		}
	}

	return out
}

// ModulationTargets lists the keys reachable from the current key within
// the given circle-of-fifths radius, ordered nearest first: the relative
// key, then fifths ±1, ±2, ... up to the radius. Deterministic order.
func ModulationTargets(key Key, radius int) []Key {
	if radius < 1 {
		return nil
	}
	targets := []Key{key.Relative()}
	for step := 1; step <= radius; step++ {
		up := Key{Tonic: key.Tonic.Transpose(7 * step), Mode: key.Mode}
		down := Key{Tonic: key.Tonic.Transpose(-7 * step), Mode: key.Mode}
		targets = append(targets, up, down)
	}
	return targets
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
