package planner

import "github.com/lokrain/harmonia-api/internal/theory"

// HarmonicState is the search state carried across depth: the active key
// (after any modulations), the chord just placed, and the last two chord
// roots for voice-leading distance. Value type; expansions copy it.
type HarmonicState struct {
	Bar         int
	Key         theory.Key
	Chord       theory.Chord
	Degree      int
	LastRoot    theory.PitchClass
	PrevRoot    theory.PitchClass
	HasLast     bool
	HasPrev     bool
	Modulations int
}

// advance produces the successor state after choosing a candidate.
func (s HarmonicState) advance(cand theory.Candidate) HarmonicState {
	next := HarmonicState{
		Bar:         s.Bar + 1,
		Key:         s.Key,
		Chord:       cand.Chord,
		Degree:      cand.Degree,
		LastRoot:    cand.Chord.Root,
		PrevRoot:    s.LastRoot,
		HasLast:     true,
		HasPrev:     s.HasLast,
		Modulations: s.Modulations,
	}
	if cand.TargetKey != nil {
		next.Key = *cand.TargetKey
		next.Modulations++
	}
	return next
}

// pathArena is the append-only arena of chord choices. Beam nodes hold an
// index into it instead of copying their full history, so path storage is
// linear in total survivors rather than quadratic in depth.
type pathArena struct {
	entries []pathEntry
}

type pathEntry struct {
	parent int32
	choice Choice
}

// Choice is one finalized bar decision: the candidate taken, the key it
// was taken in, and the step cost it contributed.
type Choice struct {
	Candidate theory.Candidate
	Key       theory.Key
	StepCost  float64
}

const noParent int32 = -1

func (a *pathArena) append(parent int32, choice Choice) int32 {
	a.entries = append(a.entries, pathEntry{parent: parent, choice: choice})
	return int32(len(a.entries) - 1)
}

// walk reconstructs the root-to-leaf choice sequence for an arena index.
func (a *pathArena) walk(index int32) []Choice {
	var depth int
	for i := index; i != noParent; i = a.entries[i].parent {
		depth++
	}
	out := make([]Choice, depth)
	for i := index; i != noParent; i = a.entries[i].parent {
		depth--
		out[depth] = a.entries[i].choice
	}
	return out
}

// BeamNode is one live partial plan: its search state, its arena back
// reference, and its cumulative cost. Owned exclusively by the beam.
type BeamNode struct {
	state     HarmonicState
	pathIndex int32
	cost      float64
}
