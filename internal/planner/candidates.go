package planner

import (
	"github.com/lokrain/harmonia-api/internal/templates"
	"github.com/lokrain/harmonia-api/internal/theory"
)

// modulationDistance is the reharmonization distance charged to pivoting
// into a neighboring key, between a borrowed chord and a tritone sub.
const modulationDistance = 0.5

// generator expands one search state into the chord candidates admissible
// for the next bar slot. It is stateless apart from the profile, so the
// per-depth workers can share one instance without locking.
type generator struct {
	profile StyleProfile
}

// expand lists the candidates for the slot following state, in the
// deterministic order the tie-break contract depends on: degrees in
// successor order, kinds in vocabulary order, modulations last.
func (g *generator) expand(state HarmonicState, slot templates.BarSlot) []theory.Candidate {
	var out []theory.Candidate
	switch slot.Role {
	case templates.RoleCadence:
		out = g.cadence(state)
	case templates.RoleTurnaround:
		out = g.degrees(state.Key, theory.TurnaroundDegrees())
	case templates.RoleModulation:
		out = g.degrees(state.Key, theory.NextDegrees(state.Degree))
		out = append(out, g.modulations(state)...)
	default:
		out = g.degrees(state.Key, theory.NextDegrees(state.Degree))
	}
	return dedupe(out)
}

// degrees collects the filtered vocabulary across an ordered degree list.
func (g *generator) degrees(key theory.Key, degrees []int) []theory.Candidate {
	var out []theory.Candidate
	for _, degree := range degrees {
		for _, cand := range theory.CandidatesForDegree(key, degree) {
			if g.admits(cand) {
				out = append(out, cand)
			}
		}
	}
	return out
}

// cadence restricts the vocabulary to resolution degrees and to the
// literal triad or diatonic seventh. Chromatic substitutions never close
// a phrase.
func (g *generator) cadence(state HarmonicState) []theory.Candidate {
	prevFunction := theory.ClassifyFunction(state.Chord, state.Key)
	var out []theory.Candidate
	for _, degree := range theory.ResolutionDegrees(prevFunction) {
		for _, cand := range theory.CandidatesForDegree(state.Key, degree) {
			if cand.Distance > distanceCadenceMax {
				continue
			}
			if g.admits(cand) {
				out = append(out, cand)
			}
		}
	}
	return out
}

// distanceCadenceMax admits the literal triad and the diatonic seventh in
// cadence slots, nothing more distant.
const distanceCadenceMax = 0.1

// modulations produces pivot candidates: the tonic triad of each key
// within the modulation radius. Aggressiveness gates both whether any are
// offered and how far the radius reaches.
func (g *generator) modulations(state HarmonicState) []theory.Candidate {
	aggr := g.profile.ModulationAggressive
	if aggr <= 0 {
		return nil
	}
	radius := 1
	if aggr >= 0.5 {
		radius = 2
	}
	var out []theory.Candidate
	for _, target := range theory.ModulationTargets(state.Key, radius) {
		if target == state.Key {
			continue
		}
		triad, ok := target.DiatonicTriad(1)
		if !ok {
			continue
		}
		cand := theory.Candidate{
			Chord:       triad,
			Kind:        theory.KindModulation,
			Degree:      1,
			Distance:    modulationDistance,
			Complexity:  triad.Complexity(),
			Commonality: 0.5,
			TargetKey:   &target,
		}
		if g.admits(cand) {
			out = append(out, cand)
		}
	}
	return out
}

// admits applies the profile filters. Literal chords are exempt from the
// reharm distance gate so a zero reharm depth still yields plain diatonic
// progressions instead of a dead search.
func (g *generator) admits(cand theory.Candidate) bool {
	if cand.Complexity > g.profile.MaxChordComplexity {
		return false
	}
	if cand.Kind == theory.KindLiteral {
		return true
	}
	return cand.Distance <= g.profile.ReharmDepth
}

// dedupe drops later candidates that spell the same chord in the same key,
// keeping first-seen order. Distinct degrees can converge on one symbol
// (a tritone sub of one degree matching a secondary dominant of another).
func dedupe(cands []theory.Candidate) []theory.Candidate {
	if len(cands) < 2 {
		return cands
	}
	seen := make(map[string]bool, len(cands))
	out := cands[:0]
	for _, cand := range cands {
		key := cand.Chord.Symbol()
		if cand.TargetKey != nil {
			key += "@" + cand.TargetKey.Label()
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cand)
	}
	return out
}
