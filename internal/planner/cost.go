package planner

import (
	"github.com/lokrain/harmonia-api/internal/templates"
	"github.com/lokrain/harmonia-api/internal/theory"
)

// Cost model weights. Each term is normalized to roughly [0,1] before its
// weight applies, so the profile sliders trade the terms off against each
// other on a common scale.
const (
	weightModulationBase   = 0.8
	weightCadenceAuthentic = 0.9
	weightCadencePlagal    = 0.3
	weightTurnaround       = 0.3
	weightComplexityOver   = 0.5
)

// costModel scores one candidate transition. Stateless apart from the
// profile; shared across the per-depth workers.
type costModel struct {
	profile StyleProfile
}

// stepCost is the non-negative cost of appending cand to state's path when
// filling slot. Lower is better. The returned unconventionality component
// is reported separately for tie-breaking.
func (m *costModel) stepCost(state HarmonicState, cand theory.Candidate, slot templates.BarSlot) (cost, unconv float64) {
	cost += m.smoothness(state, cand)

	unconv = m.unconventionality(cand)
	cost += unconv

	if cand.Kind == theory.KindModulation {
		cost += weightModulationBase * (1 - 0.75*m.profile.ModulationAggressive)
	}

	if over := cand.Complexity - m.profile.MaxChordComplexity; over > 0 {
		cost += weightComplexityOver * over
	}

	switch slot.Role {
	case templates.RoleCadence:
		cost -= m.cadenceFit(state, cand)
	case templates.RoleTurnaround:
		cost -= m.turnaroundFit(state, cand)
	}

	if cost < 0 {
		cost = 0
	}
	return cost, unconv
}

// smoothness penalizes large root motion against the previous one or two
// chords, scaled by voice-leading strictness. Root intervals are already
// folded to [0,6]; dividing by 6 normalizes the worst single hop to 1.
func (m *costModel) smoothness(state HarmonicState, cand theory.Candidate) float64 {
	if !state.HasLast {
		return 0
	}
	motion := float64(theory.RootMotion(state.LastRoot, cand.Chord.Root))
	if state.HasPrev {
		motion += 0.3 * float64(theory.RootMotion(state.PrevRoot, cand.Chord.Root))
	}
	return m.profile.VoiceLeadingStrictness * motion / 6
}

// unconventionality charges for non-idiomatic choices. Risk level buys the
// penalty down: at risk 1 exotic choices are free, at risk 0 they pay
// their full commonality rank.
func (m *costModel) unconventionality(cand theory.Candidate) float64 {
	return (1 - m.profile.RiskLevel) * cand.Commonality
}

// cadenceFit rewards a slot resolution that forms a recognized strong
// cadence with the preceding chord. The authentic weight must stay above
// the plagal weight by more than the smoothness differential between the
// supertonic and dominant closes at preset strictness, or the cheaper
// root motion of ii-I outbids the ideal V-I resolution.
func (m *costModel) cadenceFit(state HarmonicState, cand theory.Candidate) float64 {
	switch theory.ClassifyCadence(state.Chord, cand.Chord, state.Key) {
	case theory.CadenceAuthentic:
		return weightCadenceAuthentic
	case theory.CadencePlagal:
		return weightCadencePlagal
	default:
		return 0
	}
}

// turnaroundFit rewards dominant-function preparation in turnaround slots.
func (m *costModel) turnaroundFit(state HarmonicState, cand theory.Candidate) float64 {
	if theory.ClassifyFunction(cand.Chord, state.Key) == theory.FunctionDominant {
		return weightTurnaround
	}
	return 0
}
