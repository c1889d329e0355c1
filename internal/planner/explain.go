package planner

import "github.com/lokrain/harmonia-api/internal/theory"

// TraceFrame is one depth of the explain trace: the bar just filled and
// the beam (or winning choice, in brief mode) that survived it.
type TraceFrame struct {
	Bar  int         `json:"bar"`
	Beam []TraceNode `json:"beam"`
}

// TraceNode is one surviving partial plan in a trace frame.
type TraceNode struct {
	Chord       string  `json:"chord"`
	Numeral     string  `json:"numeral"`
	Key         string  `json:"key"`
	Kind        string  `json:"kind"`
	CostSoFar   float64 `json:"cost_so_far"`
	StepCost    float64 `json:"step_cost"`
	Modulations int     `json:"modulations"`
}

// recorder accumulates the explain trace during the search. In none mode
// every call is a no-op; in full mode each depth snapshots the surviving
// beam; in brief mode only the final winning path is recorded.
type recorder struct {
	mode   ExplainMode
	frames []TraceFrame
}

func newRecorder(mode ExplainMode) *recorder {
	return &recorder{mode: mode}
}

// depth snapshots the beam that survived filling the given 1-indexed bar.
// Only meaningful in full mode; the arena indexes stay internal, the
// snapshot carries the node's own chord and running totals.
func (r *recorder) depth(bar int, beam []BeamNode, arena *pathArena) {
	if r.mode != ExplainFull {
		return
	}
	frame := TraceFrame{Bar: bar, Beam: make([]TraceNode, 0, len(beam))}
	for _, node := range beam {
		choice := arena.entries[node.pathIndex].choice
		frame.Beam = append(frame.Beam, TraceNode{
			Chord:       node.state.Chord.Symbol(),
			Numeral:     numeralFor(choice),
			Key:         node.state.Key.Label(),
			Kind:        choice.Candidate.Kind.String(),
			CostSoFar:   node.cost,
			StepCost:    choice.StepCost,
			Modulations: node.state.Modulations,
		})
	}
	r.frames = append(r.frames, frame)
}

// winner records the winning path as one single-node frame per bar.
// Only meaningful in brief mode; full mode already holds richer frames.
func (r *recorder) winner(choices []Choice) {
	if r.mode != ExplainBrief {
		return
	}
	cumulative := 0.0
	modulations := 0
	for i, choice := range choices {
		cumulative += choice.StepCost
		if choice.Candidate.TargetKey != nil {
			modulations++
		}
		r.frames = append(r.frames, TraceFrame{
			Bar: i + 1,
			Beam: []TraceNode{{
				Chord:       choice.Candidate.Chord.Symbol(),
				Numeral:     numeralFor(choice),
				Key:         choice.Key.Label(),
				Kind:        choice.Candidate.Kind.String(),
				CostSoFar:   cumulative,
				StepCost:    choice.StepCost,
				Modulations: modulations,
			}},
		})
	}
}

func (r *recorder) trace() []TraceFrame {
	return r.frames
}

func numeralFor(choice Choice) string {
	return theory.Numeral(choice.Candidate.Chord, choice.Key)
}
