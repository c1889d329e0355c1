package planner

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/lokrain/harmonia-api/internal/templates"
	"github.com/lokrain/harmonia-api/internal/theory"
)

// expansion is one scored candidate transition, pending beam selection.
// Cost is cumulative along the path; unconv is the step's own
// unconventionality penalty, kept for tie-breaking. The arena entry is
// only created if the expansion survives the cut.
type expansion struct {
	parent int
	cand   theory.Candidate
	state  HarmonicState
	cost   float64
	unconv float64
}

// searchResult is the winning path plus whatever trace the recorder kept.
type searchResult struct {
	choices []Choice
	cost    float64
	trace   []TraceFrame
}

// search runs beam search over the template's flattened bar sequence.
// Depths run strictly in order; within one depth the live nodes expand in
// parallel and merge back in node order, so results are deterministic for
// a given (key, template, profile) triple.
func search(ctx context.Context, key theory.Key, tmpl *templates.Template, profile StyleProfile) (*searchResult, error) {
	totalBars := tmpl.TotalBars()
	if profile.MaxDepth < totalBars {
		return nil, planErrf(KindInsufficientDepth,
			"template %q needs %d bars but max_depth is %d", tmpl.ID, totalBars, profile.MaxDepth)
	}

	gen := &generator{profile: profile}
	model := &costModel{profile: profile}
	rec := newRecorder(profile.Explain)
	arena := &pathArena{entries: make([]pathEntry, 0, totalBars*profile.BeamWidth)}

	beam := []BeamNode{{
		state:     HarmonicState{Key: key},
		pathIndex: noParent,
	}}

	for depth := 0; depth < totalBars; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, planErr(KindCancelled, err)
		}
		slot, _ := tmpl.Slot(depth)

		expansions, err := expandBeam(ctx, beam, slot, gen, model)
		if err != nil {
			return nil, planErr(KindCancelled, err)
		}
		if len(expansions) == 0 {
			return nil, &PlanError{Kind: KindNoViableContinuation, Bar: depth}
		}

		rankExpansions(expansions)
		if len(expansions) > profile.BeamWidth {
			expansions = expansions[:profile.BeamWidth]
		}

		next := make([]BeamNode, 0, len(expansions))
		for _, e := range expansions {
			idx := arena.append(beam[e.parent].pathIndex, Choice{
				Candidate: e.cand,
				Key:       e.state.Key,
				StepCost:  e.cost - beam[e.parent].cost,
			})
			next = append(next, BeamNode{
				state:     e.state,
				pathIndex: idx,
				cost:      e.cost,
			})
		}
		beam = next
		rec.depth(depth+1, beam, arena)
	}

	winner := beam[0]
	choices := arena.walk(winner.pathIndex)
	rec.winner(choices)

	return &searchResult{
		choices: choices,
		cost:    winner.cost,
		trace:   rec.trace(),
	}, nil
}

// expandBeam fans the live nodes out across workers and merges the scored
// expansions back in node order. Worker output lands in a node-indexed
// slice so the merge never depends on scheduling.
func expandBeam(ctx context.Context, beam []BeamNode, slot templates.BarSlot, gen *generator, model *costModel) ([]expansion, error) {
	perNode := make([][]expansion, len(beam))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.GOMAXPROCS(0))
	for i := range beam {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			node := beam[i]
			cands := gen.expand(node.state, slot)
			exps := make([]expansion, 0, len(cands))
			for _, cand := range cands {
				step, unconv := model.stepCost(node.state, cand, slot)
				exps = append(exps, expansion{
					parent: i,
					cand:   cand,
					state:  node.state.advance(cand),
					cost:   node.cost + step,
					unconv: unconv,
				})
			}
			perNode[i] = exps
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	var merged []expansion
	for _, exps := range perNode {
		merged = append(merged, exps...)
	}
	return merged, nil
}

// rankExpansions orders candidates best-first with a total tie-break:
// cost, then the step's unconventionality penalty, then modulation count,
// then the chord symbol lexicographically. The final rung makes the order
// a strict total order so equal-cost runs cannot flap between builds.
func rankExpansions(exps []expansion) {
	sort.SliceStable(exps, func(a, b int) bool {
		ea, eb := exps[a], exps[b]
		if ea.cost != eb.cost {
			return ea.cost < eb.cost
		}
		if ea.unconv != eb.unconv {
			return ea.unconv < eb.unconv
		}
		if ea.state.Modulations != eb.state.Modulations {
			return ea.state.Modulations < eb.state.Modulations
		}
		return ea.cand.Chord.Symbol() < eb.cand.Chord.Symbol()
	})
}
