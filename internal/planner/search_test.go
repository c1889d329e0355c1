package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokrain/harmonia-api/internal/templates"
	"github.com/lokrain/harmonia-api/internal/theory"
)

func newTestService() *Service {
	return NewService(templates.NewProvider(nil), nil)
}

func plainDiatonicProfile() StyleProfile {
	profile := DefaultProfile()
	profile.RiskLevel = 0
	profile.ReharmDepth = 0
	profile.ModulationAggressive = 0
	return profile
}

func TestPlanCompactForm(t *testing.T) {
	svc := newTestService()

	plan, err := svc.Plan(context.Background(), Request{
		Tonic:      "C",
		Mode:       "major",
		TemplateID: "aaba_8",
		Profile:    plainDiatonicProfile(),
	})
	require.NoError(t, err)

	require.Len(t, plan.Bars, 8)
	assert.Equal(t, "C major", plan.Key)
	assert.Equal(t, 8, plan.Template.Bars)
	assert.Len(t, plan.Phrases, 4)

	// The opening bar establishes the tonic.
	assert.Equal(t, "C", plan.Bars[0].Chord)
	assert.Equal(t, "I", plan.Bars[0].Numeral)

	// Zero reharm depth and risk leave only literal diatonic triads.
	for _, bar := range plan.Bars {
		assert.Equal(t, "literal", bar.Kind, "bar %d", bar.Bar)
		assert.NotEqual(t, "chromatic", bar.Function, "bar %d", bar.Bar)
		assert.Equal(t, "C major", bar.Key, "bar %d", bar.Bar)
	}

	// The final phrase closes on the tonic with a strong cadence.
	last := plan.Bars[len(plan.Bars)-1]
	assert.Equal(t, "C", last.Chord)
	require.NotEmpty(t, plan.Cadences)
	final := plan.Cadences[len(plan.Cadences)-1]
	assert.Equal(t, 8, final.Bar)
	assert.Equal(t, "authentic", final.Cadence)
}

func TestPlanBalancedForm(t *testing.T) {
	svc := newTestService()

	plan, err := svc.Plan(context.Background(), Request{
		Tonic:      "C",
		Mode:       "major",
		TemplateID: "aaba_8",
		Profile:    DefaultProfile(),
	})
	require.NoError(t, err)

	require.Len(t, plan.Bars, 8)
	require.Len(t, plan.Phrases, 4)
	for _, phrase := range plan.Phrases {
		assert.Equal(t, 2, phrase.EndBar-phrase.StartBar+1, phrase.Label)
	}

	// The plan opens on the tonic triad and the last phrase closes back on
	// it through a dominant, so the final cadence reads authentic.
	assert.Equal(t, "C", plan.Bars[0].Chord)
	assert.Equal(t, "C", plan.Bars[7].Chord)

	require.NotEmpty(t, plan.Cadences)
	final := plan.Cadences[len(plan.Cadences)-1]
	assert.Equal(t, 8, final.Bar)
	assert.Equal(t, "authentic", final.Cadence)
}

func TestPlanIsDeterministic(t *testing.T) {
	svc := newTestService()
	req := Request{
		Tonic:      "Eb",
		Mode:       "major",
		TemplateID: "pop_16",
		Profile:    DefaultProfile(),
	}

	first, err := svc.Plan(context.Background(), req)
	require.NoError(t, err)

	for run := 0; run < 3; run++ {
		again, err := svc.Plan(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, again.Bars, len(first.Bars))
		for i := range first.Bars {
			assert.Equal(t, first.Bars[i].Chord, again.Bars[i].Chord, "run %d bar %d", run, i+1)
			assert.Equal(t, first.Bars[i].Key, again.Bars[i].Key, "run %d bar %d", run, i+1)
		}
		assert.Equal(t, first.TotalCost, again.TotalCost, "run %d", run)
	}
}

func TestPlanGreedyBeam(t *testing.T) {
	svc := newTestService()
	profile := DefaultProfile()
	profile.BeamWidth = 1

	plan, err := svc.Plan(context.Background(), Request{
		Tonic:      "G",
		Mode:       "minor",
		TemplateID: "ballad_8",
		Profile:    profile,
	})
	require.NoError(t, err)
	assert.Len(t, plan.Bars, 8)
}

func TestPlanMinorKey(t *testing.T) {
	svc := newTestService()

	plan, err := svc.Plan(context.Background(), Request{
		Tonic:      "A",
		Mode:       "minor",
		TemplateID: "aaba_8",
		Profile:    plainDiatonicProfile(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Am", plan.Bars[0].Chord)
	assert.Equal(t, "i", plan.Bars[0].Numeral)
}

func TestPlanInsufficientDepth(t *testing.T) {
	svc := newTestService()
	profile := DefaultProfile()
	profile.MaxDepth = 4

	_, err := svc.Plan(context.Background(), Request{
		Tonic:      "C",
		Mode:       "major",
		TemplateID: "aaba_8",
		Profile:    profile,
	})
	requireKind(t, err, KindInsufficientDepth)
}

func TestPlanRequestValidation(t *testing.T) {
	svc := newTestService()

	_, err := svc.Plan(context.Background(), Request{
		Tonic: "H", Mode: "major", TemplateID: "aaba_8", Profile: DefaultProfile(),
	})
	requireKind(t, err, KindUnknownKey)

	_, err = svc.Plan(context.Background(), Request{
		Tonic: "C", Mode: "major", TemplateID: "nope", Profile: DefaultProfile(),
	})
	requireKind(t, err, KindUnknownTemplate)

	bad := DefaultProfile()
	bad.RiskLevel = 3
	_, err = svc.Plan(context.Background(), Request{
		Tonic: "C", Mode: "major", TemplateID: "aaba_8", Profile: bad,
	})
	requireKind(t, err, KindInvalidStyleProfile)
}

func TestPlanCancelled(t *testing.T) {
	svc := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Plan(ctx, Request{
		Tonic: "C", Mode: "major", TemplateID: "jazz_aaba_32", Profile: DefaultProfile(),
	})
	requireKind(t, err, KindCancelled)
}

func TestPlanExplainModes(t *testing.T) {
	svc := newTestService()

	base := Request{Tonic: "F", Mode: "major", TemplateID: "aaba_8"}

	none := base
	none.Profile = DefaultProfile()
	none.Profile.Explain = ExplainNone
	plan, err := svc.Plan(context.Background(), none)
	require.NoError(t, err)
	assert.Empty(t, plan.Trace)

	brief := base
	brief.Profile = DefaultProfile()
	brief.Profile.Explain = ExplainBrief
	plan, err = svc.Plan(context.Background(), brief)
	require.NoError(t, err)
	require.Len(t, plan.Trace, 8)
	for i, frame := range plan.Trace {
		assert.Equal(t, i+1, frame.Bar)
		assert.Len(t, frame.Beam, 1, "brief mode records only the winning choice")
		assert.Equal(t, plan.Bars[i].Chord, frame.Beam[0].Chord)
	}

	full := base
	full.Profile = DefaultProfile()
	full.Profile.Explain = ExplainFull
	plan, err = svc.Plan(context.Background(), full)
	require.NoError(t, err)
	require.Len(t, plan.Trace, 8)
	for _, frame := range plan.Trace {
		assert.NotEmpty(t, frame.Beam)
		assert.LessOrEqual(t, len(frame.Beam), full.Profile.BeamWidth)
		for i := 1; i < len(frame.Beam); i++ {
			assert.GreaterOrEqual(t, frame.Beam[i].CostSoFar, frame.Beam[i-1].CostSoFar,
				"beam snapshots stay cost-ordered")
		}
	}
}

func TestPlanModulationSlots(t *testing.T) {
	svc := newTestService()

	eager := DefaultProfile()
	eager.ModulationAggressive = 1
	eager.ReharmDepth = 0.6

	plan, err := svc.Plan(context.Background(), Request{
		Tonic: "C", Mode: "major", TemplateID: "pop_16", Profile: eager,
	})
	require.NoError(t, err)

	// Modulation candidates only appear at modulation slots, so key changes
	// can only land there.
	for i, bar := range plan.Bars {
		if bar.Kind != "modulation" {
			continue
		}
		assert.Equal(t, "modulation", bar.Role, "bar %d modulated outside a modulation slot", i+1)
	}
}

func TestSearchStepCostsSumToTotal(t *testing.T) {
	svc := newTestService()

	plan, err := svc.Plan(context.Background(), Request{
		Tonic: "D", Mode: "major", TemplateID: "blues_12", Profile: DefaultProfile(),
	})
	require.NoError(t, err)

	sum := 0.0
	for _, bar := range plan.Bars {
		assert.GreaterOrEqual(t, bar.Cost, 0.0)
		sum += bar.Cost
	}
	assert.InDelta(t, plan.TotalCost, sum, 1e-9)
}

func TestRankExpansionsTieBreak(t *testing.T) {
	chord := func(label string) theory.Chord {
		pc, err := theory.ParsePitchClass(label)
		require.NoError(t, err)
		return theory.Chord{Root: pc, Quality: theory.QualityMajor}
	}
	exp := func(cost, unconv float64, mods int, root string) expansion {
		return expansion{
			cand:   theory.Candidate{Chord: chord(root)},
			state:  HarmonicState{Modulations: mods},
			cost:   cost,
			unconv: unconv,
		}
	}

	exps := []expansion{
		exp(0.5, 0.0, 0, "C"),
		exp(0.2, 0.3, 1, "G"),
		exp(0.2, 0.3, 1, "C"),
		exp(0.2, 0.3, 0, "G"),
		exp(0.2, 0.1, 2, "G"),
	}
	rankExpansions(exps)

	// Cost first, then the step's own unconventionality penalty, then
	// modulation count, then chord symbol.
	want := []expansion{
		exp(0.2, 0.1, 2, "G"),
		exp(0.2, 0.3, 0, "G"),
		exp(0.2, 0.3, 1, "C"),
		exp(0.2, 0.3, 1, "G"),
		exp(0.5, 0.0, 0, "C"),
	}
	require.Len(t, exps, len(want))
	for i := range want {
		assert.Equal(t, want[i].cost, exps[i].cost, "rank %d", i)
		assert.Equal(t, want[i].unconv, exps[i].unconv, "rank %d", i)
		assert.Equal(t, want[i].state.Modulations, exps[i].state.Modulations, "rank %d", i)
		assert.Equal(t, want[i].cand.Chord.Symbol(), exps[i].cand.Chord.Symbol(), "rank %d", i)
	}
}

type captureRecorder struct {
	completedBars int
	completedBeam int
	completed     int
	failed        []string
}

func (r *captureRecorder) PlanCompleted(bars, beamWidth int, _ time.Duration) {
	r.completed++
	r.completedBars = bars
	r.completedBeam = beamWidth
}

func (r *captureRecorder) PlanFailed(kind string) {
	r.failed = append(r.failed, kind)
}

func TestPlanRecordsMetrics(t *testing.T) {
	rec := &captureRecorder{}
	svc := NewService(templates.NewProvider(nil), rec)

	_, err := svc.Plan(context.Background(), Request{
		Tonic: "C", Mode: "major", TemplateID: "aaba_8", Profile: DefaultProfile(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.completed)
	assert.Equal(t, 8, rec.completedBars)
	assert.Equal(t, DefaultProfile().BeamWidth, rec.completedBeam)

	shallow := DefaultProfile()
	shallow.MaxDepth = 2
	_, err = svc.Plan(context.Background(), Request{
		Tonic: "C", Mode: "major", TemplateID: "aaba_8", Profile: shallow,
	})
	requireKind(t, err, KindInsufficientDepth)
	assert.Equal(t, []string{string(KindInsufficientDepth)}, rec.failed)
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	planErr, ok := err.(*PlanError)
	require.True(t, ok, "expected *PlanError, got %T", err)
	assert.Equal(t, kind, planErr.Kind)
}
