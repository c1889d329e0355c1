package planner

import (
	"github.com/lokrain/harmonia-api/internal/templates"
	"github.com/lokrain/harmonia-api/internal/theory"
)

// Plan is the finished arrangement: one chord per bar, phrase and cadence
// summaries, and the explain trace when the profile asked for one.
type Plan struct {
	Template    templates.Summary `json:"template"`
	Key         string            `json:"key"`
	Style       StyleProfile      `json:"style"`
	ExplainMode ExplainMode       `json:"explain_mode"`
	TotalCost   float64           `json:"total_cost"`
	Bars        []BarPlan         `json:"bars"`
	Phrases     []PhrasePlan      `json:"phrases"`
	Cadences    []CadencePlan     `json:"cadences"`
	Trace       []TraceFrame      `json:"trace,omitempty"`
}

// BarPlan is one bar of the arrangement. Bar numbers are 1-indexed; Key is
// the key the bar sounds in, which shifts mid-plan across modulations.
type BarPlan struct {
	Bar          int      `json:"bar"`
	Phrase       string   `json:"phrase"`
	Beats        int      `json:"beats"`
	Role         string   `json:"role"`
	Chord        string   `json:"chord"`
	Numeral      string   `json:"numeral"`
	Function     string   `json:"function"`
	Kind         string   `json:"kind"`
	Key          string   `json:"key"`
	PitchClasses []string `json:"pitch_classes"`
	Cost         float64  `json:"cost"`
}

// PhrasePlan summarizes one phrase span and how it closes.
type PhrasePlan struct {
	Label    string `json:"label"`
	StartBar int    `json:"start_bar"`
	EndBar   int    `json:"end_bar"`
	Cadence  string `json:"cadence"`
}

// CadencePlan is one classified cadence at a cadence slot.
type CadencePlan struct {
	Bar     int    `json:"bar"`
	Phrase  string `json:"phrase"`
	Cadence string `json:"cadence"`
}

// assemble turns the winning choice sequence into the response plan.
func assemble(key theory.Key, tmpl *templates.Template, source string, profile StyleProfile, result *searchResult) *Plan {
	plan := &Plan{
		Template:    templates.Summarize(tmpl, source),
		Key:         key.Label(),
		Style:       profile,
		ExplainMode: profile.Explain,
		TotalCost:   result.cost,
		Bars:        make([]BarPlan, 0, len(result.choices)),
		Trace:       result.trace,
	}
	if plan.ExplainMode == "" {
		plan.ExplainMode = ExplainNone
	}

	for i, choice := range result.choices {
		slot, _ := tmpl.Slot(i)
		phrase, _, _ := tmpl.PhraseAt(i)
		chord := choice.Candidate.Chord
		pcs := chord.PitchClasses()
		names := make([]string, len(pcs))
		for j, pc := range pcs {
			names[j] = pc.String()
		}
		plan.Bars = append(plan.Bars, BarPlan{
			Bar:          i + 1,
			Phrase:       phrase.Label,
			Beats:        slot.Beats,
			Role:         string(slot.Role),
			Chord:        chord.Symbol(),
			Numeral:      theory.Numeral(chord, choice.Key),
			Function:     theory.ClassifyFunction(chord, choice.Key).String(),
			Kind:         choice.Candidate.Kind.String(),
			Key:          choice.Key.Label(),
			PitchClasses: names,
			Cost:         choice.StepCost,
		})
	}

	plan.Phrases, plan.Cadences = summarizePhrases(tmpl, result.choices)
	return plan
}

// summarizePhrases walks the phrase spans, classifying the closing chord
// pair of each phrase that ends in a cadence slot. Mid-phrase cadence
// slots classify too; phrases without one report "none".
func summarizePhrases(tmpl *templates.Template, choices []Choice) ([]PhrasePlan, []CadencePlan) {
	var phrases []PhrasePlan
	var cadences []CadencePlan

	start := 0
	for _, p := range tmpl.Phrases {
		end := start + len(p.Slots)
		summary := PhrasePlan{
			Label:    p.Label,
			StartBar: start + 1,
			EndBar:   end,
			Cadence:  theory.CadenceNone.String(),
		}
		for offset, slot := range p.Slots {
			bar := start + offset
			if slot.Role != templates.RoleCadence || bar == 0 || bar >= len(choices) {
				continue
			}
			kind := theory.ClassifyCadence(
				choices[bar-1].Candidate.Chord,
				choices[bar].Candidate.Chord,
				choices[bar].Key,
			)
			cadences = append(cadences, CadencePlan{
				Bar:     bar + 1,
				Phrase:  p.Label,
				Cadence: kind.String(),
			})
			summary.Cadence = kind.String()
		}
		phrases = append(phrases, summary)
		start = end
	}
	return phrases, cadences
}
