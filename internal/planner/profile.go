package planner

import "fmt"

// ExplainMode selects how much of the search the planner records.
type ExplainMode string

const (
	// ExplainNone records nothing.
	ExplainNone ExplainMode = "none"
	// ExplainBrief records one snapshot per bar along the winning path.
	ExplainBrief ExplainMode = "brief"
	// ExplainFull records every surviving beam node at every depth.
	ExplainFull ExplainMode = "full"
)

// StyleProfile is the immutable set of weights steering the search.
// All fractional weights live in [0,1]; construction-time validation is
// the only gate, the search itself never re-checks.
type StyleProfile struct {
	BeamWidth               int         `json:"beam_width"`
	MaxDepth                int         `json:"max_depth"`
	RiskLevel               float64     `json:"risk_level"`
	ReharmDepth             float64     `json:"reharm_depth"`
	VoiceLeadingStrictness  float64     `json:"voice_leading_strictness"`
	ModulationAggressive    float64     `json:"modulation_aggressiveness"`
	MaxChordComplexity      float64     `json:"max_chord_complexity"`
	Explain                 ExplainMode `json:"explain_mode"`
}

// Validate enforces the profile invariants before any search work starts.
func (p StyleProfile) Validate() error {
	if p.BeamWidth < 1 {
		return fmt.Errorf("beam_width must be >= 1, got %d", p.BeamWidth)
	}
	if p.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be >= 1, got %d", p.MaxDepth)
	}
	checks := []struct {
		name  string
		value float64
	}{
		{"risk_level", p.RiskLevel},
		{"reharm_depth", p.ReharmDepth},
		{"voice_leading_strictness", p.VoiceLeadingStrictness},
		{"modulation_aggressiveness", p.ModulationAggressive},
		{"max_chord_complexity", p.MaxChordComplexity},
	}
	for _, c := range checks {
		if c.value < 0 || c.value > 1 {
			return fmt.Errorf("%s must be within [0,1], got %g", c.name, c.value)
		}
	}
	switch p.Explain {
	case ExplainNone, ExplainBrief, ExplainFull, "":
	default:
		return fmt.Errorf("unknown explain_mode %q", p.Explain)
	}
	return nil
}

// Presets keyed by name. The balanced preset is the default profile.
var presets = map[string]StyleProfile{
	"balanced": {
		BeamWidth:              6,
		MaxDepth:               32,
		RiskLevel:              0.5,
		ReharmDepth:            0.4,
		VoiceLeadingStrictness: 0.6,
		ModulationAggressive:   0.3,
		MaxChordComplexity:     0.6,
		Explain:                ExplainNone,
	},
	"smooth_ballad": {
		BeamWidth:              5,
		MaxDepth:               14,
		RiskLevel:              0.3,
		ReharmDepth:            0.35,
		VoiceLeadingStrictness: 0.9,
		ModulationAggressive:   0.25,
		MaxChordComplexity:     0.5,
		Explain:                ExplainNone,
	},
	"gospel_drive": {
		BeamWidth:              8,
		MaxDepth:               20,
		RiskLevel:              0.75,
		ReharmDepth:            0.85,
		VoiceLeadingStrictness: 0.55,
		ModulationAggressive:   0.7,
		MaxChordComplexity:     0.8,
		Explain:                ExplainNone,
	},
	"pop_radio": {
		BeamWidth:              7,
		MaxDepth:               18,
		RiskLevel:              0.5,
		ReharmDepth:            0.6,
		VoiceLeadingStrictness: 0.65,
		ModulationAggressive:   0.5,
		MaxChordComplexity:     0.65,
		Explain:                ExplainNone,
	},
}

// presetOrder keeps listings deterministic.
var presetOrder = []string{"balanced", "smooth_ballad", "gospel_drive", "pop_radio"}

// Preset returns a named style preset by value.
func Preset(name string) (StyleProfile, bool) {
	p, ok := presets[name]
	return p, ok
}

// DefaultProfile is the balanced preset.
func DefaultProfile() StyleProfile {
	return presets["balanced"]
}

// PresetNames lists the available presets in a stable order.
func PresetNames() []string {
	names := make([]string, len(presetOrder))
	copy(names, presetOrder)
	return names
}
