package templates

import (
	"fmt"
	"regexp"
)

// SlotRole is the structural role of a bar slot inside a phrase.
type SlotRole string

const (
	RoleNormal     SlotRole = "normal"
	RoleCadence    SlotRole = "cadence"
	RoleTurnaround SlotRole = "turnaround"
	RoleModulation SlotRole = "modulation"
)

var validRoles = map[SlotRole]bool{
	RoleNormal:     true,
	RoleCadence:    true,
	RoleTurnaround: true,
	RoleModulation: true,
}

// BarSlot is one bar of the song form: its meter duration in beats and
// the structural role the planner must honor when filling it.
type BarSlot struct {
	Beats int      `json:"beats"`
	Role  SlotRole `json:"role"`
}

// Phrase is an ordered run of bar slots with a display label ("A1", "B").
type Phrase struct {
	Label string    `json:"label"`
	Slots []BarSlot `json:"slots"`
}

// Template is the structural skeleton a plan must fill: ordered phrases of
// bar slots. Read-only once resolved; the planner never mutates it.
type Template struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Version int      `json:"version"`
	Phrases []Phrase `json:"phrases"`
}

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidID reports whether a template identifier is storable.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// TotalBars is the flattened bar count across all phrases.
func (t *Template) TotalBars() int {
	total := 0
	for _, p := range t.Phrases {
		total += len(p.Slots)
	}
	return total
}

// Slot returns the bar slot at a flattened 0-indexed bar position.
func (t *Template) Slot(bar int) (BarSlot, bool) {
	for _, p := range t.Phrases {
		if bar < len(p.Slots) {
			return p.Slots[bar], true
		}
		bar -= len(p.Slots)
	}
	return BarSlot{}, false
}

// PhraseAt returns the phrase containing a flattened bar position together
// with the phrase's starting bar (0-indexed).
func (t *Template) PhraseAt(bar int) (Phrase, int, bool) {
	start := 0
	for _, p := range t.Phrases {
		if bar < start+len(p.Slots) {
			return p, start, true
		}
		start += len(p.Slots)
	}
	return Phrase{}, 0, false
}

// Validate checks structural soundness: a valid id, at least one phrase,
// no empty phrases, positive beat counts, and known slot roles.
func (t *Template) Validate() error {
	if !ValidID(t.ID) {
		return fmt.Errorf("template id %q must contain only [a-zA-Z0-9_-]", t.ID)
	}
	if len(t.Phrases) == 0 {
		return fmt.Errorf("template %q has no phrases", t.ID)
	}
	for i, p := range t.Phrases {
		if len(p.Slots) == 0 {
			return fmt.Errorf("template %q phrase %d (%s) has no bars", t.ID, i, p.Label)
		}
		for j, slot := range p.Slots {
			if slot.Beats <= 0 {
				return fmt.Errorf("template %q phrase %s bar %d has non-positive beats", t.ID, p.Label, j)
			}
			if !validRoles[slot.Role] {
				return fmt.Errorf("template %q phrase %s bar %d has unknown role %q", t.ID, p.Label, j, slot.Role)
			}
		}
	}
	return nil
}

// Summary is the lightweight listing view of a template.
type Summary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version int    `json:"version"`
	Bars    int    `json:"bars"`
	Phrases int    `json:"phrases"`
	Source  string `json:"source"`
}

// Summarize builds the listing view, tagging where the template came from.
func Summarize(t *Template, source string) Summary {
	return Summary{
		ID:      t.ID,
		Name:    t.Name,
		Version: t.Version,
		Bars:    t.TotalBars(),
		Phrases: len(t.Phrases),
		Source:  source,
	}
}
