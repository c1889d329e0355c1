package templates

// Builtin song-form catalog. Each template keeps cadence targets at phrase
// ends and a turnaround before the final cadence so the planner has a
// dominant preparation to resolve from.

func fourFour(role SlotRole) BarSlot {
	return BarSlot{Beats: 4, Role: role}
}

func phrase(label string, roles ...SlotRole) Phrase {
	slots := make([]BarSlot, len(roles))
	for i, r := range roles {
		slots[i] = fourFour(r)
	}
	return Phrase{Label: label, Slots: slots}
}

var builtins = []*Template{
	{
		ID:      "aaba_8",
		Name:    "Compact AABA (8 bars)",
		Version: 1,
		Phrases: []Phrase{
			phrase("A1", RoleNormal, RoleNormal),
			phrase("A2", RoleNormal, RoleCadence),
			phrase("B", RoleModulation, RoleTurnaround),
			phrase("A3", RoleTurnaround, RoleCadence),
		},
	},
	{
		ID:      "ballad_8",
		Name:    "Two-phrase ballad (8 bars)",
		Version: 1,
		Phrases: []Phrase{
			phrase("A", RoleNormal, RoleNormal, RoleNormal, RoleCadence),
			phrase("B", RoleNormal, RoleNormal, RoleTurnaround, RoleCadence),
		},
	},
	{
		ID:      "blues_12",
		Name:    "Twelve-bar blues",
		Version: 1,
		Phrases: []Phrase{
			phrase("I", RoleNormal, RoleNormal, RoleNormal, RoleNormal),
			phrase("IV", RoleNormal, RoleNormal, RoleNormal, RoleNormal),
			phrase("V", RoleTurnaround, RoleNormal, RoleTurnaround, RoleCadence),
		},
	},
	{
		ID:      "pop_16",
		Name:    "Verse/chorus pop (16 bars)",
		Version: 1,
		Phrases: []Phrase{
			phrase("V1", RoleNormal, RoleNormal, RoleNormal, RoleNormal),
			phrase("V2", RoleNormal, RoleNormal, RoleTurnaround, RoleCadence),
			phrase("C1", RoleModulation, RoleNormal, RoleNormal, RoleNormal),
			phrase("C2", RoleNormal, RoleNormal, RoleTurnaround, RoleCadence),
		},
	},
	{
		ID:      "jazz_aaba_32",
		Name:    "Standard AABA (32 bars)",
		Version: 1,
		Phrases: []Phrase{
			phrase("A1", RoleNormal, RoleNormal, RoleNormal, RoleNormal, RoleNormal, RoleNormal, RoleTurnaround, RoleCadence),
			phrase("A2", RoleNormal, RoleNormal, RoleNormal, RoleNormal, RoleNormal, RoleNormal, RoleTurnaround, RoleCadence),
			phrase("B", RoleModulation, RoleNormal, RoleNormal, RoleNormal, RoleModulation, RoleNormal, RoleTurnaround, RoleTurnaround),
			phrase("A3", RoleNormal, RoleNormal, RoleNormal, RoleNormal, RoleNormal, RoleNormal, RoleTurnaround, RoleCadence),
		},
	},
}

// BuiltinIDs lists the catalog identifiers in registration order.
func BuiltinIDs() []string {
	ids := make([]string, len(builtins))
	for i, t := range builtins {
		ids[i] = t.ID
	}
	return ids
}

// Builtin returns the catalog template with the given id.
func Builtin(id string) (*Template, bool) {
	for _, t := range builtins {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}
