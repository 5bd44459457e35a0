package param

// Division is a musical note length expressed in quarter-note beats.
type Division struct {
	Name  string
	Beats float64
}

// Divisions is the rhythm table shared by tempo-synced delay and tremolo.
var Divisions = []Division{
	{"1/1", 4},
	{"1/2", 2},
	{"1/4", 1},
	{"1/8", 0.5},
	{"1/16", 0.25},
	{"1/4.", 1.5},
	{"1/8.", 0.75},
	{"1/8T", 1.0 / 3},
}

// DivisionBeats returns the beat length for a division index. Out-of-range
// indices are clamped to the table.
func DivisionBeats(index int) float64 {
	index = min(max(index, 0), len(Divisions)-1)
	return Divisions[index].Beats
}

func divisionNames() []string {
	names := make([]string, len(Divisions))
	for i, d := range Divisions {
		names[i] = d.Name
	}
	return names
}
