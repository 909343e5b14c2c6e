package models

// CuratedHabit is a suggested habit with a sensible default target
type CuratedHabit struct {
	Name          string
	Icon          string
	AccentColor   string
	DefaultTarget int
}

var CuratedHabits = []CuratedHabit{
	{Name: "Drink Water", Icon: "drop.fill", AccentColor: "blue", DefaultTarget: 2000},
	{Name: "Stretch", Icon: "figure.cooldown", AccentColor: "green", DefaultTarget: 5},
	{Name: "Read 10 Minutes", Icon: "book.fill", AccentColor: "orange", DefaultTarget: 30},
	{Name: "Walk", Icon: "figure.walk", AccentColor: "green", DefaultTarget: 5000},
	{Name: "Meditate", Icon: "sparkles", AccentColor: "blue", DefaultTarget: 20},
}

// FindCurated looks up a curated habit by name, case-insensitively
func FindCurated(name string) (CuratedHabit, bool) {
	for _, c := range CuratedHabits {
		if SameName(c.Name, name) {
			return c, true
		}
	}
	return CuratedHabit{}, false
}
