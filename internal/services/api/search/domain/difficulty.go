package domain

import "math"

// Difficulty is a named band of calc_difficulty_estimate, [Min, Max)
type Difficulty struct {
	Name string
	Min  float64
	Max  float64
}

// Difficulties lists every band in ascending order
var Difficulties = []Difficulty{
	{"Pending", math.Inf(-1), 0},
	{"Kindergarten", 0, 45},
	{"Elementary", 45, 120},
	{"Junior High", 120, 300},
	{"Highschool", 300, 600},
	{"Bachelors", 600, 1200},
	{"Masters", 1200, 3000},
	{"PhD", 3000, 6000},
	{"Professor", 6000, 12000},
	{"Grandmaster", 12000, 24000},
	{"Super Grandmaster", 24000, math.Inf(1)},
}

// DifficultyByName finds a band by its exact name
func DifficultyByName(name string) (Difficulty, bool) {
	for _, d := range Difficulties {
		if d.Name == name {
			return d, true
		}
	}
	return Difficulty{}, false
}

// DifficultyOf returns the band an estimate falls in
func DifficultyOf(estimate float64) Difficulty {
	for _, d := range Difficulties {
		if estimate >= d.Min && estimate < d.Max {
			return d
		}
	}
	return Difficulties[0]
}

// Predicate restricts calc_difficulty_estimate to the band
func (d Difficulty) Predicate() Predicate { return HalfOpen(FieldDifficulty, d.Min, d.Max) }
