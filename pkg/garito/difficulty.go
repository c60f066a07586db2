package garito

import "fmt"

// DifficultyID identifies a difficulty preset
type DifficultyID string

// difficulty id constants
const (
	DifficultyEasy   DifficultyID = "easy"
	DifficultyNormal DifficultyID = "normal"
	DifficultyHard   DifficultyID = "hard"
)

// streak levels below this never earn a bonus
const minBonusStreak = 2

// streak levels at or above this share the top table entry
const maxBonusStreak = 5

// Difficulty is a preset controlling starting resources, stress swings,
// detection risk, and the win-streak bonus table
type Difficulty struct {
	ID             DifficultyID `json:"id"`
	Name           string       `json:"name"`
	StartingChips  int          `json:"startingChips"`
	StartingStress int          `json:"startingStress"`
	// StressOnLoss is added to the stress meter after a lost round
	StressOnLoss int `json:"stressOnLoss"`
	// StressReliefOnWin is removed from the stress meter after a won round
	StressReliefOnWin int     `json:"stressReliefOnWin"`
	DetectionModifier float64 `json:"detectionModifier"`
	// StreakMultipliers is keyed by streak level 2..5; level 5 means "5 or more"
	StreakMultipliers map[int]float64 `json:"streakMultipliers"`
	// BlackjackStreakBonus is added to the final multiplier when the
	// streak-extending win was a blackjack
	BlackjackStreakBonus float64 `json:"blackjackStreakBonus"`
}

// StreakMultiplier returns the base bonus multiplier for the given win streak.
// Streaks below 2 earn no bonus (multiplier 1); streaks above 5 use the
// level-5 entry.
func (d Difficulty) StreakMultiplier(streak int) float64 {
	if streak < minBonusStreak {
		return 1
	}

	if streak > maxBonusStreak {
		streak = maxBonusStreak
	}

	return d.StreakMultipliers[streak]
}

var difficulties = map[DifficultyID]Difficulty{
	DifficultyEasy: {
		ID:                   DifficultyEasy,
		Name:                 "Paseo Dominical",
		StartingChips:        750,
		StartingStress:       0,
		StressOnLoss:         2,
		StressReliefOnWin:    8,
		DetectionModifier:    -0.05,
		StreakMultipliers:    map[int]float64{2: 1.25, 3: 1.6, 4: 2.2, 5: 3.5},
		BlackjackStreakBonus: 0.5,
	},
	DifficultyNormal: {
		ID:                   DifficultyNormal,
		Name:                 "Forastero",
		StartingChips:        500,
		StartingStress:       0,
		StressOnLoss:         3,
		StressReliefOnWin:    5,
		DetectionModifier:    0,
		StreakMultipliers:    map[int]float64{2: 1.2, 3: 1.5, 4: 2.0, 5: 3.0},
		BlackjackStreakBonus: 0.5,
	},
	DifficultyHard: {
		ID:                   DifficultyHard,
		Name:                 "Deuda de Sangre",
		StartingChips:        400,
		StartingStress:       10,
		StressOnLoss:         5,
		StressReliefOnWin:    3,
		DetectionModifier:    0.10,
		StreakMultipliers:    map[int]float64{2: 1.15, 3: 1.4, 4: 1.8, 5: 2.5},
		BlackjackStreakBonus: 0.25,
	},
}

// DifficultyByID returns the difficulty preset for the specified id
func DifficultyByID(id DifficultyID) (Difficulty, bool) {
	d, ok := difficulties[id]
	return d, ok
}

// Difficulties returns every difficulty preset keyed by id
func Difficulties() map[DifficultyID]Difficulty {
	m := make(map[DifficultyID]Difficulty, len(difficulties))
	for id, d := range difficulties {
		m[id] = d
	}

	return m
}

func init() {
	for id, d := range difficulties {
		if d.ID != id {
			panic(fmt.Sprintf("difficulty %q has mismatched id %q", id, d.ID))
		}

		if d.StartingChips <= 0 {
			panic(fmt.Sprintf("difficulty %q must start with chips", id))
		}

		for level := minBonusStreak; level <= maxBonusStreak; level++ {
			mult, ok := d.StreakMultipliers[level]
			if !ok || mult < 1 {
				panic(fmt.Sprintf("difficulty %q is missing a streak multiplier for level %d", id, level))
			}
		}
	}
}
