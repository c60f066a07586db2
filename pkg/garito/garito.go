// Package garito holds the progression tables for the blackjack roguelite:
// venue tiers, cheats, shop items, and difficulty presets. The tables are
// built and validated once at package load and are never mutated afterwards.
package garito

import "fmt"

// SpecialRule is a venue-specific rule tag
type SpecialRule string

// special rule constants
const (
	// RuleDrunkBonus adds 10% to all winnings
	RuleDrunkBonus SpecialRule = "drunk_bonus"
	// RuleHighRoller makes doubled wins pay 1.25x the wager instead of even money
	RuleHighRoller SpecialRule = "high_roller"
	// RuleWidowCurse converts pushes into losses
	RuleWidowCurse SpecialRule = "widow_curse"
	// RuleDevilsGame wipes the entire balance when the dealer draws blackjack
	RuleDevilsGame SpecialRule = "devils_game"
)

// MaxLevel is the final venue level; reaching its table stakes is the win condition
const MaxLevel = 5

// Venue is a themed difficulty stage ("garito")
type Venue struct {
	Level         int    `json:"level"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	DealerName    string `json:"dealerName"`
	DealerPersona string `json:"dealerPersona"`
	// ChipTarget is the balance needed to advance. Zero means this is the
	// final venue and there is nothing left to advance to.
	ChipTarget    int           `json:"chipTarget"`
	MinBet        int           `json:"minBet"`
	MaxBet        int           `json:"maxBet"`
	DetectionBase float64       `json:"detectionBase"`
	SpecialRules  []SpecialRule `json:"specialRules"`
	// Unlocks is the cheat granted when the venue is cleared
	Unlocks []CheatID `json:"unlocks"`
}

// HasRule returns true if the venue plays under the specified rule
func (v Venue) HasRule(rule SpecialRule) bool {
	for _, r := range v.SpecialRules {
		if r == rule {
			return true
		}
	}

	return false
}

// IsFinal returns true if this is the last venue
func (v Venue) IsFinal() bool {
	return v.ChipTarget == 0
}

var venues = []Venue{
	{
		Level:         1,
		Name:          "El Callejón de los Desahuciados",
		Description:   "Donde empiezan los perdedores",
		DealerName:    "Manco Pete",
		DealerPersona: "distraído",
		ChipTarget:    1000,
		MinBet:        10,
		MaxBet:        100,
		DetectionBase: 0.15,
		SpecialRules:  []SpecialRule{},
		Unlocks:       []CheatID{CheatPeekCard},
	},
	{
		Level:         2,
		Name:          "La Taberna del Tuerto",
		Description:   "Los borrachos apuestan fuerte",
		DealerName:    "Sally la Sorda",
		DealerPersona: "lenta",
		ChipTarget:    2500,
		MinBet:        25,
		MaxBet:        250,
		DetectionBase: 0.25,
		SpecialRules:  []SpecialRule{RuleDrunkBonus},
		Unlocks:       []CheatID{CheatSwapCard},
	},
	{
		Level:         3,
		Name:          "El Salón Dorado",
		Description:   "Aquí juegan los que tienen algo que perder",
		DealerName:    "Don Rodrigo",
		DealerPersona: "observador",
		ChipTarget:    5000,
		MinBet:        50,
		MaxBet:        500,
		DetectionBase: 0.35,
		SpecialRules:  []SpecialRule{RuleHighRoller},
		Unlocks:       []CheatID{CheatExtraCard},
	},
	{
		Level:         4,
		Name:          "La Casa de la Viuda Negra",
		Description:   "Muchos entran, pocos salen con sus fichas",
		DealerName:    "La Viuda",
		DealerPersona: "despiadada",
		ChipTarget:    10000,
		MinBet:        100,
		MaxBet:        1000,
		DetectionBase: 0.45,
		SpecialRules:  []SpecialRule{RuleWidowCurse},
		Unlocks:       []CheatID{CheatMarkDeck},
	},
	{
		Level:         5,
		Name:          "El Infierno de Dante",
		Description:   "El garito final. Todo o nada.",
		DealerName:    "El Diablo",
		DealerPersona: "omnisciente",
		ChipTarget:    0,
		MinBet:        500,
		MaxBet:        5000,
		DetectionBase: 0.60,
		SpecialRules:  []SpecialRule{RuleDevilsGame},
		Unlocks:       []CheatID{},
	},
}

// Venues returns every venue in level order
func Venues() []Venue {
	v := make([]Venue, len(venues))
	copy(v, venues)
	return v
}

// VenueByLevel returns the venue for the specified level
func VenueByLevel(level int) (Venue, bool) {
	if level < 1 || level > len(venues) {
		return Venue{}, false
	}

	return venues[level-1], true
}

func init() {
	for i, v := range venues {
		if v.Level != i+1 {
			panic(fmt.Sprintf("venue %q has level %d, expected %d", v.Name, v.Level, i+1))
		}

		if v.MinBet <= 0 || v.MaxBet < v.MinBet {
			panic(fmt.Sprintf("venue %q has invalid bet bounds %d-%d", v.Name, v.MinBet, v.MaxBet))
		}

		if v.DetectionBase < 0 || v.DetectionBase > 1 {
			panic(fmt.Sprintf("venue %q has invalid detection base %f", v.Name, v.DetectionBase))
		}

		if v.IsFinal() != (i == len(venues)-1) {
			panic(fmt.Sprintf("venue %q: only the last venue may omit a chip target", v.Name))
		}

		for _, id := range v.Unlocks {
			if _, ok := CheatByID(id); !ok {
				panic(fmt.Sprintf("venue %q unlocks unknown cheat %q", v.Name, id))
			}
		}
	}
}
