package garito

import "fmt"

// CheatID identifies a special action
type CheatID string

// cheat id constants
const (
	CheatPeekCard     CheatID = "peek_card"
	CheatPeekNextCard CheatID = "peek_next_card"
	CheatSwapCard     CheatID = "swap_card"
	CheatExtraCard    CheatID = "extra_card"
	CheatMarkDeck     CheatID = "mark_deck"
	CheatBribe        CheatID = "bribe"
)

// CheatEffect is what a successful cheat does. It is a closed enumeration;
// the engine dispatches on it with a switch, never by string tag.
type CheatEffect int

// cheat effect constants
const (
	// EffectRevealDealer shows the dealer's hole card
	EffectRevealDealer CheatEffect = iota
	// EffectPeekNext shows the next undrawn card
	EffectPeekNext
	// EffectSwapWorst replaces the least useful card with a fresh draw
	EffectSwapWorst
	// EffectFreeCard draws a card without the usual hit semantics
	EffectFreeCard
	// EffectSeeDeck shows the next three undrawn cards in draw order
	EffectSeeDeck
	// EffectDealerMistake forces a ten-valued card onto the dealer
	EffectDealerMistake
)

// Cheat is a risky special action with a detection roll
type Cheat struct {
	ID                CheatID     `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	StressCost        int         `json:"stressCost"`
	DetectionModifier float64     `json:"detectionModifier"`
	Cooldown          int         `json:"cooldown"`
	ChipCost          int         `json:"chipCost"`
	Effect            CheatEffect `json:"-"`
}

var cheats = map[CheatID]Cheat{
	CheatPeekCard: {
		ID:                CheatPeekCard,
		Name:              "Espiar Carta Oculta",
		Description:       "Ver la carta oculta del crupier",
		StressCost:        5,
		DetectionModifier: 0.10,
		Cooldown:          0,
		Effect:            EffectRevealDealer,
	},
	CheatPeekNextCard: {
		ID:                CheatPeekNextCard,
		Name:              "Espiar Próxima Carta",
		Description:       "Ver la próxima carta que saldrá del mazo",
		StressCost:        15,
		DetectionModifier: 0.35,
		Cooldown:          1,
		Effect:            EffectPeekNext,
	},
	CheatSwapCard: {
		ID:                CheatSwapCard,
		Name:              "Cambiar Carta",
		Description:       "Cambia tu peor carta por una del mazo",
		StressCost:        15,
		DetectionModifier: 0.20,
		Cooldown:          2,
		Effect:            EffectSwapWorst,
	},
	CheatExtraCard: {
		ID:                CheatExtraCard,
		Name:              "Carta Extra",
		Description:       "Roba una carta sin que cuente como Hit",
		StressCost:        20,
		DetectionModifier: 0.25,
		Cooldown:          3,
		Effect:            EffectFreeCard,
	},
	CheatMarkDeck: {
		ID:                CheatMarkDeck,
		Name:              "Marcar Mazo",
		Description:       "Ve las próximas 3 cartas del mazo",
		StressCost:        10,
		DetectionModifier: 0.15,
		Cooldown:          1,
		Effect:            EffectSeeDeck,
	},
	CheatBribe: {
		ID:                CheatBribe,
		Name:              "Sobornar",
		Description:       "El crupier 'se equivoca' a tu favor",
		StressCost:        25,
		DetectionModifier: 0.30,
		Cooldown:          5,
		ChipCost:          50,
		Effect:            EffectDealerMistake,
	},
}

// StartingCheats are unlocked from the first hand
var StartingCheats = []CheatID{CheatPeekCard, CheatPeekNextCard, CheatBribe}

// CheatByID returns the cheat for the specified id
func CheatByID(id CheatID) (Cheat, bool) {
	c, ok := cheats[id]
	return c, ok
}

// Cheats returns every cheat keyed by id
func Cheats() map[CheatID]Cheat {
	m := make(map[CheatID]Cheat, len(cheats))
	for id, c := range cheats {
		m[id] = c
	}

	return m
}

func init() {
	for id, c := range cheats {
		if c.ID != id {
			panic(fmt.Sprintf("cheat %q has mismatched id %q", id, c.ID))
		}

		if c.StressCost < 0 || c.Cooldown < 0 || c.ChipCost < 0 {
			panic(fmt.Sprintf("cheat %q has negative costs", id))
		}
	}

	for _, id := range StartingCheats {
		if _, ok := cheats[id]; !ok {
			panic(fmt.Sprintf("starting cheat %q is unknown", id))
		}
	}
}
