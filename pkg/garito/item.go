package garito

import "fmt"

// ItemID identifies a shop item
type ItemID string

// item id constants
const (
	ItemWhiskey       ItemID = "whiskey"
	ItemCigarro       ItemID = "cigarro"
	ItemGafasOscuras  ItemID = "gafas_oscuras"
	ItemAnilloSello   ItemID = "anillo_sello"
	ItemHerradura     ItemID = "herradura"
	ItemAmuleto       ItemID = "amuleto"
	ItemNaipeMaldito  ItemID = "naipe_maldito"
	ItemRelojBolsillo ItemID = "reloj_bolsillo"
)

// ItemEffect is what an item does when used (consumables) or while owned
// (passives). Closed enumeration, dispatched with a switch.
type ItemEffect int

// item effect constants
const (
	// EffectReduceStress lowers the stress meter (consumable)
	EffectReduceStress ItemEffect = iota
	// EffectGuaranteedCheat forces the next cheat to succeed (consumable)
	EffectGuaranteedCheat
	// EffectRewind reverts to the last pre-round snapshot (consumable, once per venue)
	EffectRewind
	// EffectReduceDetection lowers cheat detection probability (passive)
	EffectReduceDetection
	// EffectBonusWinnings raises the payout fraction on wins (passive)
	EffectBonusWinnings
	// EffectStreakBoost raises the streak bonus multiplier (passive)
	EffectStreakBoost
	// EffectStreakInsurance keeps the win streak alive through pushes (passive)
	EffectStreakInsurance
	// EffectCursedStreak multiplies streak bonuses but punishes losses (passive)
	EffectCursedStreak
)

// Item is a purchasable consumable or passive modifier
type Item struct {
	ID          ItemID     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       int        `json:"price"`
	Effect      ItemEffect `json:"-"`
	// Value is the effect magnitude; passives accumulate it per purchase
	Value      float64 `json:"value"`
	Consumable bool    `json:"consumable"`
}

var items = map[ItemID]Item{
	ItemWhiskey: {
		ID:          ItemWhiskey,
		Name:        "Whiskey Barato",
		Description: "Reduce 10 de estrés",
		Price:       25,
		Effect:      EffectReduceStress,
		Value:       10,
		Consumable:  true,
	},
	ItemCigarro: {
		ID:          ItemCigarro,
		Name:        "Cigarro de la Suerte",
		Description: "La próxima trampa no puede fallar",
		Price:       75,
		Effect:      EffectGuaranteedCheat,
		Consumable:  true,
	},
	ItemGafasOscuras: {
		ID:          ItemGafasOscuras,
		Name:        "Gafas Oscuras",
		Description: "-10% detección de trampas (permanente)",
		Price:       200,
		Effect:      EffectReduceDetection,
		Value:       0.10,
	},
	ItemAnilloSello: {
		ID:          ItemAnilloSello,
		Name:        "Anillo con Sello",
		Description: "+15% ganancias en victorias (permanente)",
		Price:       300,
		Effect:      EffectBonusWinnings,
		Value:       0.15,
	},
	ItemHerradura: {
		ID:          ItemHerradura,
		Name:        "Herradura Oxidada",
		Description: "+10% al bono de racha (permanente)",
		Price:       250,
		Effect:      EffectStreakBoost,
		Value:       0.10,
	},
	ItemAmuleto: {
		ID:          ItemAmuleto,
		Name:        "Amuleto del Jugador",
		Description: "Los empates no rompen tu racha (permanente)",
		Price:       350,
		Effect:      EffectStreakInsurance,
		Value:       1,
	},
	ItemNaipeMaldito: {
		ID:          ItemNaipeMaldito,
		Name:        "Naipe Maldito",
		Description: "Bonos de racha x1.5, pero perder duele más",
		Price:       400,
		Effect:      EffectCursedStreak,
		Value:       0.5,
	},
	ItemRelojBolsillo: {
		ID:          ItemRelojBolsillo,
		Name:        "Reloj de Bolsillo",
		Description: "Una vez por garito: repite la última ronda",
		Price:       500,
		Effect:      EffectRewind,
		Consumable:  true,
	},
}

// ItemByID returns the item for the specified id
func ItemByID(id ItemID) (Item, bool) {
	i, ok := items[id]
	return i, ok
}

// Items returns every item keyed by id
func Items() map[ItemID]Item {
	m := make(map[ItemID]Item, len(items))
	for id, i := range items {
		m[id] = i
	}

	return m
}

func init() {
	for id, i := range items {
		if i.ID != id {
			panic(fmt.Sprintf("item %q has mismatched id %q", id, i.ID))
		}

		if i.Price <= 0 {
			panic(fmt.Sprintf("item %q must have a positive price", id))
		}
	}
}
