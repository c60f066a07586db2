package blackjack

import (
	"garitoblackjack-server/pkg/garito"
)

// Inventory holds the player's items, passive modifiers, unlocked cheats,
// and per-cheat cooldown counters
type Inventory struct {
	// Items maps an owned consumable or passive item to its quantity
	Items map[garito.ItemID]int `json:"items"`
	// PassiveEffects accumulates permanent effect magnitudes, additive
	// across repeated purchases
	PassiveEffects map[garito.ItemEffect]float64 `json:"passiveEffects"`
	UnlockedCheats []garito.CheatID              `json:"unlockedCheats"`
	// CheatCooldowns maps a cheat to the rounds remaining before it is
	// usable again; entries are never negative
	CheatCooldowns  map[garito.CheatID]int `json:"cheatCooldowns"`
	GuaranteedCheat bool                   `json:"guaranteedCheat"`
	RewindAvailable bool                   `json:"rewindAvailable"`
}

// NewInventory returns an inventory with the starting cheats unlocked
func NewInventory() *Inventory {
	unlocked := make([]garito.CheatID, len(garito.StartingCheats))
	copy(unlocked, garito.StartingCheats)

	return &Inventory{
		Items:          make(map[garito.ItemID]int),
		PassiveEffects: make(map[garito.ItemEffect]float64),
		UnlockedCheats: unlocked,
		CheatCooldowns: make(map[garito.CheatID]int),
	}
}

// AddItem adds an item to the inventory. Non-consumable items apply their
// passive effect immediately and permanently.
func (inv *Inventory) AddItem(item garito.Item) {
	inv.Items[item.ID]++

	if !item.Consumable {
		inv.PassiveEffects[item.Effect] += item.Value
	}
}

// ConsumeItem removes one use of a consumable item. The caller must have
// already validated ownership and effect preconditions.
func (inv *Inventory) ConsumeItem(id garito.ItemID) {
	inv.Items[id]--
	if inv.Items[id] <= 0 {
		delete(inv.Items, id)
	}
}

// Owns returns true if at least one of the item is held
func (inv *Inventory) Owns(id garito.ItemID) bool {
	return inv.Items[id] > 0
}

// Passive returns the accumulated magnitude for a passive effect
func (inv *Inventory) Passive(effect garito.ItemEffect) float64 {
	return inv.PassiveEffects[effect]
}

// HasPassive returns true if the passive effect has been acquired
func (inv *Inventory) HasPassive(effect garito.ItemEffect) bool {
	return inv.PassiveEffects[effect] > 0
}

// UnlockCheat makes a cheat permanently available
func (inv *Inventory) UnlockCheat(id garito.CheatID) {
	for _, unlocked := range inv.UnlockedCheats {
		if unlocked == id {
			return
		}
	}

	inv.UnlockedCheats = append(inv.UnlockedCheats, id)
}

// IsUnlocked returns true if the cheat has been unlocked
func (inv *Inventory) IsUnlocked(id garito.CheatID) bool {
	for _, unlocked := range inv.UnlockedCheats {
		if unlocked == id {
			return true
		}
	}

	return false
}

// CanUseCheat returns true if the cheat is unlocked and off cooldown
func (inv *Inventory) CanUseCheat(id garito.CheatID) bool {
	return inv.IsUnlocked(id) && inv.CheatCooldowns[id] <= 0
}

// StartCooldown puts a cheat on cooldown for the specified number of rounds
func (inv *Inventory) StartCooldown(id garito.CheatID, rounds int) {
	if rounds < 0 {
		rounds = 0
	}

	inv.CheatCooldowns[id] = rounds
}

// TickCooldowns decrements every cooldown by one round, floored at zero.
// Called exactly once at the end of every resolved round.
func (inv *Inventory) TickCooldowns() {
	for id, remaining := range inv.CheatCooldowns {
		if remaining <= 1 {
			delete(inv.CheatCooldowns, id)
			continue
		}

		inv.CheatCooldowns[id] = remaining - 1
	}
}
