package blackjack

import (
	"fmt"

	"garitoblackjack-server/pkg/garito"
)

// ItemUse reports the outcome of consuming an item
type ItemUse struct {
	ItemID    garito.ItemID `json:"itemId"`
	ItemName  string        `json:"itemName"`
	Message   string        `json:"message"`
	NewStress int           `json:"newStress"`
}

// Purchase reports a shop purchase
type Purchase struct {
	ItemID         garito.ItemID `json:"itemId"`
	ItemName       string        `json:"itemName"`
	Price          int           `json:"price"`
	RemainingChips int           `json:"remainingChips"`
}

// VenueAdvance reports a venue advancement
type VenueAdvance struct {
	OldVenue       string           `json:"oldVenue"`
	NewVenue       string           `json:"newVenue"`
	UnlockedCheats []garito.CheatID `json:"unlockedCheats"`
}

// UseItem consumes an owned consumable. Every precondition, including the
// effect's own (a rewind needs an unspent use and a saved snapshot), is
// checked before anything is consumed; a failed use has no side effect.
func (g *Game) UseItem(id garito.ItemID) (*ItemUse, error) {
	if g.status == StatusGameOver {
		return nil, ErrTerminalState
	}

	item, ok := garito.ItemByID(id)
	if !ok {
		return nil, ErrUnknownEntity
	}

	if !item.Consumable {
		return nil, ErrNotAvailable
	}

	if !g.inventory.Owns(id) {
		return nil, ErrNotOwned
	}

	if item.Effect == garito.EffectRewind && (!g.inventory.RewindAvailable || g.rewind == nil) {
		return nil, ErrNotAvailable
	}

	g.inventory.ConsumeItem(id)

	use := &ItemUse{
		ItemID:   id,
		ItemName: item.Name,
	}

	switch item.Effect {
	case garito.EffectReduceStress:
		g.relieveStress(int(item.Value))
		use.Message = fmt.Sprintf("Te relajas... Estrés -%d", int(item.Value))

	case garito.EffectGuaranteedCheat:
		g.inventory.GuaranteedCheat = true
		use.Message = "Tu próxima trampa no fallará..."

	case garito.EffectRewind:
		g.inventory.RewindAvailable = false
		g.restoreRewindState()
		use.Message = "El tiempo retrocede..."
	}

	use.NewStress = g.stress

	g.logger.WithField("item", id).Info("item used")
	return use, nil
}

// BuyItem purchases an item; only legal while the shop is open
func (g *Game) BuyItem(id garito.ItemID) (*Purchase, error) {
	if err := g.gate(StatusShop); err != nil {
		return nil, err
	}

	item, ok := garito.ItemByID(id)
	if !ok {
		return nil, ErrUnknownEntity
	}

	if g.chips < item.Price {
		return nil, ErrInsufficientFunds
	}

	g.chips -= item.Price
	g.inventory.AddItem(item)

	// a fresh pocket watch is wound and ready in the venue it was bought in
	if item.Effect == garito.EffectRewind {
		g.inventory.RewindAvailable = true
	}

	g.logger.WithFields(map[string]interface{}{
		"item":  id,
		"price": item.Price,
	}).Info("item purchased")

	return &Purchase{
		ItemID:         id,
		ItemName:       item.Name,
		Price:          item.Price,
		RemainingChips: g.chips,
	}, nil
}

// AdvanceVenue moves up to the next venue once the balance has reached the
// chip target. Clearing a venue unlocks its reward cheat, rewinds the pocket
// watch if one is owned, and opens the shop.
func (g *Game) AdvanceVenue() (*VenueAdvance, error) {
	if g.status == StatusGameOver {
		return nil, ErrTerminalState
	}

	if g.status != StatusWaitingForBet && g.status != StatusRoundComplete {
		return nil, ErrInvalidTransition
	}

	if !g.CanAdvanceVenue() {
		return nil, ErrNotAvailable
	}

	oldVenue := g.Venue()
	g.venuesCompleted = append(g.venuesCompleted, g.venueLevel)
	g.venueLevel++
	newVenue := g.Venue()

	for _, cheatID := range oldVenue.Unlocks {
		g.inventory.UnlockCheat(cheatID)
	}

	if g.inventory.Owns(garito.ItemRelojBolsillo) {
		g.inventory.RewindAvailable = true
	}

	g.status = StatusShop

	g.logger.WithFields(map[string]interface{}{
		"from": oldVenue.Level,
		"to":   newVenue.Level,
	}).Info("venue cleared")

	return &VenueAdvance{
		OldVenue:       oldVenue.Name,
		NewVenue:       newVenue.Name,
		UnlockedCheats: oldVenue.Unlocks,
	}, nil
}

// LeaveShop closes the shop and returns to betting
func (g *Game) LeaveShop() error {
	if err := g.gate(StatusShop); err != nil {
		return err
	}

	g.status = StatusWaitingForBet
	return nil
}
