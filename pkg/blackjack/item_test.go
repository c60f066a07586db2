package blackjack

import (
	"testing"

	"garitoblackjack-server/pkg/garito"

	"github.com/stretchr/testify/assert"
)

func ownItem(g *Game, id garito.ItemID) {
	item, _ := garito.ItemByID(id)
	g.inventory.AddItem(item)
}

func TestGame_UseItem_Whiskey(t *testing.T) {
	g := testGame(t)
	g.stress = 30
	ownItem(g, garito.ItemWhiskey)

	use, err := g.UseItem(garito.ItemWhiskey)
	assert.NoError(t, err)
	assert.Equal(t, 20, g.Stress())
	assert.Equal(t, 20, use.NewStress)
	assert.False(t, g.inventory.Owns(garito.ItemWhiskey))

	// stress relief floors at zero
	g.stress = 5
	ownItem(g, garito.ItemWhiskey)
	_, err = g.UseItem(garito.ItemWhiskey)
	assert.NoError(t, err)
	assert.Equal(t, 0, g.Stress())
}

func TestGame_UseItem_Validation(t *testing.T) {
	g := testGame(t)

	_, err := g.UseItem("loaded_dice")
	assert.Equal(t, ErrUnknownEntity, err)

	// passives cannot be "used"
	ownItem(g, garito.ItemGafasOscuras)
	_, err = g.UseItem(garito.ItemGafasOscuras)
	assert.Equal(t, ErrNotAvailable, err)

	_, err = g.UseItem(garito.ItemWhiskey)
	assert.Equal(t, ErrNotOwned, err)
}

func TestGame_UseItem_Cigarro(t *testing.T) {
	g := testGame(t)
	ownItem(g, garito.ItemCigarro)

	_, err := g.UseItem(garito.ItemCigarro)
	assert.NoError(t, err)
	assert.True(t, g.inventory.GuaranteedCheat)
}

func TestGame_UseItem_Rewind(t *testing.T) {
	g := testGame(t)
	ownItem(g, garito.ItemRelojBolsillo)
	g.inventory.RewindAvailable = true

	// nothing to rewind to before the first bet
	_, err := g.UseItem(garito.ItemRelojBolsillo)
	assert.Equal(t, ErrNotAvailable, err)
	assert.True(t, g.inventory.Owns(garito.ItemRelojBolsillo))

	// lose a round, then take it back
	rigShoe(g, "10c,9c,6h,8c,10s")
	assert.NoError(t, g.PlaceBet(50, 0))
	assert.NoError(t, g.PlayerAction(ActionHit))
	assert.Equal(t, 450, g.Chips())
	assert.Equal(t, 3, g.Stress())
	assert.Equal(t, 1, g.Stats().Losses)

	use, err := g.UseItem(garito.ItemRelojBolsillo)
	assert.NoError(t, err)
	assert.Equal(t, "El tiempo retrocede...", use.Message)

	assert.Equal(t, 500, g.Chips())
	assert.Equal(t, 0, g.Stress())
	assert.Equal(t, 0, g.Stats().Losses)
	assert.Equal(t, 0, g.Stats().Rounds)
	assert.Equal(t, StatusWaitingForBet, g.Status())
	assert.Nil(t, g.hands)
	assert.Nil(t, g.dealerHand)

	// the watch is spent
	assert.False(t, g.inventory.Owns(garito.ItemRelojBolsillo))
	assert.False(t, g.inventory.RewindAvailable)
}

func TestGame_BuyItem(t *testing.T) {
	g := testGame(t)

	// the shop is closed during play
	_, err := g.BuyItem(garito.ItemWhiskey)
	assert.Equal(t, ErrInvalidTransition, err)

	g.chips = 1200
	_, err = g.AdvanceVenue()
	assert.NoError(t, err)
	assert.Equal(t, StatusShop, g.Status())

	_, err = g.BuyItem("loaded_dice")
	assert.Equal(t, ErrUnknownEntity, err)

	purchase, err := g.BuyItem(garito.ItemWhiskey)
	assert.NoError(t, err)
	assert.Equal(t, 25, purchase.Price)
	assert.Equal(t, 1175, purchase.RemainingChips)
	assert.True(t, g.inventory.Owns(garito.ItemWhiskey))

	// a passive applies on purchase
	_, err = g.BuyItem(garito.ItemGafasOscuras)
	assert.NoError(t, err)
	assert.InDelta(t, 0.10, g.inventory.Passive(garito.EffectReduceDetection), 0.0001)

	g.chips = 10
	_, err = g.BuyItem(garito.ItemWhiskey)
	assert.Equal(t, ErrInsufficientFunds, err)
}

func TestGame_BuyItem_PocketWatch(t *testing.T) {
	g := testGame(t)
	g.chips = 1200
	_, err := g.AdvanceVenue()
	assert.NoError(t, err)

	// a fresh watch is armed immediately
	_, err = g.BuyItem(garito.ItemRelojBolsillo)
	assert.NoError(t, err)
	assert.True(t, g.inventory.RewindAvailable)
}

func TestGame_AdvanceVenue_RewindsWatch(t *testing.T) {
	g := testGame(t)
	ownItem(g, garito.ItemRelojBolsillo)
	g.inventory.RewindAvailable = false

	g.chips = 1200
	_, err := g.AdvanceVenue()
	assert.NoError(t, err)
	assert.True(t, g.inventory.RewindAvailable)
}
