package blackjack

import (
	"encoding/json"
	"testing"

	"garitoblackjack-server/pkg/deck"
	"garitoblackjack-server/pkg/garito"

	"github.com/stretchr/testify/assert"
)

func TestGame_Snapshot_RoundTrip(t *testing.T) {
	g := testGame(t)
	g.inventory.UnlockCheat(garito.CheatSwapCard)
	ownItem(g, garito.ItemWhiskey)
	ownItem(g, garito.ItemGafasOscuras)

	rigShoe(g, "10c,9c,6h,8c,2s")
	assert.NoError(t, g.PlaceBet(50, 0))
	assert.NoError(t, g.PlayerAction(ActionHit))
	assert.Equal(t, StatusPlayerTurn, g.Status())

	snap := g.Snapshot()
	assert.Equal(t, SnapshotVersion, snap.Version)

	// the snapshot survives the wire
	b, err := json.Marshal(snap)
	assert.NoError(t, err)

	var decoded Snapshot
	assert.NoError(t, json.Unmarshal(b, &decoded))

	restored, err := RestoreGame(&decoded, nil)
	assert.NoError(t, err)

	assert.Equal(t, g.ID(), restored.ID())
	assert.Equal(t, g.PlayerName(), restored.PlayerName())
	assert.Equal(t, g.Chips(), restored.Chips())
	assert.Equal(t, g.Stress(), restored.Stress())
	assert.Equal(t, g.Status(), restored.Status())
	assert.Equal(t, g.Venue().Level, restored.Venue().Level)
	assert.Equal(t, g.currentBet, restored.currentBet)

	assert.Equal(t, len(g.hands), len(restored.hands))
	assert.Equal(t, deck.CardsToString(g.hands[0].Cards), deck.CardsToString(restored.hands[0].Cards))
	assert.Equal(t, deck.CardsToString(g.dealerHand.Cards), deck.CardsToString(restored.dealerHand.Cards))

	assert.True(t, restored.inventory.Owns(garito.ItemWhiskey))
	assert.True(t, restored.inventory.IsUnlocked(garito.CheatSwapCard))
	assert.InDelta(t, 0.10, restored.inventory.Passive(garito.EffectReduceDetection), 0.0001)

	// the rewind snapshot survives too
	assert.NotNil(t, restored.rewind)
	assert.Equal(t, 500, restored.rewind.Chips)

	// both games draw the identical sequence from here on
	assert.Equal(t, g.shoe.CardsLeft(), restored.shoe.CardsLeft())
	for g.shoe.CardsLeft() > deck.LowWaterMark {
		assert.True(t, g.shoe.Draw().Equal(restored.shoe.Draw()))
	}

	// and the projections agree
	a, err := json.Marshal(g.State())
	assert.NoError(t, err)
	b, err = json.Marshal(restored.State())
	assert.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestRestoreGame_Validation(t *testing.T) {
	_, err := RestoreGame(nil, nil)
	assert.Error(t, err)

	g := testGame(t)
	snap := g.Snapshot()

	snap.Version = 99
	_, err = RestoreGame(snap, nil)
	assert.Error(t, err)

	snap = g.Snapshot()
	snap.Difficulty = "nightmare"
	_, err = RestoreGame(snap, nil)
	assert.Error(t, err)

	snap = g.Snapshot()
	snap.VenueLevel = 9
	_, err = RestoreGame(snap, nil)
	assert.Error(t, err)
}

func TestGame_Snapshot_MidRoundCheatState(t *testing.T) {
	g := testGame(t)
	g.rand = stubRand{float: 0.99}

	rigShoe(g, "10c,9c,6h,8c,5s")
	assert.NoError(t, g.PlaceBet(50, 0))

	_, err := g.AttemptCheat(garito.CheatPeekNextCard)
	assert.NoError(t, err)

	restored, err := RestoreGame(g.Snapshot(), nil)
	assert.NoError(t, err)

	// the peeked card and round residue come back
	assert.True(t, restored.nextCardPeeked.Equal(deck.CardFromString("5s")))
	assert.Equal(t, garito.CheatPeekNextCard, restored.cheatUsedThisRound)
	assert.Equal(t, g.Stress(), restored.Stress())
	assert.Equal(t, 1, restored.Stats().CheatsUsed)

	// the restored shoe deals the peeked card
	assert.NoError(t, restored.PlayerAction(ActionHit))
	hand := restored.hands[0]
	assert.True(t, hand.Cards[2].Equal(deck.CardFromString("5s")))
}
