package blackjack

import (
	"testing"

	"garitoblackjack-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func cards(s string) []*deck.Card {
	return deck.CardsFromString(s)
}

func TestHand_Value(t *testing.T) {
	h := NewHand(10)
	assert.Equal(t, 0, h.Value())

	h.Cards = cards("10c,9h")
	assert.Equal(t, 19, h.Value())

	// soft ace
	h.Cards = cards("14c,9h")
	assert.Equal(t, 20, h.Value())

	// two aces demote one
	h.Cards = cards("14c,14h,9d")
	assert.Equal(t, 21, h.Value())

	// three aces demote until under 21
	h.Cards = cards("14c,14h,14d,8s")
	assert.Equal(t, 21, h.Value())

	// all aces demoted, still busted
	h.Cards = cards("14c,14h,10d,10s,2c")
	assert.Equal(t, 24, h.Value())
}

func TestHand_AddCard(t *testing.T) {
	h := NewHand(10)
	h.AddCard(deck.CardFromString("10c"))
	h.AddCard(deck.CardFromString("9h"))
	assert.False(t, h.Busted)
	assert.False(t, h.Standing)
	assert.False(t, h.Blackjack)

	h.AddCard(deck.CardFromString("5d"))
	assert.True(t, h.Busted)
	assert.True(t, h.Standing)
}

func TestHand_AddCard_Blackjack(t *testing.T) {
	h := NewHand(10)
	h.AddCard(deck.CardFromString("14c"))
	h.AddCard(deck.CardFromString("13h"))
	assert.True(t, h.Blackjack)
	assert.True(t, h.Standing)
	assert.False(t, h.Busted)

	// a two-card 21 on a split hand is not a natural
	h = NewHand(10)
	h.FromSplit = true
	h.AddCard(deck.CardFromString("14c"))
	h.AddCard(deck.CardFromString("13h"))
	assert.False(t, h.Blackjack)
	assert.False(t, h.Standing)

	// a three-card 21 is not a natural either
	h = NewHand(10)
	h.AddCard(deck.CardFromString("7c"))
	h.AddCard(deck.CardFromString("7h"))
	h.AddCard(deck.CardFromString("7d"))
	assert.False(t, h.Blackjack)
}

func TestHand_CanDouble(t *testing.T) {
	h := NewHand(10)
	h.Cards = cards("5c,6h")
	assert.True(t, h.CanDouble())

	h.Doubled = true
	assert.False(t, h.CanDouble())

	h = NewHand(10)
	h.Cards = cards("5c,6h,2d")
	assert.False(t, h.CanDouble())
}

func TestHand_CanSplit(t *testing.T) {
	h := NewHand(10)
	h.Cards = cards("8c,8h")
	assert.True(t, h.CanSplit())

	// ten-value cards of mixed rank split
	h.Cards = cards("13c,10h")
	assert.True(t, h.CanSplit())

	h.Cards = cards("14c,14h")
	assert.True(t, h.CanSplit())

	h.Cards = cards("8c,9h")
	assert.False(t, h.CanSplit())

	h.Cards = cards("8c,8h,8d")
	assert.False(t, h.CanSplit())
}

func TestHand_RemoveLeastUseful(t *testing.T) {
	// not busted: keep the total as close to 21 as possible
	h := NewHand(10)
	h.Cards = cards("10c,5h,4d")
	removed := h.RemoveLeastUseful()
	assert.Equal(t, "4d", deck.CardToString(removed))
	assert.Equal(t, 15, h.Value())

	// busted: remove the card whose removal reduces the total the most
	h = NewHand(10)
	h.Cards = cards("10c,9h,5d")
	removed = h.RemoveLeastUseful()
	assert.Equal(t, "10c", deck.CardToString(removed))
	assert.Equal(t, 14, h.Value())

	// both ten-value removals clear the bust equally; the earlier card goes
	h = NewHand(10)
	h.Cards = cards("2c,10h,13d")
	removed = h.RemoveLeastUseful()
	assert.Equal(t, 10, removed.Rank)
	assert.Equal(t, 12, h.Value())

	// ties go to the earliest card
	h = NewHand(10)
	h.Cards = cards("10c,10h")
	removed = h.RemoveLeastUseful()
	assert.Equal(t, "10c", deck.CardToString(removed))

	h = NewHand(10)
	assert.Nil(t, h.RemoveLeastUseful())
}

func TestHand_SwapWorst(t *testing.T) {
	h := NewHand(10)
	h.Cards = cards("10c,5h,4d")
	removed := h.SwapWorst(deck.CardFromString("6s"))
	assert.Equal(t, "4d", deck.CardToString(removed))
	assert.Equal(t, 21, h.Value())
	assert.False(t, h.Busted)

	// a swap can clear a bust
	h = NewHand(10)
	h.Cards = cards("9d,10s,10c")
	h.Busted = true
	h.Standing = true
	removed = h.SwapWorst(deck.CardFromString("2h"))
	assert.Equal(t, 21, h.Value())
	assert.False(t, h.Busted)
	assert.False(t, h.Standing)

	// a bad swap can bust the hand
	h = NewHand(10)
	h.Cards = cards("10c,9h,2d")
	removed = h.SwapWorst(deck.CardFromString("13s"))
	assert.Equal(t, "2d", deck.CardToString(removed))
	assert.Equal(t, 29, h.Value())
	assert.True(t, h.Busted)
	assert.True(t, h.Standing)
}
