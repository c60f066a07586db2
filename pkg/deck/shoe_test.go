package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewShoe(t *testing.T) {
	shoe := NewShoe(DefaultPacks)

	assert.Equal(t, 312, shoe.CardsLeft())
	assert.Equal(t, 6, shoe.Packs())

	// unshuffled order starts with the first pack's two of clubs
	assert.Equal(t, Card{Rank: 2, Suit: Clubs}, *shoe.Cards[0])
	assert.Equal(t, Card{Rank: Ace, Suit: Spades}, *shoe.Cards[311])

	// each rank/suit combination appears exactly once per pack
	counts := make(map[Card]int)
	for _, card := range shoe.Cards {
		counts[*card]++
	}

	assert.Equal(t, 52, len(counts))
	for card, n := range counts {
		assert.Equal(t, DefaultPacks, n, card.String())
	}
}

func TestNewShoe_BadPackCount(t *testing.T) {
	shoe := NewShoe(0)
	assert.Equal(t, DefaultPacks*52, shoe.CardsLeft())

	shoe = NewShoe(2)
	assert.Equal(t, 104, shoe.CardsLeft())
}

func TestShoe_Shuffle(t *testing.T) {
	a := NewShoe(DefaultPacks)
	a.Shuffle(1)

	b := NewShoe(DefaultPacks)
	b.Shuffle(1)

	// the same seed yields the same order
	assert.Equal(t, CardsToString(a.Cards), CardsToString(b.Cards))
	assert.Equal(t, int64(1), a.GetSeed())

	b.Shuffle(2)
	assert.NotEqual(t, CardsToString(a.Cards), CardsToString(b.Cards))

	assert.Panics(t, func() {
		a.Shuffle(-1)
	})
}

func TestShoe_Draw(t *testing.T) {
	shoe := NewShoe(DefaultPacks)
	shoe.Shuffle(1)

	expected := shoe.Cards[0]
	card := shoe.Draw()
	assert.True(t, card.Equal(expected))
	assert.Equal(t, 311, shoe.CardsLeft())
}

func TestShoe_Draw_LowWaterMark(t *testing.T) {
	shoe := NewShoe(DefaultPacks)
	shoe.Shuffle(1)

	for shoe.CardsLeft() >= LowWaterMark {
		shoe.Draw()
	}

	assert.Equal(t, LowWaterMark-1, shoe.CardsLeft())

	// the next draw rebuilds the full shoe first
	card := shoe.Draw()
	assert.NotNil(t, card)
	assert.Equal(t, DefaultPacks*52-1, shoe.CardsLeft())
}

func TestShoe_PeekTop(t *testing.T) {
	shoe := NewShoe(DefaultPacks)
	shoe.Shuffle(1)

	peeked := shoe.PeekTop(3)
	assert.Equal(t, 3, len(peeked))
	assert.Equal(t, 312, shoe.CardsLeft())

	// peeked cards come off the shoe in the same order
	for _, expected := range peeked {
		assert.True(t, shoe.Draw().Equal(expected))
	}

	shoe.Restore(shoe.Cards[:2])
	assert.Equal(t, 2, len(shoe.PeekTop(5)))
}

func TestShoe_Restore(t *testing.T) {
	shoe := NewShoe(DefaultPacks)
	shoe.Shuffle(1)
	for i := 0; i < 10; i++ {
		shoe.Draw()
	}

	saved := CardsToString(shoe.Cards)

	restored := NewShoe(DefaultPacks)
	restored.Restore(CardsFromString(saved))

	assert.Equal(t, shoe.CardsLeft(), restored.CardsLeft())
	for restored.CardsLeft() > LowWaterMark {
		assert.True(t, restored.Draw().Equal(shoe.Draw()))
	}
}
