package deck

import (
	"math/rand"
	"time"
)

// DefaultPacks is the number of 52-card packs in a standard shoe
const DefaultPacks = 6

// LowWaterMark is the card count below which the shoe is rebuilt before the next draw
const LowWaterMark = 20

// Shoe is a dealing shoe built from one or more standard 52-card packs.
// Cards[0] is the next card to be drawn.
type Shoe struct {
	Cards []*Card `json:"cards"`
	packs int
	seed  int64
	rng   *rand.Rand
}

// NewShoe returns a new shoe built from the specified number of packs.
// Important! the shoe is unshuffled. You must call the Shuffle() method to shuffle the cards
func NewShoe(packs int) *Shoe {
	if packs <= 0 {
		packs = DefaultPacks
	}

	s := &Shoe{
		packs: packs,
		seed:  -1,
	}

	s.buildShoe()
	return s
}

// SetSeed will set the seed
// This should only be used by tests. Setting the seed is normally handled when you call Shuffle()
func (s *Shoe) SetSeed(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
}

func (s *Shoe) buildShoe() {
	cards := make([]*Card, 0, s.packs*52)
	for i := 0; i < s.packs; i++ {
		for _, suit := range Suits {
			for rank := 2; rank <= 14; rank++ {
				cards = append(cards, &Card{
					Rank: rank,
					Suit: suit,
				})
			}
		}
	}

	s.Cards = cards
}

// Shuffle replaces the shoe with a freshly built set of packs and shuffles it.
// You can manually specify the seed, or you can leave it as 0 to use the current time.
func (s *Shoe) Shuffle(seed int64) {
	if seed < 0 {
		panic("seed cannot be < 0")
	}

	s.buildShoe()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s.SetSeed(seed)

	for j := len(s.Cards) - 1; j > 0; j-- {
		i := s.rng.Intn(j + 1)

		s.Cards[i], s.Cards[j] = s.Cards[j], s.Cards[i]
	}
}

// Draw will draw the next card.
// If the remaining count has dropped below the low-water mark, the shoe is
// first replaced with a freshly built and shuffled set of packs.
func (s *Shoe) Draw() *Card {
	if len(s.Cards) < LowWaterMark {
		s.Shuffle(0)
	}

	card := s.Cards[0]
	s.Cards = s.Cards[1:]

	return card
}

// PeekTop returns, without removing, the next n cards in the exact order
// Draw() would yield them. Fewer cards are returned if the shoe is short.
func (s *Shoe) PeekTop(n int) []*Card {
	if n > len(s.Cards) {
		n = len(s.Cards)
	}

	cards := make([]*Card, n)
	copy(cards, s.Cards[:n])
	return cards
}

// CardsLeft returns the number of cards left in the shoe
func (s *Shoe) CardsLeft() int {
	return len(s.Cards)
}

// Packs returns the number of packs the shoe rebuilds from
func (s *Shoe) Packs() int {
	return s.packs
}

// GetSeed returns the seed used to shuffle the shoe
func (s *Shoe) GetSeed() int64 {
	return s.seed
}

// Restore replaces the shoe contents with the exact card order provided.
// Used when reloading a saved game; future draws must match the saved shoe.
func (s *Shoe) Restore(cards []*Card) {
	s.Cards = make([]*Card, len(cards))
	copy(s.Cards, cards)
}
