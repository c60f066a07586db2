package blackjack

import (
	"garitoblackjack-server/pkg/deck"
)

// target hand value
const blackjackTarget = 21

// Hand is an ordered collection of cards playing for a single wager
type Hand struct {
	Cards []*deck.Card `json:"cards"`
	Wager int          `json:"wager"`

	Standing  bool `json:"isStanding"`
	Busted    bool `json:"isBusted"`
	Blackjack bool `json:"isBlackjack"`
	Doubled   bool `json:"isDoubled"`
	FromSplit bool `json:"isFromSplit"`
}

// NewHand returns a new, empty hand playing for the specified wager
func NewHand(wager int) *Hand {
	return &Hand{
		Cards: make([]*deck.Card, 0, 4),
		Wager: wager,
	}
}

// handValue computes the best soft-ace total for the cards: aces count as 11,
// then are demoted by 10 each while the total exceeds 21 and an ace remains.
func handValue(cards []*deck.Card) int {
	value := 0
	aces := 0
	for _, c := range cards {
		value += c.BlackjackValue()
		if c.IsAce() {
			aces++
		}
	}

	for value > blackjackTarget && aces > 0 {
		value -= 10
		aces--
	}

	return value
}

// Value returns the soft-ace total of the hand
func (h *Hand) Value() int {
	return handValue(h.Cards)
}

// AddCard appends a card and updates the hand flags. The bust flag is sticky:
// once busted, the hand is permanently standing unless a swap rebuilds it.
func (h *Hand) AddCard(card *deck.Card) {
	h.Cards = append(h.Cards, card)

	value := h.Value()
	if value > blackjackTarget {
		h.Busted = true
		h.Standing = true
	}

	if len(h.Cards) == 2 && value == blackjackTarget && !h.FromSplit {
		h.Blackjack = true
		h.Standing = true
	}
}

// Stand marks the hand as standing
func (h *Hand) Stand() {
	h.Standing = true
}

// CanDouble returns true if the hand has exactly two cards and has not already doubled
func (h *Hand) CanDouble() bool {
	return len(h.Cards) == 2 && !h.Doubled
}

// CanSplit returns true if the hand has exactly two cards of equal blackjack
// value. Ten-value cards of mixed rank (e.g. K+10) are splittable.
func (h *Hand) CanSplit() bool {
	return len(h.Cards) == 2 && h.Cards[0].BlackjackValue() == h.Cards[1].BlackjackValue()
}

// RemoveLeastUseful removes and returns the card whose single-card removal
// best serves the hand: on a busted hand, the removal that reduces the total
// the most; otherwise the removal leaving the total closest to 21 without
// exceeding it. Ties go to the earliest card. Greedy per card, not optimal
// across combinations.
func (h *Hand) RemoveLeastUseful() *deck.Card {
	if len(h.Cards) == 0 {
		return nil
	}

	busted := h.Value() > blackjackTarget

	bestIndex := 0
	bestScore := removalScore(h.Cards, 0, busted)
	for i := 1; i < len(h.Cards); i++ {
		if score := removalScore(h.Cards, i, busted); score > bestScore {
			bestIndex = i
			bestScore = score
		}
	}

	removed := h.Cards[bestIndex]
	h.Cards = append(h.Cards[:bestIndex], h.Cards[bestIndex+1:]...)
	return removed
}

// removalScore rates removing the card at index i; higher is better
func removalScore(cards []*deck.Card, i int, busted bool) int {
	rest := make([]*deck.Card, 0, len(cards)-1)
	rest = append(rest, cards[:i]...)
	rest = append(rest, cards[i+1:]...)
	value := handValue(rest)

	if busted {
		// biggest reduction wins
		return -value
	}

	if value > blackjackTarget {
		// never prefer a removal that leaves the hand busted
		return -1000
	}

	return value
}

// SwapWorst removes the least useful card and replaces it with the provided
// draw, then recomputes the flags from scratch. This is the one path that can
// clear a bust (the extra-card cheat can bust a hand mid-turn, and a swap may
// rescue it).
func (h *Hand) SwapWorst(card *deck.Card) *deck.Card {
	removed := h.RemoveLeastUseful()
	h.Cards = append(h.Cards, card)

	busted := h.Value() > blackjackTarget
	h.Busted = busted
	h.Standing = busted

	return removed
}
