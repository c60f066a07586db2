package blackjack

import (
	"fmt"

	"garitoblackjack-server/pkg/deck"
	"garitoblackjack-server/pkg/garito"
)

// detection probability clamp bounds
const (
	detectionFloor = 0.05
	detectionCeil  = 0.95
)

// every point of stress adds 1/200 to the detection probability
const stressDetectionDivisor = 200

// CheatAttempt reports the outcome of a cheat attempt. Every attempt,
// successful or detected, carries the probability used and the stress it cost.
type CheatAttempt struct {
	CheatID         garito.CheatID `json:"cheatId"`
	CheatName       string         `json:"cheatName"`
	DetectionChance float64        `json:"detectionChance"`
	StressAdded     int            `json:"stressAdded"`
	CurrentStress   int            `json:"currentStress"`
	Detected        bool           `json:"detected"`
	Message         string         `json:"message"`

	// Penalty is the forfeited wager when detected
	Penalty int `json:"penalty,omitempty"`

	// effect payloads, populated on success depending on the cheat
	RevealedCard *deck.Card   `json:"revealedCard,omitempty"`
	NextCard     *deck.Card   `json:"nextCard,omitempty"`
	PeekedCards  []*deck.Card `json:"peekedCards,omitempty"`
	RemovedCard  *deck.Card   `json:"removedCard,omitempty"`
	NewCard      *deck.Card   `json:"newCard,omitempty"`
}

// DetectionChance computes the probability that attempting the cheat right
// now gets the player caught: venue base + cheat modifier + difficulty
// modifier + stress pressure - passive reductions, clamped to [0.05, 0.95]
func (g *Game) DetectionChance(cheat garito.Cheat) float64 {
	venue := g.Venue()

	chance := venue.DetectionBase +
		cheat.DetectionModifier +
		g.difficulty.DetectionModifier +
		float64(g.stress)/stressDetectionDivisor -
		g.inventory.Passive(garito.EffectReduceDetection)

	if chance < detectionFloor {
		return detectionFloor
	}

	if chance > detectionCeil {
		return detectionCeil
	}

	return chance
}

// AttemptCheat plays a special action. The stress cost, chip cost, cooldown,
// and attempt counter are paid whether or not the cheat succeeds. A detected
// attempt forfeits the wager and ends the round as a loss on the spot.
func (g *Game) AttemptCheat(id garito.CheatID) (*CheatAttempt, error) {
	if err := g.gate(StatusPlayerTurn); err != nil {
		return nil, err
	}

	cheat, ok := garito.CheatByID(id)
	if !ok {
		return nil, ErrUnknownEntity
	}

	if !g.inventory.CanUseCheat(id) {
		return nil, ErrNotAvailable
	}

	if cheat.ChipCost > g.chips {
		return nil, ErrInsufficientFunds
	}

	guaranteed := g.inventory.GuaranteedCheat
	if guaranteed {
		g.inventory.GuaranteedCheat = false
	}

	chance := g.DetectionChance(cheat)
	roll := g.rand.Float64()

	g.stats.CheatsUsed++
	g.inventory.StartCooldown(id, cheat.Cooldown)
	g.chips -= cheat.ChipCost
	g.addStress(cheat.StressCost)

	attempt := &CheatAttempt{
		CheatID:         id,
		CheatName:       cheat.Name,
		DetectionChance: chance,
		StressAdded:     cheat.StressCost,
		CurrentStress:   g.stress,
	}

	if !guaranteed && roll < chance {
		g.stats.CheatsDetected++
		g.addStress(detectedStressPenalty)

		penalty := g.totalWagered()
		attempt.Detected = true
		attempt.Penalty = penalty
		attempt.CurrentStress = g.stress
		attempt.Message = fmt.Sprintf("¡%s te pilló! Pierdes $%d", g.Venue().DealerName, penalty)

		g.logger.WithFields(map[string]interface{}{
			"cheat":   id,
			"chance":  chance,
			"penalty": penalty,
		}).Info("cheat detected")

		g.endRound(OutcomeLoss, fmt.Sprintf("¡DETECTADO HACIENDO TRAMPA! -$%d", penalty), 0)
		return attempt, nil
	}

	g.cheatUsedThisRound = id
	g.applyCheatEffect(cheat, attempt)

	g.logger.WithFields(map[string]interface{}{
		"cheat":  id,
		"chance": chance,
	}).Info("cheat succeeded")

	return attempt, nil
}

// applyCheatEffect dispatches on the closed effect enumeration
func (g *Game) applyCheatEffect(cheat garito.Cheat, attempt *CheatAttempt) {
	hand := g.currentHand()

	switch cheat.Effect {
	case garito.EffectRevealDealer:
		g.dealerRevealed = true
		hole := g.dealerHand.Cards[1]
		attempt.RevealedCard = hole
		attempt.Message = fmt.Sprintf("Ves que el crupier tiene: %s", hole)

	case garito.EffectPeekNext:
		next := g.shoe.PeekTop(1)[0]
		g.nextCardPeeked = next
		attempt.NextCard = next
		attempt.Message = fmt.Sprintf("¡La próxima carta será: %s!", next)

	case garito.EffectSwapWorst:
		fresh := g.shoe.Draw()
		removed := hand.SwapWorst(fresh)
		attempt.RemovedCard = removed
		attempt.NewCard = fresh
		attempt.Message = fmt.Sprintf("Cambiaste %s por %s", removed, fresh)

	case garito.EffectFreeCard:
		// the free card skips hit semantics entirely: no auto-stand at 21,
		// and a bust here leaves the player in their turn so a swap can
		// still rescue the hand
		fresh := g.shoe.Draw()
		hand.AddCard(fresh)
		attempt.NewCard = fresh
		attempt.Message = fmt.Sprintf("Robaste un %s sin que nadie lo note", fresh)

	case garito.EffectSeeDeck:
		peeked := g.shoe.PeekTop(3)
		g.peekedCards = peeked
		attempt.PeekedCards = peeked
		attempt.Message = "Puedes ver las próximas 3 cartas del mazo"

	case garito.EffectDealerMistake:
		// the bribed croupier "accidentally" takes a ten
		bad := &deck.Card{Rank: 10, Suit: deck.Suits[g.rand.Intn(len(deck.Suits))]}
		g.dealerHand.AddCard(bad)
		attempt.Message = "El crupier 'accidentalmente' roba una carta de más"
	}
}
