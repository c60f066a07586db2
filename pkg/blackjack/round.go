package blackjack

import (
	"fmt"

	"garitoblackjack-server/pkg/garito"
)

// PlayerActionType is a decision the player can make on the current hand
type PlayerActionType string

// player action constants
const (
	ActionHit    PlayerActionType = "hit"
	ActionStand  PlayerActionType = "stand"
	ActionDouble PlayerActionType = "double"
)

// perfect-pairs side bet payout multipliers
const (
	mixedPairPayout   = 6
	coloredPairPayout = 12
	perfectPairPayout = 25
)

// PlaceBet starts a round. The amount must be within the active venue's bet
// bounds and covered by the balance. An optional perfect-pairs side bet rides
// on the player's first two cards. The pre-round rewind snapshot is taken
// before any chips move.
func (g *Game) PlaceBet(amount, sideBet int) error {
	if err := g.gate(StatusWaitingForBet); err != nil {
		return err
	}

	venue := g.Venue()
	if amount < venue.MinBet || amount > venue.MaxBet || amount > g.chips {
		return ErrInvalidAmount
	}

	if sideBet < 0 || sideBet > g.chips-amount {
		return ErrInvalidAmount
	}

	g.saveRewindState()

	g.chips -= amount + sideBet
	g.currentBet = amount
	g.sideBet = sideBet
	g.sideBetWon = 0
	g.insuranceBet = 0
	g.actionTaken = false
	g.dealerRevealed = false
	g.peekedCards = nil
	g.nextCardPeeked = nil
	g.cheatUsedThisRound = ""
	g.roundResult = ""
	g.roundMessage = ""

	g.dealInitialCards(amount)
	return nil
}

func (g *Game) saveRewindState() {
	g.rewind = &rewindState{
		Chips:  g.chips,
		Stress: g.stress,
		Wins:   g.stats.Wins,
		Losses: g.stats.Losses,
		Pushes: g.stats.Pushes,
		Rounds: g.stats.Rounds,
	}
}

func (g *Game) restoreRewindState() {
	state := g.rewind
	g.chips = state.Chips
	g.stress = state.Stress
	g.stats.Wins = state.Wins
	g.stats.Losses = state.Losses
	g.stats.Pushes = state.Pushes
	g.stats.Rounds = state.Rounds

	g.status = StatusWaitingForBet
	g.hands = nil
	g.activeHand = 0
	g.dealerHand = nil
	g.currentBet = 0
	g.insuranceBet = 0
	g.sideBet = 0
	g.sideBetWon = 0
	g.roundResult = ""
	g.roundMessage = ""
	g.rewind = nil
}

func (g *Game) dealInitialCards(wager int) {
	player := NewHand(wager)
	dealer := NewHand(0)
	g.hands = []*Hand{player}
	g.activeHand = 0
	g.dealerHand = dealer

	// player, dealer, player, dealer
	player.AddCard(g.shoe.Draw())
	dealer.AddCard(g.shoe.Draw())
	player.AddCard(g.shoe.Draw())
	dealer.AddCard(g.shoe.Draw())

	g.settleSideBet(player)

	if player.Blackjack {
		g.resolveNaturalBlackjack(player)
		return
	}

	g.status = StatusPlayerTurn
}

// settleSideBet pays the perfect-pairs side bet off the player's initial two
// cards: mixed pair 6:1, same-color pair 12:1, identical pair 25:1
func (g *Game) settleSideBet(player *Hand) {
	if g.sideBet <= 0 {
		return
	}

	a, b := player.Cards[0], player.Cards[1]
	if a.Rank != b.Rank {
		return
	}

	payout := mixedPairPayout
	switch {
	case a.Suit == b.Suit:
		payout = perfectPairPayout
	case a.IsRed() == b.IsRed():
		payout = coloredPairPayout
	}

	winnings := g.sideBet * payout
	g.chips += g.sideBet + winnings
	g.sideBetWon = winnings

	g.logger.WithFields(map[string]interface{}{
		"sideBet":  g.sideBet,
		"winnings": winnings,
	}).Info("perfect pairs side bet won")
}

// resolveNaturalBlackjack handles a two-card 21 on the deal
func (g *Game) resolveNaturalBlackjack(player *Hand) {
	venue := g.Venue()

	if g.dealerHand.Blackjack {
		if venue.HasRule(garito.RuleWidowCurse) {
			g.endRound(OutcomeLoss, "¡LA MALDICIÓN DE LA VIUDA! Empate = Derrota", 0)
			return
		}

		g.chips += player.Wager
		g.endRound(OutcomePush, "¡DOBLE BLACKJACK! EMPATE", 0)
		return
	}

	payout := int(float64(player.Wager) * blackjackPayout)
	if bonus := g.inventory.Passive(garito.EffectBonusWinnings); bonus > 0 {
		payout = int(float64(payout) * (1 + bonus))
	}

	g.chips += player.Wager + payout
	g.endRound(OutcomeBlackjack, fmt.Sprintf("¡¡¡BLACKJACK!!! +$%d", payout), payout)
}

// InsuranceOffered returns true while the player may still buy insurance:
// the dealer's upcard is an ace and no action has been taken yet
func (g *Game) InsuranceOffered() bool {
	return g.status == StatusPlayerTurn &&
		!g.actionTaken &&
		g.insuranceBet == 0 &&
		g.dealerHand != nil &&
		len(g.dealerHand.Cards) > 0 &&
		g.dealerHand.Cards[0].IsAce()
}

// PlaceInsurance buys insurance against a dealer blackjack for half the
// current bet, rounded up. Pays 2:1 at resolution if the dealer has one.
func (g *Game) PlaceInsurance() error {
	if err := g.gate(StatusPlayerTurn); err != nil {
		return err
	}

	if !g.InsuranceOffered() {
		return ErrNotAvailable
	}

	cost := (g.currentBet + 1) / 2
	if cost > g.chips {
		return ErrInsufficientFunds
	}

	g.chips -= cost
	g.insuranceBet = cost
	return nil
}

// PlayerAction performs hit, stand, or double on the current hand
func (g *Game) PlayerAction(action PlayerActionType) error {
	if err := g.gate(StatusPlayerTurn); err != nil {
		return err
	}

	hand := g.currentHand()

	switch action {
	case ActionHit:
		if hand.Standing {
			return ErrInvalidTransition
		}

		g.actionTaken = true
		hand.AddCard(g.shoe.Draw())
		g.nextCardPeeked = nil

		if hand.Busted || hand.Value() == blackjackTarget {
			hand.Stand()
			g.advanceHand()
		}

	case ActionStand:
		g.actionTaken = true
		hand.Stand()
		g.advanceHand()

	case ActionDouble:
		if !hand.CanDouble() {
			return ErrInvalidTransition
		}

		if g.chips < hand.Wager {
			return ErrInsufficientFunds
		}

		g.actionTaken = true
		g.chips -= hand.Wager
		g.currentBet += hand.Wager
		hand.Wager *= 2
		hand.Doubled = true
		hand.AddCard(g.shoe.Draw())
		g.nextCardPeeked = nil
		hand.Stand()
		g.advanceHand()

	default:
		return ErrUnknownEntity
	}

	return nil
}

// Split divides the current two-card pair into two hands, each staked at the
// original wager and each dealt a fresh card. Split hands can never make a
// natural blackjack and play out left to right.
func (g *Game) Split() error {
	if err := g.gate(StatusPlayerTurn); err != nil {
		return err
	}

	hand := g.currentHand()
	if !hand.CanSplit() || len(g.hands) >= maxHands {
		return ErrInvalidTransition
	}

	if g.chips < hand.Wager {
		return ErrInsufficientFunds
	}

	g.actionTaken = true
	g.chips -= hand.Wager
	g.currentBet += hand.Wager

	second := NewHand(hand.Wager)
	second.FromSplit = true
	second.Cards = append(second.Cards, hand.Cards[1])

	hand.Cards = hand.Cards[:1]
	hand.FromSplit = true
	hand.Blackjack = false

	hand.AddCard(g.shoe.Draw())
	second.AddCard(g.shoe.Draw())
	g.nextCardPeeked = nil

	// insert the new hand immediately after the current one
	hands := make([]*Hand, 0, len(g.hands)+1)
	hands = append(hands, g.hands[:g.activeHand+1]...)
	hands = append(hands, second)
	hands = append(hands, g.hands[g.activeHand+1:]...)
	g.hands = hands

	return nil
}

// advanceHand moves play to the next hand that can still act, left to right,
// never revisiting. When every hand is done the dealer plays.
func (g *Game) advanceHand() {
	for g.activeHand < len(g.hands) && g.hands[g.activeHand].Standing {
		g.activeHand++
	}

	if g.activeHand < len(g.hands) {
		return
	}

	g.finishPlayerPhase()
}

// finishPlayerPhase runs the dealer and resolves the round. The dealer does
// not draw when every player hand has already busted.
func (g *Game) finishPlayerPhase() {
	allBusted := true
	for _, h := range g.hands {
		if !h.Busted {
			allBusted = false
			break
		}
	}

	if !allBusted {
		g.status = StatusDealerTurn
		for g.dealerHand.Value() < dealerStandValue {
			g.dealerHand.AddCard(g.shoe.Draw())
		}
	}

	g.resolveRound()
}

// resolveRound settles every hand against the dealer under the venue's
// special rules, then runs the end-of-round bookkeeping
func (g *Game) resolveRound() {
	venue := g.Venue()

	// the Devil's table: a dealer natural takes everything
	if venue.HasRule(garito.RuleDevilsGame) && g.dealerHand.Blackjack {
		total := g.chips + g.totalWagered()
		g.chips = 0
		g.endRound(OutcomeLoss, fmt.Sprintf("¡EL DIABLO TIENE BLACKJACK! Pierdes todo: $%d", total), 0)
		return
	}

	if g.insuranceBet > 0 && g.dealerHand.Blackjack {
		// insurance pays 2:1 plus the returned stake
		g.chips += g.insuranceBet * 3
	}

	bonus := g.inventory.Passive(garito.EffectBonusWinnings)
	if venue.HasRule(garito.RuleDrunkBonus) {
		bonus += 0.10
	}

	dealerValue := g.dealerHand.Value()
	dealerBusted := g.dealerHand.Busted

	wagered := 0
	returned := 0
	totalWinnings := 0

	for _, hand := range g.hands {
		wagered += hand.Wager
		value := hand.Value()

		switch {
		case hand.Busted:
			// no return
		case dealerBusted || value > dealerValue:
			base := float64(hand.Wager)
			if hand.Doubled && venue.HasRule(garito.RuleHighRoller) {
				base *= highRollerWinFraction
			}

			winnings := int(base * (1 + bonus))
			g.chips += hand.Wager + winnings
			returned += hand.Wager + winnings
			totalWinnings += winnings
		case value == dealerValue:
			if venue.HasRule(garito.RuleWidowCurse) {
				break
			}

			g.chips += hand.Wager
			returned += hand.Wager
		}
	}

	playerValue := g.hands[0].Value()

	var outcome Outcome
	var message string
	switch {
	case returned > wagered:
		outcome = OutcomeWin
		if dealerBusted {
			message = fmt.Sprintf("¡CRUPIER SE PASA! +$%d", totalWinnings)
		} else {
			message = fmt.Sprintf("¡GANAS! %d vs %d → +$%d", playerValue, dealerValue, totalWinnings)
		}
	case returned < wagered:
		outcome = OutcomeLoss
		if venue.HasRule(garito.RuleWidowCurse) && !dealerBusted && playerValue == dealerValue {
			message = fmt.Sprintf("¡MALDICIÓN! Empate = Derrota → -$%d", wagered-returned)
		} else {
			message = fmt.Sprintf("PIERDES %d vs %d → -$%d", playerValue, dealerValue, wagered-returned)
		}
	default:
		outcome = OutcomePush
		message = fmt.Sprintf("EMPATE %d", playerValue)
	}

	g.endRound(outcome, message, totalWinnings)
}

// endRound runs the bookkeeping every resolution path shares: streak and
// stress movement, the streak bonus, cooldown ticks, and termination checks
func (g *Game) endRound(result Outcome, message string, winnings int) {
	g.roundResult = result
	g.roundMessage = message
	g.stats.Rounds++
	g.lastStreakBonus = 0

	switch result {
	case OutcomeWin, OutcomeBlackjack:
		g.stats.Wins++
		g.winStreak++
		if g.winStreak > g.maxWinStreak {
			g.maxWinStreak = g.winStreak
		}

		g.relieveStress(g.difficulty.StressReliefOnWin)
		g.applyStreakBonus(result, winnings)

	case OutcomeLoss:
		g.stats.Losses++
		g.winStreak = 0

		penalty := g.difficulty.StressOnLoss
		if g.inventory.HasPassive(garito.EffectCursedStreak) {
			penalty += 2
		}
		g.addStress(penalty)

	case OutcomePush:
		g.stats.Pushes++
		if !g.inventory.HasPassive(garito.EffectStreakInsurance) {
			g.winStreak = 0
		}
	}

	g.inventory.TickCooldowns()

	venue := g.Venue()
	switch {
	case g.chips <= 0:
		g.status = StatusGameOver
	case g.chips < venue.MinBet:
		g.status = StatusGameOver
		g.roundMessage = fmt.Sprintf("Sin fichas suficientes para la apuesta mínima ($%d). Te echan del garito...", venue.MinBet)
	case g.stress >= MaxStress:
		g.status = StatusGameOver
		g.roundMessage = "¡COLAPSO NERVIOSO! El estrés te consume..."
	default:
		g.status = StatusRoundComplete
	}

	g.logger.WithFields(map[string]interface{}{
		"result": result,
		"chips":  g.chips,
		"stress": g.stress,
		"streak": g.winStreak,
		"status": g.status,
	}).Info("round resolved")
}

// applyStreakBonus credits the win-streak bonus for streaks of two or more
func (g *Game) applyStreakBonus(result Outcome, winnings int) {
	if g.winStreak < 2 || winnings <= 0 {
		return
	}

	multiplier := g.difficulty.StreakMultiplier(g.winStreak)
	multiplier *= 1 + g.inventory.Passive(garito.EffectStreakBoost)
	if cursed := g.inventory.Passive(garito.EffectCursedStreak); cursed > 0 {
		multiplier *= 1 + cursed
	}

	if result == OutcomeBlackjack {
		multiplier += g.difficulty.BlackjackStreakBonus
	}

	bonus := int(float64(winnings) * (multiplier - 1))
	if bonus <= 0 {
		return
	}

	g.chips += bonus
	g.lastStreakBonus = bonus

	g.logger.WithFields(map[string]interface{}{
		"streak": g.winStreak,
		"bonus":  bonus,
	}).Info("streak bonus paid")
}

// NewRound clears the table after a completed round
func (g *Game) NewRound() error {
	if err := g.gate(StatusRoundComplete); err != nil {
		return err
	}

	g.status = StatusWaitingForBet
	g.hands = nil
	g.activeHand = 0
	g.dealerHand = nil
	g.currentBet = 0
	g.insuranceBet = 0
	g.sideBet = 0
	g.sideBetWon = 0
	g.roundResult = ""
	g.roundMessage = ""
	g.dealerRevealed = false
	g.peekedCards = nil
	g.nextCardPeeked = nil
	g.cheatUsedThisRound = ""
	g.actionTaken = false

	return nil
}
