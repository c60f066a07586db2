package blackjack

import (
	"garitoblackjack-server/pkg/deck"
	"garitoblackjack-server/pkg/garito"
)

// HandState is the visible state of a player hand
type HandState struct {
	Cards       []*deck.Card `json:"cards"`
	Value       int          `json:"value"`
	Wager       int          `json:"wager"`
	IsStanding  bool         `json:"isStanding"`
	IsBusted    bool         `json:"isBusted"`
	IsBlackjack bool         `json:"isBlackjack"`
	IsDoubled   bool         `json:"isDoubled"`
	IsFromSplit bool         `json:"isFromSplit"`
}

// DealerState is the visible state of the dealer hand. The hole card is
// omitted during the player's turn unless a cheat revealed it.
type DealerState struct {
	Cards       []*deck.Card `json:"cards"`
	Value       int          `json:"value"`
	HoleHidden  bool         `json:"holeHidden"`
	IsBusted    bool         `json:"isBusted"`
	IsBlackjack bool         `json:"isBlackjack"`
}

// CheatState describes an unlocked cheat and its current eligibility
type CheatState struct {
	ID          garito.CheatID `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	StressCost  int            `json:"stressCost"`
	ChipCost    int            `json:"chipCost"`
	CanUse      bool           `json:"canUse"`
	Cooldown    int            `json:"cooldown"`
	// DetectionChance is only computed during the player's turn
	DetectionChance *float64 `json:"detectionChance,omitempty"`
}

// StreakState is the win-streak summary
type StreakState struct {
	Current   int `json:"current"`
	Max       int `json:"max"`
	LastBonus int `json:"lastBonus"`
}

// GameState is the full read-only projection consumed by the transport
// layer; it is never mutated by its consumers
type GameState struct {
	ID         string              `json:"id"`
	PlayerName string              `json:"playerName"`
	Difficulty garito.DifficultyID `json:"difficulty"`
	Chips      int                 `json:"chips"`
	Stress     int                 `json:"stress"`
	MaxStress  int                 `json:"maxStress"`
	Status     Status              `json:"status"`

	CurrentBet       int  `json:"currentBet"`
	SideBet          int  `json:"sideBet,omitempty"`
	SideBetWon       int  `json:"sideBetWon,omitempty"`
	InsuranceBet     int  `json:"insuranceBet,omitempty"`
	InsuranceOffered bool `json:"insuranceOffered"`

	Hands      []*HandState `json:"hands"`
	ActiveHand int          `json:"activeHand"`
	DealerHand *DealerState `json:"dealerHand,omitempty"`

	RoundResult  Outcome `json:"roundResult,omitempty"`
	RoundMessage string  `json:"roundMessage,omitempty"`

	Venue           garito.Venue `json:"venue"`
	CanAdvanceVenue bool         `json:"canAdvanceVenue"`

	Inventory       *Inventory   `json:"inventory"`
	AvailableCheats []CheatState `json:"availableCheats"`
	PeekedCards     []*deck.Card `json:"peekedCards,omitempty"`
	NextCardPeeked  *deck.Card   `json:"nextCardPeeked,omitempty"`

	Streak StreakState `json:"streak"`
	Stats  Stats       `json:"stats"`

	ShoeRemaining   int  `json:"shoeRemaining"`
	CanDouble       bool `json:"canDouble"`
	CanSplit        bool `json:"canSplit"`
	CanAffordDouble bool `json:"canAffordDouble"`
}

func handState(h *Hand) *HandState {
	return &HandState{
		Cards:       h.Cards,
		Value:       h.Value(),
		Wager:       h.Wager,
		IsStanding:  h.Standing,
		IsBusted:    h.Busted,
		IsBlackjack: h.Blackjack,
		IsDoubled:   h.Doubled,
		IsFromSplit: h.FromSplit,
	}
}

func (g *Game) dealerState() *DealerState {
	if g.dealerHand == nil {
		return nil
	}

	if g.status == StatusPlayerTurn && !g.dealerRevealed && len(g.dealerHand.Cards) > 1 {
		up := g.dealerHand.Cards[0]
		return &DealerState{
			Cards:      []*deck.Card{up},
			Value:      up.BlackjackValue(),
			HoleHidden: true,
		}
	}

	return &DealerState{
		Cards:       g.dealerHand.Cards,
		Value:       g.dealerHand.Value(),
		IsBusted:    g.dealerHand.Busted,
		IsBlackjack: g.dealerHand.Blackjack,
	}
}

func (g *Game) cheatStates() []CheatState {
	states := make([]CheatState, 0, len(g.inventory.UnlockedCheats))
	for _, id := range g.inventory.UnlockedCheats {
		cheat, ok := garito.CheatByID(id)
		if !ok {
			continue
		}

		state := CheatState{
			ID:          id,
			Name:        cheat.Name,
			Description: cheat.Description,
			StressCost:  cheat.StressCost,
			ChipCost:    cheat.ChipCost,
			CanUse:      g.inventory.CanUseCheat(id),
			Cooldown:    g.inventory.CheatCooldowns[id],
		}

		if g.status == StatusPlayerTurn {
			chance := g.DetectionChance(cheat)
			state.DetectionChance = &chance
		}

		states = append(states, state)
	}

	return states
}

// State returns the read-only snapshot of the game for presentation
func (g *Game) State() *GameState {
	hands := make([]*HandState, len(g.hands))
	for i, h := range g.hands {
		hands[i] = handState(h)
	}

	var canDouble, canSplit, canAffordDouble bool
	if g.status == StatusPlayerTurn {
		if hand := g.currentHand(); hand != nil {
			canDouble = hand.CanDouble()
			canSplit = hand.CanSplit() && len(g.hands) < maxHands
			canAffordDouble = g.chips >= hand.Wager
		}
	}

	return &GameState{
		ID:               g.id,
		PlayerName:       g.playerName,
		Difficulty:       g.difficulty.ID,
		Chips:            g.chips,
		Stress:           g.stress,
		MaxStress:        MaxStress,
		Status:           g.status,
		CurrentBet:       g.currentBet,
		SideBet:          g.sideBet,
		SideBetWon:       g.sideBetWon,
		InsuranceBet:     g.insuranceBet,
		InsuranceOffered: g.InsuranceOffered(),
		Hands:            hands,
		ActiveHand:       g.activeHand,
		DealerHand:       g.dealerState(),
		RoundResult:      g.roundResult,
		RoundMessage:     g.roundMessage,
		Venue:            g.Venue(),
		CanAdvanceVenue:  g.CanAdvanceVenue(),
		Inventory:        g.inventory,
		AvailableCheats:  g.cheatStates(),
		PeekedCards:      g.peekedCards,
		NextCardPeeked:   g.nextCardPeeked,
		Streak: StreakState{
			Current:   g.winStreak,
			Max:       g.maxWinStreak,
			LastBonus: g.lastStreakBonus,
		},
		Stats:           g.stats,
		ShoeRemaining:   g.shoe.CardsLeft(),
		CanDouble:       canDouble,
		CanSplit:        canSplit,
		CanAffordDouble: canAffordDouble,
	}
}
