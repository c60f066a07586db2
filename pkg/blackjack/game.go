package blackjack

import (
	"errors"

	"garitoblackjack-server/internal/rng"
	"garitoblackjack-server/pkg/deck"
	"garitoblackjack-server/pkg/garito"

	"github.com/sirupsen/logrus"
)

// Status is the round state machine position
type Status string

// status constants
const (
	StatusWaitingForBet Status = "waiting_for_bet"
	StatusPlayerTurn    Status = "player_turn"
	StatusDealerTurn    Status = "dealer_turn"
	StatusRoundComplete Status = "round_complete"
	StatusGameOver      Status = "game_over"
	StatusShop          Status = "shop"
)

// Outcome is how a round resolved
type Outcome string

// outcome constants
const (
	OutcomeWin       Outcome = "win"
	OutcomeBlackjack Outcome = "blackjack"
	OutcomeLoss      Outcome = "loss"
	OutcomePush      Outcome = "push"
)

// MaxStress is the stress ceiling; reaching it ends the game
const MaxStress = 100

// dealer draws to this value, soft or hard
const dealerStandValue = 17

// blackjackPayout is the payout fraction for a natural
const blackjackPayout = 1.5

// detectedStressPenalty is the extra stress added when a cheat is detected
const detectedStressPenalty = 15

// highRollerWinFraction is the winnings fraction for doubled wins under the
// high-roller rule, instead of even money
const highRollerWinFraction = 1.25

// maxHands caps how many hands a player can split into
const maxHands = 4

// shoeSeed is the seed for new shoes
// defined here for testing purposes
var shoeSeed = int64(0)

// Stats are the cumulative per-game statistics
type Stats struct {
	Wins           int `json:"wins"`
	Losses         int `json:"losses"`
	Pushes         int `json:"pushes"`
	Rounds         int `json:"rounds"`
	CheatsUsed     int `json:"cheatsUsed"`
	CheatsDetected int `json:"cheatsDetected"`
}

// rewindState is the snapshot taken at bet placement, consumed by the
// pocket-watch item
type rewindState struct {
	Chips  int `json:"chips"`
	Stress int `json:"stress"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Pushes int `json:"pushes"`
	Rounds int `json:"rounds"`
}

// Game is a single-player blackjack roguelite session. It is the aggregate
// root owning the shoe, hands, inventory, and progression state.
//
// A Game is single-writer: it performs no synchronization of its own and
// assumes at most one in-flight mutating call at a time. The hosting layer
// serializes calls per game id.
type Game struct {
	id         string
	playerName string
	difficulty garito.Difficulty
	logger     logrus.FieldLogger
	rand       rng.Generator

	chips  int
	stress int
	status Status

	venueLevel      int
	venuesCompleted []int

	inventory *Inventory

	winStreak       int
	maxWinStreak    int
	lastStreakBonus int

	stats Stats

	shoe       *deck.Shoe
	hands      []*Hand
	activeHand int
	dealerHand *Hand

	currentBet   int
	insuranceBet int
	sideBet      int
	sideBetWon   int

	roundResult  Outcome
	roundMessage string

	// per-round cheat residue
	dealerRevealed     bool
	peekedCards        []*deck.Card
	nextCardPeeked     *deck.Card
	cheatUsedThisRound garito.CheatID
	actionTaken        bool

	rewind *rewindState
}

// NewGame returns a new game at venue 1 with the difficulty's starting
// chips and stress
func NewGame(id, playerName string, difficultyID garito.DifficultyID, logger logrus.FieldLogger) (*Game, error) {
	if id == "" {
		return nil, errors.New("game requires an id")
	}

	difficulty, ok := garito.DifficultyByID(difficultyID)
	if !ok {
		return nil, ErrUnknownEntity
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	shoe := deck.NewShoe(deck.DefaultPacks)
	shoe.Shuffle(shoeSeed)

	g := &Game{
		id:              id,
		playerName:      playerName,
		difficulty:      difficulty,
		logger:          logger.WithField("game", id),
		rand:            rng.Crypto{},
		chips:           difficulty.StartingChips,
		stress:          difficulty.StartingStress,
		status:          StatusWaitingForBet,
		venueLevel:      1,
		venuesCompleted: []int{},
		inventory:       NewInventory(),
		shoe:            shoe,
	}

	return g, nil
}

// ID returns the game identity
func (g *Game) ID() string {
	return g.id
}

// PlayerName returns the player's display name
func (g *Game) PlayerName() string {
	return g.playerName
}

// Status returns the current round state machine position
func (g *Game) Status() Status {
	return g.status
}

// Chips returns the current chip balance
func (g *Game) Chips() int {
	return g.chips
}

// Stress returns the current stress meter value
func (g *Game) Stress() int {
	return g.stress
}

// Inventory returns the player's inventory
func (g *Game) Inventory() *Inventory {
	return g.inventory
}

// Venue returns the active venue
func (g *Game) Venue() garito.Venue {
	venue, ok := garito.VenueByLevel(g.venueLevel)
	if !ok {
		// venueLevel is engine-controlled; this is unreachable
		panic("game is at an unknown venue level")
	}

	return venue
}

// WinStreak returns the current consecutive-win counter
func (g *Game) WinStreak() int {
	return g.winStreak
}

// Stats returns the cumulative statistics
func (g *Game) Stats() Stats {
	return g.stats
}

// currentHand returns the hand the player is currently acting on
func (g *Game) currentHand() *Hand {
	if g.activeHand < 0 || g.activeHand >= len(g.hands) {
		return nil
	}

	return g.hands[g.activeHand]
}

// totalWagered is the sum of every active hand's wager
func (g *Game) totalWagered() int {
	total := 0
	for _, h := range g.hands {
		total += h.Wager
	}

	return total
}

// gate rejects operations in terminal or mismatched statuses
func (g *Game) gate(want Status) error {
	if g.status == StatusGameOver {
		return ErrTerminalState
	}

	if g.status != want {
		return ErrInvalidTransition
	}

	return nil
}

// clampStress bounds the stress meter to [0, MaxStress]
func clampStress(stress int) int {
	if stress < 0 {
		return 0
	}

	if stress > MaxStress {
		return MaxStress
	}

	return stress
}

// addStress raises the stress meter, clamped to the ceiling
func (g *Game) addStress(amount int) {
	g.stress = clampStress(g.stress + amount)
}

// relieveStress lowers the stress meter, floored at zero
func (g *Game) relieveStress(amount int) {
	g.stress = clampStress(g.stress - amount)
}

// CanAdvanceVenue returns true when the balance has reached the active
// venue's chip target. The final venue has no target.
func (g *Game) CanAdvanceVenue() bool {
	venue := g.Venue()
	if venue.IsFinal() {
		return false
	}

	return g.chips >= venue.ChipTarget
}
