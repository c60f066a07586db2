package blackjack

import (
	"fmt"

	"garitoblackjack-server/internal/rng"
	"garitoblackjack-server/pkg/deck"
	"garitoblackjack-server/pkg/garito"

	"github.com/sirupsen/logrus"
)

// SnapshotVersion is the current snapshot schema version
const SnapshotVersion = 1

// HandSnapshot captures a hand; cards are encoded in draw order
type HandSnapshot struct {
	Cards       string `json:"cards"`
	Wager       int    `json:"wager"`
	IsStanding  bool   `json:"isStanding"`
	IsBusted    bool   `json:"isBusted"`
	IsBlackjack bool   `json:"isBlackjack"`
	IsDoubled   bool   `json:"isDoubled"`
	IsFromSplit bool   `json:"isFromSplit"`
}

// Snapshot is the canonical persistent form of a Game. A restored snapshot
// must reproduce the exact subsequent draw and peek sequence of the game it
// was taken from, so the remaining shoe order is captured verbatim.
type Snapshot struct {
	Version    int                 `json:"version"`
	ID         string              `json:"id"`
	PlayerName string              `json:"playerName"`
	Difficulty garito.DifficultyID `json:"difficulty"`

	Chips  int    `json:"chips"`
	Stress int    `json:"stress"`
	Status Status `json:"status"`

	VenueLevel      int   `json:"venueLevel"`
	VenuesCompleted []int `json:"venuesCompleted"`

	Inventory *Inventory `json:"inventory"`

	WinStreak       int `json:"winStreak"`
	MaxWinStreak    int `json:"maxWinStreak"`
	LastStreakBonus int `json:"lastStreakBonus"`

	Stats Stats `json:"stats"`

	CurrentBet   int `json:"currentBet"`
	InsuranceBet int `json:"insuranceBet"`
	SideBet      int `json:"sideBet"`
	SideBetWon   int `json:"sideBetWon"`

	Hands      []HandSnapshot `json:"hands"`
	ActiveHand int            `json:"activeHand"`
	DealerHand *HandSnapshot  `json:"dealerHand,omitempty"`

	ShoePacks int    `json:"shoePacks"`
	Shoe      string `json:"shoe"`

	RoundResult  Outcome `json:"roundResult,omitempty"`
	RoundMessage string  `json:"roundMessage,omitempty"`

	DealerRevealed     bool           `json:"dealerRevealed"`
	PeekedCards        string         `json:"peekedCards,omitempty"`
	NextCardPeeked     string         `json:"nextCardPeeked,omitempty"`
	CheatUsedThisRound garito.CheatID `json:"cheatUsedThisRound,omitempty"`
	ActionTaken        bool           `json:"actionTaken"`

	Rewind *rewindState `json:"rewind,omitempty"`
}

func handSnapshot(h *Hand) *HandSnapshot {
	if h == nil {
		return nil
	}

	return &HandSnapshot{
		Cards:       deck.CardsToString(h.Cards),
		Wager:       h.Wager,
		IsStanding:  h.Standing,
		IsBusted:    h.Busted,
		IsBlackjack: h.Blackjack,
		IsDoubled:   h.Doubled,
		IsFromSplit: h.FromSplit,
	}
}

func restoreHand(s *HandSnapshot) *Hand {
	if s == nil {
		return nil
	}

	return &Hand{
		Cards:     deck.CardsFromString(s.Cards),
		Wager:     s.Wager,
		Standing:  s.IsStanding,
		Busted:    s.IsBusted,
		Blackjack: s.IsBlackjack,
		Doubled:   s.IsDoubled,
		FromSplit: s.IsFromSplit,
	}
}

// Snapshot captures the full mutable state of the game
func (g *Game) Snapshot() *Snapshot {
	hands := make([]HandSnapshot, len(g.hands))
	for i, h := range g.hands {
		hands[i] = *handSnapshot(h)
	}

	return &Snapshot{
		Version:            SnapshotVersion,
		ID:                 g.id,
		PlayerName:         g.playerName,
		Difficulty:         g.difficulty.ID,
		Chips:              g.chips,
		Stress:             g.stress,
		Status:             g.status,
		VenueLevel:         g.venueLevel,
		VenuesCompleted:    append([]int{}, g.venuesCompleted...),
		Inventory:          g.inventory,
		WinStreak:          g.winStreak,
		MaxWinStreak:       g.maxWinStreak,
		LastStreakBonus:    g.lastStreakBonus,
		Stats:              g.stats,
		CurrentBet:         g.currentBet,
		InsuranceBet:       g.insuranceBet,
		SideBet:            g.sideBet,
		SideBetWon:         g.sideBetWon,
		Hands:              hands,
		ActiveHand:         g.activeHand,
		DealerHand:         handSnapshot(g.dealerHand),
		ShoePacks:          g.shoe.Packs(),
		Shoe:               deck.CardsToString(g.shoe.Cards),
		RoundResult:        g.roundResult,
		RoundMessage:       g.roundMessage,
		DealerRevealed:     g.dealerRevealed,
		PeekedCards:        deck.CardsToString(g.peekedCards),
		NextCardPeeked:     deck.CardToString(g.nextCardPeeked),
		CheatUsedThisRound: g.cheatUsedThisRound,
		ActionTaken:        g.actionTaken,
		Rewind:             g.rewind,
	}
}

// RestoreGame rebuilds a game from a snapshot. The restored shoe yields the
// exact draw and peek sequence the saved game would have.
func RestoreGame(snap *Snapshot, logger logrus.FieldLogger) (*Game, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil snapshot")
	}

	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	difficulty, ok := garito.DifficultyByID(snap.Difficulty)
	if !ok {
		return nil, fmt.Errorf("snapshot references unknown difficulty %q", snap.Difficulty)
	}

	if _, ok := garito.VenueByLevel(snap.VenueLevel); !ok {
		return nil, fmt.Errorf("snapshot references unknown venue level %d", snap.VenueLevel)
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	shoe := deck.NewShoe(snap.ShoePacks)
	shoe.Restore(deck.CardsFromString(snap.Shoe))

	hands := make([]*Hand, len(snap.Hands))
	for i := range snap.Hands {
		hands[i] = restoreHand(&snap.Hands[i])
	}

	inventory := snap.Inventory
	if inventory == nil {
		inventory = NewInventory()
	}
	if inventory.Items == nil {
		inventory.Items = make(map[garito.ItemID]int)
	}
	if inventory.PassiveEffects == nil {
		inventory.PassiveEffects = make(map[garito.ItemEffect]float64)
	}
	if inventory.CheatCooldowns == nil {
		inventory.CheatCooldowns = make(map[garito.CheatID]int)
	}

	g := &Game{
		id:                 snap.ID,
		playerName:         snap.PlayerName,
		difficulty:         difficulty,
		logger:             logger.WithField("game", snap.ID),
		rand:               rng.Crypto{},
		chips:              snap.Chips,
		stress:             snap.Stress,
		status:             snap.Status,
		venueLevel:         snap.VenueLevel,
		venuesCompleted:    append([]int{}, snap.VenuesCompleted...),
		inventory:          inventory,
		winStreak:          snap.WinStreak,
		maxWinStreak:       snap.MaxWinStreak,
		lastStreakBonus:    snap.LastStreakBonus,
		stats:              snap.Stats,
		shoe:               shoe,
		hands:              hands,
		activeHand:         snap.ActiveHand,
		dealerHand:         restoreHand(snap.DealerHand),
		currentBet:         snap.CurrentBet,
		insuranceBet:       snap.InsuranceBet,
		sideBet:            snap.SideBet,
		sideBetWon:         snap.SideBetWon,
		roundResult:        snap.RoundResult,
		roundMessage:       snap.RoundMessage,
		dealerRevealed:     snap.DealerRevealed,
		peekedCards:        deck.CardsFromString(snap.PeekedCards),
		nextCardPeeked:     deck.CardFromString(snap.NextCardPeeked),
		cheatUsedThisRound: snap.CheatUsedThisRound,
		actionTaken:        snap.ActionTaken,
		rewind:             snap.Rewind,
	}

	return g, nil
}
