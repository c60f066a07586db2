package mux

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"garitoblackjack-server/internal/jwt"
	"garitoblackjack-server/pkg/blackjack"
	"garitoblackjack-server/pkg/garito"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// gameEntry is a registered game plus its serialization lock. All mutating
// calls on the game happen while holding the lock.
type gameEntry struct {
	mu          sync.Mutex
	game        *blackjack.Game
	subscribers map[chan *blackjack.GameState]bool
	retired     bool
}

func newGameEntry(game *blackjack.Game) *gameEntry {
	return &gameEntry{
		game:        game,
		subscribers: make(map[chan *blackjack.GameState]bool),
	}
}

// broadcast sends the state to every websocket subscriber. Slow subscribers
// are skipped rather than blocking the round.
// must be called with the entry lock held
func (e *gameEntry) broadcast(state *blackjack.GameState) {
	for ch := range e.subscribers {
		select {
		case ch <- state:
		default:
		}
	}
}

// must be called with the entry lock held
func (e *gameEntry) closeSubscribers() {
	for ch := range e.subscribers {
		close(ch)
	}

	e.subscribers = make(map[chan *blackjack.GameState]bool)
}

// loadGame returns the registered entry, restoring it from the store if it
// isn't resident. Returns nil if the game is not known anywhere.
func (m *Mux) loadGame(ctx context.Context, id string) (*gameEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.games[id]; ok {
		return entry, nil
	}

	if m.store == nil {
		return nil, nil
	}

	snap, err := m.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if snap == nil {
		return nil, nil
	}

	game, err := blackjack.RestoreGame(snap, logrus.StandardLogger())
	if err != nil {
		return nil, err
	}

	entry := newGameEntry(game)
	m.games[id] = entry
	return entry, nil
}

// persist saves the snapshot if a store is configured
// must be called with the entry lock held
func (m *Mux) persist(ctx context.Context, entry *gameEntry) {
	if m.store == nil {
		return
	}

	if err := m.store.SaveGame(ctx, entry.game.Snapshot()); err != nil {
		logrus.WithError(err).WithField("game", entry.game.ID()).Error("could not save game")
	}
}

// errorStatus maps engine errors onto HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, blackjack.ErrUnknownEntity):
		return http.StatusNotFound
	case errors.Is(err, blackjack.ErrInvalidTransition), errors.Is(err, blackjack.ErrTerminalState):
		return http.StatusConflict
	case errors.Is(err, blackjack.ErrInvalidAmount),
		errors.Is(err, blackjack.ErrInsufficientFunds),
		errors.Is(err, blackjack.ErrNotAvailable),
		errors.Is(err, blackjack.ErrNotOwned):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// gameResponse pairs an operation result with the resulting game state
type gameResponse struct {
	Result interface{}          `json:"result,omitempty"`
	State  *blackjack.GameState `json:"state"`
}

// updateGame runs fn on the game under the entry lock, then persists and
// broadcasts the resulting state
func (m *Mux) updateGame(w http.ResponseWriter, r *http.Request, fn func(g *blackjack.Game) (interface{}, error)) {
	entry := r.Context().Value(ctxGameKey).(*gameEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	result, err := fn(entry.game)
	if err != nil {
		writeJSONError(w, errorStatus(err), err)
		return
	}

	state := entry.game.State()
	m.persist(r.Context(), entry)
	entry.broadcast(state)

	writeJSON(w, http.StatusOK, gameResponse{
		Result: result,
		State:  state,
	})
}

type postGamePayload struct {
	PlayerName string `json:"playerName"`
	Difficulty string `json:"difficulty"`
}

type postGameResponse struct {
	JWT   string               `json:"jwt"`
	State *blackjack.GameState `json:"state"`
}

func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGamePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.PlayerName == "" || len(pp.PlayerName) > 40 {
			writeJSONError(w, http.StatusBadRequest, errors.New("playerName must be 1-40 characters"))
			return
		}

		if pp.Difficulty == "" {
			pp.Difficulty = string(garito.DifficultyNormal)
		}

		id := uuid.New().String()
		game, err := blackjack.NewGame(id, pp.PlayerName, garito.DifficultyID(pp.Difficulty), logrus.StandardLogger())
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		signedJWT, err := jwt.Sign(id)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		entry := newGameEntry(game)

		m.mu.Lock()
		m.games[id] = entry
		m.mu.Unlock()

		entry.mu.Lock()
		m.persist(r.Context(), entry)
		entry.mu.Unlock()

		writeJSON(w, http.StatusCreated, postGameResponse{
			JWT:   signedJWT,
			State: game.State(),
		})
	}
}

func (m *Mux) getGameUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := r.Context().Value(ctxGameKey).(*gameEntry)

		entry.mu.Lock()
		state := entry.game.State()
		entry.mu.Unlock()

		writeJSON(w, http.StatusOK, gameResponse{State: state})
	})
}

// deleteGameUUID retires the game. A finished or abandoned run is written to
// the leaderboard and its save is removed.
func (m *Mux) deleteGameUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := r.Context().Value(ctxGameKey).(*gameEntry)

		entry.mu.Lock()
		defer entry.mu.Unlock()

		if entry.retired {
			writeJSONError(w, http.StatusConflict, errors.New("game is already retired"))
			return
		}

		entry.retired = true
		snap := entry.game.Snapshot()

		if m.store != nil {
			if err := m.store.RecordResult(r.Context(), snap); err != nil {
				logrus.WithError(err).WithField("game", snap.ID).Error("could not record result")
			}

			if err := m.store.DeleteGame(r.Context(), snap.ID); err != nil {
				logrus.WithError(err).WithField("game", snap.ID).Error("could not delete game")
			}
		}

		entry.closeSubscribers()

		m.mu.Lock()
		delete(m.games, snap.ID)
		m.mu.Unlock()

		writeJSON(w, http.StatusOK, gameResponse{State: entry.game.State()})
	})
}

type postBetPayload struct {
	Amount  int `json:"amount"`
	SideBet int `json:"sideBet"`
}

func (m *Mux) postGameUUIDBet() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postBetPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		m.updateGame(w, r, func(g *blackjack.Game) (interface{}, error) {
			return nil, g.PlaceBet(pp.Amount, pp.SideBet)
		})
	})
}

func (m *Mux) postGameUUIDInsurance() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.updateGame(w, r, func(g *blackjack.Game) (interface{}, error) {
			return nil, g.PlaceInsurance()
		})
	})
}

type postActionPayload struct {
	Action string `json:"action"`
}

func (m *Mux) postGameUUIDAction() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postActionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		m.updateGame(w, r, func(g *blackjack.Game) (interface{}, error) {
			return nil, g.PlayerAction(blackjack.PlayerActionType(pp.Action))
		})
	})
}

func (m *Mux) postGameUUIDSplit() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.updateGame(w, r, func(g *blackjack.Game) (interface{}, error) {
			return nil, g.Split()
		})
	})
}

type postCheatPayload struct {
	Cheat string `json:"cheat"`
}

func (m *Mux) postGameUUIDCheat() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postCheatPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		m.updateGame(w, r, func(g *blackjack.Game) (interface{}, error) {
			return g.AttemptCheat(garito.CheatID(pp.Cheat))
		})
	})
}

type postItemPayload struct {
	Item string `json:"item"`
}

func (m *Mux) postGameUUIDItemUse() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postItemPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		m.updateGame(w, r, func(g *blackjack.Game) (interface{}, error) {
			return g.UseItem(garito.ItemID(pp.Item))
		})
	})
}

func (m *Mux) postGameUUIDItemBuy() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postItemPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		m.updateGame(w, r, func(g *blackjack.Game) (interface{}, error) {
			return g.BuyItem(garito.ItemID(pp.Item))
		})
	})
}

func (m *Mux) postGameUUIDVenueAdvance() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.updateGame(w, r, func(g *blackjack.Game) (interface{}, error) {
			return g.AdvanceVenue()
		})
	})
}

func (m *Mux) postGameUUIDShopLeave() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.updateGame(w, r, func(g *blackjack.Game) (interface{}, error) {
			return nil, g.LeaveShop()
		})
	})
}

func (m *Mux) postGameUUIDRound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.updateGame(w, r, func(g *blackjack.Game) (interface{}, error) {
			return nil, g.NewRound()
		})
	})
}
