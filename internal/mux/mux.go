package mux

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"garitoblackjack-server/internal/jwt"
	"garitoblackjack-server/pkg/gamestore"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const ctxGameKey ctxKey = iota

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	store   *gamestore.Store

	mu    sync.Mutex
	games map[string]*gameEntry

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux. The store may be nil, in which case games
// live only in memory.
func NewMux(version string, store *gamestore.Store) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		store:   store,
		games:   make(map[string]*gameEntry),
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodGet).Path("/difficulty").Handler(this.getDifficulty())
		r.Methods(http.MethodGet).Path("/venue").Handler(this.getVenue())
		r.Methods(http.MethodGet).Path("/cheat").Handler(this.getCheat())
		r.Methods(http.MethodGet).Path("/item").Handler(this.getItem())
		r.Methods(http.MethodGet).Path("/leaderboard").Handler(this.getLeaderboard())
		r.Methods(http.MethodPost).Path("/game").Handler(this.postGame())
	}

	// requires bearer authorization for the game
	{
		r := this.authRouter

		gr := r.PathPrefix("/game/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		gr.Use(this.gameMiddleware)

		gr.Methods(http.MethodGet).Path("").Handler(this.getGameUUID())
		gr.Methods(http.MethodGet).Path("/ws").Handler(this.getGameUUIDWS())
		gr.Methods(http.MethodDelete).Path("").Handler(this.deleteGameUUID())

		gr.Methods(http.MethodPost).Path("/bet").Handler(this.postGameUUIDBet())
		gr.Methods(http.MethodPost).Path("/insurance").Handler(this.postGameUUIDInsurance())
		gr.Methods(http.MethodPost).Path("/action").Handler(this.postGameUUIDAction())
		gr.Methods(http.MethodPost).Path("/split").Handler(this.postGameUUIDSplit())
		gr.Methods(http.MethodPost).Path("/cheat").Handler(this.postGameUUIDCheat())
		gr.Methods(http.MethodPost).Path("/item/use").Handler(this.postGameUUIDItemUse())
		gr.Methods(http.MethodPost).Path("/item/buy").Handler(this.postGameUUIDItemBuy())
		gr.Methods(http.MethodPost).Path("/venue/advance").Handler(this.postGameUUIDVenueAdvance())
		gr.Methods(http.MethodPost).Path("/shop/leave").Handler(this.postGameUUIDShopLeave())
		gr.Methods(http.MethodPost).Path("/round").Handler(this.postGameUUIDRound())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		gameID, err := jwt.ValidGameID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		w.Header().Set("GaritoBlackjack-GameID", gameID)
		next.ServeHTTP(w, r)
	})
}

func (m *Mux) gameMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := gmux.Vars(r)["uuid"]
		if uuid != w.Header().Get("GaritoBlackjack-GameID") {
			// the token is for a different game
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		entry, err := m.loadGame(r.Context(), uuid)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if entry == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxGameKey, entry)

		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
