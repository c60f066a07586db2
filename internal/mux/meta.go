package mux

import (
	"net/http"

	"garitoblackjack-server/internal/config"
	"garitoblackjack-server/pkg/garito"
)

// meta endpoints expose the static tables so clients don't hard-code them

func (m *Mux) getDifficulty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, garito.Difficulties())
	}
}

func (m *Mux) getVenue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, garito.Venues())
	}
}

func (m *Mux) getCheat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, garito.Cheats())
	}
}

func (m *Mux) getItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, garito.Items())
	}
}

func (m *Mux) getLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.store == nil {
			writeJSONError(w, http.StatusServiceUnavailable, nil)
			return
		}

		entries, err := m.store.Leaderboard(r.Context(), config.Instance().LeaderboardLimit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, entries)
	}
}
