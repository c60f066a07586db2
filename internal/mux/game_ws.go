package mux

import (
	"net/http"
	"time"

	"garitoblackjack-server/pkg/blackjack"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// getGameUUIDWS streams game state over a websocket. The current state is
// sent on connect, and every state change is pushed afterwards.
func (m *Mux) getGameUUIDWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		entry := r.Context().Value(ctxGameKey).(*gameEntry)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		send := make(chan *blackjack.GameState, 8)

		entry.mu.Lock()
		if entry.retired {
			entry.mu.Unlock()
			_ = conn.Close()
			return
		}

		entry.subscribers[send] = true
		state := entry.game.State()
		entry.mu.Unlock()

		// initial state so the client doesn't have to poll
		select {
		case send <- state:
		default:
		}

		defer func() {
			entry.mu.Lock()
			delete(entry.subscribers, send)
			entry.mu.Unlock()
			_ = conn.Close()
		}()

		go m.webSocketWriteLoop(conn, send)
		m.webSocketReadLoop(conn)
	}
}

func (m *Mux) webSocketWriteLoop(conn *websocket.Conn, send chan *blackjack.GameState) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case state, ok := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game retired"))
				return
			}

			if err := conn.WriteJSON(state); err != nil {
				return
			}
		}
	}
}

// webSocketReadLoop drains the connection so pongs and close frames are
// processed. Clients never send game messages; mutations go over HTTP.
func (m *Mux) webSocketReadLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
