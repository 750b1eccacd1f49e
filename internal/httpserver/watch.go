// internal/httpserver/watch.go
//
// Websocket spectator feed for a single game.
// Connect to GET /game/{id}/watch to receive a snapshot of the game,
// followed by a fresh snapshot after every guess or hint. Spectators see
// exactly what a player sees: the masked word, never the secret while the
// game is in progress.

package httpserver

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/tomboyo/hangman/internal/game"
)

var upgrader = websocket.Upgrader{
	// The JSON endpoints handle origin policy via corsFromEnv; the feed is
	// read-only and carries no more than the public game view.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// watchHub tracks spectator connections per game ID.
type watchHub struct {
	mu   sync.Mutex
	subs map[string][]*websocket.Conn // keyed by game ID
}

func newWatchHub() *watchHub {
	return &watchHub{subs: make(map[string][]*websocket.Conn)}
}

// add registers a spectator for a game.
func (h *watchHub) add(gameID string, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[gameID] = append(h.subs[gameID], c)
}

// remove drops a spectator; the map entry is deleted when the last one leaves.
func (h *watchHub) remove(gameID string, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.subs[gameID]
	for i, cc := range conns {
		if cc == c {
			h.subs[gameID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.subs[gameID]) == 0 {
		delete(h.subs, gameID)
	}
}

// broadcast pushes the current game view to every spectator of g.
// Dead connections are closed and dropped.
func (h *watchHub) broadcast(g *game.Game) {
	view := viewOf(g)

	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.subs[g.ID]
	alive := conns[:0]
	for _, c := range conns {
		if err := c.WriteJSON(view); err != nil {
			_ = c.Close()
			continue
		}
		alive = append(alive, c)
	}
	if len(alive) == 0 {
		delete(h.subs, g.ID)
		return
	}
	h.subs[g.ID] = alive
}

// handleWatch upgrades the connection and streams game snapshots until the
// spectator disconnects.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("gameId", id).Msg("websocket upgrade")
		return
	}
	defer func() {
		s.watch.remove(id, conn)
		_ = conn.Close()
	}()

	// Initial snapshot so spectators do not wait for the next move.
	if err := conn.WriteJSON(viewOf(g)); err != nil {
		return
	}
	s.watch.add(id, conn)

	// Spectators never send game input; the read loop only detects close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
