package server

import (
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// hub fans game updates out to websocket watchers, keyed by game ID.
type hub struct {
	mu       sync.Mutex
	watchers map[string]map[*websocket.Conn]bool
}

func newHub() *hub {
	return &hub{watchers: make(map[string]map[*websocket.Conn]bool)}
}

func (h *hub) add(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.watchers[gameID] == nil {
		h.watchers[gameID] = make(map[*websocket.Conn]bool)
	}
	h.watchers[gameID][conn] = true
}

func (h *hub) remove(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.watchers[gameID], conn)
	if len(h.watchers[gameID]) == 0 {
		delete(h.watchers, gameID)
	}
	conn.Close()
}

// send writes payload to a single connection, for the catch-up
// snapshot on join. Write failures are left to the read loop's cleanup.
func (h *hub) send(conn *websocket.Conn, payload any) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode catch-up payload")
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Error().Err(err).Msg("failed to send catch-up payload")
	}
}

// broadcast sends payload to every watcher of a game. Dead connections
// are dropped on write failure and closed.
func (h *hub) broadcast(gameID string, payload any) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode broadcast payload")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.watchers[gameID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(h.watchers[gameID], conn)
			conn.Close()
		}
	}
	if len(h.watchers[gameID]) == 0 {
		delete(h.watchers, gameID)
	}
}
