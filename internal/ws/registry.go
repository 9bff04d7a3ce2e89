// Package ws owns the live side of the system: the per-user connection
// registry and the read loop that serves timer queries over an accepted
// socket.
package ws

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/timekeep/timer-system/internal/api/metrics"
)

// Conn is the slice of a WebSocket connection the registry needs. Satisfied
// by *websocket.Conn.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Registry maps each user id to exactly one live socket. It is process-local
// by design; a multi-process deployment needs an external fan-out in its
// place, which is why it is injected rather than global.
type Registry struct {
	mu    sync.Mutex
	conns map[string]Conn
	log   zerolog.Logger
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		conns: make(map[string]Conn),
		log:   log.With().Str("component", "ws_registry").Logger(),
	}
}

// Register stores the socket for the user. An existing socket for the same
// user is closed first: last connection wins, the previous one is evicted
// rather than orphaned.
func (r *Registry) Register(userID string, conn Conn) {
	r.mu.Lock()
	prev := r.conns[userID]
	r.conns[userID] = conn
	metrics.WSConnectionsActive.Set(float64(len(r.conns)))
	r.mu.Unlock()

	if prev != nil {
		_ = prev.Close()
		metrics.WSEvictionsTotal.Inc()
		r.log.Debug().Str("user_id", userID).Msg("evicted previous socket")
	}
}

// Unregister removes the mapping only if conn is still the registered socket.
// The close event of an evicted socket arrives after its replacement is
// registered; without this guard it would tear down the newer connection.
func (r *Registry) Unregister(userID string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conns[userID] == conn {
		delete(r.conns, userID)
		metrics.WSConnectionsActive.Set(float64(len(r.conns)))
	}
}

// Send writes v as JSON to the user's registered socket. When the user is
// offline the message is dropped silently: this is live push, not durable
// delivery.
func (r *Registry) Send(userID string, v any) {
	r.mu.Lock()
	conn := r.conns[userID]
	r.mu.Unlock()

	if conn == nil {
		return
	}
	if err := conn.WriteJSON(v); err != nil {
		r.log.Debug().Err(err).Str("user_id", userID).Msg("socket write failed")
	}
}
