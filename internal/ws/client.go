package ws

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/timekeep/timer-system/internal/api/metrics"
	"github.com/timekeep/timer-system/internal/core/domain"
	"github.com/timekeep/timer-system/internal/core/ports"
)

const maxMessageSize = 1024

// Query types accepted on the socket. Anything else is dropped.
const (
	MessageAllTimers    = "all_timers"
	MessageActiveTimers = "active_timers"
)

// hub is the slice of the Registry a client needs back. Split out so the
// dispatch logic is testable without a live socket.
type hub interface {
	Unregister(userID string, conn Conn)
}

type query struct {
	Type string `json:"type"`
}

type timersReply struct {
	Type   string         `json:"type"`
	Timers []timerPayload `json:"timers"`
}

// timerPayload is the wire shape of a timer: millisecond epoch timestamps,
// end omitted while running. The client owns presentation formatting.
type timerPayload struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Start       int64  `json:"start"`
	End         *int64 `json:"end,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// Client serves timer queries for one authenticated, registered socket.
type Client struct {
	userID string
	conn   *Socket
	hub    hub
	timers ports.TimerService
	log    zerolog.Logger
}

func NewClient(userID string, conn *Socket, registry *Registry, timers ports.TimerService, log zerolog.Logger) *Client {
	return &Client{
		userID: userID,
		conn:   conn,
		hub:    registry,
		timers: timers,
		log:    log.With().Str("component", "ws_client").Str("user_id", userID).Logger(),
	}
}

// Run reads messages until the socket closes or a datastore failure occurs.
// Either way only this connection goes down; the registry and every other
// socket stay up.
func (c *Client) Run(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c.userID, c.conn)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("socket read ended")
			}
			return
		}
		if err := c.handleMessage(ctx, raw); err != nil {
			c.log.Error().Err(err).Msg("query failed, closing connection")
			return
		}
	}
}

// handleMessage dispatches one inbound frame. Malformed or unrecognised
// frames are counted and dropped without a reply; the connection stays open.
// Only infrastructure failures return an error.
func (c *Client) handleMessage(ctx context.Context, raw []byte) error {
	var q query
	if err := json.Unmarshal(raw, &q); err != nil {
		metrics.WSMessagesRejectedTotal.WithLabelValues("malformed").Inc()
		return nil
	}

	switch q.Type {
	case MessageAllTimers:
		return c.reply(ctx, MessageAllTimers, false)
	case MessageActiveTimers:
		return c.reply(ctx, MessageActiveTimers, true)
	default:
		metrics.WSMessagesRejectedTotal.WithLabelValues("unknown_type").Inc()
		return nil
	}
}

func (c *Client) reply(ctx context.Context, msgType string, activeOnly bool) error {
	timers, err := c.timers.List(ctx, c.userID, activeOnly)
	if err != nil {
		return err
	}
	metrics.WSQueriesTotal.WithLabelValues(msgType).Inc()

	// The reply is bound to the socket that asked. If this socket was evicted
	// mid-query the write fails against a closed connection and the reply is
	// dropped, never delivered to the replacement socket.
	if err := c.conn.WriteJSON(timersReply{Type: msgType, Timers: toPayloads(timers)}); err != nil {
		c.log.Debug().Err(err).Msg("reply dropped")
	}
	return nil
}

func toPayloads(timers []domain.Timer) []timerPayload {
	out := make([]timerPayload, len(timers))
	for i, t := range timers {
		out[i] = toPayload(t)
	}
	return out
}

func toPayload(t domain.Timer) timerPayload {
	p := timerPayload{
		ID:          t.ID,
		Description: t.Description,
		Start:       t.Start.UnixMilli(),
		IsActive:    t.IsActive,
	}
	if t.End != nil {
		end := t.End.UnixMilli()
		p.End = &end
	}
	return p
}
