package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/timekeep/timer-system/internal/api/metrics"
	"github.com/timekeep/timer-system/internal/core/ports"
	"github.com/timekeep/timer-system/internal/ws"
)

// WSHandler authenticates and accepts WebSocket upgrades. The bearer token
// travels in the token cookie because the browser WebSocket constructor
// cannot attach custom headers to the handshake.
type WSHandler struct {
	tokens   ports.TokenManager
	registry *ws.Registry
	timers   ports.TimerService
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewWSHandler(tokens ports.TokenManager, registry *ws.Registry, timers ports.TimerService, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		tokens:   tokens,
		registry: registry,
		timers:   timers,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// TLS and origin policy terminate upstream.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log.With().Str("component", "ws_handler").Logger(),
	}
}

// Handle runs the upgrade-time handshake: extract the token cookie, resolve
// it, and only then upgrade. Rejection happens on the plain HTTP response,
// before any WebSocket frame is exchanged with the peer.
func (h *WSHandler) Handle(c echo.Context) error {
	cookie, err := c.Cookie(TokenCookie)
	if err != nil || cookie.Value == "" {
		metrics.WSUpgradesRejectedTotal.Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	userID, err := h.tokens.Resolve(c.Request().Context(), cookie.Value)
	if err != nil {
		return err
	}
	if userID == "" {
		metrics.WSUpgradesRejectedTotal.Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the handshake error to the peer.
		h.log.Debug().Err(err).Msg("upgrade failed")
		return nil
	}

	sock := ws.NewSocket(conn)
	h.registry.Register(userID, sock)
	h.log.Debug().Str("user_id", userID).Msg("socket registered")

	// Blocks until the socket closes. The request context stays live for
	// the duration and cancels in-flight datastore reads on teardown.
	ws.NewClient(userID, sock, h.registry, h.timers, h.log).Run(c.Request().Context())
	return nil
}
