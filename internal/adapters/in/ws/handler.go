// Package ws exposes the order status stream over a websocket endpoint.
//
// A connection moves through three states: connecting (upgraded, not yet
// identified), joined (subscribed to a shopper's events), and closed. The
// client identifies itself with a join frame; everything pushed afterwards is
// that shopper's status transitions. Delivery is best effort: a client that
// stops reading is dropped and is expected to resynchronize by re-fetching
// its order list.
package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/fanout"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	// joinTimeout bounds how long a connection may stay anonymous.
	joinTimeout = 10 * time.Second

	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingPeriod   = 54 * time.Second

	maxMessageSize = 512
)

// Handler upgrades HTTP requests to websocket connections and bridges them
// to the fan-out registry.
type Handler struct {
	registry *fanout.Registry
	upgrader websocket.Upgrader
	logger   *slog.Logger
	joinWait time.Duration
}

// NewHandler creates a websocket handler over the given registry.
func NewHandler(registry *fanout.Registry, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		joinWait: joinTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The storefront API and its clients are same-origin; the
			// reverse proxy enforces it before requests reach here.
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "ws")),
	}
}

// Handle serves GET /ws/orders.
func (h *Handler) Handle(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return nil
	}

	go h.serve(conn)
	return nil
}

func (h *Handler) serve(conn *websocket.Conn) {
	defer conn.Close()

	sub, err := h.join(conn)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			// Never identified itself within the join window. Treated as
			// anonymous traffic: kept open, receives nothing.
			h.drainAnonymous(conn)
			return
		}
		h.logger.Info("connection closed before joining", "error", err)
		return
	}
	defer h.registry.Unsubscribe(sub)

	h.logger.Info("subscriber joined",
		slog.String("subscriptionId", sub.ID().String()),
		slog.String("userId", sub.UserID().String()),
	)

	done := make(chan struct{})
	go h.readLoop(conn, done)
	h.writeLoop(conn, sub, done)
}

// join waits for the client's join frame and registers the subscription.
// A connection that stays anonymous past the join timeout is closed.
func (h *Handler) join(conn *websocket.Conn) (*fanout.Subscriber, error) {
	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(h.joinWait)); err != nil {
		return nil, err
	}

	var join joinMessage
	if err := conn.ReadJSON(&join); err != nil {
		return nil, err
	}
	if join.Type != messageTypeJoin {
		return nil, writeCloseError(conn, "expected join message")
	}
	userID, err := kernel.UUIDFromString(join.UserID)
	if err != nil {
		return nil, writeCloseError(conn, "invalid userId")
	}

	sub, err := h.registry.Subscribe(userID)
	if err != nil {
		return nil, err
	}

	if err = h.writeJSON(conn, joinedMessage{Type: messageTypeJoined}); err != nil {
		h.registry.Unsubscribe(sub)
		return nil, err
	}
	return sub, nil
}

// drainAnonymous keeps an unidentified connection alive without ever
// delivering events. It pings on the usual cadence so an idle but responsive
// client keeps refreshing its read deadline instead of timing out.
func (h *Handler) drainAnonymous(conn *websocket.Conn) {
	done := make(chan struct{})
	go h.readLoop(conn, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readLoop drains inbound frames so close and pong frames are processed.
// The client sends nothing meaningful after joining.
func (h *Handler) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop pushes subscription events to the client until the subscription
// or the connection ends.
func (h *Handler) writeLoop(conn *websocket.Conn, sub *fanout.Subscriber, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				// Dropped for falling behind. Tell the client to resync.
				_ = writeCloseError(conn, "event buffer overflow, refetch orders")
				return
			}
			if err := h.writeJSON(conn, newStatusChangedMessage(event)); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *Handler) writeJSON(conn *websocket.Conn, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err = conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

func writeCloseError(conn *websocket.Conn, reason string) error {
	deadline := time.Now().Add(writeTimeout)
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason),
		deadline,
	)
	return errors.New(reason)
}
