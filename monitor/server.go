package monitor

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// CommandType ...
type CommandType string

const (
	// CommandTypeSubscribe ...
	CommandTypeSubscribe CommandType = "subscribe"
)

const closeTimeout = time.Second

// Command is sent by a client right after connecting.
type Command struct {
	Type        CommandType `json:"type"`
	FromVersion Version     `json:"fromVersion"`
}

// WebsocketHandler streams tracker snapshots to every connected client.
type WebsocketHandler struct {
	options trackerOptions
	tracker *Tracker

	rootCtx context.Context
	cancel  func()
}

var _ http.Handler = &WebsocketHandler{}

// NewWebsocketHandler ...
func NewWebsocketHandler(tracker *Tracker, options ...Option) *WebsocketHandler {
	ctx, cancel := context.WithCancel(context.Background())

	return &WebsocketHandler{
		options: computeTrackerOptions(options...),
		tracker: tracker,
		rootCtx: ctx,
		cancel:  cancel,
	}
}

// Shutdown does graceful shutdown
func (h *WebsocketHandler) Shutdown() {
	h.cancel()
}

// ServeHTTP ...
func (h *WebsocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r = r.WithContext(ctx)

	conn, err := h.options.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.options.logger.Error("Fail to upgrade to websocket", zap.Error(err))
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	fromVersion, ok := h.handShake(conn)
	if !ok {
		return
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()

		select {
		case <-h.rootCtx.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	go func() {
		defer wg.Done()

		h.receiveUntilClosed(ctx, conn)
		cancel()
	}()

	go func() {
		defer wg.Done()

		h.sendSnapshots(ctx, fromVersion, conn)
		cancel()
	}()

	<-ctx.Done()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(closeTimeout))
	_ = conn.Close()

	wg.Wait()
}

func validateCommand(cmd Command) error {
	if cmd.Type != CommandTypeSubscribe {
		return errors.New("invalid cmd type, must be 'subscribe'")
	}
	return nil
}

func (h *WebsocketHandler) handShake(conn *websocket.Conn) (Version, bool) {
	logger := h.options.logger

	var cmd Command
	err := conn.ReadJSON(&cmd)
	if err != nil {
		logger.Error("Error while ReadJSON", zap.Error(err))
		return 0, false
	}

	err = validateCommand(cmd)
	if err != nil {
		logger.Error("Validate Subscribe Command", zap.Error(err))
		return 0, false
	}

	return cmd.FromVersion, true
}

// receiveUntilClosed only watches for the client going away, clients send nothing after the handshake.
func (h *WebsocketHandler) receiveUntilClosed(ctx context.Context, conn *websocket.Conn) {
	for {
		_, _, err := conn.NextReader()
		if err == nil {
			continue
		}
		if !errorIsCloseNormal(err) && ctx.Err() == nil {
			h.options.logger.Error("Error while reading", zap.Error(err))
		}
		return
	}
}

func (h *WebsocketHandler) sendSnapshots(ctx context.Context, fromVersion Version, conn *websocket.Conn) {
	ch := make(chan Snapshot, 1)

	for {
		h.tracker.Watch(WatchRequest{
			FromVersion:  fromVersion,
			ResponseChan: ch,
		})

		select {
		case data := <-ch:
			err := conn.WriteJSON(data)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				h.options.logger.Error("Error while WriteJSON", zap.Error(err))
				return
			}
			fromVersion = data.Version + 1

		case <-ctx.Done():
			h.tracker.RemoveWatch(ch)
			return
		}
	}
}

func errorIsCloseNormal(err error) bool {
	var closeErr *websocket.CloseError
	return errors.As(err, &closeErr) && closeErr.Code == websocket.CloseNormalClosure
}
