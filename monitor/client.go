package monitor

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebsocketClient subscribes to a WebsocketHandler and hands every snapshot to its listener.
type WebsocketClient struct {
	url     string
	options clientOptions

	rootCtx context.Context
	cancel  func()
}

// NewWebsocketClient ...
func NewWebsocketClient(url string, options ...ClientOption) *WebsocketClient {
	ctx, cancel := context.WithCancel(context.Background())

	return &WebsocketClient{
		url:     url,
		options: computeClientOptions(options...),

		rootCtx: ctx,
		cancel:  cancel,
	}
}

// Run reconnects after every failure until Shutdown is called.
func (c *WebsocketClient) Run() {
	for {
		c.runInLoop()
		if c.rootCtx.Err() != nil {
			return
		}

		select {
		case <-c.rootCtx.Done():
			return
		case <-time.After(c.options.retryDuration):
		}
	}
}

func (c *WebsocketClient) closeConnWhenShutdown(ctx context.Context, conn *websocket.Conn) {
	go func() {
		select {
		case <-ctx.Done():
		case <-c.rootCtx.Done():
			err := conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(closeTimeout))
			if err != nil {
				c.options.logger.Error("Error while close conn", zap.Error(err))
			}
		}
	}()
}

func (c *WebsocketClient) runInLoop() {
	logger := c.options.logger
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, _, err := c.options.dialer.DialContext(c.rootCtx, c.url, nil)
	if err != nil {
		logger.Error("Dial server failed", zap.Error(err))
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	err = conn.WriteJSON(Command{
		Type:        CommandTypeSubscribe,
		FromVersion: 0,
	})
	if err != nil {
		logger.Error("Error while WriteJSON", zap.Error(err))
		return
	}

	c.closeConnWhenShutdown(ctx, conn)

	for {
		continuing := c.runSingleHandlingLoop(conn)
		if !continuing {
			return
		}
	}
}

func (c *WebsocketClient) runSingleHandlingLoop(conn *websocket.Conn) bool {
	var data Snapshot
	err := conn.ReadJSON(&data)
	if err != nil {
		if errorIsCloseNormal(err) || c.rootCtx.Err() != nil {
			return false
		}
		c.options.logger.Error("Error while ReadJSON", zap.Error(err))
		return false
	}

	c.options.snapshotListener(data)
	return true
}

// Shutdown ...
func (c *WebsocketClient) Shutdown() {
	c.cancel()
}
