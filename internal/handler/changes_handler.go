package handler

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/portfolio/internal/realtime"
	"go.uber.org/zap"
)

const (
	changeStreamBuffer = 32
	keepAliveInterval  = 25 * time.Second
	wsWriteTimeout     = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// subscribeChanges forwards hub events for every table into a buffered channel. Events are
// dropped for this client when it falls behind.
func (a *API) subscribeChanges() (<-chan realtime.Event, func()) {
	events := make(chan realtime.Event, changeStreamBuffer)
	if a.store == nil || a.store.Changes == nil {
		return events, func() {}
	}
	unsubscribe := a.store.Changes.Subscribe(realtime.AllTables, func(event realtime.Event) {
		select {
		case events <- event:
		default:
		}
	})
	return events, unsubscribe
}

// StreamChanges pushes change notifications as Server-Sent Events.
func (a *API) StreamChanges(c *gin.Context) {
	events, unsubscribe := a.subscribeChanges()
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"at": a.now().UTC()})
	c.Writer.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event := <-events:
			c.SSEvent("change", event)
			return true
		case <-ticker.C:
			c.SSEvent("ping", a.now().UTC().Unix())
			return true
		}
	})
}

// ChangesWebSocket pushes the same notifications over a websocket.
func (a *API) ChangesWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	events, unsubscribe := a.subscribeChanges()
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case event := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				return
			}
		}
	}
}
