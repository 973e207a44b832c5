package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// WebSocketTransport talks to a device agent directly over one WebSocket:
// control messages go out as binary frames, device messages come back the
// same way.
type WebSocketTransport struct {
	conn *websocket.Conn

	writeMu sync.Mutex

	mu       sync.RWMutex
	onDevice func(data []byte)

	done      chan struct{}
	closeOnce sync.Once
}

// DialWebSocket connects to url and starts the read and ping loops.
func DialWebSocket(ctx context.Context, url string) (*WebSocketTransport, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}
	t := &WebSocketTransport{
		conn: conn,
		done: make(chan struct{}),
	}
	go t.readPump()
	go t.pingLoop()
	return t, nil
}

func (t *WebSocketTransport) SendControl(data []byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	_ = t.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return t.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (t *WebSocketTransport) OnDevice(cb func(data []byte)) {
	t.mu.Lock()
	t.onDevice = cb
	t.mu.Unlock()
}

// Done is closed once the connection is gone.
func (t *WebSocketTransport) Done() <-chan struct{} {
	return t.done
}

func (t *WebSocketTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		t.writeMu.Lock()
		_ = t.conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = t.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		t.writeMu.Unlock()
		err = t.conn.Close()
	})
	return err
}

func (t *WebSocketTransport) readPump() {
	defer t.Close()
	t.conn.SetReadLimit(DeviceReadLimit)
	_ = t.conn.SetReadDeadline(time.Now().Add(pongWait))
	t.conn.SetPongHandler(func(string) error {
		return t.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, data, err := t.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("device websocket read failed")
			}
			return
		}
		if kind != websocket.BinaryMessage {
			log.Debug().Int("kind", kind).Msg("ignoring non-binary device message")
			continue
		}
		t.mu.RLock()
		cb := t.onDevice
		t.mu.RUnlock()
		if cb != nil {
			cb(data)
		}
	}
}

func (t *WebSocketTransport) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.writeMu.Lock()
			err := t.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			t.writeMu.Unlock()
			if err != nil {
				log.Debug().Err(err).Msg("device websocket ping failed")
				return
			}
		}
	}
}
