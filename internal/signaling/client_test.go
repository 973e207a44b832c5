package signaling

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer registers the client, lists one device and relays an answer
// for every offer.
func fakeServer(t *testing.T, seen chan<- Message) *httptest.Server {
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			seen <- msg
			var reply Message
			switch msg.Type {
			case TypeRegister:
				reply = Message{Type: TypeRegistered, ID: msg.ID}
			case TypeListDevices:
				reply = Message{Type: TypeDevices, List: []DeviceInfo{{ID: "pixel", Online: true}}}
			case TypeOffer:
				reply = Message{Type: TypeAnswer, From: msg.Target, Payload: json.RawMessage(`{"sdp":"x"}`)}
			default:
				continue
			}
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		}
	}))
}

func TestClient_Exchange(t *testing.T) {
	seen := make(chan Message, 8)
	srv := fakeServer(t, seen)
	defer srv.Close()

	registered := make(chan struct{}, 1)
	devices := make(chan []DeviceInfo, 1)
	answers := make(chan string, 1)
	c := NewClient("ws"+strings.TrimPrefix(srv.URL, "http"), "ctl-1", ClientTypeController, Handler{
		OnRegistered:     func() { registered <- struct{}{} },
		OnDevicesUpdated: func(d []DeviceInfo) { devices <- d },
		OnAnswer: func(from string, payload json.RawMessage) {
			answers <- from + " " + string(payload)
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Connect(ctx))
	defer c.Close()

	reg := <-seen
	assert.Equal(t, Message{Type: TypeRegister, ID: "ctl-1", ClientType: ClientTypeController}, reg)
	waitFor[struct{}](t, registered)

	require.NoError(t, c.RequestDeviceList())
	select {
	case d := <-devices:
		assert.Equal(t, []DeviceInfo{{ID: "pixel", Online: true}}, d)
	case <-time.After(5 * time.Second):
		t.Fatal("no device list")
	}

	require.NoError(t, c.SendOffer("pixel", json.RawMessage(`{"sdp":"o"}`)))
	select {
	case a := <-answers:
		assert.Equal(t, `pixel {"sdp":"x"}`, a)
	case <-time.After(5 * time.Second):
		t.Fatal("no answer")
	}
}

func TestClient_SendAfterClose(t *testing.T) {
	seen := make(chan Message, 8)
	srv := fakeServer(t, seen)
	defer srv.Close()

	c := NewClient("ws"+strings.TrimPrefix(srv.URL, "http"), "ctl-1", ClientTypeController, Handler{})
	require.NoError(t, c.Connect(context.Background()))
	c.Close()
	c.Close()

	assert.ErrorIs(t, c.SendICECandidate("pixel", json.RawMessage(`{}`)), ErrNotConnected)
	waitFor(t, c.Done())
}

func TestClient_SendBeforeConnect(t *testing.T) {
	c := NewClient("ws://unused", "id", ClientTypeController, Handler{})
	assert.ErrorIs(t, c.RequestDeviceList(), ErrNotConnected)
}

func waitFor[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
	}
}
