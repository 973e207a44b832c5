package peer

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSignaler struct {
	mu     sync.Mutex
	offers []json.RawMessage
	target string
}

func (s *recordingSignaler) SendOffer(target string, payload json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = target
	s.offers = append(s.offers, payload)
	return nil
}

func (s *recordingSignaler) SendICECandidate(string, json.RawMessage) error { return nil }

func TestController_ConnectSendsOffer(t *testing.T) {
	sig := &recordingSignaler{}
	ctrl, err := NewController(sig, "pixel-7", []string{"stun:stun.example.org:3478"})
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.Connect())

	sig.mu.Lock()
	defer sig.mu.Unlock()
	assert.Equal(t, "pixel-7", sig.target)
	require.Len(t, sig.offers, 1)

	var offer webrtc.SessionDescription
	require.NoError(t, json.Unmarshal(sig.offers[0], &offer))
	assert.Equal(t, webrtc.SDPTypeOffer, offer.Type)
	assert.Contains(t, offer.SDP, "m=application")
}

func TestController_RejectsMalformedPayloads(t *testing.T) {
	ctrl, err := NewController(&recordingSignaler{}, "pixel-7", nil)
	require.NoError(t, err)
	defer ctrl.Close()

	assert.ErrorContains(t, ctrl.HandleAnswer(json.RawMessage(`{`)), "decode answer")
	assert.ErrorContains(t, ctrl.HandleICECandidate(json.RawMessage(`[]`)), "decode ICE candidate")
}

func TestController_NotOpenBeforeNegotiation(t *testing.T) {
	ctrl, err := NewController(&recordingSignaler{}, "pixel-7", nil)
	require.NoError(t, err)
	defer ctrl.Close()

	select {
	case <-ctrl.Open():
		t.Fatal("control channel open without a remote peer")
	default:
	}
	assert.Error(t, ctrl.Transport().SendControl([]byte{0x0b}))
}
