// Package peer sets up the controller side of the WebRTC connection to a
// device.
package peer

import (
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

// DefaultICEURLs is the default ICE server list.
var DefaultICEURLs = []string{"stun:stun.l.google.com:19302", "stun:stun1.l.google.com:19302"}

// NewPeerConnection creates a PeerConnection using the given ICE server
// URLs. An empty list selects DefaultICEURLs.
func NewPeerConnection(iceURLs []string) (*webrtc.PeerConnection, error) {
	if len(iceURLs) == 0 {
		iceURLs = DefaultICEURLs
	}
	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{{URLs: iceURLs}},
	})
	if err != nil {
		return nil, err
	}
	pc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		log.Info().Str("state", state.String()).Msg("peer connection state changed")
	})
	return pc, nil
}
