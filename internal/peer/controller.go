package peer

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/junsooki/AirDroid/internal/transport"
)

// Signaler relays session descriptions and candidates to the device.
type Signaler interface {
	SendOffer(target string, payload json.RawMessage) error
	SendICECandidate(target string, payload json.RawMessage) error
}

// Controller manages the controller side of the WebRTC connection. It
// creates the ordered "control" and "device" data channels and makes the
// offer.
type Controller struct {
	pc        *webrtc.PeerConnection
	sig       Signaler
	transport *transport.DataChannelTransport
	deviceID  string

	openOnce sync.Once
	open     chan struct{}
}

// NewController creates a Controller peer manager for deviceID.
func NewController(sig Signaler, deviceID string, iceURLs []string) (*Controller, error) {
	pc, err := NewPeerConnection(iceURLs)
	if err != nil {
		return nil, err
	}

	ctrl := &Controller{
		pc:       pc,
		sig:      sig,
		deviceID: deviceID,
		open:     make(chan struct{}),
	}

	ordered := true
	controlDC, err := pc.CreateDataChannel(transport.ControlLabel, &webrtc.DataChannelInit{Ordered: &ordered})
	if err != nil {
		pc.Close()
		return nil, fmt.Errorf("create control channel: %w", err)
	}
	deviceDC, err := pc.CreateDataChannel(transport.DeviceLabel, &webrtc.DataChannelInit{Ordered: &ordered})
	if err != nil {
		pc.Close()
		return nil, fmt.Errorf("create device channel: %w", err)
	}
	ctrl.transport = transport.NewDataChannelTransport(controlDC, deviceDC)

	controlDC.OnOpen(func() {
		log.Info().Str("device", deviceID).Msg("control data channel open")
		ctrl.openOnce.Do(func() { close(ctrl.open) })
	})

	// Some agents open their own device channel instead of using ours.
	pc.OnDataChannel(func(dc *webrtc.DataChannel) {
		log.Debug().Str("label", dc.Label()).Msg("data channel received")
		if dc.Label() == transport.DeviceLabel {
			ctrl.transport.SetDeviceChannel(dc)
		}
	})

	pc.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			return
		}
		data, err := json.Marshal(c.ToJSON())
		if err != nil {
			log.Warn().Err(err).Msg("marshal ICE candidate")
			return
		}
		if err := sig.SendICECandidate(deviceID, data); err != nil {
			log.Warn().Err(err).Msg("send ICE candidate")
		}
	})

	return ctrl, nil
}

// Transport returns the DataChannelTransport.
func (c *Controller) Transport() *transport.DataChannelTransport {
	return c.transport
}

// Open is closed once the control channel can carry messages.
func (c *Controller) Open() <-chan struct{} {
	return c.open
}

// Connect initiates the WebRTC connection by creating and sending an offer.
func (c *Controller) Connect() error {
	offer, err := c.pc.CreateOffer(nil)
	if err != nil {
		return err
	}
	if err := c.pc.SetLocalDescription(offer); err != nil {
		return err
	}
	offerJSON, err := json.Marshal(offer)
	if err != nil {
		return err
	}
	return c.sig.SendOffer(c.deviceID, offerJSON)
}

// HandleAnswer processes an incoming SDP answer.
func (c *Controller) HandleAnswer(payload json.RawMessage) error {
	var answer webrtc.SessionDescription
	if err := json.Unmarshal(payload, &answer); err != nil {
		return fmt.Errorf("decode answer: %w", err)
	}
	return c.pc.SetRemoteDescription(answer)
}

// HandleICECandidate adds a remote ICE candidate.
func (c *Controller) HandleICECandidate(payload json.RawMessage) error {
	var candidate webrtc.ICECandidateInit
	if err := json.Unmarshal(payload, &candidate); err != nil {
		return fmt.Errorf("decode ICE candidate: %w", err)
	}
	return c.pc.AddICECandidate(candidate)
}

// Close shuts down the data channels and the peer connection.
func (c *Controller) Close() error {
	_ = c.transport.Close()
	return c.pc.Close()
}
