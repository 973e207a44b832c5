package signaling

import "encoding/json"

// Message types of the signaling protocol.
const (
	TypeRegister           = "register"
	TypeRegistered         = "registered"
	TypeListDevices        = "list-devices"
	TypeDevices            = "devices"
	TypeDevicesUpdated     = "devices-updated"
	TypeOffer              = "offer"
	TypeAnswer             = "answer"
	TypeICECandidate       = "ice-candidate"
	TypePing               = "ping"
	TypePong               = "pong"
	TypeError              = "error"
	TypeDeviceDisconnected = "device-disconnected"
)

// ClientType distinguishes the device agent from a controller.
const (
	ClientTypeDevice     = "device"
	ClientTypeController = "controller"
)

// Message is the envelope for all signaling messages.
type Message struct {
	Type       string          `json:"type"`
	ID         string          `json:"id,omitempty"`
	ClientType string          `json:"clientType,omitempty"`
	From       string          `json:"from,omitempty"`
	Target     string          `json:"target,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	List       []DeviceInfo    `json:"list,omitempty"`
	DeviceID   string          `json:"deviceId,omitempty"`
	Msg        string          `json:"message,omitempty"`
	Timestamp  int64           `json:"timestamp,omitempty"`
}

// DeviceInfo describes a device in the device list.
type DeviceInfo struct {
	ID     string `json:"id"`
	Model  string `json:"model,omitempty"`
	Online bool   `json:"online"`
}
