package transport

// ControlSender sends serialized control messages to the device.
type ControlSender interface {
	SendControl(data []byte) error
}

// DeviceReceiver delivers messages sent by the device (clipboard, acks).
type DeviceReceiver interface {
	OnDevice(callback func(data []byte))
}

// Transport is a bidirectional control connection to a device.
type Transport interface {
	ControlSender
	DeviceReceiver
	Close() error
}

// DeviceReadLimit bounds a single incoming device message.
const DeviceReadLimit = 1 << 18
