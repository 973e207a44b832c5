package control

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/junsooki/AirDroid/internal/transport"
)

//go:generate mockgen -source $GOFILE -destination pusher_mocks.go -package $GOPACKAGE

// DefaultQueueSize is the number of messages a Controller buffers before
// PushMsg starts rejecting.
const DefaultQueueSize = 64

// Pusher accepts control messages for delivery to the device.
type Pusher interface {
	// PushMsg queues msg and reports whether it was accepted. It never
	// blocks.
	PushMsg(msg Msg) bool
}

// Controller queues control messages and writes them to the control channel
// from its own goroutine.
type Controller struct {
	sender transport.ControlSender
	queue  chan Msg

	mu      sync.RWMutex
	stopped bool
}

// NewController creates a Controller writing to sender.
func NewController(sender transport.ControlSender, queueSize int) *Controller {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Controller{
		sender: sender,
		queue:  make(chan Msg, queueSize),
	}
}

// PushMsg implements Pusher. It returns false when the queue is full or the
// controller has stopped.
func (c *Controller) PushMsg(msg Msg) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.stopped {
		return false
	}
	select {
	case c.queue <- msg:
		return true
	default:
		log.Warn().Stringer("type", msg.Type()).Msg("control queue full, message dropped")
		return false
	}
}

// Run sends queued messages until ctx is cancelled. Messages still queued at
// that point are discarded.
func (c *Controller) Run(ctx context.Context) {
	defer func() {
		c.mu.Lock()
		c.stopped = true
		c.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-c.queue:
			data, err := Serialize(msg)
			if err != nil {
				log.Warn().Err(err).Stringer("type", msg.Type()).Msg("could not serialize control message")
				continue
			}
			if err := c.sender.SendControl(data); err != nil {
				log.Warn().Err(err).Stringer("type", msg.Type()).Msg("could not send control message")
			}
		}
	}
}
