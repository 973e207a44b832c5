package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeClipboard struct {
	text string
	sets int
}

func (c *fakeClipboard) Get() (string, bool) { return c.text, c.text != "" }

func (c *fakeClipboard) Set(text string) error {
	c.text = text
	c.sets++
	return nil
}

type fakeAcker struct {
	acks []uint64
}

func (a *fakeAcker) Ack(sequence uint64) { a.acks = append(a.acks, sequence) }

func TestReceiver_HandleData(t *testing.T) {
	cb := &fakeClipboard{}
	acker := &fakeAcker{}
	r := NewReceiver(cb, acker)

	data := append([]byte{0x00, 0x00, 0x00, 0x00, 0x02}, "hi"...)
	data = append(data, 0x01, 0, 0, 0, 0, 0, 0, 0, 0x07)
	r.HandleData(data)

	assert.Equal(t, "hi", cb.text)
	assert.Equal(t, 1, cb.sets)
	assert.Equal(t, []uint64{7}, acker.acks)
}

func TestReceiver_IdenticalClipboardNotRewritten(t *testing.T) {
	cb := &fakeClipboard{text: "same"}
	r := NewReceiver(cb, nil)

	r.HandleData(append([]byte{0x00, 0x00, 0x00, 0x00, 0x04}, "same"...))

	assert.Equal(t, 0, cb.sets)
}

func TestReceiver_MalformedStopsPacket(t *testing.T) {
	acker := &fakeAcker{}
	r := NewReceiver(nil, acker)

	r.HandleData([]byte{0x7f, 0x01, 0, 0, 0, 0, 0, 0, 0, 0x01})

	assert.Empty(t, acker.acks)
}
