package x11

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// GenericEvent is an X Generic Event (category 35) in the form the
// repeat daemon needs it: the owning extension's major opcode, the
// extension-relative event type and the payload bytes that follow the
// ten-byte header. The transport reads a fixed 32 bytes per event, so
// Data holds at most 22 bytes; Length counts additional 4-byte words
// the server appended beyond that.
type GenericEvent struct {
	Sequence  uint16
	Extension byte
	Length    uint32
	EventType uint16
	Data      []byte
}

// GenericEventNew constructs a GenericEvent from a 32-byte wire
// buffer. It replaces the stock constructor for event 35, which
// discards everything past the event category.
func GenericEventNew(buf []byte) xgb.Event {
	v := GenericEvent{}
	v.Extension = buf[1]
	v.Sequence = xgb.Get16(buf[2:])
	v.Length = xgb.Get32(buf[4:])
	v.EventType = xgb.Get16(buf[8:])
	v.Data = buf[10:32]
	return v
}

// Bytes writes a GenericEvent back into its 32-byte wire form.
func (v GenericEvent) Bytes() []byte {
	buf := make([]byte, 32)
	buf[0] = xproto.GeGeneric
	buf[1] = v.Extension
	xgb.Put16(buf[2:], v.Sequence)
	xgb.Put32(buf[4:], v.Length)
	xgb.Put16(buf[8:], v.EventType)
	copy(buf[10:], v.Data)
	return buf
}

// SequenceId returns the sequence id attached to the event.
func (v GenericEvent) SequenceId() uint16 {
	return v.Sequence
}

func (v GenericEvent) String() string {
	return xgb.Sprintf("GenericEvent {Extension: %d, EventType: %d, Sequence: %d}",
		v.Extension, v.EventType, v.Sequence)
}

func init() {
	xgb.NewEventFuncs[xproto.GeGeneric] = GenericEventNew
}
