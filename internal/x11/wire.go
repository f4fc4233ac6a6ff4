package x11

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Extension request opcodes and protocol constants for the two
// extensions this tool speaks to. Neither ships with generated
// bindings, so the requests are marshaled by hand and sent raw.
const (
	xiExtensionName  = "XInputExtension"
	xkbExtensionName = "XKEYBOARD"

	xiOpSelectEvents  byte = 46
	xkbOpUseExtension byte = 0
	xkbOpSetControls  byte = 14

	xiAllDevices         uint16 = 0
	xiEventMaskHierarchy uint32 = 1 << 11

	xkbUseCoreKbd   uint16 = 0x0100
	xkbRepeatKeys   uint32 = 1 << 0
	xkbMajorVersion uint16 = 1
	xkbMinorVersion uint16 = 0
)

// selectEventsRequest builds an XISelectEvents request for a single
// event mask on window. The mask record is a header (device id, mask
// word count) followed contiguously by that many mask words, so the
// word count is written out explicitly and has to agree with the
// number of words appended.
func selectEventsRequest(opcode byte, window xproto.Window, deviceid uint16, mask uint32) []byte {
	size := 20
	buf := make([]byte, size)
	b := 0

	buf[b] = opcode
	b++
	buf[b] = xiOpSelectEvents
	b++
	xgb.Put16(buf[b:], uint16(size/4))
	b += 2

	xgb.Put32(buf[b:], uint32(window))
	b += 4
	xgb.Put16(buf[b:], 1) // one mask record follows
	b += 2
	b += 2 // padding

	xgb.Put16(buf[b:], deviceid)
	b += 2
	xgb.Put16(buf[b:], 1) // mask words in this record
	b += 2
	xgb.Put32(buf[b:], mask)

	return buf
}

// useExtensionRequest builds an XkbUseExtension request announcing the
// protocol version the client speaks.
func useExtensionRequest(opcode byte, wantedMajor, wantedMinor uint16) []byte {
	size := 8
	buf := make([]byte, size)
	b := 0

	buf[b] = opcode
	b++
	buf[b] = xkbOpUseExtension
	b++
	xgb.Put16(buf[b:], uint16(size/4))
	b += 2

	xgb.Put16(buf[b:], wantedMajor)
	b += 2
	xgb.Put16(buf[b:], wantedMinor)

	return buf
}

// useExtensionReply decodes the server's answer to XkbUseExtension:
// whether the requested version is supported and which version the
// server speaks.
func useExtensionReply(buf []byte) (supported bool, serverMajor, serverMinor uint16) {
	supported = buf[1] == 1
	serverMajor = xgb.Get16(buf[8:])
	serverMinor = xgb.Get16(buf[10:])
	return supported, serverMajor, serverMinor
}

// setControlsRequest builds an XkbSetControls request that changes the
// RepeatKeys control to the given delay and interval on deviceSpec.
// The request carries every controllable field; all the ones outside
// the change mask are left zero and the server ignores them.
func setControlsRequest(opcode byte, deviceSpec, delay, interval uint16) []byte {
	size := 100
	buf := make([]byte, size)

	buf[0] = opcode
	buf[1] = xkbOpSetControls
	xgb.Put16(buf[2:], uint16(size/4))

	xgb.Put16(buf[4:], deviceSpec)
	// bytes 6..31: modifier masks, mouse keys default button, groups
	// wrap, access X options and the enabled-controls masks, all zero
	xgb.Put32(buf[32:], xkbRepeatKeys) // changeControls
	xgb.Put16(buf[36:], delay)
	xgb.Put16(buf[38:], interval)
	// bytes 40..67: slow keys, debounce and mouse keys timing plus the
	// access X timeout fields; bytes 68..99: perKeyRepeat. All zero.

	return buf
}
