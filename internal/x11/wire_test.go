package x11

import (
	"testing"

	"github.com/jezek/xgb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectEventsRequestLayout(t *testing.T) {
	buf := selectEventsRequest(131, 0x2a, xiAllDevices, xiEventMaskHierarchy)

	require.Len(t, buf, 20)
	assert.Equal(t, byte(131), buf[0], "extension major opcode")
	assert.Equal(t, byte(46), buf[1], "XISelectEvents request opcode")
	assert.Equal(t, uint16(5), xgb.Get16(buf[2:]), "request length in words")
	assert.Equal(t, uint32(0x2a), xgb.Get32(buf[4:]), "window")
	assert.Equal(t, uint16(1), xgb.Get16(buf[8:]), "mask record count")
	assert.Equal(t, uint16(0), xgb.Get16(buf[12:]), "deviceid covers all devices")
	assert.Equal(t, uint16(1), xgb.Get16(buf[14:]), "mask word count")
	assert.Equal(t, uint32(1)<<11, xgb.Get32(buf[16:]), "hierarchy mask bit")
}

func TestUseExtensionRequestLayout(t *testing.T) {
	buf := useExtensionRequest(135, 1, 0)

	require.Len(t, buf, 8)
	assert.Equal(t, byte(135), buf[0])
	assert.Equal(t, byte(0), buf[1], "XkbUseExtension request opcode")
	assert.Equal(t, uint16(2), xgb.Get16(buf[2:]), "request length in words")
	assert.Equal(t, uint16(1), xgb.Get16(buf[4:]), "wanted major")
	assert.Equal(t, uint16(0), xgb.Get16(buf[6:]), "wanted minor")
}

func TestUseExtensionReply(t *testing.T) {
	buf := make([]byte, 32)
	buf[0] = 1 // reply
	buf[1] = 1 // supported
	xgb.Put16(buf[8:], 1)
	xgb.Put16(buf[10:], 0)

	supported, major, minor := useExtensionReply(buf)
	assert.True(t, supported)
	assert.Equal(t, uint16(1), major)
	assert.Equal(t, uint16(0), minor)

	buf[1] = 0
	supported, _, _ = useExtensionReply(buf)
	assert.False(t, supported)
}

func TestSetControlsRequestLayout(t *testing.T) {
	buf := setControlsRequest(135, xkbUseCoreKbd, 300, 20)

	require.Len(t, buf, 100)
	assert.Equal(t, byte(135), buf[0])
	assert.Equal(t, byte(14), buf[1], "XkbSetControls request opcode")
	assert.Equal(t, uint16(25), xgb.Get16(buf[2:]), "request length in words")
	assert.Equal(t, uint16(0x0100), xgb.Get16(buf[4:]), "core keyboard device spec")
	assert.Equal(t, uint32(0), xgb.Get32(buf[24:]), "affectEnabledControls untouched")
	assert.Equal(t, uint32(0), xgb.Get32(buf[28:]), "enabledControls untouched")
	assert.Equal(t, uint32(1), xgb.Get32(buf[32:]), "changeControls names RepeatKeys only")
	assert.Equal(t, uint16(300), xgb.Get16(buf[36:]), "repeat delay")
	assert.Equal(t, uint16(20), xgb.Get16(buf[38:]), "repeat interval")

	// The per-key repeat map and every other control field stay zero.
	for i := 40; i < 100; i++ {
		require.Zero(t, buf[i], "byte %d", i)
	}
}
