package x11

import (
	"github.com/jezek/xgb"
)

// EventTypeHierarchy is the extension-relative type code of an XInput
// hierarchy changed notification.
const EventTypeHierarchy uint16 = 11

// Hierarchy change flag bits carried in the event's flags word.
const (
	HierarchyMasterAdded    uint32 = 1 << 0
	HierarchyMasterRemoved  uint32 = 1 << 1
	HierarchySlaveAdded     uint32 = 1 << 2
	HierarchySlaveRemoved   uint32 = 1 << 3
	HierarchySlaveAttached  uint32 = 1 << 4
	HierarchySlaveDetached  uint32 = 1 << 5
	HierarchyDeviceEnabled  uint32 = 1 << 6
	HierarchyDeviceDisabled uint32 = 1 << 7
)

// deviceAddedMask covers the hierarchy flags that announce a new
// device. Removal and enable/disable changes deliberately do not
// qualify: devices that were already present have their settings
// applied, and a removed device needs nothing reasserted.
const deviceAddedMask = HierarchyMasterAdded | HierarchySlaveAdded

// HierarchyFlags extracts the change flags from a hierarchy event's
// payload. The payload starts with the device id (2 bytes) and
// timestamp (4 bytes); the flags word follows. A payload too short to
// hold it yields zero.
func HierarchyFlags(ev GenericEvent) uint32 {
	if len(ev.Data) < 10 {
		return 0
	}
	return xgb.Get32(ev.Data[6:])
}

// IsDeviceAddition reports whether ev is a hierarchy notification from
// the device input extension announcing that a master or slave device
// was added. Four checks, each rejecting on its own: the event has to
// be a generic event, carry input's major opcode, have the hierarchy
// sub-type and have an "added" bit in its flags.
func IsDeviceAddition(ev xgb.Event, input Extension) bool {
	gev, ok := ev.(GenericEvent)
	if !ok {
		return false
	}
	if gev.Extension != input.MajorOpcode {
		return false
	}
	if gev.EventType != EventTypeHierarchy {
		return false
	}
	return HierarchyFlags(gev)&deviceAddedMask != 0
}
