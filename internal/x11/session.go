// Package x11 wraps the X protocol plumbing behind keyboard repeat
// management: the server connection, the XInput and XKB extension
// handshakes, hierarchy event selection and the SetControls request
// that carries the repeat rate and delay.
package x11

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Extension records the server's answer to a QueryExtension round
// trip: whether the extension is present and the major opcode its
// requests and events carry.
type Extension struct {
	Present     bool
	MajorOpcode byte
}

// Session owns a connection to the X server together with the state
// the repeat daemon needs from it: the default root window and the
// descriptors of the two extensions it talks to. A Session belongs to
// a single goroutine.
type Session struct {
	conn  *xgb.Conn
	root  xproto.Window
	input Extension
	xkb   Extension
}

// Connect opens a connection to the X server named by display (the
// DISPLAY environment variable when empty), locates the default screen
// and queries the XInput and XKB extensions. Any failure here is fatal
// to the caller: without XInput there are no hotplug notifications,
// without XKB no way to set repeat controls.
func Connect(display string) (*Session, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to X server: %w", err)
	}

	s := &Session{conn: conn}
	if err := s.setup(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) setup() error {
	setup := xproto.Setup(s.conn)
	if setup == nil || len(setup.Roots) == 0 {
		return fmt.Errorf("cannot acquire screen: server reports no roots")
	}
	s.root = setup.DefaultScreen(s.conn).Root

	var err error
	if s.input, err = queryExtension(s.conn, xiExtensionName); err != nil {
		return err
	}
	if !s.input.Present {
		return fmt.Errorf("server does not support XInput")
	}
	if s.xkb, err = queryExtension(s.conn, xkbExtensionName); err != nil {
		return err
	}
	if !s.xkb.Present {
		return fmt.Errorf("server does not support XKB")
	}
	return nil
}

func queryExtension(conn *xgb.Conn, name string) (Extension, error) {
	reply, err := xproto.QueryExtension(conn, uint16(len(name)), name).Reply()
	if err != nil {
		return Extension{}, fmt.Errorf("cannot query extension %s: %w", name, err)
	}
	return Extension{Present: reply.Present, MajorOpcode: reply.MajorOpcode}, nil
}

// InputExtension returns the descriptor of the device input extension.
// Its major opcode identifies which generic events belong to it.
func (s *Session) InputExtension() Extension {
	return s.input
}

// SelectHierarchyEvents registers interest in device hierarchy
// notifications on the root window, for all devices. Only the
// hierarchy bit is requested; selecting key or motion bits here would
// flood the loop with events we never act on.
func (s *Session) SelectHierarchyEvents() error {
	cookie := s.conn.NewCookie(true, false)
	s.conn.NewRequest(selectEventsRequest(s.input.MajorOpcode, s.root, xiAllDevices, xiEventMaskHierarchy), cookie)
	if err := cookie.Check(); err != nil {
		return fmt.Errorf("cannot select hierarchy events: %w", err)
	}
	return nil
}

// UseKeyboardExtension performs the one-time XKB version handshake.
// XKB requests answer with Access errors until the client has
// announced which protocol version it speaks.
func (s *Session) UseKeyboardExtension() error {
	cookie := s.conn.NewCookie(true, true)
	s.conn.NewRequest(useExtensionRequest(s.xkb.MajorOpcode, xkbMajorVersion, xkbMinorVersion), cookie)
	buf, err := cookie.Reply()
	if err != nil {
		return fmt.Errorf("cannot use XKB: %w", err)
	}
	supported, serverMajor, serverMinor := useExtensionReply(buf)
	if !supported {
		return fmt.Errorf("server rejected XKB version %d.%d, speaks %d.%d",
			xkbMajorVersion, xkbMinorVersion, serverMajor, serverMinor)
	}
	return nil
}

// ApplyRepeat issues a SetControls request that enables the RepeatKeys
// control with cfg's delay and interval on the emulated core keyboard.
// Every other controllable field stays zero so nothing else about
// keyboard behavior changes, and reapplying identical values is
// harmless. The core keyboard aggregates all physical keyboards, so a
// single request covers whichever device just appeared.
func (s *Session) ApplyRepeat(cfg RepeatConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	cookie := s.conn.NewCookie(true, false)
	s.conn.NewRequest(setControlsRequest(s.xkb.MajorOpcode, xkbUseCoreKbd, cfg.Delay, cfg.Interval()), cookie)
	if err := cookie.Check(); err != nil {
		return fmt.Errorf("cannot set keyboard repeat rate and delay: %w", err)
	}
	return nil
}

// WaitForEvent blocks until the server delivers the next event. Both
// return values are nil once the connection has been closed or has
// fatally errored; that is the loop's termination condition.
func (s *Session) WaitForEvent() (xgb.Event, xgb.Error) {
	return s.conn.WaitForEvent()
}

// Close releases the connection.
func (s *Session) Close() {
	s.conn.Close()
}
