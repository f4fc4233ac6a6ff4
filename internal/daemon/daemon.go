// Package daemon runs the blocking watch loop that keeps keyboard
// repeat settings applied across input device hotplug.
package daemon

import (
	"github.com/bnema/xrepeatd/internal/logger"
	"github.com/bnema/xrepeatd/internal/x11"
	"github.com/jezek/xgb"
)

// Conn is the slice of the X session the loop needs. *x11.Session
// implements it; tests substitute a scripted fake.
type Conn interface {
	InputExtension() x11.Extension
	SelectHierarchyEvents() error
	UseKeyboardExtension() error
	ApplyRepeat(x11.RepeatConfig) error
	WaitForEvent() (xgb.Event, xgb.Error)
}

// Run registers for hierarchy events, asserts cfg once, then blocks on
// the event stream and reasserts cfg each time a new input device
// appears. It returns nil when the server closes the connection; that
// is the normal way for the daemon to stop. The caller keeps ownership
// of conn and closes it after Run returns.
func Run(conn Conn, cfg x11.RepeatConfig) error {
	if err := conn.SelectHierarchyEvents(); err != nil {
		return err
	}
	if err := conn.UseKeyboardExtension(); err != nil {
		return err
	}

	// Assert the settings once up front. Failure is not fatal: the
	// next qualifying event gives another attempt.
	if err := conn.ApplyRepeat(cfg); err != nil {
		logger.Errorf("cannot set keyboard repeat: %v", err)
	} else {
		logger.Infof("keyboard repeat set: rate=%d/s delay=%dms interval=%dms",
			cfg.Rate, cfg.Delay, cfg.Interval())
	}

	for {
		ev, xerr := conn.WaitForEvent()
		if ev == nil && xerr == nil {
			logger.Info("connection closed, exiting")
			return nil
		}
		if xerr != nil {
			logger.Warnf("X error: %v", xerr)
			continue
		}
		if !x11.IsDeviceAddition(ev, conn.InputExtension()) {
			continue
		}

		if gev, ok := ev.(x11.GenericEvent); ok {
			logger.Debugf("input hierarchy changed: flags=%#x", x11.HierarchyFlags(gev))
		}
		if err := conn.ApplyRepeat(cfg); err != nil {
			logger.Errorf("cannot set keyboard repeat: %v", err)
			continue
		}
		logger.Infof("new input device, keyboard repeat reapplied: rate=%d/s delay=%dms",
			cfg.Rate, cfg.Delay)
	}
}

var _ Conn = (*x11.Session)(nil)
