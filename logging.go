package gerkit

import (
	"github.com/gerkit/gerkit/gerrt/rt/core"
)

type Logger = core.Logger

type DefaultLogger = core.DefaultLogger

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return core.NewDefaultLogger(prefix, debug)
}

func NewNopLogger() Logger { return core.NewNopLogger() }

// Logger returns the session logger. Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil || app.session == nil {
		return NewNopLogger()
	}
	return core.OrNop(app.session.Log)
}
