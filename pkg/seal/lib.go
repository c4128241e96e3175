package seal

import (
	"context"

	"github.com/s0l0ist/sealgo/internal/bindings"
)

// Library is an opened session of the engine. Opening one is optional: the
// package works with its defaults, but Open is where process-wide options
// are applied and Close is where leaked handles are reported.
type Library struct {
	cfg    Config
	handle bindings.Handle
	closed bool
}

// Open applies cfg and starts a session.
func Open(cfg Config) (*Library, error) {
	h, err := bindings.Open(cfg.toBindings())
	if err != nil {
		return nil, translate(err)
	}
	cfg.apply()
	return &Library{cfg: cfg, handle: h}, nil
}

// Close ends the session. The method is idempotent, returning
// ErrLibraryClosed when called twice.
func (l *Library) Close() error {
	if l == nil {
		return nil
	}

	if l.closed {
		return ErrLibraryClosed
	}

	leaked, err := bindings.Close(l.handle)
	if err != nil {
		return translate(err)
	}
	if l.cfg.LeakCheck && leaked > 0 {
		currentLogger().Warn(context.Background(), "handles still live at close", "count", leaked)
	}

	l.closed = true
	l.handle = 0
	return nil
}

// LiveHandles returns the number of engine objects currently alive.
func LiveHandles() int { return bindings.Live() }
