package seal

import (
	"sync"

	"github.com/s0l0ist/sealgo/internal/bindings"
	"github.com/s0l0ist/sealgo/pkg/seal/logging"
)

// Config holds the process-wide options applied by Open.
type Config struct {
	// Logger receives the records emitted by the library. Nil keeps the
	// current logger.
	Logger logging.Logger

	// DefaultComprMode is used by Save and SaveArray when no mode is given.
	// Its zero value is ComprModeNone, which Open only applies when
	// KeepComprMode is set; otherwise the current default is kept.
	DefaultComprMode ComprModeType
	KeepComprMode    bool

	// Pool is bound by encoders, evaluators and decryptors created without
	// an explicit pool. Nil selects the global pool.
	Pool *MemoryPoolHandle

	// LeakCheck makes Library.Close warn about handles created since Open
	// that are still live.
	LeakCheck bool

	// ClearPoolOnClose drops the scratch space of the global pool on Close.
	ClearPoolOnClose bool
}

func (c Config) toBindings() bindings.Config {
	return bindings.Config{ClearPoolOnClose: c.ClearPoolOnClose}
}

var (
	settingsMu sync.RWMutex
	logger     = logging.New(nil)
	comprMode  = ComprModeZstd
	pool       *MemoryPoolHandle
)

// SetLogger replaces the package logger. Passing nil restores slog.Default().
func SetLogger(l logging.Logger) {
	if l == nil {
		l = logging.New(nil)
	}
	settingsMu.Lock()
	logger = l
	settingsMu.Unlock()
}

func currentLogger() logging.Logger {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return logger
}

func defaultComprMode() ComprModeType {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return comprMode
}

// poolOf returns the engine handle of p, falling back to the configured
// default pool. The empty handle selects the global pool.
func poolOf(p *MemoryPoolHandle) (Handle, error) {
	if p == nil {
		settingsMu.RLock()
		p = pool
		settingsMu.RUnlock()
		if p == nil {
			return 0, nil
		}
	}
	if p.h == 0 {
		return 0, ErrInvalidHandle
	}
	return p.h, nil
}

func (c Config) apply() {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if c.Logger != nil {
		logger = c.Logger
	}
	if c.DefaultComprMode != ComprModeNone || c.KeepComprMode {
		comprMode = c.DefaultComprMode
	}
	pool = c.Pool
}
