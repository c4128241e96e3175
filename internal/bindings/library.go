package bindings

import (
	"runtime/debug"
	"sync"
)

// Config carries the engine-wide options chosen at Open.
type Config struct {
	// ClearPoolOnClose drops the scratch space of the global pool when the
	// library is closed.
	ClearPoolOnClose bool
}

type libraryObj struct {
	cfg Config
	// baseline is the number of live handles when the library was opened,
	// not counting the library itself.
	baseline int
}

// Open registers a library session.
func Open(cfg Config) (Handle, error) {
	base := Live()
	return put(&libraryObj{cfg: cfg, baseline: base}), nil
}

// Close ends the session opened by Open and reports how many handles
// created since then are still live.
func Close(h Handle) (leaked int, err error) {
	o, err := get[*libraryObj](h)
	if err != nil {
		return 0, err
	}
	Delete(h)
	if o.cfg.ClearPoolOnClose {
		globalPool.reset()
	}
	return max(0, Live()-o.baseline), nil
}

const engineModule = "github.com/tuneinsight/lattigo/v6"

var engineVersion = sync.OnceValue(func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, dep := range info.Deps {
		if dep.Path == engineModule {
			if dep.Replace != nil {
				return dep.Replace.Version
			}
			return dep.Version
		}
	}
	return ""
})

// Version returns the module version of the engine linked into the binary,
// or an empty string when build information is unavailable.
func Version() string { return engineVersion() }
