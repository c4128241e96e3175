package seal

import "github.com/s0l0ist/sealgo/internal/bindings"

var (
	Version     = "v0.0.0-in-progress"
	UpstreamSHA = "unknown"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// UpstreamVersion returns the module version of the engine linked into the
// binary if build information is available; otherwise it falls back to the
// pinned upstream commit SHA.
func UpstreamVersion() string {
	if v := bindings.Version(); v != "" {
		return v
	}
	return UpstreamSHA
}
