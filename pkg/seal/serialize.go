package seal

import (
	"encoding/base64"

	"github.com/s0l0ist/sealgo/internal/bindings"
)

func pickMode(mode []ComprModeType) ComprModeType {
	if len(mode) > 0 {
		return mode[0]
	}
	return defaultComprMode()
}

// saveArray serializes the object behind h into an envelope.
func saveArray(h Handle, mode []ComprModeType) ([]byte, error) {
	return takeValues[uint8](bindings.Save(h, pickMode(mode)))
}

// saveString is saveArray in standard base64. The binary form is zeroized
// once encoded so that secret keys leave no plain copy behind.
func saveString(h Handle, mode []ComprModeType) (string, error) {
	raw, err := saveArray(h, mode)
	if err != nil {
		return "", err
	}
	defer ZeroizeBytes(raw)
	return base64.StdEncoding.EncodeToString(raw), nil
}

// loadArray replaces the object behind h with the envelope in data,
// validated against ctx.
func loadArray(ctx *Context, h Handle, data []byte) error {
	if ctx == nil {
		return ErrInvalidHandle
	}
	return withVector(data, func(vec bindings.Handle) error {
		return bindings.Load(ctx.h, h, vec)
	})
}

func loadString(ctx *Context, h Handle, s string) error {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return &Error{Code: CodeCorruptData, Message: "invalid base64 encoding", err: err}
	}
	defer ZeroizeBytes(raw)
	return loadArray(ctx, h, raw)
}
