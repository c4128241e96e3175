package bindings

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"
)

// Code is a numeric fault code raised by the engine.
type Code int32

const (
	CodeOK Code = iota
	CodeInvalidHandle
	CodeTypeMismatch
	CodeInvalidArgument
	CodeParametersNotSet
	CodeSchemeMismatch
	CodeParameterMismatch
	CodeScaleMismatch
	CodeScaleOutOfBounds
	CodeEndOfModulusChain
	CodeSizeMismatch
	CodeNTTForm
	CodeKeyMissing
	CodeInvalidData
	CodeCorruptData
	CodeZeroPlain
	CodeUnsupportedType
	CodeInternal
)

var messages = map[Code]string{
	CodeOK:                "ok",
	CodeInvalidHandle:     "handle is empty or was deleted",
	CodeTypeMismatch:      "handle refers to an object of another type",
	CodeInvalidArgument:   "invalid argument",
	CodeParametersNotSet:  "encryption parameters are not set correctly",
	CodeSchemeMismatch:    "unsupported scheme",
	CodeParameterMismatch: "operand parameter mismatch",
	CodeScaleMismatch:     "scale mismatch",
	CodeScaleOutOfBounds:  "scale out of bounds",
	CodeEndOfModulusChain: "end of modulus switching chain reached",
	CodeSizeMismatch:      "invalid ciphertext size",
	CodeNTTForm:           "invalid NTT form",
	CodeKeyMissing:        "required key is not present",
	CodeInvalidData:       "data is invalid for encryption parameters",
	CodeCorruptData:       "serialized data is corrupt",
	CodeZeroPlain:         "plain cannot be zero",
	CodeUnsupportedType:   "unsupported array type",
	CodeInternal:          "internal engine error",
}

// ErrorMessage resolves a fault code to a human-readable message.
func ErrorMessage(c Code) string {
	if m, ok := messages[c]; ok {
		return m
	}
	return "unknown fault code " + strconv.Itoa(int(c))
}

func (c Code) Error() string {
	return "bindings: fault code " + strconv.Itoa(int(c))
}

// Exception is a descriptive engine fault.
type Exception struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Exception) Error() string { return e.Msg }

func (e *Exception) Unwrap() error { return e.Err }

func raise(code Code, format string, args ...any) error {
	return &Exception{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// wrap converts an error returned by lattigo into an Exception. Errors that
// are already engine faults are returned unchanged.
func wrap(code Code, err error, what string) error {
	if err == nil {
		return nil
	}
	var c Code
	var ex *Exception
	if errors.As(err, &ex) || errors.As(err, &c) {
		return err
	}
	return &Exception{Code: code, Msg: what + ": " + err.Error(), Err: err}
}

// guard converts a panic raised inside lattigo into a CodeInternal exception.
// It must be deferred directly by the exported entry point.
func guard(err *error) {
	if r := recover(); r != nil {
		*err = &Exception{
			Code: CodeInternal,
			Msg:  fmt.Sprintf("engine panic: %v", r),
			Err:  fmt.Errorf("%v\n%s", r, debug.Stack()),
		}
	}
}
