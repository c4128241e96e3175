package seal

import (
	"errors"

	"github.com/s0l0ist/sealgo/internal/bindings"
)

// ErrorCode classifies a failure raised by the engine.
type ErrorCode int32

const (
	CodeUnknown           ErrorCode = -1
	CodeInvalidHandle               = ErrorCode(bindings.CodeInvalidHandle)
	CodeTypeMismatch                = ErrorCode(bindings.CodeTypeMismatch)
	CodeInvalidArgument             = ErrorCode(bindings.CodeInvalidArgument)
	CodeParametersNotSet            = ErrorCode(bindings.CodeParametersNotSet)
	CodeSchemeMismatch              = ErrorCode(bindings.CodeSchemeMismatch)
	CodeParameterMismatch           = ErrorCode(bindings.CodeParameterMismatch)
	CodeScaleMismatch               = ErrorCode(bindings.CodeScaleMismatch)
	CodeScaleOutOfBounds            = ErrorCode(bindings.CodeScaleOutOfBounds)
	CodeEndOfModulusChain           = ErrorCode(bindings.CodeEndOfModulusChain)
	CodeSizeMismatch                = ErrorCode(bindings.CodeSizeMismatch)
	CodeNTTForm                     = ErrorCode(bindings.CodeNTTForm)
	CodeKeyMissing                  = ErrorCode(bindings.CodeKeyMissing)
	CodeInvalidData                 = ErrorCode(bindings.CodeInvalidData)
	CodeCorruptData                 = ErrorCode(bindings.CodeCorruptData)
	CodeZeroPlain                   = ErrorCode(bindings.CodeZeroPlain)
	CodeUnsupportedType             = ErrorCode(bindings.CodeUnsupportedType)
	CodeInternal                    = ErrorCode(bindings.CodeInternal)
)

// Error is the single error type returned by every operation of the package.
type Error struct {
	Code    ErrorCode
	Message string
	err     error
}

func (e *Error) Error() string { return "seal: " + e.Message }

func (e *Error) Unwrap() error { return e.err }

// Is matches any *Error carrying the same code, so the sentinels below can be
// used with errors.Is regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func sentinel(code ErrorCode) *Error {
	return &Error{Code: code, Message: bindings.ErrorMessage(bindings.Code(code))}
}

var (
	ErrInvalidHandle     = sentinel(CodeInvalidHandle)
	ErrTypeMismatch      = sentinel(CodeTypeMismatch)
	ErrInvalidArgument   = sentinel(CodeInvalidArgument)
	ErrParametersNotSet  = sentinel(CodeParametersNotSet)
	ErrSchemeMismatch    = sentinel(CodeSchemeMismatch)
	ErrParameterMismatch = sentinel(CodeParameterMismatch)
	ErrScaleMismatch     = sentinel(CodeScaleMismatch)
	ErrScaleOutOfBounds  = sentinel(CodeScaleOutOfBounds)
	ErrEndOfModulusChain = sentinel(CodeEndOfModulusChain)
	ErrSizeMismatch      = sentinel(CodeSizeMismatch)
	ErrNTTForm           = sentinel(CodeNTTForm)
	ErrKeyMissing        = sentinel(CodeKeyMissing)
	ErrInvalidData       = sentinel(CodeInvalidData)
	ErrCorruptData       = sentinel(CodeCorruptData)
	ErrZeroPlain         = sentinel(CodeZeroPlain)
	ErrUnsupportedType   = sentinel(CodeUnsupportedType)
	ErrInternal          = sentinel(CodeInternal)
)

// ErrLibraryClosed is returned when Close is called on a closed Library.
var ErrLibraryClosed = errors.New("seal: library already closed")

const unknownMessage = "Unknown Error"

// translate converts an error returned by the bindings layer into an *Error.
// Errors that are already translated pass through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	var ex *bindings.Exception
	if errors.As(err, &ex) {
		return &Error{Code: ErrorCode(ex.Code), Message: ex.Msg, err: ex}
	}
	var code bindings.Code
	if errors.As(err, &code) {
		return &Error{Code: ErrorCode(code), Message: bindings.ErrorMessage(code), err: code}
	}
	return &Error{Code: CodeUnknown, Message: unknownMessage, err: err}
}

// unsupported is raised by the public layer before any engine call when a Go
// value has no engine representation.
func unsupported(v any) error {
	return &Error{Code: CodeUnsupportedType, Message: "unsupported array type " + typeName(v)}
}
