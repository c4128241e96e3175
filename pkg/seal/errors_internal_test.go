package seal

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s0l0ist/sealgo/internal/bindings"
)

func TestTranslate(t *testing.T) {
	plain := errors.New("boom")

	tests := []struct {
		name    string
		in      error
		code    ErrorCode
		message string
		is      error
	}{
		{
			name:    "numeric code",
			in:      bindings.CodeScaleMismatch,
			code:    CodeScaleMismatch,
			message: bindings.ErrorMessage(bindings.CodeScaleMismatch),
			is:      ErrScaleMismatch,
		},
		{
			name:    "exception",
			in:      &bindings.Exception{Code: bindings.CodeInvalidArgument, Msg: "size out of range"},
			code:    CodeInvalidArgument,
			message: "size out of range",
			is:      ErrInvalidArgument,
		},
		{
			name:    "wrapped exception",
			in:      fmt.Errorf("load: %w", &bindings.Exception{Code: bindings.CodeCorruptData, Msg: "checksum mismatch"}),
			code:    CodeCorruptData,
			message: "checksum mismatch",
			is:      ErrCorruptData,
		},
		{
			name:    "foreign error",
			in:      plain,
			code:    CodeUnknown,
			message: "Unknown Error",
			is:      plain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translate(tt.in)

			var se *Error
			require.ErrorAs(t, err, &se)
			require.Equal(t, tt.code, se.Code)
			require.Equal(t, tt.message, se.Message)
			require.ErrorIs(t, err, tt.is)
		})
	}
}

func TestTranslateNil(t *testing.T) {
	require.NoError(t, translate(nil))
}

func TestTranslateOnce(t *testing.T) {
	first := translate(bindings.CodeNTTForm)
	require.Same(t, first, translate(first))
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := &Error{Code: CodeKeyMissing, Message: "galois key for element 3 is not present"}
	require.ErrorIs(t, err, ErrKeyMissing)
	require.NotErrorIs(t, err, ErrInvalidHandle)
	require.Equal(t, "seal: galois key for element 3 is not present", err.Error())
}

func TestUnsupported(t *testing.T) {
	err := unsupported([]float32{1})
	require.ErrorIs(t, err, ErrUnsupportedType)
	require.Contains(t, err.Error(), "[]float32")
}
