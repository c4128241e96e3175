package bindings

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

var testId = ParmsId{1, 2, 3, 4}

func TestEnvelopeRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("ciphertext payload "), 64)

	for _, mode := range []ComprMode{ComprNone, ComprZlib, ComprZstd} {
		t.Run(mode.String(), func(t *testing.T) {
			data, err := sealEnvelope(kindCipher, testId, mode, payload)
			require.NoError(t, err)
			require.Equal(t, byte(mode), data[4])
			require.Equal(t, uint64(len(data)), binary.LittleEndian.Uint64(data[8:]))
			if mode != ComprNone {
				require.Less(t, len(data), len(payload))
			}

			id, got, err := openEnvelope(data, kindCipher)
			require.NoError(t, err)
			require.Equal(t, testId, id)
			require.Equal(t, payload, got)
		})
	}
}

func TestEnvelopeRejects(t *testing.T) {
	data, err := sealEnvelope(kindPlain, testId, ComprZstd, []byte("plaintext"))
	require.NoError(t, err)

	// reseal recomputes the checksum so only the edited field is wrong
	reseal := func(edit func([]byte)) []byte {
		out := bytes.Clone(data)
		edit(out)
		end := len(out) - checksumSize
		sum := blake2b.Sum256(out[:end])
		copy(out[end:], sum[:])
		return out
	}

	tests := []struct {
		name string
		data []byte
		want Code
	}{
		{"short", data[:headerSize], CodeCorruptData},
		{"truncated", data[:len(data)-1], CodeCorruptData},
		{"flipped payload", func() []byte {
			out := bytes.Clone(data)
			out[headerSize] ^= 0x01
			return out
		}(), CodeCorruptData},
		{"magic", reseal(func(b []byte) { b[0] ^= 0xff }), CodeCorruptData},
		{"version", reseal(func(b []byte) { b[2] = versionMajor + 1 }), CodeCorruptData},
		{"reserved", reseal(func(b []byte) { b[6] = 1 }), CodeCorruptData},
		{"compression mode", reseal(func(b []byte) { b[4] = 9 }), CodeCorruptData},
		{"kind", reseal(func(b []byte) { b[5] = byte(kindSecretKey) }), CodeInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := openEnvelope(tt.data, kindPlain)
			require.Equal(t, tt.want, codeOf(err), "%v", err)
		})
	}
}

func TestCompressUnknownMode(t *testing.T) {
	_, err := compress(ComprMode(7), []byte("x"))
	require.Equal(t, CodeInvalidArgument, codeOf(err))
}
