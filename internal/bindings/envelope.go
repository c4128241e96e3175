package bindings

import (
	"bytes"
	"crypto/subtle"
	"encoding/binary"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"
)

// Envelope layout, little endian:
//
//	0   magic 0xA15E
//	2   version major, minor
//	4   compression mode
//	5   object kind
//	6   reserved
//	8   total size including header and checksum
//	16  ParmsId
//	48  payload
//	    BLAKE2b-256 over everything before it
const (
	envelopeMagic  = 0xA15E
	versionMajor   = 1
	versionMinor   = 0
	headerSize     = 48
	checksumSize   = blake2b.Size256
	maxPayloadSize = 1 << 31
)

// objKind tags the object carried by an envelope.
type objKind uint8

const (
	kindPlain objKind = iota + 1
	kindCipher
	kindSecretKey
	kindPublicKey
	kindRelinKeys
	kindGaloisKeys
)

func (k objKind) String() string {
	switch k {
	case kindPlain:
		return "plaintext"
	case kindCipher:
		return "ciphertext"
	case kindSecretKey:
		return "secret key"
	case kindPublicKey:
		return "public key"
	case kindRelinKeys:
		return "relinearization keys"
	case kindGaloisKeys:
		return "galois keys"
	default:
		return "unknown"
	}
}

var (
	zstdEncoder = sync.OnceValues(func() (*zstd.Encoder, error) {
		return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	})
	zstdDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
		return zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxPayloadSize), zstd.WithDecoderConcurrency(0))
	})
)

func compress(mode ComprMode, payload []byte) ([]byte, error) {
	switch mode {
	case ComprNone:
		return payload, nil
	case ComprZlib:
		var buf bytes.Buffer
		zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if err != nil {
			return nil, wrap(CodeInternal, err, "zlib")
		}
		if _, err := zw.Write(payload); err != nil {
			return nil, wrap(CodeInternal, err, "zlib")
		}
		if err := zw.Close(); err != nil {
			return nil, wrap(CodeInternal, err, "zlib")
		}
		return buf.Bytes(), nil
	case ComprZstd:
		enc, err := zstdEncoder()
		if err != nil {
			return nil, wrap(CodeInternal, err, "zstd")
		}
		return enc.EncodeAll(payload, nil), nil
	}
	return nil, raise(CodeInvalidArgument, "unsupported compression mode %d", mode)
}

func decompress(mode ComprMode, data []byte) ([]byte, error) {
	switch mode {
	case ComprNone:
		return data, nil
	case ComprZlib:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, wrap(CodeCorruptData, err, "zlib")
		}
		defer zr.Close()
		out, err := io.ReadAll(io.LimitReader(zr, maxPayloadSize+1))
		if err != nil {
			return nil, wrap(CodeCorruptData, err, "zlib")
		}
		if len(out) > maxPayloadSize {
			return nil, raise(CodeCorruptData, "payload exceeds %d bytes", maxPayloadSize)
		}
		return out, nil
	case ComprZstd:
		dec, err := zstdDecoder()
		if err != nil {
			return nil, wrap(CodeInternal, err, "zstd")
		}
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, wrap(CodeCorruptData, err, "zstd")
		}
		return out, nil
	}
	return nil, raise(CodeCorruptData, "unsupported compression mode %d", mode)
}

// sealEnvelope frames payload for kind at id.
func sealEnvelope(kind objKind, id ParmsId, mode ComprMode, payload []byte) ([]byte, error) {
	body, err := compress(mode, payload)
	if err != nil {
		return nil, err
	}
	total := headerSize + len(body) + checksumSize
	out := make([]byte, headerSize, total)
	binary.LittleEndian.PutUint16(out[0:], envelopeMagic)
	out[2] = versionMajor
	out[3] = versionMinor
	out[4] = byte(mode)
	out[5] = byte(kind)
	binary.LittleEndian.PutUint64(out[8:], uint64(total))
	putParmsId(out[16:], id)
	out = append(out, body...)
	sum := blake2b.Sum256(out)
	return append(out, sum[:]...), nil
}

// openEnvelope checks the framing and checksum of data and returns the
// decompressed payload.
func openEnvelope(data []byte, want objKind) (ParmsId, []byte, error) {
	if len(data) < headerSize+checksumSize {
		return ParmsIdZero, nil, raise(CodeCorruptData, "envelope too short")
	}
	if binary.LittleEndian.Uint16(data[0:]) != envelopeMagic {
		return ParmsIdZero, nil, raise(CodeCorruptData, "invalid magic")
	}
	if data[2] != versionMajor {
		return ParmsIdZero, nil, raise(CodeCorruptData, "unsupported version %d.%d", data[2], data[3])
	}
	if binary.LittleEndian.Uint16(data[6:]) != 0 {
		return ParmsIdZero, nil, raise(CodeCorruptData, "reserved bytes are not zero")
	}
	if binary.LittleEndian.Uint64(data[8:]) != uint64(len(data)) {
		return ParmsIdZero, nil, raise(CodeCorruptData, "size mismatch")
	}
	end := len(data) - checksumSize
	sum := blake2b.Sum256(data[:end])
	if subtle.ConstantTimeCompare(sum[:], data[end:]) != 1 {
		return ParmsIdZero, nil, raise(CodeCorruptData, "checksum mismatch")
	}
	if kind := objKind(data[5]); kind != want {
		return ParmsIdZero, nil, raise(CodeInvalidData, "envelope holds a %s, not a %s", kind, want)
	}
	payload, err := decompress(ComprMode(data[4]), data[headerSize:end])
	if err != nil {
		return ParmsIdZero, nil, err
	}
	return readParmsId(data[16:]), payload, nil
}
