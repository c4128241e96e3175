package seal

import "github.com/s0l0ist/sealgo/internal/bindings"

// SchemeType selects the homomorphic encryption scheme.
type SchemeType = bindings.Scheme

const (
	SchemeNone = bindings.SchemeNone
	SchemeBFV  = bindings.SchemeBFV
	SchemeCKKS = bindings.SchemeCKKS
	SchemeBGV  = bindings.SchemeBGV
)

// SecurityLevel bounds the total coefficient modulus size.
type SecurityLevel = bindings.SecurityLevel

const (
	SecurityLevelNone  = bindings.SecurityNone
	SecurityLevelTC128 = bindings.SecurityTC128
	SecurityLevelTC192 = bindings.SecurityTC192
	SecurityLevelTC256 = bindings.SecurityTC256
)

// ComprModeType is the compression applied by Save.
type ComprModeType = bindings.ComprMode

const (
	ComprModeNone = bindings.ComprNone
	ComprModeZlib = bindings.ComprZlib
	ComprModeZstd = bindings.ComprZstd
)

// ParmsId identifies one level of a modulus switching chain. It is a plain
// value of four 64-bit words.
type ParmsId = bindings.ParmsId

// ParmsIdZero is carried by objects not bound to a chain level.
var ParmsIdZero = bindings.ParmsIdZero

// EncryptionParameterQualifiers describes properties of a chain level.
type EncryptionParameterQualifiers = bindings.Qualifiers
