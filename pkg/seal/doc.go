// Package seal is a homomorphic encryption API for BFV, BGV and CKKS.
//
// Every object (Context, PlainText, CipherText, keys, encoders, Evaluator,
// Encryptor, Decryptor, memory pools) wraps a handle to an engine-side
// value. The lattice arithmetic is done by the engine; this package moves
// data across the boundary, checks arguments and translates faults into
// *Error values.
//
// # Lifecycle
//
// Objects own their handle. Delete releases it and is safe to call more
// than once; after Delete every method fails with ErrInvalidHandle. A
// finalizer calls Delete as a safety net, but secret keys in particular
// should be deleted explicitly:
//
//	kg, err := seal.NewKeyGenerator(ctx, nil)
//	if err != nil {
//	    return err
//	}
//	defer kg.Delete()
//
// Move transfers the handle of one value to another and empties the
// source. Instance and UnsafeInject give raw access to the handle.
//
// # Errors
//
// All engine failures are returned as *Error. Use errors.Is with the
// exported sentinels to classify them:
//
//	if errors.Is(err, seal.ErrScaleMismatch) {
//	    // rescale one operand first
//	}
//
// # Example
//
//	parms := seal.EncryptionParameters{
//	    Scheme:            seal.SchemeBFV,
//	    PolyModulusDegree: 4096,
//	}
//	parms.CoeffModulus, _ = seal.CoeffModulusBFVDefault(4096, seal.SecurityLevelTC128)
//	parms.PlainModulus, _ = seal.PlainModulusBatching(4096, 20)
//	ctx, _ := seal.NewContext(parms, true, seal.SecurityLevelTC128)
//	defer ctx.Delete()
//
//	kg, _ := seal.NewKeyGenerator(ctx, nil)
//	pk, _ := kg.CreatePublicKey()
//	enc, _ := seal.NewEncryptor(ctx, pk, nil)
//	be, _ := seal.NewBatchEncoder(ctx)
//
//	pt, _ := be.EncodeNew([]int64{1, 2, 3})
//	ct, _ := enc.EncryptNew(pt)
//
// # Concurrency
//
// Contexts and keys are read-only after construction. Encoders, evaluators
// and decryptors take scratch space from a MemoryPoolHandle and may be
// shared between goroutines. Two goroutines must not use the same
// PlainText or CipherText at once if either of them writes to it.
package seal
