package bindings

import (
	"encoding"
	"encoding/binary"
	"math"
	"slices"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
)

// Save serializes the object behind h into a new uint8 vector.
func Save(h Handle, mode ComprMode) (out Handle, err error) {
	defer guard(&err)

	v, err := get[any](h)
	if err != nil {
		return 0, err
	}

	var (
		kind    objKind
		id      ParmsId
		payload []byte
		secret  bool
	)
	switch o := v.(type) {
	case *plainObj:
		kind, id, payload = kindPlain, o.id, o.marshal()
	case *cipherObj:
		kind = kindCipher
		if id, payload, err = o.marshal(); err != nil {
			return 0, err
		}
	case *secretKeyObj:
		if o.sk == nil {
			return 0, raise(CodeKeyMissing, "secret key is empty")
		}
		kind, id, secret = kindSecretKey, o.ctx.key.id, true
		if payload, err = o.sk.MarshalBinary(); err != nil {
			return 0, wrap(CodeInternal, err, "marshal secret key")
		}
	case *publicKeyObj:
		if o.pk == nil {
			return 0, raise(CodeKeyMissing, "public key is empty")
		}
		kind, id = kindPublicKey, o.ctx.key.id
		if payload, err = o.pk.MarshalBinary(); err != nil {
			return 0, wrap(CodeInternal, err, "marshal public key")
		}
	case *relinKeysObj:
		if o.rlk == nil {
			return 0, raise(CodeKeyMissing, "relinearization keys are empty")
		}
		kind, id = kindRelinKeys, o.ctx.key.id
		if payload, err = o.rlk.MarshalBinary(); err != nil {
			return 0, wrap(CodeInternal, err, "marshal relinearization keys")
		}
	case *galoisKeysObj:
		if !o.ctx.set {
			return 0, raise(CodeParametersNotSet, "encryption parameters are not set correctly")
		}
		kind, id = kindGaloisKeys, o.ctx.key.id
		if payload, err = o.marshal(); err != nil {
			return 0, err
		}
	default:
		return 0, raise(CodeTypeMismatch, "%T cannot be serialized", v)
	}
	if secret {
		defer clear(payload)
	}

	data, err := sealEnvelope(kind, id, mode, payload)
	if err != nil {
		return 0, err
	}
	return put(&vectorObj{kind: VecUint8, data: data}), nil
}

// Load replaces the object behind h with the content of the serialized
// vector vecH, validated against the context ctxH.
func Load(ctxH, h, vecH Handle) (err error) {
	defer guard(&err)

	c, err := lookupSetContext(ctxH)
	if err != nil {
		return err
	}
	v, err := get[any](h)
	if err != nil {
		return err
	}
	data, err := vectorBytes(vecH)
	if err != nil {
		return err
	}

	switch o := v.(type) {
	case *plainObj:
		id, payload, err := openEnvelope(data, kindPlain)
		if err != nil {
			return err
		}
		p, err := c.unmarshalPlain(id, payload)
		if err != nil {
			return err
		}
		o.release()
		*o = *p
	case *cipherObj:
		id, payload, err := openEnvelope(data, kindCipher)
		if err != nil {
			return err
		}
		ct, err := c.unmarshalCipher(id, payload)
		if err != nil {
			return err
		}
		*o = *ct
	case *secretKeyObj:
		payload, err := c.keyPayload(data, kindSecretKey)
		if err != nil {
			return err
		}
		defer clear(payload)
		sk := rlwe.NewSecretKey(c.rlwe)
		if err := unmarshalKey(sk, payload); err != nil {
			return err
		}
		if sk.Value.Q.N() != c.n() || sk.LevelQ() != c.rlwe.MaxLevelQ() || sk.LevelP() != c.rlwe.MaxLevelP() {
			return raise(CodeInvalidData, "secret key is not valid for encryption parameters")
		}
		o.release()
		o.ctx, o.sk = c, sk
	case *publicKeyObj:
		payload, err := c.keyPayload(data, kindPublicKey)
		if err != nil {
			return err
		}
		pk := rlwe.NewPublicKey(c.rlwe)
		if err := unmarshalKey(pk, payload); err != nil {
			return err
		}
		if pk.LevelQ() != c.rlwe.MaxLevelQ() || pk.LevelP() != c.rlwe.MaxLevelP() {
			return raise(CodeInvalidData, "public key is not valid for encryption parameters")
		}
		o.ctx, o.pk = c, pk
	case *relinKeysObj:
		payload, err := c.keyPayload(data, kindRelinKeys)
		if err != nil {
			return err
		}
		rlk := rlwe.NewRelinearizationKey(c.rlwe)
		if err := unmarshalKey(rlk, payload); err != nil {
			return err
		}
		if rlk.LevelQ() != c.rlwe.MaxLevelQ() || rlk.LevelP() != c.rlwe.MaxLevelP() {
			return raise(CodeInvalidData, "relin_keys is not valid for encryption parameters")
		}
		o.ctx, o.rlk = c, rlk
	case *galoisKeysObj:
		payload, err := c.keyPayload(data, kindGaloisKeys)
		if err != nil {
			return err
		}
		keys, err := c.unmarshalGaloisKeys(payload)
		if err != nil {
			return err
		}
		o.ctx, o.keys = c, keys
	default:
		return raise(CodeTypeMismatch, "%T cannot be deserialized", v)
	}
	return nil
}

func unmarshalKey(key encoding.BinaryUnmarshaler, payload []byte) error {
	if err := key.UnmarshalBinary(payload); err != nil {
		return wrap(CodeInvalidData, err, "unmarshal key")
	}
	return nil
}

// keyPayload opens a key envelope and checks it was produced under the
// parameters of c.
func (c *contextObj) keyPayload(data []byte, kind objKind) ([]byte, error) {
	id, payload, err := openEnvelope(data, kind)
	if err != nil {
		return nil, err
	}
	if id != c.key.id {
		return nil, raise(CodeInvalidData, "%s is not valid for encryption parameters", kind)
	}
	return payload, nil
}

// Plaintext payload: count, capacity, scale bits, then count words.
func (p *plainObj) marshal() []byte {
	out := make([]byte, 0, 24+8*len(p.data))
	out = binary.LittleEndian.AppendUint64(out, uint64(len(p.data)))
	out = binary.LittleEndian.AppendUint64(out, uint64(cap(p.data)))
	out = binary.LittleEndian.AppendUint64(out, math.Float64bits(p.scale))
	for _, x := range p.data {
		out = binary.LittleEndian.AppendUint64(out, x)
	}
	return out
}

func (c *contextObj) unmarshalPlain(id ParmsId, payload []byte) (*plainObj, error) {
	if len(payload) < 24 {
		return nil, raise(CodeInvalidData, "plaintext payload too short")
	}
	count := binary.LittleEndian.Uint64(payload[0:])
	capacity := binary.LittleEndian.Uint64(payload[8:])
	scale := math.Float64frombits(binary.LittleEndian.Uint64(payload[16:]))
	body := payload[24:]
	if count > uint64(len(body))/8 || uint64(len(body)) != 8*count || capacity < count {
		return nil, raise(CodeInvalidData, "plaintext payload size mismatch")
	}
	if capacity > uint64(c.n())*uint64(len(c.parms.CoeffModulus)) {
		capacity = count
	}
	if !(scale > 0) {
		return nil, raise(CodeInvalidData, "plain is not valid for encryption parameters")
	}
	p := &plainObj{data: make([]uint64, count, capacity), id: id, scale: scale}
	for i := range p.data {
		p.data[i] = binary.LittleEndian.Uint64(body[8*i:])
	}
	if count == 0 && id.IsZero() {
		return p, nil
	}
	if err := c.validPlain(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Ciphertext payload: representation flag, size capacity, then the engine
// encoding. An empty ciphertext carries ParmsIdZero and no engine data.
func (o *cipherObj) marshal() (ParmsId, []byte, error) {
	flag := byte(0)
	if o.ntt {
		flag = 1
	}
	head := []byte{flag, byte(o.capacity)}
	if o.ct == nil || o.node == nil {
		return ParmsIdZero, head, nil
	}
	body, err := o.ct.MarshalBinary()
	if err != nil {
		return ParmsIdZero, nil, wrap(CodeInternal, err, "marshal ciphertext")
	}
	return o.node.id, append(head, body...), nil
}

func (c *contextObj) unmarshalCipher(id ParmsId, payload []byte) (*cipherObj, error) {
	if len(payload) < 2 {
		return nil, raise(CodeInvalidData, "ciphertext payload too short")
	}
	ntt := payload[0] == 1
	capacity := int(payload[1])
	if payload[0] > 1 || capacity > maxCiphertextSize {
		return nil, raise(CodeInvalidData, "encrypted is not valid for encryption parameters")
	}
	if id.IsZero() {
		if len(payload) != 2 {
			return nil, raise(CodeInvalidData, "encrypted is not valid for encryption parameters")
		}
		return &cipherObj{ctx: c, capacity: capacity, ntt: ntt}, nil
	}
	node, err := c.dataNode(id)
	if err != nil {
		return nil, err
	}

	ct := c.newEngineCipher(1, node.level)
	if err := ct.UnmarshalBinary(payload[2:]); err != nil {
		return nil, wrap(CodeInvalidData, err, "unmarshal ciphertext")
	}
	size := ct.Degree() + 1
	switch {
	case size < 2 || size > maxCiphertextSize || size > capacity:
		return nil, raise(CodeInvalidData, "encrypted is not valid for encryption parameters")
	case ct.Level() != node.level || ct.IsNTT != ntt:
		return nil, raise(CodeInvalidData, "encrypted is not valid for encryption parameters")
	}
	for _, poly := range ct.Value {
		if poly.N() != c.n() {
			return nil, raise(CodeInvalidData, "encrypted is not valid for encryption parameters")
		}
		for i, q := range node.primes {
			if slices.ContainsFunc(poly.Coeffs[i], func(x uint64) bool { return x >= q }) {
				return nil, raise(CodeInvalidData, "encrypted is not valid for encryption parameters")
			}
		}
	}
	if c.scheme() == SchemeCKKS && !(ct.Scale.Float64() > 0) {
		return nil, raise(CodeInvalidData, "encrypted is not valid for encryption parameters")
	}
	return &cipherObj{ctx: c, node: node, ct: ct, capacity: capacity, ntt: ntt}, nil
}

// Galois keys payload: count, then length-prefixed engine encodings in
// increasing Galois element order.
func (o *galoisKeysObj) marshal() ([]byte, error) {
	els := make([]uint64, 0, len(o.keys))
	for g := range o.keys {
		els = append(els, g)
	}
	slices.Sort(els)

	out := binary.LittleEndian.AppendUint32(nil, uint32(len(els)))
	for _, g := range els {
		b, err := o.keys[g].MarshalBinary()
		if err != nil {
			return nil, wrap(CodeInternal, err, "marshal galois key")
		}
		out = binary.LittleEndian.AppendUint64(out, uint64(len(b)))
		out = append(out, b...)
	}
	return out, nil
}

func (c *contextObj) unmarshalGaloisKeys(payload []byte) (map[uint64]*rlwe.GaloisKey, error) {
	if len(payload) < 4 {
		return nil, raise(CodeInvalidData, "galois keys payload too short")
	}
	count := binary.LittleEndian.Uint32(payload)
	rest := payload[4:]
	keys := make(map[uint64]*rlwe.GaloisKey, min(count, 64))
	for range count {
		if len(rest) < 8 {
			return nil, raise(CodeInvalidData, "galois keys payload truncated")
		}
		n := binary.LittleEndian.Uint64(rest)
		rest = rest[8:]
		if n > uint64(len(rest)) {
			return nil, raise(CodeInvalidData, "galois keys payload truncated")
		}
		gk := rlwe.NewGaloisKey(c.rlwe)
		if err := unmarshalKey(gk, rest[:n]); err != nil {
			return nil, err
		}
		rest = rest[n:]
		if err := c.checkGaloisElement(gk.GaloisElement); err != nil {
			return nil, raise(CodeInvalidData, "galois_keys is not valid for encryption parameters")
		}
		if gk.LevelQ() != c.rlwe.MaxLevelQ() || gk.LevelP() != c.rlwe.MaxLevelP() {
			return nil, raise(CodeInvalidData, "galois_keys is not valid for encryption parameters")
		}
		keys[gk.GaloisElement] = gk
	}
	if len(rest) != 0 {
		return nil, raise(CodeInvalidData, "trailing bytes after galois keys")
	}
	return keys, nil
}
