package seal

import "github.com/s0l0ist/sealgo/internal/bindings"

// ContextData is one level of a modulus switching chain.
type ContextData struct {
	handle
}

// wrapContextData wraps a handle returned by the bindings. The empty handle
// marks the end of the chain and yields nil.
func wrapContextData(h Handle, err error) (*ContextData, error) {
	if err != nil {
		return nil, translate(err)
	}
	if h == 0 {
		return nil, nil
	}
	return track(&ContextData{handle{h}}), nil
}

// Parms returns the parameters of this level; CoeffModulus holds only the
// primes still present here.
func (d *ContextData) Parms() (EncryptionParameters, error) {
	p, err := bindings.ContextDataParms(d.h)
	if err != nil {
		return EncryptionParameters{}, translate(err)
	}
	return parametersFrom(p), nil
}

func (d *ContextData) ParmsId() (ParmsId, error) {
	id, err := bindings.ContextDataParmsId(d.h)
	return id, translate(err)
}

// ChainIndex is 0 at the last level and grows toward the key level.
func (d *ContextData) ChainIndex() (int, error) {
	i, err := bindings.ContextDataChainIndex(d.h)
	return i, translate(err)
}

func (d *ContextData) TotalCoeffModulusBitCount() (int, error) {
	n, err := bindings.ContextDataTotalCoeffModulusBitCount(d.h)
	return n, translate(err)
}

func (d *ContextData) Qualifiers() (EncryptionParameterQualifiers, error) {
	q, err := bindings.ContextDataQualifiers(d.h)
	return q, translate(err)
}

// PrevContextData returns the level above, or nil at the key level.
func (d *ContextData) PrevContextData() (*ContextData, error) {
	return wrapContextData(bindings.ContextDataPrev(d.h))
}

// NextContextData returns the level below, or nil at the last level.
func (d *ContextData) NextContextData() (*ContextData, error) {
	return wrapContextData(bindings.ContextDataNext(d.h))
}
