package seal

import (
	"context"

	"github.com/s0l0ist/sealgo/internal/bindings"
)

// Context holds validated encryption parameters and their modulus switching
// chain. It is read-only after construction and may be shared by any number
// of objects and goroutines.
type Context struct {
	handle
}

// NewContext validates parms and builds the modulus switching chain. With
// expandModChain false only the key level and the first data level exist.
//
// Invalid parameters do not produce an error: the Context is returned with
// ParametersSet reporting false, and operations that need the engine fail
// with ErrParametersNotSet.
func NewContext(parms EncryptionParameters, expandModChain bool, sec SecurityLevel) (*Context, error) {
	h, err := bindings.NewContext(parms.toBindings(), expandModChain, sec)
	if err != nil {
		return nil, translate(err)
	}
	c := track(&Context{handle{h}})
	if ok, _ := bindings.ContextParametersSet(h); !ok {
		name, msg, _ := bindings.ContextParameterError(h)
		currentLogger().Debug(context.Background(), "encryption parameters rejected",
			"scheme", parms.Scheme, "poly_modulus_degree", parms.PolyModulusDegree,
			"error", name, "reason", msg)
	}
	return c, nil
}

func (c *Context) ParametersSet() (bool, error) {
	ok, err := bindings.ContextParametersSet(c.h)
	return ok, translate(err)
}

// ParameterErrorName returns the short name of the validation result, for
// instance "success" or "invalid_poly_modulus_degree".
func (c *Context) ParameterErrorName() (string, error) {
	name, _, err := bindings.ContextParameterError(c.h)
	return name, translate(err)
}

func (c *Context) ParameterErrorMessage() (string, error) {
	_, msg, err := bindings.ContextParameterError(c.h)
	return msg, translate(err)
}

// Parms returns the parameters the Context was created with.
func (c *Context) Parms() (EncryptionParameters, error) {
	p, err := bindings.ContextParms(c.h)
	if err != nil {
		return EncryptionParameters{}, translate(err)
	}
	return parametersFrom(p), nil
}

func (c *Context) Scheme() (SchemeType, error) {
	p, err := bindings.ContextParms(c.h)
	return p.Scheme, translate(err)
}

// UsingKeyswitching reports whether a special prime is reserved for key
// switching. Relinearization and Galois keys require it.
func (c *Context) UsingKeyswitching() (bool, error) {
	ok, err := bindings.ContextUsingKeyswitching(c.h)
	return ok, translate(err)
}

func (c *Context) KeyParmsId() (ParmsId, error)   { return c.parmsId(bindings.ChainKey) }
func (c *Context) FirstParmsId() (ParmsId, error) { return c.parmsId(bindings.ChainFirst) }
func (c *Context) LastParmsId() (ParmsId, error)  { return c.parmsId(bindings.ChainLast) }

func (c *Context) parmsId(pos bindings.ChainPos) (ParmsId, error) {
	id, err := bindings.ContextParmsId(c.h, pos)
	return id, translate(err)
}

// KeyContextData returns the level holding every prime, special prime
// included.
func (c *Context) KeyContextData() (*ContextData, error) { return c.dataAt(bindings.ChainKey) }

// FirstContextData returns the highest data level.
func (c *Context) FirstContextData() (*ContextData, error) { return c.dataAt(bindings.ChainFirst) }

// LastContextData returns the lowest data level.
func (c *Context) LastContextData() (*ContextData, error) { return c.dataAt(bindings.ChainLast) }

func (c *Context) dataAt(pos bindings.ChainPos) (*ContextData, error) {
	return wrapContextData(bindings.ContextDataAt(c.h, pos))
}

// GetContextData returns the level named by id, or nil if id is not part
// of the chain.
func (c *Context) GetContextData(id ParmsId) (*ContextData, error) {
	return wrapContextData(bindings.ContextDataFor(c.h, id))
}

// ToHuman renders the parameters in a human-readable form.
func (c *Context) ToHuman() (string, error) {
	s, err := bindings.ContextToHuman(c.h)
	return s, translate(err)
}
