package seal

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/s0l0ist/sealgo/internal/bindings"
)

// EncryptionParameters is the value describing a parameter set. When more
// than one coefficient modulus prime is given, the last one is reserved for
// key switching.
type EncryptionParameters struct {
	Scheme            SchemeType
	PolyModulusDegree uint64
	CoeffModulus      []uint64
	PlainModulus      uint64
}

func (p EncryptionParameters) toBindings() bindings.Params {
	return bindings.Params{
		Scheme:            p.Scheme,
		PolyModulusDegree: p.PolyModulusDegree,
		CoeffModulus:      append([]uint64(nil), p.CoeffModulus...),
		PlainModulus:      p.PlainModulus,
	}
}

func parametersFrom(p bindings.Params) EncryptionParameters {
	return EncryptionParameters{
		Scheme:            p.Scheme,
		PolyModulusDegree: p.PolyModulusDegree,
		CoeffModulus:      p.CoeffModulus,
		PlainModulus:      p.PlainModulus,
	}
}

// ParameterSet is a parameter file resolved into the arguments of
// NewContext.
type ParameterSet struct {
	Parms          EncryptionParameters
	ExpandModChain bool
	Security       SecurityLevel
}

// NewContext creates a Context from the set.
func (s ParameterSet) NewContext() (*Context, error) {
	return NewContext(s.Parms, s.ExpandModChain, s.Security)
}

type parameterFile struct {
	Scheme                   string   `yaml:"scheme"`
	PolyModulusDegree        uint64   `yaml:"poly_modulus_degree"`
	CoeffModulus             []uint64 `yaml:"coeff_modulus"`
	CoeffModulusBits         []int    `yaml:"coeff_modulus_bits"`
	PlainModulus             uint64   `yaml:"plain_modulus"`
	PlainModulusBatchingBits int      `yaml:"plain_modulus_batching_bits"`
	SecurityLevel            string   `yaml:"security_level"`
	ExpandModChain           *bool    `yaml:"expand_mod_chain"`
}

// LoadParameters reads a YAML parameter file.
func LoadParameters(path string) (ParameterSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ParameterSet{}, fmt.Errorf("read parameters: %w", err)
	}
	return ParseParameters(data)
}

// ParseParameters decodes a YAML parameter document. Primes may be given
// directly or as bit sizes; a BFV or BGV set without either uses the default
// coefficient modulus for the security level.
func ParseParameters(data []byte) (ParameterSet, error) {
	var f parameterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return ParameterSet{}, fmt.Errorf("parse parameters: %w", err)
	}

	var s ParameterSet
	var err error
	if s.Parms.Scheme, err = parseScheme(f.Scheme); err != nil {
		return ParameterSet{}, err
	}
	if s.Security, err = parseSecurityLevel(f.SecurityLevel); err != nil {
		return ParameterSet{}, err
	}
	s.ExpandModChain = f.ExpandModChain == nil || *f.ExpandModChain

	n := f.PolyModulusDegree
	s.Parms.PolyModulusDegree = n

	switch {
	case len(f.CoeffModulus) > 0 && len(f.CoeffModulusBits) > 0:
		return ParameterSet{}, fmt.Errorf("parse parameters: coeff_modulus and coeff_modulus_bits are exclusive")
	case len(f.CoeffModulus) > 0:
		s.Parms.CoeffModulus = f.CoeffModulus
	case len(f.CoeffModulusBits) > 0:
		if s.Parms.CoeffModulus, err = CoeffModulusCreate(n, f.CoeffModulusBits); err != nil {
			return ParameterSet{}, err
		}
	case s.Parms.Scheme == SchemeBFV || s.Parms.Scheme == SchemeBGV:
		if s.Parms.CoeffModulus, err = CoeffModulusBFVDefault(n, s.Security); err != nil {
			return ParameterSet{}, err
		}
	}

	switch {
	case f.PlainModulus != 0 && f.PlainModulusBatchingBits != 0:
		return ParameterSet{}, fmt.Errorf("parse parameters: plain_modulus and plain_modulus_batching_bits are exclusive")
	case f.PlainModulus != 0:
		s.Parms.PlainModulus = f.PlainModulus
	case f.PlainModulusBatchingBits != 0:
		if s.Parms.PlainModulus, err = PlainModulusBatching(n, f.PlainModulusBatchingBits); err != nil {
			return ParameterSet{}, err
		}
	}
	return s, nil
}

func parseScheme(s string) (SchemeType, error) {
	switch strings.ToLower(s) {
	case "bfv":
		return SchemeBFV, nil
	case "bgv":
		return SchemeBGV, nil
	case "ckks":
		return SchemeCKKS, nil
	}
	return SchemeNone, fmt.Errorf("parse parameters: unknown scheme %q", s)
}

func parseSecurityLevel(s string) (SecurityLevel, error) {
	switch strings.ToLower(s) {
	case "", "tc128":
		return SecurityLevelTC128, nil
	case "tc192":
		return SecurityLevelTC192, nil
	case "tc256":
		return SecurityLevelTC256, nil
	case "none":
		return SecurityLevelNone, nil
	}
	return SecurityLevelNone, fmt.Errorf("parse parameters: unknown security level %q", s)
}
