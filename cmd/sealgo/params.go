package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/s0l0ist/sealgo/pkg/seal"
)

const ckksScale = 1 << 40

// defaultParameters is used when no parameter file is given.
func defaultParameters(scheme seal.SchemeType) (seal.ParameterSet, error) {
	switch scheme {
	case seal.SchemeCKKS:
		return seal.ParseParameters([]byte(`
scheme: ckks
poly_modulus_degree: 8192
coeff_modulus_bits: [60, 40, 40, 60]
`))
	default:
		return seal.ParseParameters([]byte(fmt.Sprintf(`
scheme: %s
poly_modulus_degree: 4096
plain_modulus_batching_bits: 20
`, scheme)))
	}
}

// parameterFlags registers the flags shared by the commands that need a
// context and returns a loader for the resolved set.
func parameterFlags(fs *flag.FlagSet) func() (seal.ParameterSet, error) {
	path := fs.String("f", "", "YAML parameter file")
	scheme := fs.String("scheme", "bfv", "scheme used without a parameter file (bfv, bgv, ckks)")
	return func() (seal.ParameterSet, error) {
		if *path != "" {
			return seal.LoadParameters(*path)
		}
		switch *scheme {
		case "bfv":
			return defaultParameters(seal.SchemeBFV)
		case "bgv":
			return defaultParameters(seal.SchemeBGV)
		case "ckks":
			return defaultParameters(seal.SchemeCKKS)
		}
		return seal.ParameterSet{}, fmt.Errorf("unknown scheme %q", *scheme)
	}
}

type levelSummary struct {
	Index   int    `yaml:"index"`
	Bits    int    `yaml:"bits"`
	ParmsId string `yaml:"parms_id"`
}

type chainSummary struct {
	Scheme            string         `yaml:"scheme"`
	PolyModulusDegree uint64         `yaml:"poly_modulus_degree"`
	PlainModulus      uint64         `yaml:"plain_modulus,omitempty"`
	Keyswitching      bool           `yaml:"keyswitching"`
	Levels            []levelSummary `yaml:"levels"`
}

func runParams(args []string) error {
	fs := flag.NewFlagSet("params", flag.ExitOnError)
	load := parameterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	set, err := load()
	if err != nil {
		return err
	}
	ctx, err := set.NewContext()
	if err != nil {
		return err
	}
	defer ctx.Delete()

	if ok, err := ctx.ParametersSet(); err != nil {
		return err
	} else if !ok {
		human, _ := ctx.ToHuman()
		return fmt.Errorf("parameters rejected: %s", human)
	}

	ks, err := ctx.UsingKeyswitching()
	if err != nil {
		return err
	}
	summary := chainSummary{
		Scheme:            set.Parms.Scheme.String(),
		PolyModulusDegree: set.Parms.PolyModulusDegree,
		PlainModulus:      set.Parms.PlainModulus,
		Keyswitching:      ks,
	}

	data, err := ctx.KeyContextData()
	for data != nil && err == nil {
		var lvl levelSummary
		if lvl, err = describeLevel(data); err == nil {
			summary.Levels = append(summary.Levels, lvl)
		}
		next, nerr := data.NextContextData()
		data.Delete()
		if err == nil {
			err = nerr
		}
		if err != nil && next != nil {
			next.Delete()
			next = nil
		}
		data = next
	}
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(summary)
}

func describeLevel(data *seal.ContextData) (levelSummary, error) {
	idx, err := data.ChainIndex()
	if err != nil {
		return levelSummary{}, err
	}
	total, err := data.TotalCoeffModulusBitCount()
	if err != nil {
		return levelSummary{}, err
	}
	id, err := data.ParmsId()
	if err != nil {
		return levelSummary{}, err
	}
	return levelSummary{Index: idx, Bits: total, ParmsId: fmt.Sprintf("%016x", id[0])}, nil
}
