package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/schollz/progressbar/v3"

	"github.com/s0l0ist/sealgo/pkg/seal"
)

type benchOp struct {
	name string
	run  func() error
}

func runBench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	load := parameterFlags(fs)
	runs := fs.Int("runs", 20, "iterations per operation")
	mode := fs.String("compr", "zstd", "compression used by the save benchmark (none, zlib, zstd)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runs < 1 {
		return fmt.Errorf("runs must be positive, got %d", *runs)
	}
	compr, err := parseComprMode(*mode)
	if err != nil {
		return err
	}

	set, err := load()
	if err != nil {
		return err
	}
	s, err := newSession(set)
	if err != nil {
		return err
	}
	defer s.Close()

	values := make([]float64, s.slots)
	for i := range values {
		if s.scheme == seal.SchemeCKKS {
			values[i] = rand.Float64()*2 - 1
		} else {
			values[i] = float64(rand.IntN(1 << 10))
		}
	}
	pt, err := s.encode(values)
	if err != nil {
		return err
	}
	defer pt.Delete()
	ct, err := s.enc.EncryptNew(pt)
	if err != nil {
		return err
	}
	defer ct.Delete()
	dst, err := ct.Clone()
	if err != nil {
		return err
	}
	defer dst.Delete()

	ops := []benchOp{
		{"encode", func() error {
			p, err := s.encode(values)
			if err == nil {
				p.Delete()
			}
			return err
		}},
		{"encrypt", func() error { return s.enc.Encrypt(pt, dst) }},
		{"decrypt", func() error {
			p, err := s.dec.DecryptNew(ct)
			if err == nil {
				p.Delete()
			}
			return err
		}},
		{"add", func() error { return s.ev.Add(ct, ct, dst) }},
		{"multiply_plain", func() error { return s.ev.MultiplyPlain(ct, pt, dst) }},
		{"multiply_relin", func() error {
			if err := s.ev.Multiply(ct, ct, dst); err != nil {
				return err
			}
			return s.ev.Relinearize(dst, s.rlk, dst)
		}},
		{"rotate", func() error {
			if s.scheme == seal.SchemeCKKS {
				return s.ev.RotateVector(ct, 1, s.gk, dst)
			}
			return s.ev.RotateRows(ct, 1, s.gk, dst)
		}},
		{"save", func() error {
			_, err := ct.SaveArray(compr)
			return err
		}},
	}

	fmt.Printf("%s, %d slots, %d runs per operation\n\n", s.scheme, s.slots, *runs)

	results := make([][]float64, len(ops))
	bar := progressbar.Default(int64(len(ops)**runs), "benchmarking")
	for i, op := range ops {
		bar.Describe(op.name)
		results[i] = make([]float64, 0, *runs)
		for range *runs {
			start := time.Now()
			if err := op.run(); err != nil {
				_ = bar.Exit()
				return fmt.Errorf("%s: %w", op.name, err)
			}
			results[i] = append(results[i], float64(time.Since(start).Microseconds())/1000)
			_ = bar.Add(1)
		}
	}
	_ = bar.Finish()
	fmt.Println()

	fmt.Printf("%-16s %10s %10s %10s %10s\n", "operation", "mean ms", "median", "p95", "stddev")
	for i, op := range ops {
		data := stats.Float64Data(results[i])
		mean, _ := data.Mean()
		median, _ := data.Median()
		p95, _ := data.Percentile(95)
		stddev, _ := data.StandardDeviation()
		fmt.Printf("%-16s %10.3f %10.3f %10.3f %10.3f\n", op.name, mean, median, p95, stddev)
	}

	size, err := ct.SaveArray(compr)
	if err != nil {
		return err
	}
	fmt.Printf("\nciphertext size (%s): %d bytes\n", compr, len(size))
	return nil
}

func parseComprMode(s string) (seal.ComprModeType, error) {
	switch s {
	case "none":
		return seal.ComprModeNone, nil
	case "zlib":
		return seal.ComprModeZlib, nil
	case "zstd":
		return seal.ComprModeZstd, nil
	}
	return 0, fmt.Errorf("unknown compression mode %q", s)
}
