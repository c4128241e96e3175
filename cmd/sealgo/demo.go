package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/s0l0ist/sealgo/pkg/seal"
)

const shown = 8

func runDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	load := parameterFlags(fs)
	if err := fs.Parse(args); err != nil {
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

	fmt.Printf("=== %s demo (%d slots) ===\n\n", strings.ToUpper(s.scheme.String()), s.slots)

	x := make([]float64, s.slots)
	y := make([]float64, s.slots)
	for i := range shown {
		x[i] = float64(i + 1)
		y[i] = float64(shown - i)
	}
	fmt.Printf("x = %s\n", format(x))
	fmt.Printf("y = %s\n\n", format(y))

	cx, err := s.encrypt(x)
	if err != nil {
		return fmt.Errorf("encrypt x: %w", err)
	}
	defer cx.Delete()
	cy, err := s.encrypt(y)
	if err != nil {
		return fmt.Errorf("encrypt y: %w", err)
	}
	defer cy.Delete()

	if s.scheme != seal.SchemeCKKS {
		budget, err := s.dec.InvariantNoiseBudget(cx)
		if err != nil {
			return err
		}
		fmt.Printf("fresh noise budget: %d bits\n", budget)
	}

	sum, err := s.ev.AddNew(cx, cy)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	defer sum.Delete()
	if err := show(s, "x + y", sum); err != nil {
		return err
	}

	prod, err := s.multiply(cx, cy)
	if err != nil {
		return fmt.Errorf("multiply: %w", err)
	}
	defer prod.Delete()
	if err := show(s, "x * y", prod); err != nil {
		return err
	}

	var rot *seal.CipherText
	if s.scheme == seal.SchemeCKKS {
		rot, err = s.ev.RotateVectorNew(cx, 1, s.gk)
	} else {
		rot, err = s.ev.RotateRowsNew(cx, 1, s.gk)
	}
	if err != nil {
		return fmt.Errorf("rotate: %w", err)
	}
	defer rot.Delete()
	if err := show(s, "x <<< 1", rot); err != nil {
		return err
	}

	dot, err := s.ev.DotProductNew(cx, cy, s.rlk, s.gk, s.scheme)
	if err != nil {
		return fmt.Errorf("dot product: %w", err)
	}
	defer dot.Delete()
	if err := show(s, "<x, y>", dot); err != nil {
		return err
	}

	if s.scheme != seal.SchemeCKKS {
		budget, err := s.dec.InvariantNoiseBudget(dot)
		if err != nil {
			return err
		}
		fmt.Printf("\nnoise budget after dot product: %d bits\n", budget)
	}
	return nil
}

func show(s *session, label string, ct *seal.CipherText) error {
	values, err := s.decrypt(ct)
	if err != nil {
		return fmt.Errorf("decrypt %s: %w", label, err)
	}
	fmt.Printf("%-8s = %s\n", label, format(values))
	return nil
}

func format(values []float64) string {
	var b strings.Builder
	b.WriteString("[")
	for i := range min(shown, len(values)) {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%.2f", values[i])
	}
	b.WriteString(" ...]")
	return b.String()
}
