// Command sealgo exercises the homomorphic encryption bindings from the
// command line.
//
//	sealgo version
//	sealgo params [-f params.yaml]
//	sealgo demo [-f params.yaml]
//	sealgo bench [-f params.yaml] [-runs 20]
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/s0l0ist/sealgo/pkg/seal"
)

type command struct {
	name  string
	usage string
	run   func(args []string) error
}

var commands = []command{
	{"version", "print the wrapper and engine versions", runVersion},
	{"params", "resolve a parameter file and describe its chain", runParams},
	{"demo", "encrypt, compute and decrypt a small batch", runDemo},
	{"bench", "time the evaluator operations", runBench},
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("sealgo: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	lib, err := seal.Open(seal.Config{LeakCheck: true})
	if err != nil {
		log.Fatalf("open library: %v", err)
	}
	defer func() {
		if cerr := lib.Close(); cerr != nil {
			log.Printf("close error: %v", cerr)
		}
	}()

	for _, c := range commands {
		if c.name == os.Args[1] {
			if err := c.run(os.Args[2:]); err != nil {
				log.Printf("%s: %v", c.name, err)
				lib.Close()
				os.Exit(1)
			}
			return
		}
	}
	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sealgo <command> [flags]")
	fmt.Fprintln(os.Stderr)
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", c.name, c.usage)
	}
}

func runVersion([]string) error {
	fmt.Printf("sealgo version: %s\n", seal.WrapperVersion())
	fmt.Printf("engine: %s\n", seal.UpstreamVersion())
	return nil
}
