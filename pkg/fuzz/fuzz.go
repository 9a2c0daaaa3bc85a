// Package fuzz runs many randomly generated programs through assemble →
// load → executeSteps concurrently and reports any that violate a supplied
// check. The worker-pool shape — a job channel, a fixed goroutine count,
// per-job-seeded randomness — follows the teacher's search-worker pattern;
// the core itself stays synchronous (spec §5), fuzzing is purely an
// external harness driving many independent instances of it.
package fuzz

import (
	"fmt"
	"math/rand"
	"sync"
)

// Finding is one program that failed its check.
type Finding struct {
	Seed   int64
	Source string
	Err    error
}

// Generator produces one random assembly source program from a seeded RNG.
type Generator func(r *rand.Rand) string

// Checker runs a program and returns a non-nil error if it violates
// whatever property the caller is fuzzing for.
type Checker func(source string) error

// Run fans iterations jobs out across workers goroutines. Each job gets its
// own *rand.Rand seeded from baseSeed+index, so results are reproducible
// regardless of scheduling order.
func Run(workers, iterations int, baseSeed int64, gen Generator, check Checker) []Finding {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int64, iterations)
	results := make(chan *Finding, iterations)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				r := rand.New(rand.NewSource(seed))
				source := gen(r)
				if err := check(source); err != nil {
					results <- &Finding{Seed: seed, Source: source, Err: err}
					continue
				}
				results <- nil
			}
		}()
	}

	for i := 0; i < iterations; i++ {
		jobs <- baseSeed + int64(i)
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var findings []Finding
	for f := range results {
		if f != nil {
			findings = append(findings, *f)
		}
	}
	return findings
}

// randomALUProgram is a small Generator: a random sequence of register loads
// and ALU ops over A..L, terminated with HALT — dense enough to exercise
// flag handling without risking runaway jumps.
func randomALUProgram(r *rand.Rand) string {
	regs := []string{"B", "C", "D", "E", "H", "L"}
	mnemonics := []string{"ADD A,", "SUB ", "AND ", "XOR ", "OR ", "CP "}
	n := 3 + r.Intn(6)
	src := fmt.Sprintf("LD A, %d\n", r.Intn(256))
	for i := 0; i < n; i++ {
		reg := regs[r.Intn(len(regs))]
		src += fmt.Sprintf("LD %s, %d\n", reg, r.Intn(256))
		src += mnemonics[r.Intn(len(mnemonics))] + reg + "\n"
	}
	src += "HALT\n"
	return src
}

// RandomALUProgram exposes randomALUProgram as a Generator for callers that
// want the default corpus shape.
var RandomALUProgram Generator = randomALUProgram
