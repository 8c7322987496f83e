package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/katalvlaran/odechar/ode"
	"gopkg.in/yaml.v3"
)

// DefaultWorkers is used when Run is given a non-positive worker count.
const DefaultWorkers = 4

// Problem is one equation, coefficients a_n … a_0 (highest order first).
type Problem struct {
	Name         string    `yaml:"name" json:"name"`
	Coefficients []float64 `yaml:"coefficients,flow" json:"coefficients"`
}

// Result is the outcome of one Problem. Exactly one of Solution and Error
// is non-empty; Err keeps the typed error for errors.Is.
type Result struct {
	Name         string    `yaml:"name" json:"name"`
	Coefficients []float64 `yaml:"coefficients,flow" json:"coefficients"`
	Solution     string    `yaml:"solution,omitempty" json:"solution,omitempty"`
	LaTeX        string    `yaml:"latex,omitempty" json:"latex,omitempty"`
	Error        string    `yaml:"error,omitempty" json:"error,omitempty"`

	Err error `yaml:"-" json:"-"`
}

// OK reports whether the problem was solved.
func (r Result) OK() bool { return r.Err == nil }

type document struct {
	Problems []Problem `yaml:"problems"`
}

// Load decodes a batch document. Unnamed problems are named "eq-<index>"
// (1-based). Coefficients are not validated here; Run reports bad ones per
// problem.
func Load(r io.Reader) ([]Problem, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, batchErrorf(opLoad, ErrNoProblems)
		}
		return nil, batchErrorf(opLoad, fmt.Errorf("%w: %w", ErrDecode, err))
	}
	if len(doc.Problems) == 0 {
		return nil, batchErrorf(opLoad, ErrNoProblems)
	}
	NameDefaults(doc.Problems)

	return doc.Problems, nil
}

// NameDefaults names every unnamed problem "eq-<index>" (1-based), in place.
func NameDefaults(problems []Problem) {
	for i := range problems {
		if problems[i].Name == "" {
			problems[i].Name = "eq-" + strconv.Itoa(i+1)
		}
	}
}

// LoadFile is Load on the named file.
func LoadFile(path string) ([]Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, batchErrorf(opLoadFile, err)
	}
	defer f.Close()

	return Load(f)
}

// Solve analyses a single problem.
func Solve(p Problem, opts ...ode.Option) Result {
	res := Result{Name: p.Name, Coefficients: p.Coefficients}
	s, err := ode.Analyze(p.Coefficients, opts...)
	if err != nil {
		res.Err = err
		res.Error = err.Error()
		return res
	}
	res.Solution = s.String()
	res.LaTeX = s.LaTeX()

	return res
}

// Run solves problems on up to workers goroutines and returns the results in
// input order. Per-problem failures live in the results; the returned error
// is non-nil only when ctx ends before every problem was dispatched, in which
// case the undispatched results carry ctx.Err().
func Run(ctx context.Context, problems []Problem, workers int, opts ...ode.Option) ([]Result, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(problems) {
		workers = len(problems)
	}

	results := make([]Result, len(problems))
	done := make([]bool, len(problems))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = Solve(problems[i], opts...)
				done[i] = true
			}
		}()
	}

	var ctxErr error
dispatch:
	for i := range problems {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if ctxErr == nil {
		return results, nil
	}
	for i, ok := range done {
		if !ok {
			results[i] = Result{
				Name:         problems[i].Name,
				Coefficients: problems[i].Coefficients,
				Error:        ctxErr.Error(),
				Err:          ctxErr,
			}
		}
	}

	return results, batchErrorf(opRun, ctxErr)
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	var n int
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}

	return n
}

// WriteYAML encodes results as a YAML document with a top-level "results" list.
func WriteYAML(w io.Writer, results []Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(struct {
		Results []Result `yaml:"results"`
	}{results}); err != nil {
		return batchErrorf(opWriteYAML, err)
	}
	if err := enc.Close(); err != nil {
		return batchErrorf(opWriteYAML, err)
	}

	return nil
}

// WriteText writes one "name: solution" (or "name: error: …") line per result.
func WriteText(w io.Writer, results []Result) error {
	for _, r := range results {
		var err error
		if r.OK() {
			_, err = fmt.Fprintf(w, "%s: %s\n", r.Name, r.Solution)
		} else {
			_, err = fmt.Fprintf(w, "%s: error: %s\n", r.Name, r.Error)
		}
		if err != nil {
			return err
		}
	}

	return nil
}
