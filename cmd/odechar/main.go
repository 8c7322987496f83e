// Command odechar prints the general solution of homogeneous linear ODEs
// with constant coefficients.
//
// Usage:
//
//	odechar solve [-tol 1e-5] [-digits 5] [-backend qr|lapack] [-latex] [--] a_n ... a_0
//	odechar batch [-format text|yaml|markdown|html] [-workers 4] file.yaml
//	odechar serve
//	odechar demo
//
// A negative leading coefficient must follow "--" so that it is not read as
// a flag. serve is configured from ODECHAR_* environment variables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/katalvlaran/odechar/batch"
	"github.com/katalvlaran/odechar/internal/api"
	"github.com/katalvlaran/odechar/internal/config"
	"github.com/katalvlaran/odechar/ode"
	"github.com/katalvlaran/odechar/poly"
	"github.com/katalvlaran/odechar/report"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "solve":
		return runSolve(args[1:], stdout, stderr)
	case "batch":
		return runBatch(args[1:], stdout, stderr)
	case "serve":
		return runServe(stdout)
	case "demo":
		return runDemo(stdout)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "odechar: unknown command %q\n", args[0])
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage: odechar <command> [flags]

commands:
  solve [-tol t] [-digits d] [-backend qr|lapack] [-latex] [--] a_n ... a_0
  batch [-format text|yaml|markdown|html] [-workers n] [-tol t] [-digits d] [-backend b] file
  serve    run the HTTP API (ODECHAR_* environment)
  demo     solve the reference equations
`)
}

type solverFlagSet struct {
	tol     *float64
	digits  *int
	backend *string
}

// solverFlags registers the shared solver flags on fs.
func solverFlags(fs *flag.FlagSet) solverFlagSet {
	return solverFlagSet{
		tol:     fs.Float64("tol", ode.DefaultTolerance, "root grouping tolerance (> 0)"),
		digits:  fs.Int("digits", ode.DefaultSignificantDigits, "significant digits (1..17)"),
		backend: fs.String("backend", poly.BackendQR.String(), "eigenvalue backend: qr or lapack"),
	}
}

func (f solverFlagSet) options() ([]ode.Option, error) {
	if !(*f.tol > 0) || math.IsInf(*f.tol, 0) {
		return nil, fmt.Errorf("-tol must be finite and > 0, got %g", *f.tol)
	}
	if *f.digits < 1 || *f.digits > 17 {
		return nil, fmt.Errorf("-digits must be in [1, 17], got %d", *f.digits)
	}
	b, err := poly.ParseBackend(*f.backend)
	if err != nil {
		return nil, err
	}
	return []ode.Option{
		ode.WithTolerance(*f.tol),
		ode.WithSignificantDigits(*f.digits),
		ode.WithRootFinder(ode.PolyRootFinder(poly.WithBackend(b))),
	}, nil
}

func runSolve(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sf := solverFlags(fs)
	latex := fs.Bool("latex", false, "print LaTeX instead of plain text")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	opts, err := sf.options()
	if err != nil {
		fmt.Fprintln(stderr, "odechar:", err)
		return exitUsage
	}

	coeffs := make([]float64, fs.NArg())
	for i, a := range fs.Args() {
		if coeffs[i], err = strconv.ParseFloat(a, 64); err != nil {
			fmt.Fprintf(stderr, "odechar: coefficient %d: %v\n", i+1, err)
			return exitUsage
		}
	}

	sol, err := ode.Analyze(coeffs, opts...)
	if err != nil {
		fmt.Fprintln(stderr, "odechar:", err)
		return exitFail
	}
	if *latex {
		fmt.Fprintln(stdout, sol.LaTeX())
	} else {
		fmt.Fprintln(stdout, sol.String())
	}
	if n := len(sol.Unpaired()); n > 0 {
		fmt.Fprintf(stderr, "odechar: warning: %d complex root group(s) without a conjugate twin\n", n)
	}
	return exitOK
}

func runBatch(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sf := solverFlags(fs)
	format := fs.String("format", "text", "output format: text, yaml, markdown or html")
	workers := fs.Int("workers", batch.DefaultWorkers, "concurrent solvers")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "odechar: batch takes exactly one file")
		return exitUsage
	}
	opts, err := sf.options()
	if err != nil {
		fmt.Fprintln(stderr, "odechar:", err)
		return exitUsage
	}

	problems, err := batch.LoadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, "odechar:", err)
		return exitFail
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results, err := batch.Run(ctx, problems, *workers, opts...)
	if err != nil {
		fmt.Fprintln(stderr, "odechar:", err)
		return exitFail
	}

	switch *format {
	case "text":
		err = batch.WriteText(stdout, results)
	case "yaml":
		err = batch.WriteYAML(stdout, results)
	case "markdown", "md":
		_, err = io.WriteString(stdout, report.Markdown(results))
	case "html":
		var page []byte
		if page, err = report.HTML(results); err == nil {
			_, err = stdout.Write(page)
		}
	default:
		fmt.Fprintf(stderr, "odechar: unknown format %q\n", *format)
		return exitUsage
	}
	if err != nil {
		fmt.Fprintln(stderr, "odechar:", err)
		return exitFail
	}
	if batch.Failed(results) > 0 {
		return exitFail
	}
	return exitOK
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	lvl, _ := cfg.Level()
	hopts := &slog.HandlerOptions{Level: lvl}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, hopts))
	}
	return slog.New(slog.NewJSONHandler(w, hopts))
}

func runServe(stdout io.Writer) int {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.New(slog.NewJSONHandler(stdout, nil)).Error("invalid configuration", "error", err)
		return exitFail
	}
	log := newLogger(cfg, stdout)

	srv := api.NewServer(cfg, log)
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h2c.NewHandler(srv, &http2.Server{}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	log.Info("starting odechar", "addr", cfg.Addr, "auth", cfg.APIKey != "", "workers", cfg.Workers)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		return exitFail
	}
	return exitOK
}

// demoScenarios are the reference equations printed by "odechar demo".
var demoScenarios = []batch.Problem{
	{Name: "y'' - 3y' + 2y = 0", Coefficients: []float64{1, -3, 2}},
	{Name: "y'' - 4y' + 4y = 0", Coefficients: []float64{1, -4, 4}},
	{Name: "y'' + 4y = 0", Coefficients: []float64{1, 0, 4}},
	{Name: "y'''' + 2y'' + y = 0", Coefficients: []float64{1, 0, 2, 0, 1}},
	{Name: "y''' - 6y'' + 12y' - 8y = 0", Coefficients: []float64{1, -6, 12, -8}},
}

func runDemo(stdout io.Writer) int {
	code := exitOK
	for _, p := range demoScenarios {
		res := batch.Solve(p)
		if !res.OK() {
			fmt.Fprintf(stdout, "%s\n  error: %s\n", p.Name, res.Error)
			code = exitFail
			continue
		}
		fmt.Fprintf(stdout, "%s\n  %s\n", p.Name, res.Solution)
	}
	return code
}
