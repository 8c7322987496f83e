package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/katalvlaran/odechar/batch"
	"github.com/katalvlaran/odechar/ode"
	"github.com/katalvlaran/odechar/poly"
	"github.com/katalvlaran/odechar/report"
)

// solverParams are the per-request overrides shared by every endpoint.
type solverParams struct {
	Tolerance *float64 `json:"tolerance,omitempty"`
	Digits    *int     `json:"digits,omitempty"`
	Backend   string   `json:"backend,omitempty"`
}

type solveRequest struct {
	Coefficients []float64 `json:"coefficients"`
	solverParams
}

type groupResponse struct {
	Kind         string  `json:"kind"`
	Real         float64 `json:"real"`
	Imag         float64 `json:"imag"`
	Multiplicity int     `json:"multiplicity"`
}

type solveResponse struct {
	Solution string          `json:"solution"`
	LaTeX    string          `json:"latex"`
	Groups   []groupResponse `json:"groups"`
	Terms    int             `json:"terms"`
	Unpaired int             `json:"unpaired"`
}

type batchRequest struct {
	Problems []batch.Problem `json:"problems"`
	solverParams
}

type batchResponse struct {
	Results []batch.Result `json:"results"`
	Failed  int            `json:"failed"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if !s.decode(w, r, &req) {
		return
	}
	opts, err := s.solverOptions(req.solverParams)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sol, err := ode.Analyze(req.Coefficients, opts...)
	if err != nil {
		jsonError(w, err.Error(), solveStatus(err))
		return
	}

	resp := solveResponse{
		Solution: sol.String(),
		LaTeX:    sol.LaTeX(),
		Groups:   make([]groupResponse, len(sol.Groups)),
		Terms:    sol.Dimension(),
		Unpaired: len(sol.Unpaired()),
	}
	for i, g := range sol.Groups {
		resp.Groups[i] = groupResponse{
			Kind:         g.Kind.String(),
			Real:         g.Real(),
			Imag:         g.Imag(),
			Multiplicity: g.Multiplicity,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	results, ok := s.runBatch(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Results: results, Failed: batch.Failed(results)})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	results, ok := s.runBatch(w, r)
	if !ok {
		return
	}
	page, err := report.HTML(results)
	if err != nil {
		s.log.Error("render report", "error", err)
		jsonError(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// runBatch decodes a batch request and solves it; it writes the error
// response itself and reports false on failure.
func (s *Server) runBatch(w http.ResponseWriter, r *http.Request) ([]batch.Result, bool) {
	var req batchRequest
	if !s.decode(w, r, &req) {
		return nil, false
	}
	if len(req.Problems) == 0 {
		jsonError(w, "problems is required", http.StatusBadRequest)
		return nil, false
	}
	if len(req.Problems) > s.cfg.MaxBatch {
		jsonError(w, fmt.Sprintf("batch exceeds max size (%d problems)", s.cfg.MaxBatch), http.StatusRequestEntityTooLarge)
		return nil, false
	}
	opts, err := s.solverOptions(req.solverParams)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	batch.NameDefaults(req.Problems)
	results, err := batch.Run(r.Context(), req.Problems, s.cfg.Workers, opts...)
	if err != nil {
		s.log.Warn("batch interrupted", "error", err, "problems", len(req.Problems))
		jsonError(w, "request cancelled", http.StatusServiceUnavailable)
		return nil, false
	}

	return results, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxBodyBytes), http.StatusRequestEntityTooLarge)
			return false
		}
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// solverOptions merges per-request overrides over the configured defaults.
// Values are checked here because the ode constructors panic on bad input.
func (s *Server) solverOptions(p solverParams) ([]ode.Option, error) {
	t, d, name := s.cfg.Tolerance, s.cfg.Digits, s.cfg.Backend
	if p.Tolerance != nil {
		t = *p.Tolerance
	}
	if p.Digits != nil {
		d = *p.Digits
	}
	if p.Backend != "" {
		name = p.Backend
	}
	if !(t > 0) || math.IsInf(t, 0) {
		return nil, fmt.Errorf("tolerance must be finite and > 0")
	}
	if d < 1 || d > 17 {
		return nil, fmt.Errorf("digits must be in [1, 17]")
	}
	b, err := poly.ParseBackend(name)
	if err != nil {
		return nil, err
	}
	return []ode.Option{
		ode.WithTolerance(t),
		ode.WithSignificantDigits(d),
		ode.WithRootFinder(ode.PolyRootFinder(poly.WithBackend(b))),
	}, nil
}

func solveStatus(err error) int {
	switch {
	case errors.Is(err, ode.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ode.ErrRootFindingFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
