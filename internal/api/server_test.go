package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/katalvlaran/odechar/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Addr:         ":0",
		Tolerance:    1e-5,
		Digits:       5,
		Backend:      "qr",
		Workers:      2,
		MaxBatch:     10,
		MaxBodyBytes: 1 << 16,
		LogLevel:     "info",
		LogFormat:    "json",
	}
}

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(NewServer(cfg, log))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string, header ...string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, testConfig())
	resp, err := ts.Client().Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestSolve(t *testing.T) {
	ts := newTestServer(t, testConfig())
	resp, body := post(t, ts, "/api/solve", `{"coefficients":[1,-4,4]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got solveResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "y(x) = C_1e^(2x) + C_2xe^(2x)", got.Solution)
	assert.Equal(t, "y(x) = C_{1}e^{2x} + C_{2}xe^{2x}", got.LaTeX)
	assert.Equal(t, 2, got.Terms)
	assert.Equal(t, 0, got.Unpaired)
	require.Len(t, got.Groups, 1)
	assert.Equal(t, "real", got.Groups[0].Kind)
	assert.InDelta(t, 2, got.Groups[0].Real, 1e-12)
	assert.Equal(t, 2, got.Groups[0].Multiplicity)
}

func TestSolve_Overrides(t *testing.T) {
	ts := newTestServer(t, testConfig())
	resp, body := post(t, ts, "/api/solve", `{"coefficients":[1,-3.14159265],"digits":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"solution":"y(x) = C_1e^(3.14x)"`)

	resp, body = post(t, ts, "/api/solve", `{"coefficients":[1,-6,12,-8],"backend":"lapack"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"solution":"y(x) = C_1e^(2x) + C_2xe^(2x) + C_3x^2e^(2x)"`)

	resp, body = post(t, ts, "/api/solve", `{"coefficients":[1,-1e-4],"tolerance":1e-3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"solution":"y(x) = C_1"`)
}

func TestSolve_Errors(t *testing.T) {
	ts := newTestServer(t, testConfig())
	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"coefficients":`, http.StatusBadRequest},
		{"too short", `{"coefficients":[1]}`, http.StatusBadRequest},
		{"zero leading", `{"coefficients":[0,1,2]}`, http.StatusBadRequest},
		{"bad tolerance", `{"coefficients":[1,2],"tolerance":0}`, http.StatusBadRequest},
		{"bad digits", `{"coefficients":[1,2],"digits":40}`, http.StatusBadRequest},
		{"bad backend", `{"coefficients":[1,2],"backend":"svd"}`, http.StatusBadRequest},
		{"root finding failed", `{"coefficients":[1e-300,1e300]}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := post(t, ts, "/api/solve", tc.body)
			assert.Equal(t, tc.code, resp.StatusCode, string(body))
			var e map[string]string
			require.NoError(t, json.Unmarshal(body, &e))
			assert.NotEmpty(t, e["error"])
		})
	}
}

func TestSolve_BodyTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 16
	ts := newTestServer(t, cfg)
	resp, body := post(t, ts, "/api/solve", `{"coefficients":[1,2,3,4,5,6,7,8,9]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode, string(body))
}

func TestBatch(t *testing.T) {
	ts := newTestServer(t, testConfig())
	resp, body := post(t, ts, "/api/solve/batch",
		`{"problems":[{"name":"a","coefficients":[1,-3,2]},{"coefficients":[0,1]},{"coefficients":[1,0,4]}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got struct {
		Results []struct {
			Name     string `json:"name"`
			Solution string `json:"solution"`
			Error    string `json:"error"`
		} `json:"results"`
		Failed int `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Results, 3)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, "a", got.Results[0].Name)
	assert.Equal(t, "y(x) = C_1e^(1x) + C_2e^(2x)", got.Results[0].Solution)
	assert.Equal(t, "eq-2", got.Results[1].Name)
	assert.NotEmpty(t, got.Results[1].Error)
	assert.Equal(t, "y(x) = C_1cos(2x) + C_2sin(2x)", got.Results[2].Solution)
}

func TestBatch_Limits(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBatch = 1
	ts := newTestServer(t, cfg)

	resp, _ := post(t, ts, "/api/solve/batch", `{"problems":[]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = post(t, ts, "/api/solve/batch", `{"problems":[{"coefficients":[1,1]},{"coefficients":[1,2]}]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestReport(t *testing.T) {
	ts := newTestServer(t, testConfig())
	resp, body := post(t, ts, "/api/report", `{"problems":[{"name":"osc","coefficients":[1,0,4]}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "<table>")
	assert.Contains(t, string(body), "y(x) = C_1cos(2x) + C_2sin(2x)")
}

func TestAuth(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = "secret"
	ts := newTestServer(t, cfg)

	resp, _ := post(t, ts, "/api/solve", `{"coefficients":[1,1]}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = post(t, ts, "/api/solve", `{"coefficients":[1,1]}`, "Authorization", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := post(t, ts, "/api/solve", `{"coefficients":[1,1]}`, "Authorization", "Bearer secret")
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	// Health stays public.
	hr, err := ts.Client().Get(ts.URL + "/health")
	require.NoError(t, err)
	hr.Body.Close()
	assert.Equal(t, http.StatusOK, hr.StatusCode)
}
