package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Solve(t *testing.T) {
	code, out, _ := runCmd("solve", "1", "-3", "2")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "y(x) = C_1e^(1x) + C_2e^(2x)\n", out)

	code, out, _ = runCmd("solve", "-latex", "1", "0", "4")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, `y(x) = C_{1}\cos(2x) + C_{2}\sin(2x)`+"\n", out)

	code, out, _ = runCmd("solve", "-backend", "lapack", "1", "0", "2", "0", "1")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "y(x) = C_1cos(1x) + C_2sin(1x) + C_3xcos(1x) + C_4xsin(1x)\n", out)

	code, out, _ = runCmd("solve", "-digits", "3", "--", "-1", "3.14159")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "y(x) = C_1e^(3.14x)\n", out)
}

func TestRun_SolveErrors(t *testing.T) {
	code, _, errOut := runCmd("solve", "0", "1")
	assert.Equal(t, exitFail, code)
	assert.Contains(t, errOut, "invalid input")

	code, _, _ = runCmd("solve", "1", "abc")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCmd("solve", "-tol", "0", "1", "1")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCmd("solve", "-backend", "svd", "1", "1")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCmd("solve", "-nope")
	assert.Equal(t, exitUsage, code)
}

func TestRun_Batch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problems.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
problems:
  - name: a
    coefficients: [1, -3, 2]
  - name: b
    coefficients: [1, 0, 4]
`), 0o600))

	code, out, _ := runCmd("batch", path)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "a: y(x) = C_1e^(1x) + C_2e^(2x)\nb: y(x) = C_1cos(2x) + C_2sin(2x)\n", out)

	code, out, _ = runCmd("batch", "-format", "yaml", path)
	assert.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(out, "results:\n"), out)

	code, out, _ = runCmd("batch", "-format", "markdown", path)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "| 2 | b | `x^2 + 4` |")

	code, out, _ = runCmd("batch", "-format", "html", path)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "<table>")

	code, _, _ = runCmd("batch", "-format", "pdf", path)
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCmd("batch")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCmd("batch", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, exitFail, code)
}

func TestRun_BatchWithFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problems.yaml")
	require.NoError(t, os.WriteFile(path, []byte("problems:\n  - coefficients: [0, 1]\n  - coefficients: [1, 1]\n"), 0o600))

	code, out, _ := runCmd("batch", path)
	assert.Equal(t, exitFail, code)
	assert.Contains(t, out, "eq-1: error: ")
	assert.Contains(t, out, "eq-2: y(x) = C_1e^(-1x)")
}

func TestRun_Demo(t *testing.T) {
	code, out, _ := runCmd("demo")
	assert.Equal(t, exitOK, code)
	for _, want := range []string{
		"y(x) = C_1e^(1x) + C_2e^(2x)",
		"y(x) = C_1e^(2x) + C_2xe^(2x)",
		"y(x) = C_1cos(2x) + C_2sin(2x)",
		"y(x) = C_1cos(1x) + C_2sin(1x) + C_3xcos(1x) + C_4xsin(1x)",
		"y(x) = C_1e^(2x) + C_2xe^(2x) + C_3x^2e^(2x)",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRun_Usage(t *testing.T) {
	code, _, errOut := runCmd()
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "usage: odechar")

	code, _, _ = runCmd("frobnicate")
	assert.Equal(t, exitUsage, code)

	code, out, _ := runCmd("help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "commands:")
}
