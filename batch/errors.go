// SPDX-License-Identifier: MIT

package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode indicates that a batch document could not be parsed.
	ErrDecode = errors.New("batch: cannot decode problems")

	// ErrNoProblems indicates a well-formed document without any problem.
	ErrNoProblems = errors.New("batch: no problems")
)

const (
	opLoad      = "Load"
	opLoadFile  = "LoadFile"
	opRun       = "Run"
	opWriteYAML = "WriteYAML"
)

func batchErrorf(tag string, err error) error {
	return fmt.Errorf("batch: %s: %w", tag, err)
}
