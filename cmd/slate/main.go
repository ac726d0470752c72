// Package main provides the slate CLI.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "slate:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to a process exit code. Environment failures
// (config, storage) are tagged with sysErr; everything else, including
// cobra usage errors and rejected input, counts as a user error.
func exitCode(err error) int {
	var se *systemError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

// systemError marks a failure of the environment rather than the input.
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }

func (e *systemError) Unwrap() error { return e.err }

// sysErr tags err as a system failure for exit-code classification.
func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return &systemError{err: err}
}
