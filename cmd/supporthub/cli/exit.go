// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without an extra error
// message. The main function exits with Code silently; the command is
// expected to have written its own output already. Used where a
// non-zero exit is a defined outcome ("twofactor status" returning 1
// for disabled) rather than a failure.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. Main checks for this interface on
// returned errors to distinguish handled exits from real failures.
func (e *ExitError) ExitCode() int {
	return e.Code
}
