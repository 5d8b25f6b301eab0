// SPDX-License-Identifier: MPL-2.0

package script

import (
	"errors"
	"fmt"

	"scriptcore/internal/streamio"
)

// Sentinel errors behind scriptcore's typed error values, so callers can
// use errors.Is for programmatic detection without naming the concrete
// type.
var (
	ErrScriptFailed       = errors.New("script failed")
	ErrCaptureClosed      = errors.New("capture closed")
	ErrInvalidInput       = errors.New("invalid input")
	ErrSpawnFailed        = errors.New("spawn failed")
	ErrUnhandledInCapture = errors.New("unhandled exception in capture")

	// ErrAlreadyConsumed is re-exported so callers never need to import
	// the internal streamio package directly.
	ErrAlreadyConsumed = streamio.ErrAlreadyConsumed
)

// AlreadyConsumedError is returned by Stdout/Stderr.Subscribe when a
// stream has already been claimed.
type AlreadyConsumedError = streamio.ConsumedError

// ScriptFailed reports that a Script terminated with a non-zero exit
// code. ExitCode != 0 is an invariant of construction.
type ScriptFailed struct {
	Name     string
	ExitCode ExitCode
}

func (e *ScriptFailed) Error() string {
	return fmt.Sprintf("script %q failed with exit code %s", e.Name, e.ExitCode)
}

func (e *ScriptFailed) Unwrap() error { return ErrScriptFailed }

// CaptureClosedError reports an attempt to register a Script in a capture
// that has already exited.
type CaptureClosedError struct {
	Name string
}

func (e *CaptureClosedError) Error() string {
	return fmt.Sprintf("capture %q is closed", e.Name)
}

func (e *CaptureClosedError) Unwrap() error { return ErrCaptureClosed }

// InvalidInputError reports a malformed caller request: an empty
// pipeline, conflicting flags, and similar construction-time mistakes.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string { return "invalid input: " + e.Reason }

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// SpawnFailedError reports that a subprocess factory could not start its
// process at all.
type SpawnFailedError struct {
	Name string
	Err  error
}

func (e *SpawnFailedError) Error() string {
	return fmt.Sprintf("failed to spawn %q: %v", e.Name, e.Err)
}

func (e *SpawnFailedError) Unwrap() error { return e.Err }

func (e *SpawnFailedError) Is(target error) bool { return target == ErrSpawnFailed }

// UnhandledError reports a non-Script exception raised inside a capture
// callback: "Error in {name}:\n{err}\n{chain}".
type UnhandledError struct {
	Name  string
	Err   error
	Chain string
}

func (e *UnhandledError) Error() string {
	msg := fmt.Sprintf("Error in %s:\n%v", e.Name, e.Err)
	if e.Chain != "" {
		msg += "\n" + e.Chain
	}
	return msg
}

func (e *UnhandledError) Unwrap() error { return e.Err }

func (e *UnhandledError) Is(target error) bool { return target == ErrUnhandledInCapture }
