// SPDX-License-Identifier: MPL-2.0

package wrapmain

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"scriptcore/pkg/script"
)

func TestRunNilErrorExitsZero(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if code := Run(&buf, nil); code != 0 {
		t.Errorf("Run() = %d, want 0", code)
	}
	if buf.Len() != 0 {
		t.Errorf("stderr = %q, want empty", buf.String())
	}
}

func TestRunExitErrorReportsItsOwnCode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	code := Run(&buf, &ExitError{Code: 42, Err: errors.New("boom")})
	if code != 42 {
		t.Errorf("Run() = %d, want 42", code)
	}
	if buf.String() != "boom\n" {
		t.Errorf("stderr = %q, want %q", buf.String(), "boom\n")
	}
}

func TestRunScriptFailedReportsExitCode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	code := Run(&buf, &script.ScriptFailed{Name: "build", ExitCode: 7})
	if code != 7 {
		t.Errorf("Run() = %d, want 7", code)
	}
}

func TestRunUnknownErrorIsUnhandled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	code := Run(&buf, fmt.Errorf("wrapped: %w", errors.New("oops")))
	if code != int(script.ExitUnhandled) {
		t.Errorf("Run() = %d, want %d", code, script.ExitUnhandled)
	}
}
