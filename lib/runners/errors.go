package runners

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type RunnerError struct {
	Exe      string
	Args     []string
	ExitCode int

	// Message is what the tool printed to stderr, or to stdout when stderr was empty.
	Message string

	cause error
}

func newRunnerError(exe string, args []string, out *Output) *RunnerError {
	message := strings.TrimSpace(out.Stderr)
	if message == "" {
		message = strings.TrimSpace(out.Stdout)
	}

	return &RunnerError{
		Exe:      exe,
		Args:     args,
		ExitCode: out.ExitCode,
		Message:  message,
	}
}

func (e *RunnerError) Error() string {
	if e.ExitCode == -1 {
		return fmt.Sprintf("error running %v: %v", e.Exe, e.Message)
	}

	return fmt.Sprintf("%v exited with code %v: %v", e.Exe, e.ExitCode, e.Message)
}

func (e *RunnerError) Unwrap() error {
	return e.cause
}

func IsRunnerError(err error) bool {
	var re *RunnerError
	return errors.As(err, &re)
}
