package runners

import (
	"context"
	"strings"

	"github.com/pescuma/scmchanges/lib/utils"
)

// Runner launches an external executable and captures what it printed.
// It only returns an error when the process could not be run at all, a non-zero exit code is reported in Output.
type Runner interface {
	Run(ctx context.Context, exe string, args ...string) (*Output, error)
}

type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func NewOutput(stdout, stderr string, exitCode int) *Output {
	return &Output{
		Stdout:   utils.NormalizeNewLines(stdout),
		Stderr:   utils.NormalizeNewLines(stderr),
		ExitCode: exitCode,
	}
}

// Check runs exe and converts a non-zero exit code into a *RunnerError.
func Check(ctx context.Context, runner Runner, exe string, args ...string) (string, error) {
	out, err := runner.Run(ctx, exe, args...)
	if err != nil {
		return "", &RunnerError{
			Exe:      exe,
			Args:     args,
			ExitCode: -1,
			Message:  err.Error(),
			cause:    err,
		}
	}

	if out.ExitCode != 0 {
		return "", newRunnerError(exe, args, out)
	}

	return out.Stdout, nil
}

func CommandLine(exe string, args ...string) string {
	return strings.Join(append([]string{exe}, args...), " ")
}
