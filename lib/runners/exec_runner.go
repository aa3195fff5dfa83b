package runners

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"
)

// waitDelay is how long Run waits for the output pipes after the process was killed. Tools like svn+ssh leave
// children holding them open.
const waitDelay = time.Second

type ExecOptions struct {
	Dir     string
	Env     []string
	Timeout time.Duration
}

type execRunner struct {
	opts ExecOptions
}

func NewExecRunner(opts *ExecOptions) Runner {
	if opts == nil {
		opts = &ExecOptions{}
	}

	return &execRunner{
		opts: *opts,
	}
}

func (r *execRunner) Run(ctx context.Context, exe string, args ...string) (*Output, error) {
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Dir = r.opts.Dir
	cmd.WaitDelay = waitDelay
	if len(r.opts.Env) > 0 {
		cmd.Env = append(os.Environ(), r.opts.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(err, exec.ErrWaitDelay) && ctx.Err() == nil {
		// Exited cleanly; only a leftover child kept the pipes open.
		err = nil
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || ctx.Err() != nil {
			return nil, errors.Wrapf(err, "running %v", CommandLine(exe, args...))
		}
	}

	return NewOutput(stdout.String(), stderr.String(), cmd.ProcessState.ExitCode()), nil
}
