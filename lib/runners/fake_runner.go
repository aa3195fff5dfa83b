package runners

import (
	"context"
	"fmt"
	"sync"
)

// FakeRunner answers commands from a table, keyed by the full command line. Unknown commands fail with exit code 1.
type FakeRunner struct {
	mutex     sync.Mutex
	responses map[string]*Output
	calls     []string
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		responses: map[string]*Output{},
	}
}

func (f *FakeRunner) Add(stdout string, exe string, args ...string) *FakeRunner {
	return f.AddOutput(NewOutput(stdout, "", 0), exe, args...)
}

func (f *FakeRunner) AddFailure(stderr string, exitCode int, exe string, args ...string) *FakeRunner {
	return f.AddOutput(NewOutput("", stderr, exitCode), exe, args...)
}

func (f *FakeRunner) AddOutput(out *Output, exe string, args ...string) *FakeRunner {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.responses[CommandLine(exe, args...)] = out
	return f
}

func (f *FakeRunner) Run(ctx context.Context, exe string, args ...string) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	cmd := CommandLine(exe, args...)
	f.calls = append(f.calls, cmd)

	out, ok := f.responses[cmd]
	if !ok {
		return NewOutput("", fmt.Sprintf("unexpected command: %v", cmd), 1), nil
	}

	return out, nil
}

func (f *FakeRunner) Calls() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return append([]string(nil), f.calls...)
}
