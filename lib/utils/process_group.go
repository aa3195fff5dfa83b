package utils

import (
	"context"
	"runtime"
	"sync"
)

type ParallelOptions struct {
	Routines     int
	InputFactor  int
	OutputFactor int

	// Context aborts the group with ctx.Err() when it is done.
	Context context.Context
}

func ParallelFor[T, O any](col []T, proc func(T) (O, error), opts ...ParallelOptions) *ProcessGroup[T, O] {
	group := NewProcessGroup(proc, opts...)

	go func() {
		defer group.FinishedInput()

		for _, w := range col {
			select {
			case <-group.abort:
				return
			case group.Input <- w:
			}
		}
	}()

	return group
}

// ProcessGroup runs proc over everything sent to Input using a fixed number of goroutines.
// Output is closed after all processors finished, and then Error can be checked.
type ProcessGroup[I, O any] struct {
	proc      func(I) (O, error)
	abort     chan struct{}
	abortOnce sync.Once
	errMutex  sync.Mutex
	err       error
	wg        sync.WaitGroup

	Input  chan I
	Output chan O
}

func NewProcessGroup[I, O any](proc func(I) (O, error), opts ...ParallelOptions) *ProcessGroup[I, O] {
	o := ParallelOptions{
		Routines:     Max(Min(runtime.GOMAXPROCS(-1), runtime.NumCPU()/2)-1, 1),
		InputFactor:  2,
		OutputFactor: 2,
	}
	for _, oi := range opts {
		if oi.Routines > 0 {
			o.Routines = oi.Routines
		}
		if oi.InputFactor > 0 {
			o.InputFactor = oi.InputFactor
		}
		if oi.OutputFactor > 0 {
			o.OutputFactor = oi.OutputFactor
		}
		if oi.Context != nil {
			o.Context = oi.Context
		}
	}

	group := ProcessGroup[I, O]{
		proc:  proc,
		abort: make(chan struct{}),

		Input:  make(chan I, o.InputFactor*o.Routines),
		Output: make(chan O, o.OutputFactor*o.Routines),
	}

	for i := 0; i < o.Routines; i++ {
		group.wg.Add(1)
		go group.runProcessor()
	}

	done := make(chan struct{})
	go func() {
		group.wg.Wait()
		close(done)
		close(group.Output)
	}()

	if o.Context != nil {
		go func() {
			select {
			case <-o.Context.Done():
				select {
				case <-done:
				default:
					group.Abort(o.Context.Err())
				}
			case <-done:
			}
		}()
	}

	return &group
}

func (g *ProcessGroup[I, O]) runProcessor() {
	defer g.wg.Done()

	for {
		select {
		case <-g.abort:
			return

		case input, ok := <-g.Input:
			if !ok {
				return
			}

			output, err := g.proc(input)
			if err != nil {
				g.Abort(err)
				return
			}

			select {
			case <-g.abort:
				return
			case g.Output <- output:
			}
		}
	}
}

func (g *ProcessGroup[I, O]) FinishedInput() {
	close(g.Input)
}

// Abort stops all processors. Only the first error is kept.
func (g *ProcessGroup[I, O]) Abort(err error) {
	g.abortOnce.Do(func() {
		g.errMutex.Lock()
		g.err = err
		g.errMutex.Unlock()

		close(g.abort)
	})
}

func (g *ProcessGroup[I, O]) Aborted() bool {
	select {
	case <-g.abort:
		return true
	default:
		return false
	}
}

// Wait blocks until all processors finished, discarding any output not consumed yet.
func (g *ProcessGroup[I, O]) Wait() error {
	for range g.Output {
	}

	return g.Error()
}

// Error should be called after Output was closed, or it may miss a later error.
func (g *ProcessGroup[I, O]) Error() error {
	g.errMutex.Lock()
	defer g.errMutex.Unlock()

	return g.err
}
