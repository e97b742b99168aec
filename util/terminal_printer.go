package util

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// TerminalPrinter keeps one live line per ParallelOutput and redraws all of
// them every interval. Outputs must be registered before Start.
type TerminalPrinter struct {
	interval time.Duration
	writer   *uilive.Writer
	outputs  []*ParallelOutput
	lines    []io.Writer

	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

func NewTerminalPrinter(out io.Writer, interval time.Duration) *TerminalPrinter {
	writer := uilive.New()
	writer.Out = out
	return &TerminalPrinter{
		interval: interval,
		writer:   writer,
		outputs:  make([]*ParallelOutput, 0),
		lines:    make([]io.Writer, 0),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// NewOutput registers a new line
func (t *TerminalPrinter) NewOutput() *ParallelOutput {
	out := NewParallelOutput()
	t.outputs = append(t.outputs, out)
	t.lines = append(t.lines, t.writer.Newline())
	return out
}

// Start redraws until Stop is called or ctx is done
func (t *TerminalPrinter) Start(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	go func() {
		defer close(t.stopped)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.redraw()
			case <-t.done:
				t.redraw()
				return
			case <-ctx.Done():
				t.redraw()
				return
			}
		}
	}()
}

// Stop draws the final state of every line and returns once the printer has exited
func (t *TerminalPrinter) Stop() {
	t.stopOnce.Do(func() { close(t.done) })
	<-t.stopped
}

func (t *TerminalPrinter) redraw() {
	for i, out := range t.outputs {
		fmt.Fprintln(t.lines[i], out.Get())
	}
	t.writer.Flush()
}

// ParallelOutput is a single line of text shared between a worker and the printer
type ParallelOutput struct {
	mu   sync.Mutex
	text string
}

func NewParallelOutput() *ParallelOutput {
	return &ParallelOutput{}
}

func (p *ParallelOutput) Set(s string) {
	p.mu.Lock()
	p.text = s
	p.mu.Unlock()
}

// TrySet updates the line unless the printer is reading it
func (p *ParallelOutput) TrySet(s string) bool {
	if !p.mu.TryLock() {
		return false
	}
	p.text = s
	p.mu.Unlock()
	return true
}

func (p *ParallelOutput) Get() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text
}
