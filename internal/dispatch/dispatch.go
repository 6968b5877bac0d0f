package dispatch

import (
	"context"
	"fmt"

	"github.com/vk/incanto/internal/ctxlog"
	"github.com/vk/incanto/internal/session"
)

// Executor receives one completed derivation: the top-level command
// identity, the exact consumed text, and the synthesized result value.
type Executor interface {
	Execute(ctx context.Context, res session.Result) error
}

// Func adapts an ordinary function to the Executor interface.
type Func func(ctx context.Context, res session.Result) error

// Execute implements Executor.
func (f Func) Execute(ctx context.Context, res session.Result) error {
	return f(ctx, res)
}

// Run hands each completed derivation to the executor in fork order,
// stopping at the first execution error.
func Run(ctx context.Context, exec Executor, completed []session.Result) error {
	logger := ctxlog.FromContext(ctx)
	for _, res := range completed {
		logger.Debug("Dispatching completed derivation.", "command", res.Command, "text", res.Text)
		if err := exec.Execute(ctx, res); err != nil {
			return fmt.Errorf("executing command %q: %w", res.Command, err)
		}
	}
	return nil
}
