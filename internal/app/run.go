package app

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/vk/incanto/internal/ctxlog"
	"github.com/vk/incanto/internal/dispatch"
	"github.com/vk/incanto/internal/provider"
	"github.com/vk/incanto/internal/session"
	"github.com/vk/incanto/internal/suggest"
)

// Run executes the main application logic based on the loaded configuration:
// it assembles the evaluation context, starts one parse session, feeds it
// input, and hands completed derivations to the print executor.
func (a *App) Run(ctx context.Context, inR io.Reader) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	ectx, errs := provider.BuildContext(ctx, a.providers)
	for i, err := range errs {
		if err != nil {
			a.logger.Warn("Provider contribution skipped.", "provider", a.providers[i].Name(), "error", err)
		}
	}

	sess, err := session.New(ctx, a.root, a.registry, ectx)
	if err != nil {
		return fmt.Errorf("failed to start parse session: %w", err)
	}
	defer sess.End()

	if a.config.Interactive {
		return a.runInteractive(ctx, sess, inR)
	}

	step, err := sess.Advance(ctx, a.config.Input)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	a.printStep(sess.Input(), step)
	return dispatch.Run(ctx, a.printExecutor(), step.Completed)
}

// runInteractive reads input increments line by line, growing one session
// incrementally. A blank line dispatches the current completed derivations
// and ends the run.
func (a *App) runInteractive(ctx context.Context, sess *session.Session, inR io.Reader) error {
	scanner := bufio.NewScanner(inR)
	var last *session.Step
	for scanner.Scan() {
		chunk := scanner.Text()
		if chunk == "" {
			break
		}
		step, err := sess.Advance(ctx, chunk)
		if err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}
		a.printStep(sess.Input(), step)
		last = step
		if !step.Alive {
			a.logger.Info("No interpretation can accept further input.")
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if last == nil {
		return nil
	}
	return dispatch.Run(ctx, a.printExecutor(), last.Completed)
}

// printStep renders one step's completed derivations and candidates.
func (a *App) printStep(input string, step *session.Step) {
	fmt.Fprintf(a.outW, "input: %q\n", input)
	for _, res := range step.Completed {
		fmt.Fprintf(a.outW, "  complete: %s %s\n", res.Command, res.Value)
	}
	for _, c := range step.Candidates {
		a.printCandidate(c)
	}
	if !step.Alive {
		fmt.Fprintln(a.outW, "  (no interpretations remain)")
	}
}

func (a *App) printCandidate(c suggest.Candidate) {
	switch {
	case c.FreeText:
		fmt.Fprintf(a.outW, "  expects: <%s>\n", orFree(c.Category))
	case c.Suffix != c.Text:
		fmt.Fprintf(a.outW, "  continue: %q -> %q\n", c.Suffix, c.Text)
	default:
		fmt.Fprintf(a.outW, "  next: %q\n", c.Text)
	}
}

func orFree(category string) string {
	if category == "" {
		return "text"
	}
	return category
}

// printExecutor is the demo executor: it renders completed commands instead
// of performing side effects. Real embedders supply their own.
func (a *App) printExecutor() dispatch.Executor {
	return dispatch.Func(func(_ context.Context, res session.Result) error {
		fmt.Fprintf(a.outW, "execute: %s %s\n", res.Command, res.Value)
		return nil
	})
}
