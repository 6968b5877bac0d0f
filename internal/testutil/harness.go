// Package testutil provides shared helpers for integration tests: a
// harness that loads HCL grammar manifests from temporary files and runs a
// parse session over them, plus a thread-safe log capture buffer.
package testutil

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/incanto/internal/app"
	"github.com/vk/incanto/internal/ctxlog"
	"github.com/vk/incanto/internal/dynctx"
	"github.com/vk/incanto/internal/session"
)

// FixedTime is the session timestamp used by harness runs, pinned so that
// time-derived derivations are reproducible.
var FixedTime = time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)

// ParseResult holds the outcomes of a harness run.
type ParseResult struct {
	LogOutput string
	Err       error
	Step      *session.Step
	Session   *session.Session
	App       *app.App
}

// RunParse writes the given manifest files into a temporary grammar
// directory, builds the application around them, and advances one session
// over input. Startup panics (malformed manifests, conflicting
// registrations) are recovered into Err so tests can assert on them.
func RunParse(t *testing.T, files map[string]string, input string) *ParseResult {
	t.Helper()
	return RunParseContext(context.Background(), t, files, input, nil)
}

// RunParseContext is RunParse with a caller-supplied context and evaluation
// context. A nil ectx gets a deterministic default with FixedTime.
func RunParseContext(ctx context.Context, t *testing.T, files map[string]string, input string, ectx *dynctx.Context) *ParseResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig := &app.Config{
		GrammarPath: tmpDir,
		Input:       input,
		LogLevel:    "debug",
		LogFormat:   "text",
	}

	logBuffer := &SafeBuffer{}
	res := &ParseResult{}

	var testApp *app.App
	func() {
		defer func() {
			if r := recover(); r != nil {
				res.Err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig)
	}()
	res.LogOutput = logBuffer.String()
	if res.Err != nil {
		return res
	}
	res.App = testApp

	if ectx == nil {
		ectx = dynctx.NewBuilder().SetNow(FixedTime).Build()
	}

	sessionLogger := slog.New(slog.NewTextHandler(logBuffer, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	ctx = ctxlog.WithLogger(ctx, sessionLogger)
	sess, err := session.New(ctx, testApp.Root(), testApp.Registry(), ectx)
	if err != nil {
		res.Err = err
		res.LogOutput = logBuffer.String()
		return res
	}
	res.Session = sess

	step, err := sess.Advance(ctx, input)
	if err != nil {
		res.Err = err
	} else {
		res.Step = step
	}
	res.LogOutput = logBuffer.String()
	return res
}
