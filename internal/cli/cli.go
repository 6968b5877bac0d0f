package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/incanto/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly (such as after
// printing help), or an error.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	fs := flag.NewFlagSet("incanto", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: incanto [flags] <grammar-path>\n\n")
		fmt.Fprintf(output, "Parses natural-language command input against HCL phrase grammars.\n\n")
		fs.PrintDefaults()
	}

	var cfg app.Config
	fs.StringVar(&cfg.Input, "input", "", "input text to parse (one-shot mode)")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "read input increments line by line from stdin")
	fs.StringVar(&cfg.LookupKey, "lookup-key", "", "lookup name for the webquery provider")
	fs.StringVar(&cfg.LookupURL, "lookup-url", "", "JSON document URL for the webquery provider")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", "text", "log format: text or json")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, err
	}

	rest := fs.Args()
	if len(rest) != 1 {
		fs.Usage()
		return nil, false, &ExitError{
			Code:    2,
			Message: fmt.Sprintf("expected exactly one grammar path argument, got %d: %s", len(rest), strings.Join(rest, " ")),
		}
	}
	cfg.GrammarPath = rest[0]

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return validated, false, nil
}
