package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mcncl/jsoncore/internal/analyzer"
	"github.com/mcncl/jsoncore/internal/config"
	"github.com/mcncl/jsoncore/internal/document"
	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/mcncl/jsoncore/internal/formatter"
	"github.com/mcncl/jsoncore/internal/parser"
	"github.com/mcncl/jsoncore/internal/transform"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Strategy    string `help:"Object member strategy: sorted or insertion_order." short:"s"`
	Pretty      bool   `help:"Indent the output, one element or member per line." short:"p"`
	Indent      string `help:"Indentation used with --pretty."`
	KeyCase     string `help:"Rewrite member keys: snake, screaming_snake, camel, lower_camel or kebab." short:"k"`
	Bulk        bool   `help:"Store the members of each object with a single bulk insert."`
	Shrink      bool   `help:"Release spare container capacity after building the document."`
	Stats       bool   `help:"Print document statistics as JSON instead of the document."`
	Compare     string `help:"Compare the input with another JSON file and report whether they are equal." short:"c" type:"path"`
	Config      string `help:"Path to config file. Defaults to the nearest .jsoncore.yml." type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsoncore"),
		kong.Description("Parse, normalise, compare and re-emit JSON documents"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsoncore version %s\n", Version)
		return
	}

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, config.CLIOverrides{
		Strategy:    CLI.Strategy,
		KeyCase:     CLI.KeyCase,
		Indent:      CLI.Indent,
		Pretty:      CLI.Pretty,
		BulkInsert:  CLI.Bulk,
		ShrinkToFit: CLI.Shrink,
		Debug:       CLI.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	setupLogging(cfg.Dev.Debug)
	if configPath != "" {
		slog.Debug("loaded config", "path", configPath)
	}

	if err := run(&Context{Debug: cfg.Dev.Debug, Config: cfg}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsoncore --help\n")
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	ll := &slog.LevelVar{}
	ll.Set(slog.LevelInfo)
	if debug {
		ll.Set(slog.LevelDebug)
	}
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	strategy, err := cfg.ObjectStrategy()
	if err != nil {
		return err
	}
	p := parser.New(parser.Options{
		Strategy:    strategy,
		BulkInsert:  cfg.Parser.BulkInsert,
		ShrinkToFit: cfg.Parser.ShrinkToFit,
	})
	rewriter := transform.NewRewriterWithConfig(cfg)

	// 1. Parse JSON input
	root, err := parseInput(p)
	if err != nil {
		return err
	}

	// 2. Rewrite keys
	prepare(root, rewriter, cfg)

	// 3. Compare against a second document
	if CLI.Compare != "" {
		other, err := p.ParseFile(CLI.Compare)
		if err != nil {
			return err
		}
		prepare(other, rewriter, cfg)

		result := "different"
		if root.Equal(other) {
			result = "equal"
		}
		slog.Debug("compared documents", "other", CLI.Compare, "result", result)
		return writeOutput(result + "\n")
	}

	// 4. Collect statistics
	stats := analyzer.NewAnalyzer().Analyze(root)
	if ctx.Debug {
		slog.Debug("document statistics", "stats", spew.Sdump(stats))
	}
	if CLI.Stats {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return errors.NewOutputError("failed to encode statistics", err)
		}
		return writeOutput(string(data) + "\n")
	}

	// 5. Format the document
	f := formatter.NewFormatter(formatter.Options{
		Pretty:          cfg.Output.Pretty,
		Indent:          cfg.Output.Indent,
		TrailingNewline: cfg.Output.TrailingNewline,
	})
	out, err := f.Format(root)
	if err != nil {
		return err
	}

	// 6. Output the result
	return writeOutput(out)
}

// prepare applies key rewriting and, when configured, trims the containers
// the rewrite rebuilt
func prepare(root document.Value, rewriter *transform.Rewriter, cfg *config.Config) {
	res := rewriter.Rewrite(root)
	if res.Renamed > 0 || res.Dropped > 0 {
		slog.Debug("rewrote keys", "renamed", res.Renamed, "dropped", res.Dropped)
		if cfg.Parser.ShrinkToFit {
			root.ShrinkToFit()
		}
	}
}

// parseInput reads JSON from file or stdin
func parseInput(p *parser.Parser) (document.Value, error) {
	if CLI.Input != "" {
		return p.ParseFile(CLI.Input)
	}

	// Interactive mode or piped input
	if isatty.IsTerminal(os.Stdin.Fd()) {
		if CLI.Interactive {
			return readInteractiveInput(p)
		}
		return document.Value{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return document.Value{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return document.Value{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return p.ParseString(string(jsonData))
}

// writeOutput writes text to file or stdout
func writeOutput(text string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(text), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		slog.Info("output written", "path", CLI.Output)
		return nil
	}

	_, err := io.WriteString(os.Stdout, text)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput(p *parser.Parser) (document.Value, error) {
	fmt.Fprintln(os.Stderr, "jsoncore Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return document.Value{}, errors.NewInputError("error reading input", err)
	}
	if len(data) == 0 {
		return document.Value{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return p.ParseString(string(data))
}
