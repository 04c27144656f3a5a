package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/draw/internal/draw"
	"github.com/roach88/draw/internal/entrants"
	"github.com/roach88/draw/internal/shuffle"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Seed uint64
	Out  string

	// seeded is set when --seed was given explicitly.
	seeded bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <entrants-file>",
		Short: "Draw groups and fixtures from an entrant list",
		Long: `Load 36 entrants from a file, shuffle them into four groups of nine and
print the groups followed by every fixture.

Entrant files may be plain text (one name per line), YAML (a list, or a
mapping with an "entrants" list) or CUE (an "entrants" list).

Examples:
  draw generate teams.txt
  draw generate teams.yaml --seed 42
  draw generate teams.txt --format markup --out draw.html
  draw generate teams.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seeded = cmd.Flags().Changed("seed")
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "shuffle seed for a reproducible draw")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write the draw to a file instead of stdout")

	return cmd
}

// newLogger builds the command logger: text on w, debug level when verbose.
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func runGenerate(opts *GenerateOptions, path string, cmd *cobra.Command) error {
	logger := newLogger(opts.Verbose, cmd.ErrOrStderr())

	var out bytes.Buffer
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    &out,
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	// Errors always go to stdout, never to --out.
	errFormatter := *formatter
	errFormatter.Writer = cmd.OutOrStdout()

	names, err := entrants.Load(path)
	if err != nil {
		return outputLoadError(&errFormatter, err)
	}
	logger.Debug("entrants loaded", "path", path, "count", len(names))

	var src shuffle.Source = shuffle.NewRandom()
	if opts.seeded {
		src = shuffle.NewSeeded(opts.Seed)
	}
	eng := draw.New(draw.WithSource(src), draw.WithLogger(logger))
	eng.AddEntrants(names...)

	result, err := eng.Generate()
	if err != nil {
		return outputDrawError(&errFormatter, err)
	}

	if err := renderDraw(formatter, eng, result); err != nil {
		return WrapExitError(ExitCommandError, "failed to render draw", err)
	}

	if opts.Out == "" {
		_, err := cmd.OutOrStdout().Write(out.Bytes())
		return err
	}
	if err := os.WriteFile(opts.Out, out.Bytes(), 0o644); err != nil {
		return WrapExitError(ExitCommandError, "failed to write draw", err)
	}
	logger.Info("draw written", "id", result.ID(), "path", opts.Out)
	return nil
}

// renderDraw writes result through formatter in the requested format.
func renderDraw(formatter *OutputFormatter, eng *draw.Engine, result *draw.Result) error {
	switch formatter.Format {
	case "markup":
		markup, err := eng.FormatMarkup()
		if err != nil {
			return err
		}
		_, err = io.WriteString(formatter.Writer, markup)
		return err
	case "json", "yaml":
		snap, err := result.Snapshot()
		if err != nil {
			return err
		}
		return formatter.Success(snap)
	default:
		text, err := eng.FormatText()
		if err != nil {
			return err
		}
		_, err = io.WriteString(formatter.Writer, text)
		return err
	}
}

// outputLoadError reports an entrant file that could not be read.
func outputLoadError(formatter *OutputFormatter, err error) error {
	var loadErr *entrants.LoadError
	if errors.As(err, &loadErr) {
		_ = formatter.Error(loadErr.Code, strings.TrimPrefix(loadErr.Error(), loadErr.Code+": "), nil)
		return WrapExitError(ExitCommandError, "failed to load entrants", err)
	}
	_ = formatter.Error(entrants.ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, "failed to load entrants", err)
}

// outputDrawError reports an entrant list the engine refused to draw.
func outputDrawError(formatter *OutputFormatter, err error) error {
	var drawErr *draw.Error
	if errors.As(err, &drawErr) {
		_ = formatter.Error(string(drawErr.Code), drawErr.Message, drawErr.Details)
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", drawErr.Code, drawErr.Message))
	}
	_ = formatter.Error(entrants.ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitFailure, "draw failed", err)
}
