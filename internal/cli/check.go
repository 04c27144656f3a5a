package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/draw/internal/draw"
	"github.com/roach88/draw/internal/entrants"
)

// CheckResult reports whether an entrant list can be drawn.
type CheckResult struct {
	Path      string `json:"path" yaml:"path"`
	Count     int    `json:"count" yaml:"count"`
	Required  int    `json:"required" yaml:"required"`
	Ready     bool   `json:"ready" yaml:"ready"`
	Missing   int    `json:"missing,omitempty" yaml:"missing,omitempty"`
	Excess    int    `json:"excess,omitempty" yaml:"excess,omitempty"`
	Problem   string `json:"problem,omitempty" yaml:"problem,omitempty"`
	Duplicate string `json:"duplicate,omitempty" yaml:"duplicate,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <entrants-file>",
		Short: "Check an entrant list without drawing",
		Long: `Check that an entrant file names exactly 36 distinct entrants.

Reports how many entrants are missing or over the limit, and any name
listed twice. Nothing is shuffled.

Exit codes:
  0 - The list can be drawn
  1 - The list cannot be drawn
  2 - Command error (missing or unreadable file)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	names, err := entrants.Load(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d name(s) from %s", len(names), path)

	eng := draw.New(draw.WithLogger(newLogger(opts.Verbose, formatter.GetErrWriter())))
	eng.AddEntrants(names...)

	result := CheckResult{
		Path:     path,
		Count:    eng.Count(),
		Required: draw.EntrantCount,
		Ready:    eng.IsReady(),
	}
	switch {
	case result.Count < draw.EntrantCount:
		result.Missing = draw.EntrantCount - result.Count
	case result.Count > draw.EntrantCount:
		result.Excess = result.Count - draw.EntrantCount
	}

	if !result.Ready {
		var drawErr *draw.Error
		if err := eng.Validate(); !errors.As(err, &drawErr) {
			return WrapExitError(ExitCommandError, "check failed", err)
		}
		result.Problem = drawErr.Message
		result.Duplicate = drawErr.Details["entrant"]
	}

	return outputCheck(formatter, result)
}

// outputCheck prints the check result; an unready list exits with ExitFailure.
func outputCheck(formatter *OutputFormatter, result CheckResult) error {
	if formatter.Structured() {
		resp := CLIResponse{Status: "ok", Data: result}
		if !result.Ready {
			resp.Status = "error"
			resp.Error = &CLIError{Code: string(draw.ErrCodeValidation), Message: result.Problem}
		}
		if err := formatter.Encode(resp); err != nil {
			return err
		}
	} else {
		w := formatter.Writer
		if result.Ready {
			fmt.Fprintf(w, "✓ %d entrants, ready to draw\n", result.Count)
		} else {
			fmt.Fprintf(w, "✗ %d of %d entrants\n", result.Count, result.Required)
			if result.Missing > 0 {
				fmt.Fprintf(w, "  %d missing\n", result.Missing)
			}
			if result.Excess > 0 {
				fmt.Fprintf(w, "  %d too many\n", result.Excess)
			}
			fmt.Fprintf(w, "  %s\n", result.Problem)
		}
	}

	if !result.Ready {
		return NewExitError(ExitFailure, result.Problem)
	}
	return nil
}
