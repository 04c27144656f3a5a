// Package harness runs draw conformance scenarios.
//
// A scenario pins every source of nondeterminism (shuffle seed or list
// order, draw ID) so the same scenario always produces byte-identical
// output, which is compared against a golden file.
package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/draw/internal/draw"
	"github.com/roach88/draw/internal/entrants"
	"github.com/roach88/draw/internal/shuffle"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Draw is the generated draw, nil if generation failed.
	Draw *draw.Result

	// DrawErr is the error returned by the engine, if any.
	DrawErr error

	// Entrants is the entrant list the engine held when drawing.
	Entrants []draw.Entrant

	// Errors holds failed assertion messages.
	Errors []string

	// Pass is true when every assertion held.
	Pass bool
}

// AddError records a failed assertion.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Run executes a scenario and evaluates its assertions.
//
// Returns an error only when the scenario cannot be set up (unreadable
// entrant file). Draw failures are part of the result so scenarios can
// assert on them.
func Run(scenario *Scenario) (*Result, error) {
	names := scenario.Entrants
	if scenario.EntrantsFile != "" {
		loaded, err := entrants.Load(scenario.EntrantsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load entrants: %w", err)
		}
		names = loaded
	}

	var src shuffle.Source = shuffle.NewSeeded(scenario.Seed)
	if scenario.PreserveOrder {
		src = shuffle.Identity
	}
	drawID := scenario.DrawID
	if drawID == "" {
		drawID = DefaultDrawID
	}

	eng := draw.New(
		draw.WithSource(src),
		draw.WithIDGenerator(draw.NewFixedIDGenerator(drawID)),
		draw.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	eng.AddEntrants(names...)
	for _, idx := range scenario.Remove {
		eng.RemoveEntrant(idx)
	}

	result := &Result{Pass: true, Entrants: eng.Entrants()}
	result.Draw, result.DrawErr = eng.Generate()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// Snapshot renders the outcome for golden comparison: the plain-text
// draw, or the error line when generation failed.
func Snapshot(result *Result) []byte {
	if result.DrawErr != nil {
		return []byte(fmt.Sprintf("error: %v\n", result.DrawErr))
	}
	return []byte(result.Draw.Text())
}
