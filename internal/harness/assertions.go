package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/draw/internal/draw"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

// EvaluateAssertions checks each assertion and returns the failure
// messages, in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

func evaluate(result *Result, a Assertion) error {
	if a.Type == AssertValidationError {
		return assertValidationError(result, a)
	}
	if a.Type == AssertEntrantCount {
		if len(result.Entrants) != a.Count {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprint(a.Count), Actual: fmt.Sprint(len(result.Entrants))}
		}
		return nil
	}

	// Everything else inspects the draw.
	if result.DrawErr != nil {
		return &AssertionError{Type: a.Type, Expected: "a draw", Actual: result.DrawErr.Error()}
	}

	switch a.Type {
	case AssertValidDraw:
		if err := result.Draw.Verify(); err != nil {
			return err
		}
		return result.Draw.VerifyEntrants(result.Entrants)
	case AssertMatchCount:
		if n := len(result.Draw.Matches()); n != a.Count {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprint(a.Count), Actual: fmt.Sprint(n)}
		}
	case AssertGroup:
		return assertGroup(result.Draw, a)
	case AssertContainsMatch:
		return assertContainsMatch(result.Draw, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func assertValidationError(result *Result, a Assertion) error {
	if result.DrawErr == nil {
		return &AssertionError{Type: a.Type, Expected: "a validation error", Actual: "a draw"}
	}
	if !draw.IsValidationError(result.DrawErr) {
		return &AssertionError{Type: a.Type, Expected: "a validation error", Actual: result.DrawErr.Error()}
	}
	if a.Message != "" && !strings.Contains(result.DrawErr.Error(), a.Message) {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("message containing %q", a.Message), Actual: result.DrawErr.Error()}
	}
	return nil
}

func assertGroup(r *draw.Result, a Assertion) error {
	g, ok := r.Group(a.Group)
	if !ok {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("group %q", a.Group), Actual: "no such group"}
	}

	got := make([]string, 0, len(g.Entrants))
	for _, e := range g.Entrants {
		got = append(got, string(e))
	}
	if !slices.Equal(got, a.Entrants) {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprint(a.Entrants), Actual: fmt.Sprint(got)}
	}
	return nil
}

func assertContainsMatch(r *draw.Result, a Assertion) error {
	x, y := draw.Entrant(a.Match[0]), draw.Entrant(a.Match[1])
	for _, m := range r.Matches() {
		if (m.Side1 == x && m.Side2 == y) || (m.Side1 == y && m.Side2 == x) {
			return nil
		}
	}
	return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("match %s - %s", x, y), Actual: "not drawn"}
}
