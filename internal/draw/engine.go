package draw

import (
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/draw/internal/shuffle"
)

// State is the engine's position in the draw lifecycle.
type State int

const (
	// Collecting: not exactly 36 distinct entrants, no draw possible.
	Collecting State = iota
	// Ready: exactly 36 distinct entrants, no draw made yet.
	Ready
	// Drawn: a Result exists for the current entrant list.
	Drawn
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Ready:
		return "ready"
	case Drawn:
		return "drawn"
	default:
		return "unknown"
	}
}

// Engine owns an entrant list and the latest draw made from it.
//
// Any change to the entrant list discards the latest draw; draws are never
// adjusted incrementally. All methods are safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	entrants []Entrant
	last     *Result

	src    shuffle.Source
	ids    IDGenerator
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the randomness used to shuffle entrants. Defaults to a
// clock-seeded source.
func WithSource(src shuffle.Source) Option {
	return func(e *Engine) {
		e.src = src
	}
}

// WithIDGenerator sets how draw IDs are assigned. Defaults to UUIDv7.
func WithIDGenerator(ids IDGenerator) Option {
	return func(e *Engine) {
		e.ids = ids
	}
}

// WithLogger sets the engine's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an engine with an empty entrant list.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.src == nil {
		e.src = shuffle.NewRandom()
	}
	if e.ids == nil {
		e.ids = UUIDv7Generator{}
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// NormalizeName trims surrounding whitespace and NFC-normalizes name so
// that visually identical names compare equal.
func NormalizeName(name string) Entrant {
	return Entrant(norm.NFC.String(strings.TrimSpace(name)))
}

// AddEntrant appends name to the list. Empty or whitespace-only names are
// ignored; the return value reports whether anything was added.
func (e *Engine) AddEntrant(name string) bool {
	entrant := NormalizeName(name)
	if entrant == "" {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.entrants = append(e.entrants, entrant)
	e.last = nil
	return true
}

// AddEntrants adds each name in order and returns how many were kept.
func (e *Engine) AddEntrants(names ...string) int {
	added := 0
	for _, name := range names {
		if e.AddEntrant(name) {
			added++
		}
	}
	return added
}

// RemoveEntrant removes the entrant at index. An out-of-range index is a
// no-op and returns false.
func (e *Engine) RemoveEntrant(index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.entrants) {
		return false
	}
	e.entrants = slices.Delete(e.entrants, index, index+1)
	e.last = nil
	return true
}

// ClearEntrants empties the list.
func (e *Engine) ClearEntrants() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entrants = nil
	e.last = nil
}

// Count returns the current number of entrants.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entrants)
}

// IsReady reports whether the list holds exactly 36 distinct entrants, so
// that Generate will succeed.
func (e *Engine) IsReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.validate() == nil
}

// Validate returns the validation error Generate would fail with for the
// current list, or nil if the list can be drawn. No randomness is consumed.
func (e *Engine) Validate() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.validate(); err != nil {
		return err
	}
	return nil
}

// validate checks the count, then distinctness. Callers hold e.mu.
func (e *Engine) validate() *Error {
	if len(e.entrants) != EntrantCount {
		return NewCountError(len(e.entrants))
	}
	seen := make(map[Entrant]struct{}, EntrantCount)
	for _, entrant := range e.entrants {
		if _, dup := seen[entrant]; dup {
			return NewDuplicateError(entrant)
		}
		seen[entrant] = struct{}{}
	}
	return nil
}

// Entrants returns a snapshot of the entrant list.
func (e *Engine) Entrants() []Entrant {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.entrants)
}

// State returns the engine's lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.last != nil:
		return Drawn
	case e.validate() == nil:
		return Ready
	default:
		return Collecting
	}
}

// Generate draws the current entrant list into groups and builds the
// fixture list. The result replaces any previous draw.
//
// A list of the wrong size, or one naming an entrant twice, fails with a
// validation error before any randomness is consumed; the entrant list
// and previous draw are left untouched.
func (e *Engine) Generate() (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validate(); err != nil {
		e.logger.Debug("draw rejected", "entrants", len(e.entrants), "reason", err.Message)
		return nil, err
	}

	groups := partition(shuffle.Shuffle(e.src, e.entrants))
	result := &Result{
		id:      e.ids.Generate(),
		groups:  groups,
		matches: buildMatches(groups),
	}
	e.last = result

	e.logger.Debug("draw generated", "id", result.id, "matches", len(result.matches))
	return result, nil
}

// Last returns the latest draw, if one exists for the current entrants.
func (e *Engine) Last() (*Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last, e.last != nil
}

// FormatText renders the latest draw as plain text.
// Fails with a not-ready error if no draw exists.
func (e *Engine) FormatText() (string, error) {
	last, ok := e.Last()
	if !ok {
		return "", NewNotReadyError()
	}
	return last.Text(), nil
}

// FormatMarkup renders the latest draw as HTML.
// Fails with a not-ready error if no draw exists.
func (e *Engine) FormatMarkup() (string, error) {
	last, ok := e.Last()
	if !ok {
		return "", NewNotReadyError()
	}
	return last.Markup()
}
