package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a draw conformance scenario: an entrant list, how it is
// shuffled, and what the resulting draw must look like.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Entrants lists names inline. Mutually exclusive with EntrantsFile.
	Entrants []string `yaml:"entrants,omitempty"`

	// EntrantsFile points at an entrant list (.txt, .yaml or .cue).
	// Relative paths resolve against the scenario file's directory.
	EntrantsFile string `yaml:"entrants_file,omitempty"`

	// Remove lists indices removed, in order, after the entrants are added.
	Remove []int `yaml:"remove,omitempty"`

	// Seed makes the shuffle reproducible. Defaults to 0.
	Seed uint64 `yaml:"seed,omitempty"`

	// PreserveOrder skips shuffling so groups follow list order.
	PreserveOrder bool `yaml:"preserve_order,omitempty"`

	// DrawID is the fixed ID given to the draw. Defaults to "scenario-draw".
	DrawID string `yaml:"draw_id,omitempty"`

	// Assertions validate the outcome.
	Assertions []Assertion `yaml:"assertions"`
}

// DefaultDrawID is assigned when a scenario does not set draw_id.
const DefaultDrawID = "scenario-draw"

// Assertion validates the draw outcome.
type Assertion struct {
	// Type selects the check:
	// - "valid_draw": every structural invariant holds and the draw covers the entrant list
	// - "match_count": the draw has exactly Count matches
	// - "entrant_count": the engine holds exactly Count entrants
	// - "group": group Group holds exactly Entrants, in order
	// - "contains_match": Match (two names, either order) is a fixture
	// - "validation_error": the draw failed validation; Message is an optional substring
	Type string `yaml:"type"`

	Count    int      `yaml:"count,omitempty"`
	Group    string   `yaml:"group,omitempty"`
	Entrants []string `yaml:"entrants,omitempty"`
	Match    []string `yaml:"match,omitempty"`
	Message  string   `yaml:"message,omitempty"`
}

// Assertion type constants.
const (
	AssertValidDraw       = "valid_draw"
	AssertMatchCount      = "match_count"
	AssertEntrantCount    = "entrant_count"
	AssertGroup           = "group"
	AssertContainsMatch   = "contains_match"
	AssertValidationError = "validation_error"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so typos ("assertion:") fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.EntrantsFile != "" && !filepath.IsAbs(scenario.EntrantsFile) {
		scenario.EntrantsFile = filepath.Join(filepath.Dir(path), scenario.EntrantsFile)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Entrants) > 0 && s.EntrantsFile != "" {
		return fmt.Errorf("entrants and entrants_file are mutually exclusive")
	}
	if s.EntrantsFile != "" {
		if _, err := os.Stat(s.EntrantsFile); os.IsNotExist(err) {
			return fmt.Errorf("entrants file not found: %s", s.EntrantsFile)
		}
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertValidDraw, AssertValidationError:
	case AssertMatchCount, AssertEntrantCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertGroup:
		if a.Group == "" {
			return fmt.Errorf("assertions[%d]: group is required for group", index)
		}
		if len(a.Entrants) == 0 {
			return fmt.Errorf("assertions[%d]: entrants list is required for group", index)
		}
	case AssertContainsMatch:
		if len(a.Match) != 2 {
			return fmt.Errorf("assertions[%d]: match must name exactly two entrants", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
