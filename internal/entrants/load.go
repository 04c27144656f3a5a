// Package entrants reads entrant lists from disk.
//
// Supported formats, chosen by file extension:
//   - .txt or no extension: one entrant per line, blank lines skipped
//   - .yaml / .yml: a sequence of names, or a mapping with an "entrants" sequence
//   - .cue: a CUE file with an "entrants" list of strings
//
// Loading does not enforce the draw size; the engine does that, so partial
// lists can still be inspected.
package entrants

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Error codes for load failures.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E002" // File not found
	ErrCodeReadFailed  = "E003" // I/O error
	ErrCodeParseFailed = "E004" // Malformed YAML or CUE
	ErrCodeNoEntrants  = "E005" // File names no entrants field
	ErrCodeBadFormat   = "E006" // Unsupported extension
)

// LoadError describes why an entrant file could not be read.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Code, e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Format identifies an entrant file format.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// DetectFormat picks a format from path's extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".txt", ".list":
		return FormatText, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("unsupported entrant file extension %q", filepath.Ext(path))
	}
}

// Load reads the entrant names in path. Names are returned raw; trimming
// and blank filtering happen when they are added to an engine.
func Load(path string) ([]string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBadFormat, Path: path, Message: err.Error()}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "entrant file not found"}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Path: path, Message: "reading entrant file", Err: err}
	}

	names, err := Parse(data, format)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Code: ErrCodeGeneric, Path: path, Message: "parsing entrant file", Err: err}
	}
	return names, nil
}

// Parse decodes entrant names from data in the given format.
func Parse(data []byte, format Format) ([]string, error) {
	switch format {
	case FormatText:
		return parseText(data)
	case FormatYAML:
		return parseYAML(data)
	case FormatCUE:
		return parseCUE(data)
	default:
		return nil, &LoadError{Code: ErrCodeBadFormat, Message: fmt.Sprintf("unknown format %q", format)}
	}
}

func parseText(data []byte) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: "scanning lines", Err: err}
	}
	return names, nil
}

// yamlFile is the mapping form of a YAML entrant file.
type yamlFile struct {
	Entrants []string `yaml:"entrants"`
}

func parseYAML(data []byte) ([]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: "invalid YAML", Err: err}
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := doc.Decode(&names); err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: "entrants must be strings", Err: err}
		}
		return names, nil
	case yaml.MappingNode:
		var f yamlFile
		if err := doc.Decode(&f); err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: "entrants must be strings", Err: err}
		}
		if f.Entrants == nil {
			return nil, &LoadError{Code: ErrCodeNoEntrants, Message: `mapping has no "entrants" list`}
		}
		return f.Entrants, nil
	default:
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: "expected a list of entrants or an entrants mapping"}
	}
}

func parseCUE(data []byte) ([]string, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: "invalid CUE", Err: err}
	}

	list := value.LookupPath(cue.ParsePath("entrants"))
	if !list.Exists() {
		return nil, &LoadError{Code: ErrCodeNoEntrants, Message: `no "entrants" field`}
	}

	var names []string
	if err := list.Decode(&names); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: "entrants must be a list of concrete strings", Err: err}
	}
	return names, nil
}
