// Package loader turns raw UTF-8 text into the parsed document the tree
// index is built from. JSON is the canonical format; YAML, TOML, NDJSON,
// and JWT tokens are auto-detected conveniences. Every parse failure is
// recovered here and reported as an error value, never a panic, so callers
// can keep their previous document on a bad load.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load parses input, auto-detecting its format:
//   - JWT tokens (3-part base64url)
//   - a single JSON value (authoritative when input starts with '{' or '[')
//   - newline-delimited JSON, one value per line
//   - multi-document YAML (--- separated) and single-document YAML
//   - TOML
//
// The result is normalized to map[string]any / []any / plain scalars.
func Load(input string) (any, error) {
	return LoadWithLogger(input, logr.Discard())
}

// LoadWithLogger is Load with format-dispatch decisions recorded on lgr at
// verbosity 1.
func LoadWithLogger(input string, lgr logr.Logger) (any, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	if IsJWT(input) {
		lgr.V(1).Info("detected format", "format", "jwt")
		return loadJWT(input)
	}

	// JSON is authoritative for JSON-looking input: its syntax diagnostic
	// is what the user sees, with no silent fallback to looser formats.
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		lines := nonEmptyLines(input)
		if len(lines) > 1 && isLikelyNDJSON(lines) {
			// A pretty-printed JSON array can look line-wise like NDJSON,
			// so a whole-input parse still wins.
			if value, err := loadJSON(input); err == nil {
				lgr.V(1).Info("detected format", "format", "json")
				return value, nil
			}
			lgr.V(1).Info("detected format", "format", "ndjson", "lines", len(lines))
			return loadNDJSON(lines)
		}
		lgr.V(1).Info("detected format", "format", "json")
		return loadJSON(input)
	}

	if strings.HasPrefix(input, "---") || strings.Contains(input, "\n---") {
		lgr.V(1).Info("detected format", "format", "yaml-multidoc")
		return loadMultiDocYAML(input)
	}

	if isLikelyTOML(input) {
		lgr.V(1).Info("detected format", "format", "toml")
		return loadTOML(input)
	}

	lgr.V(1).Info("detected format", "format", "yaml")
	return loadYAML(input)
}

// LoadBytes parses input bytes, see Load.
func LoadBytes(data []byte) (any, error) {
	return Load(string(data))
}

// LoadFile reads and parses a file, see Load.
func LoadFile(path string) (any, error) {
	return LoadFileWithLogger(path, logr.Discard())
}

// LoadFileWithLogger reads and parses a file, logging through lgr.
func LoadFileWithLogger(path string, lgr logr.Logger) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lgr.V(1).Info("read document", "path", path, "bytes", len(data))
	return LoadWithLogger(string(data), lgr)
}

func loadJSON(input string) (any, error) {
	var value any
	if err := json.Unmarshal([]byte(input), &value); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return value, nil
}

func loadYAML(input string) (any, error) {
	var value any
	if err := yaml.Unmarshal([]byte(input), &value); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return Normalize(value), nil
}

func loadMultiDocYAML(input string) (any, error) {
	var docs []any
	dec := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		if doc != nil {
			docs = append(docs, Normalize(doc))
		}
	}
	switch len(docs) {
	case 0:
		return nil, fmt.Errorf("no documents found in multi-document YAML")
	case 1:
		return docs[0], nil
	default:
		return docs, nil
	}
}

func loadTOML(input string) (any, error) {
	var value any
	if err := toml.Unmarshal([]byte(input), &value); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return Normalize(value), nil
}

// loadNDJSON parses one JSON value per line. Lines that fail to parse are
// kept as plain strings, matching how log files mix JSON and free text.
func loadNDJSON(lines []string) (any, error) {
	out := make([]any, 0, len(lines))
	for _, line := range lines {
		var value any
		if err := json.Unmarshal([]byte(line), &value); err != nil {
			out = append(out, line)
			continue
		}
		out = append(out, value)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no data found in input")
	}
	return out, nil
}

func nonEmptyLines(input string) []string {
	var out []string
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// isLikelyNDJSON requires a majority of non-empty lines to look like JSON
// values, so indented multi-line JSON documents are not misclassified.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "{") || strings.HasPrefix(line, "[") {
			jsonCount++
		}
	}
	return len(lines) > 1 && jsonCount > len(lines)/2
}

// isLikelyTOML looks for [section] headers or a majority of key = value
// lines (YAML uses key: value).
func isLikelyTOML(input string) bool {
	sectionCount := 0
	keyValueCount := 0
	nonEmpty := 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") && !strings.ContainsAny(trimmed, ", ") {
			sectionCount++
		}
		if eq := strings.Index(trimmed, "="); eq > 0 && !strings.Contains(trimmed[:eq], ":") {
			keyValueCount++
		}
	}
	if sectionCount > 0 {
		return true
	}
	return nonEmpty > 0 && keyValueCount > nonEmpty/2
}
