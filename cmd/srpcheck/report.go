package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents a report output format.
type Format string

const (
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
)

// ParseFormat parses a format string into a Format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid output format '%s': must be 'yaml' or 'json'", s)
	}
}

// CheckResult is the outcome of a single self-test.
type CheckResult struct {
	Name   string `json:"name" yaml:"name"`
	Passed bool   `json:"passed" yaml:"passed"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report summarizes a self-test run.
type Report struct {
	Group     string        `json:"group" yaml:"group"`
	Digest    string        `json:"digest" yaml:"digest"`
	Verifiers int           `json:"verifiers" yaml:"verifiers"`
	Checks    []CheckResult `json:"checks" yaml:"checks"`
}

// Add records the outcome of a check.
func (r *Report) Add(name string, err error) {
	result := CheckResult{Name: name, Passed: err == nil}
	if err != nil {
		result.Error = err.Error()
	}
	r.Checks = append(r.Checks, result)
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Format renders the report in the given format.
func (r *Report) Format(format Format) (string, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("failed to format as YAML: %w", err)
		}
		return string(data), nil
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to format as JSON: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
