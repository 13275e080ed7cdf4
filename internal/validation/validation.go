// Package validation runs the full configuration check pipeline:
// load, validate, plan, synthesize, and optionally lint the emitted
// template with cfn-lint-go.
package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"

	"github.com/eliodevbr/vpcforge/internal/template"
	"github.com/eliodevbr/vpcforge/planner"
)

// Options configures the validation pipeline.
type Options struct {
	// CfnLint runs a cfn-lint-go pass over the synthesized template.
	CfnLint bool
}

// Result contains all validation results for one configuration.
type Result struct {
	Valid     bool           `json:"valid"`
	Resources int            `json:"resources"`
	Errors    []string       `json:"errors,omitempty"`
	CfnLint   *CfnLintResult `json:"cfn_lint,omitempty"`
}

// CfnLintResult contains the result of running cfn-lint-go.
type CfnLintResult struct {
	Passed        bool     `json:"passed"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	Informational []string `json:"informational"`
}

// TotalIssues returns the total number of issues found.
func (r CfnLintResult) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Informational)
}

// ValidateConfig checks a configuration file end to end. Validation
// failures land in Result.Errors rather than the returned error, which
// is reserved for pipeline failures such as an unreadable file.
func ValidateConfig(path string, opts Options) (*Result, error) {
	cfg, err := planner.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return ValidateNetworkConfig(*cfg, opts)
}

// ValidateNetworkConfig checks an in-memory configuration end to end.
func ValidateNetworkConfig(cfg planner.NetworkConfig, opts Options) (*Result, error) {
	result := &Result{}

	plan, err := planner.Plan(cfg)
	if err != nil {
		result.Errors = flattenErrors(err)
		return result, nil
	}

	tmpl, err := plan.Template()
	if err != nil {
		result.Errors = []string{err.Error()}
		return result, nil
	}
	result.Resources = len(tmpl.Resources)

	if opts.CfnLint {
		data, err := template.ToJSON(tmpl)
		if err != nil {
			return nil, fmt.Errorf("serializing template: %w", err)
		}
		cfnResult, err := lintTemplateBytes(data)
		if err != nil {
			return nil, err
		}
		result.CfnLint = cfnResult
		if !cfnResult.Passed {
			result.Errors = append(result.Errors, cfnResult.Errors...)
		}
	}

	result.Valid = len(result.Errors) == 0
	return result, nil
}

// flattenErrors splits a joined validation error into its parts so each
// offending field reports on its own line.
func flattenErrors(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

// lintTemplateBytes runs cfn-lint-go over a serialized template.
// cfn-lint-go lints files, so the template lands in a temp file first.
func lintTemplateBytes(data []byte) (*CfnLintResult, error) {
	dir, err := os.MkdirTemp("", "vpcforge-lint-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	path := filepath.Join(dir, "template.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("writing template: %w", err)
	}
	return RunCfnLint(path)
}

// RunCfnLint runs cfn-lint-go on a template file.
func RunCfnLint(templatePath string) (*CfnLintResult, error) {
	if _, err := os.Stat(templatePath); err != nil {
		return &CfnLintResult{
			Passed: false,
			Errors: []string{fmt.Sprintf("Template file not found: %s", templatePath)},
		}, nil
	}

	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(templatePath)
	if err != nil {
		return &CfnLintResult{
			Passed: false,
			Errors: []string{fmt.Sprintf("Linter error: %v", err)},
		}, nil
	}

	result := &CfnLintResult{
		Errors:        []string{},
		Warnings:      []string{},
		Informational: []string{},
	}

	for _, match := range matches {
		formatted := formatMatch(match)
		switch match.Level {
		case "Error":
			result.Errors = append(result.Errors, formatted)
		case "Warning":
			result.Warnings = append(result.Warnings, formatted)
		default:
			result.Informational = append(result.Informational, formatted)
		}
	}

	// Passed if no errors (warnings are acceptable).
	result.Passed = len(result.Errors) == 0
	return result, nil
}

// formatMatch formats a cfn-lint-go match for display.
func formatMatch(match lint.Match) string {
	pathStr := ""
	if len(match.Location.Path) > 0 {
		parts := make([]string, len(match.Location.Path))
		for i, p := range match.Location.Path {
			parts[i] = fmt.Sprintf("%v", p)
		}
		pathStr = strings.Join(parts, "/")
	}

	if pathStr != "" {
		return fmt.Sprintf("%s: %s (at %s)", match.Rule.ID, match.Message, pathStr)
	}
	return fmt.Sprintf("%s: %s", match.Rule.ID, match.Message)
}
