// Package lint checks synthesized CloudFormation templates against the
// network policy rules the planner is supposed to uphold.
//
// The rules are a safety net for hand-edited templates and a regression
// check for the planner itself: a template produced by a correct plan
// passes cleanly.
package lint

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	vpcforge "github.com/eliodevbr/vpcforge"
)

// Options configures the linter.
type Options struct {
	// EnabledRules restricts the run to the named rule IDs. Empty means
	// all rules.
	EnabledRules []string
}

// Result contains the outcome of linting.
type Result struct {
	Success bool
	Issues  []vpcforge.LintIssue
}

// LintTemplate runs every enabled rule against a template.
func LintTemplate(tmpl *vpcforge.Template, opts Options) (Result, error) {
	normalized, err := normalizeTemplate(tmpl)
	if err != nil {
		return Result{}, fmt.Errorf("normalizing template: %w", err)
	}

	var issues []vpcforge.LintIssue
	for _, rule := range enabledRules(opts) {
		issues = append(issues, rule.Check(normalized)...)
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Resource != issues[j].Resource {
			return issues[i].Resource < issues[j].Resource
		}
		return issues[i].Rule < issues[j].Rule
	})

	return Result{Success: len(issues) == 0, Issues: issues}, nil
}

// LintFile lints a template file, accepting JSON or YAML.
func LintFile(path string, opts Options) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}

	var tmpl vpcforge.Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return Result{}, fmt.Errorf("parsing %s as JSON or YAML: %w", path, err)
		}
	}
	return LintTemplate(&tmpl, opts)
}

func enabledRules(opts Options) []Rule {
	if len(opts.EnabledRules) == 0 {
		return allRules
	}
	enabled := make(map[string]bool, len(opts.EnabledRules))
	for _, id := range opts.EnabledRules {
		enabled[id] = true
	}
	var rules []Rule
	for _, r := range allRules {
		if enabled[r.ID] {
			rules = append(rules, r)
		}
	}
	return rules
}

// normalizeTemplate runs the template through a JSON round trip so
// rules always see plain maps, whether the template was synthesized
// in-process (typed intrinsic values) or loaded from a file.
func normalizeTemplate(tmpl *vpcforge.Template) (*vpcforge.Template, error) {
	data, err := json.Marshal(tmpl)
	if err != nil {
		return nil, err
	}
	var out vpcforge.Template
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
