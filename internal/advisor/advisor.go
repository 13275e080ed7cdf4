// Package advisor analyzes a topology plan and suggests cost,
// reliability, and security improvements. Advisories never fail a run;
// they describe trade-offs the configuration has taken.
package advisor

import (
	"github.com/eliodevbr/vpcforge/planner"
)

// Options configures the advisor.
type Options struct {
	// Category filters suggestions: "all", "cost", "reliability",
	// "security".
	Category string
}

// Suggestion is one advisory against a plan.
type Suggestion struct {
	RuleID   string `json:"rule_id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// Summary tallies suggestions by category.
type Summary struct {
	Cost        int `json:"cost"`
	Reliability int `json:"reliability"`
	Security    int `json:"security"`
	Total       int `json:"total"`
}

// Result contains the advisories for a plan.
type Result struct {
	Suggestions []Suggestion `json:"suggestions"`
	Summary     Summary      `json:"summary"`
}

// Advise applies every rule in the selected category to a plan.
func Advise(plan *planner.TopologyPlan, opts Options) (*Result, error) {
	category := opts.Category
	if category == "" {
		category = "all"
	}

	result := &Result{}
	for _, rule := range rules {
		if category != "all" && rule.Category != category {
			continue
		}
		if s := rule.Check(plan); s != nil {
			s.RuleID = rule.ID
			s.Category = rule.Category
			s.Title = rule.Title
			result.Suggestions = append(result.Suggestions, *s)
		}
	}

	result.Summary = calculateSummary(result.Suggestions)
	return result, nil
}

func calculateSummary(suggestions []Suggestion) Summary {
	summary := Summary{}
	for _, s := range suggestions {
		switch s.Category {
		case "cost":
			summary.Cost++
		case "reliability":
			summary.Reliability++
		case "security":
			summary.Security++
		}
		summary.Total++
	}
	return summary
}

// Rule represents one advisory rule. Check returns nil when the rule
// does not apply.
type Rule struct {
	ID       string
	Category string
	Title    string
	Check    func(plan *planner.TopologyPlan) *Suggestion
}
