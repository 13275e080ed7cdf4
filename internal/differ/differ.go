// Package differ provides semantic comparison of CloudFormation
// templates, used to review what a configuration change does to the
// synthesized topology.
package differ

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	vpcforge "github.com/eliodevbr/vpcforge"
)

// Options configures the differ.
type Options struct {
	// IgnoreOrder ignores array element order in comparisons.
	IgnoreOrder bool
}

// Entry describes one added, removed, or modified item.
type Entry struct {
	Name    string   `json:"name"`
	Type    string   `json:"type,omitempty"`
	Changes []string `json:"changes,omitempty"`
}

// Diff groups entries by change kind.
type Diff struct {
	Added    []Entry `json:"added,omitempty"`
	Removed  []Entry `json:"removed,omitempty"`
	Modified []Entry `json:"modified,omitempty"`
}

// Summary tallies a diff.
type Summary struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
	Total    int `json:"total"`
}

// Result contains the difference between two templates.
type Result struct {
	Resources Diff    `json:"resources"`
	Outputs   Diff    `json:"outputs"`
	Summary   Summary `json:"summary"`
}

// HasChanges reports whether any difference was found.
func (r *Result) HasChanges() bool {
	return r.Summary.Total > 0
}

// Compare compares two CloudFormation templates and returns the
// differences in resources and outputs.
func Compare(before, after *vpcforge.Template, opts Options) (*Result, error) {
	result := &Result{}

	for name, def := range after.Resources {
		if _, exists := before.Resources[name]; !exists {
			result.Resources.Added = append(result.Resources.Added, Entry{Name: name, Type: def.Type})
		}
	}
	for name, def := range before.Resources {
		if _, exists := after.Resources[name]; !exists {
			result.Resources.Removed = append(result.Resources.Removed, Entry{Name: name, Type: def.Type})
		}
	}
	for name, defBefore := range before.Resources {
		defAfter, exists := after.Resources[name]
		if !exists {
			continue
		}
		changes := compareResources(defBefore, defAfter, opts)
		if len(changes) > 0 {
			result.Resources.Modified = append(result.Resources.Modified, Entry{
				Name:    name,
				Type:    defBefore.Type,
				Changes: changes,
			})
		}
	}

	compareOutputs(before.Outputs, after.Outputs, &result.Outputs)

	sortDiff(&result.Resources)
	sortDiff(&result.Outputs)

	result.Summary = Summary{
		Added:    len(result.Resources.Added) + len(result.Outputs.Added),
		Removed:  len(result.Resources.Removed) + len(result.Outputs.Removed),
		Modified: len(result.Resources.Modified) + len(result.Outputs.Modified),
	}
	result.Summary.Total = result.Summary.Added + result.Summary.Removed + result.Summary.Modified

	return result, nil
}

// CompareFiles compares two template files.
func CompareFiles(beforePath, afterPath string, opts Options) (*Result, error) {
	before, err := LoadTemplate(beforePath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", beforePath, err)
	}
	after, err := LoadTemplate(afterPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", afterPath, err)
	}
	return Compare(before, after, opts)
}

// LoadTemplate loads a CloudFormation template from a JSON or YAML
// file.
func LoadTemplate(path string) (*vpcforge.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tmpl vpcforge.Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return nil, fmt.Errorf("parsing as JSON or YAML: %w", err)
		}
	}
	return &tmpl, nil
}

func compareResources(before, after vpcforge.ResourceDef, opts Options) []string {
	var changes []string

	if before.Type != after.Type {
		changes = append(changes, fmt.Sprintf("Type changed: %s -> %s", before.Type, after.Type))
	}
	changes = append(changes, compareProperties("", before.Properties, after.Properties, opts)...)
	if !equalStringSlices(before.DependsOn, after.DependsOn) {
		changes = append(changes, "DependsOn changed")
	}
	if before.DeletionPolicy != after.DeletionPolicy {
		changes = append(changes, fmt.Sprintf("DeletionPolicy changed: %s -> %s",
			orNone(before.DeletionPolicy), orNone(after.DeletionPolicy)))
	}

	return changes
}

func compareOutputs(before, after map[string]vpcforge.Output, diff *Diff) {
	for name := range after {
		if _, exists := before[name]; !exists {
			diff.Added = append(diff.Added, Entry{Name: name})
		}
	}
	for name, outBefore := range before {
		outAfter, exists := after[name]
		if !exists {
			diff.Removed = append(diff.Removed, Entry{Name: name})
			continue
		}
		if !reflect.DeepEqual(normalize(outBefore), normalize(outAfter)) {
			diff.Modified = append(diff.Modified, Entry{Name: name, Changes: []string{"value changed"}})
		}
	}
}

// compareProperties recursively compares property maps, reporting
// dotted paths of properties that were added, removed, or modified.
func compareProperties(prefix string, before, after map[string]any, opts Options) []string {
	var changes []string

	for key, afterVal := range after {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if beforeVal, exists := before[key]; exists {
			if !deepEqual(beforeVal, afterVal, opts) {
				changes = append(changes, fmt.Sprintf("%s modified", path))
			}
		} else {
			changes = append(changes, fmt.Sprintf("%s added", path))
		}
	}

	for key := range before {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if _, exists := after[key]; !exists {
			changes = append(changes, fmt.Sprintf("%s removed", path))
		}
	}

	sort.Strings(changes)
	return changes
}

// deepEqual compares two values after flattening any typed intrinsic
// values into plain maps, so an in-process template compares equal to
// its own file round trip.
func deepEqual(a, b any, opts Options) bool {
	a, b = normalize(a), normalize(b)
	if opts.IgnoreOrder {
		a, b = sortSlices(a), sortSlices(b)
	}
	return reflect.DeepEqual(a, b)
}

func normalize(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

// sortSlices orders slice elements by their JSON form so element order
// is ignored.
func sortSlices(v any) any {
	switch val := v.(type) {
	case []any:
		result := make([]any, len(val))
		for i, e := range val {
			result[i] = sortSlices(e)
		}
		sort.Slice(result, func(i, j int) bool {
			a, _ := json.Marshal(result[i])
			b, _ := json.Marshal(result[j])
			return string(a) < string(b)
		})
		return result
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, e := range val {
			result[k] = sortSlices(e)
		}
		return result
	default:
		return v
	}
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func sortDiff(d *Diff) {
	sortEntries(d.Added)
	sortEntries(d.Removed)
	sortEntries(d.Modified)
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}
