// Package template assembles CloudFormation templates from typed
// resources.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	vpcforge "github.com/eliodevbr/vpcforge"
	"github.com/eliodevbr/vpcforge/internal/serialize"
)

// Builder collects typed resources, explicit dependency edges, and
// outputs, and assembles them into a CloudFormation template with
// deterministic ordering.
type Builder struct {
	names       []string
	resources   map[string]vpcforge.Resource
	deps        map[string][]string
	policies    map[string]string
	parameters  map[string]vpcforge.Parameter
	outputs     map[string]vpcforge.Output
	description string
	errs        []error
}

// NewBuilder creates an empty template builder.
func NewBuilder() *Builder {
	return &Builder{
		resources:  make(map[string]vpcforge.Resource),
		deps:       make(map[string][]string),
		policies:   make(map[string]string),
		parameters: make(map[string]vpcforge.Parameter),
		outputs:    make(map[string]vpcforge.Output),
	}
}

// SetDescription sets the template description.
func (b *Builder) SetDescription(description string) {
	b.description = description
}

// Add registers a resource under a logical name, with optional explicit
// DependsOn edges. Intrinsic references already order resources at
// deploy time; explicit edges are for orderings CloudFormation cannot
// infer, such as routes that need the gateway attachment first.
func (b *Builder) Add(name string, res vpcforge.Resource, deps ...string) {
	if _, exists := b.resources[name]; exists {
		b.errs = append(b.errs, fmt.Errorf("duplicate logical name %q", name))
		return
	}
	b.names = append(b.names, name)
	b.resources[name] = res
	if len(deps) > 0 {
		sorted := append([]string(nil), deps...)
		sort.Strings(sorted)
		b.deps[name] = sorted
	}
}

// SetDeletionPolicy stamps DeletionPolicy and UpdateReplacePolicy on a
// resource. Policy is "Retain" or "Delete".
func (b *Builder) SetDeletionPolicy(name, policy string) {
	b.policies[name] = policy
}

// AddParameter registers a template parameter.
func (b *Builder) AddParameter(name string, param vpcforge.Parameter) {
	b.parameters[name] = param
}

// AddOutput registers a template output.
func (b *Builder) AddOutput(name string, output vpcforge.Output) {
	b.outputs[name] = output
}

// Build constructs the CloudFormation template.
func (b *Builder) Build() (*vpcforge.Template, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	// Validates dependency edges and rejects cycles.
	if _, err := b.Order(); err != nil {
		return nil, err
	}

	template := &vpcforge.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              b.description,
		Resources:                make(map[string]vpcforge.ResourceDef),
	}

	for name, res := range b.resources {
		props, err := serialize.Resource(res)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", name, err)
		}

		def := vpcforge.ResourceDef{
			Type:       res.ResourceType(),
			Properties: props,
			DependsOn:  b.deps[name],
		}
		if policy, ok := b.policies[name]; ok {
			def.DeletionPolicy = policy
			def.UpdateReplacePolicy = policy
		}
		template.Resources[name] = def
	}

	if len(b.parameters) > 0 {
		template.Parameters = make(map[string]vpcforge.Parameter, len(b.parameters))
		for name, param := range b.parameters {
			template.Parameters[name] = param
		}
	}

	if len(b.outputs) > 0 {
		template.Outputs = make(map[string]vpcforge.Output, len(b.outputs))
		for name, output := range b.outputs {
			normalized, err := b.normalizeOutput(output)
			if err != nil {
				return nil, fmt.Errorf("serializing output %s: %w", name, err)
			}
			template.Outputs[name] = normalized
		}
	}

	return template, nil
}

// normalizeOutput flattens intrinsic values into plain maps so the
// template marshals identically to JSON and YAML.
func (b *Builder) normalizeOutput(output vpcforge.Output) (vpcforge.Output, error) {
	value, err := normalizeValue(output.Value)
	if err != nil {
		return output, err
	}
	output.Value = value

	if output.Export != nil {
		name, err := normalizeValue(output.Export.Name)
		if err != nil {
			return output, err
		}
		output.Export = &vpcforge.Export{Name: name}
	}
	return output, nil
}

// normalizeValue runs a value through a JSON round trip, resolving any
// custom marshaling into plain maps, slices, and scalars.
func normalizeValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Order returns the logical names in dependency order: dependencies
// first, lexicographic among peers.
func (b *Builder) Order() ([]string, error) {
	graph := make(map[string][]string)
	inDegree := make(map[string]int)

	for name := range b.resources {
		graph[name] = nil
		inDegree[name] = 0
	}

	for name, deps := range b.deps {
		for _, dep := range deps {
			if _, exists := b.resources[dep]; !exists {
				return nil, fmt.Errorf("resource %s depends on unknown resource %s", name, dep)
			}
			graph[dep] = append(graph[dep], name)
			inDegree[name]++
		}
	}

	// Kahn's algorithm with a sorted queue for deterministic output.
	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range graph[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(b.resources) {
		return nil, b.detectCycle()
	}

	return result, nil
}

// detectCycle finds and reports a cycle in the dependency graph.
func (b *Builder) detectCycle() error {
	visited := make(map[string]bool)
	path := make(map[string]bool)

	var cycle []string
	var findCycle func(node string) bool
	findCycle = func(node string) bool {
		visited[node] = true
		path[node] = true

		for _, dep := range b.deps[node] {
			if _, exists := b.resources[dep]; !exists {
				continue
			}
			if !visited[dep] {
				if findCycle(dep) {
					cycle = append([]string{node}, cycle...)
					return true
				}
			} else if path[dep] {
				cycle = append([]string{dep, node}, cycle...)
				return true
			}
		}

		path[node] = false
		return false
	}

	names := append([]string(nil), b.names...)
	sort.Strings(names)
	for _, name := range names {
		if !visited[name] {
			if findCycle(name) {
				break
			}
		}
	}

	if len(cycle) > 0 {
		return fmt.Errorf("circular dependency detected: %s", strings.Join(cycle, " -> "))
	}

	return errors.New("circular dependency detected")
}

// ToJSON serializes the template to JSON.
func ToJSON(t *vpcforge.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *vpcforge.Template) ([]byte, error) {
	return yaml.Marshal(t)
}
