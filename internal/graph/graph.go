// Package graph renders the resource dependency graph of a synthesized
// CloudFormation template in DOT or Mermaid format.
package graph

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/emicklei/dot"

	vpcforge "github.com/eliodevbr/vpcforge"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates dependency graphs from synthesized templates.
type Generator struct {
	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByService groups resources by AWS service.
	ClusterByService bool
}

// Generate renders the template's dependency graph to w.
func (g *Generator) Generate(tmpl *vpcforge.Template, w io.Writer) error {
	graph, err := g.buildGraph(tmpl)
	if err != nil {
		return err
	}

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err = w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a
// string.
func (g *Generator) GenerateString(tmpl *vpcforge.Template) (string, error) {
	var sb strings.Builder
	if err := g.Generate(tmpl, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// edge is one dependency: from needs to. GetAtt references are styled
// differently from plain Refs and DependsOn edges.
type edge struct {
	from, to string
	getAtt   bool
}

func (g *Generator) buildGraph(tmpl *vpcforge.Template) (*dot.Graph, error) {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	if g.ClusterByService {
		g.addClusteredNodes(graph, tmpl)
	} else {
		g.addNodes(graph, tmpl)
	}

	edges, err := collectEdges(tmpl)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		de := graph.Edge(graph.Node(e.from), graph.Node(e.to))
		if e.getAtt {
			de.Attr("color", "blue")
		}
	}

	return graph, nil
}

func sortedNames(tmpl *vpcforge.Template) []string {
	names := make([]string, 0, len(tmpl.Resources))
	for name := range tmpl.Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *Generator) addNodes(graph *dot.Graph, tmpl *vpcforge.Template) {
	for _, name := range sortedNames(tmpl) {
		n := graph.Node(name)
		n.Label(name + "\\n[" + tmpl.Resources[name].Type + "]")
	}
}

// addClusteredNodes groups resources by AWS service. Services with a
// single resource stay unclustered.
func (g *Generator) addClusteredNodes(graph *dot.Graph, tmpl *vpcforge.Template) {
	serviceResources := make(map[string][]string)
	for _, name := range sortedNames(tmpl) {
		service := extractService(tmpl.Resources[name].Type)
		serviceResources[service] = append(serviceResources[service], name)
	}

	services := make([]string, 0, len(serviceResources))
	for service := range serviceResources {
		services = append(services, service)
	}
	sort.Strings(services)

	for _, service := range services {
		names := serviceResources[service]
		if len(names) > 1 {
			cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			cluster.Attr("label", service)
			cluster.Attr("style", "rounded")
			cluster.Attr("bgcolor", "lightyellow")
			for _, name := range names {
				n := cluster.Node(name)
				n.Label(name + "\\n[" + tmpl.Resources[name].Type + "]")
			}
			continue
		}
		for _, name := range names {
			n := graph.Node(name)
			n.Label(name + "\\n[" + tmpl.Resources[name].Type + "]")
		}
	}
}

// collectEdges gathers dependency edges: explicit DependsOn entries
// plus every Ref and Fn::GetAtt found in resource properties.
func collectEdges(tmpl *vpcforge.Template) ([]edge, error) {
	seen := make(map[edge]bool)
	var edges []edge
	add := func(e edge) {
		if e.from == e.to || seen[e] {
			return
		}
		if _, exists := tmpl.Resources[e.to]; !exists {
			return
		}
		seen[e] = true
		edges = append(edges, e)
	}

	for _, name := range sortedNames(tmpl) {
		def := tmpl.Resources[name]
		for _, dep := range def.DependsOn {
			add(edge{from: name, to: dep})
		}

		props, err := normalize(def.Properties)
		if err != nil {
			return nil, err
		}
		for _, ref := range findRefs(props, false) {
			add(edge{from: name, to: ref})
		}
		for _, ref := range findRefs(props, true) {
			add(edge{from: name, to: ref, getAtt: true})
		}
	}
	return edges, nil
}

// normalize flattens typed intrinsic values into plain maps via a JSON
// round trip, so reference scanning sees one shape regardless of how
// the template was produced.
func normalize(v any) (any, error) {
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

// findRefs walks a property value collecting referenced logical names:
// {"Ref": name} when getAtt is false, {"Fn::GetAtt": [name, attr]} when
// true.
func findRefs(v any, getAtt bool) []string {
	var refs []string
	switch val := v.(type) {
	case map[string]any:
		if !getAtt {
			if name, ok := val["Ref"].(string); ok && len(val) == 1 {
				return []string{name}
			}
		} else if raw, ok := val["Fn::GetAtt"].([]any); ok && len(val) == 1 && len(raw) == 2 {
			if name, ok := raw[0].(string); ok {
				return []string{name}
			}
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			refs = append(refs, findRefs(val[k], getAtt)...)
		}
	case []any:
		for _, e := range val {
			refs = append(refs, findRefs(e, getAtt)...)
		}
	}
	return refs
}

// extractService pulls the service segment from a CloudFormation type,
// e.g. "AWS::EC2::Subnet" -> "EC2".
func extractService(cfType string) string {
	parts := strings.Split(cfType, "::")
	if len(parts) == 3 {
		return parts[1]
	}
	return "Other"
}
