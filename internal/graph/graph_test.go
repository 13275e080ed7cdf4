package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vpcforge "github.com/eliodevbr/vpcforge"
	"github.com/eliodevbr/vpcforge/planner"
)

func planTemplate(t *testing.T, cfg planner.NetworkConfig) *vpcforge.Template {
	t.Helper()
	plan, err := planner.Plan(cfg)
	require.NoError(t, err)
	tmpl, err := plan.Template()
	require.NoError(t, err)
	return tmpl
}

func TestGenerate_DOT(t *testing.T) {
	tmpl := planTemplate(t, planner.NetworkConfig{Environment: "test", MaxAZs: 1})

	g := &Generator{}
	out, err := g.GenerateString(tmpl)
	require.NoError(t, err)

	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "VPC")
	assert.Contains(t, out, "AWS::EC2::Subnet")
}

func TestGenerate_Mermaid(t *testing.T) {
	tmpl := planTemplate(t, planner.NetworkConfig{Environment: "test", MaxAZs: 1})

	g := &Generator{Format: FormatMermaid}
	out, err := g.GenerateString(tmpl)
	require.NoError(t, err)

	assert.Contains(t, out, "graph TB")
	assert.NotContains(t, out, "digraph")
}

func TestGenerate_RefEdges(t *testing.T) {
	tmpl := &vpcforge.Template{
		Resources: map[string]vpcforge.ResourceDef{
			"VPC": {
				Type:       "AWS::EC2::VPC",
				Properties: map[string]any{"CidrBlock": "10.0.0.0/16"},
			},
			"Subnet": {
				Type: "AWS::EC2::Subnet",
				Properties: map[string]any{
					"VpcId":     map[string]any{"Ref": "VPC"},
					"CidrBlock": "10.0.0.0/24",
				},
			},
			"FlowLog": {
				Type: "AWS::EC2::FlowLog",
				Properties: map[string]any{
					"ResourceId":     map[string]any{"Ref": "Subnet"},
					"LogDestination": map[string]any{"Fn::GetAtt": []any{"Bucket", "Arn"}},
				},
				DependsOn: []string{"BucketPolicy"},
			},
			"Bucket": {
				Type:       "AWS::S3::Bucket",
				Properties: map[string]any{"BucketName": "logs"},
			},
			"BucketPolicy": {
				Type: "AWS::S3::BucketPolicy",
				Properties: map[string]any{
					"Bucket": map[string]any{"Ref": "Bucket"},
				},
			},
		},
	}

	g := &Generator{}
	out, err := g.GenerateString(tmpl)
	require.NoError(t, err)

	edges, err := collectEdges(tmpl)
	require.NoError(t, err)

	want := map[edge]bool{
		{from: "Subnet", to: "VPC"}:                   true,
		{from: "FlowLog", to: "Subnet"}:               true,
		{from: "FlowLog", to: "Bucket", getAtt: true}: true,
		{from: "FlowLog", to: "BucketPolicy"}:         true,
		{from: "BucketPolicy", to: "Bucket"}:          true,
	}
	assert.Len(t, edges, len(want))
	for _, e := range edges {
		assert.True(t, want[e], "unexpected edge %+v", e)
	}

	// GetAtt edges render in blue.
	assert.Contains(t, out, "blue")
}

func TestGenerate_ClusterByService(t *testing.T) {
	tmpl := planTemplate(t, planner.NetworkConfig{Environment: "test", EnableVPCFlowLogs: true})

	g := &Generator{ClusterByService: true}
	out, err := g.GenerateString(tmpl)
	require.NoError(t, err)

	assert.Contains(t, out, "cluster_EC2")
	assert.Contains(t, out, "cluster_S3")
}

func TestGenerate_SkipsUnknownReferences(t *testing.T) {
	tmpl := &vpcforge.Template{
		Resources: map[string]vpcforge.ResourceDef{
			"Subnet": {
				Type: "AWS::EC2::Subnet",
				Properties: map[string]any{
					"VpcId": map[string]any{"Ref": "SomeParameter"},
				},
			},
		},
	}

	edges, err := collectEdges(tmpl)
	require.NoError(t, err)
	assert.Empty(t, edges)

	g := &Generator{}
	out, err := g.GenerateString(tmpl)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "AWS::EC2::Subnet"))
}

func TestExtractService(t *testing.T) {
	assert.Equal(t, "EC2", extractService("AWS::EC2::VPC"))
	assert.Equal(t, "S3", extractService("AWS::S3::Bucket"))
	assert.Equal(t, "Other", extractService("Custom"))
}
