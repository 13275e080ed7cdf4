// Package vpcforge defines the CloudFormation wire types and CLI result
// contracts shared across the tool.
//
// vpcforge plans a VPC network topology from a declarative NetworkConfig
// and synthesizes it as a deterministic CloudFormation template:
//
//	cfg, err := planner.LoadConfig("network.yaml")
//	plan, err := planner.Plan(cfg)
//	tmpl, err := plan.Template()
//
// The planner performs no I/O and no provisioning; deploying the emitted
// template is CloudFormation's job.
package vpcforge

import (
	"encoding/json"
)

// Resource represents a CloudFormation resource.
// All resource types (ec2.VPC, s3.Bucket, etc.) implement this interface.
type Resource interface {
	// ResourceType returns the CloudFormation type (e.g., "AWS::EC2::VPC")
	ResourceType() string
}

// AttrRef represents a GetAtt reference to a resource attribute.
// Plan code uses these to wire one resource's attribute into another's
// properties:
//
//	ec2.VPCGatewayAttachment{
//	    VpcId:             intrinsics.Ref{LogicalName: "VPC"},
//	    InternetGatewayId: intrinsics.Ref{LogicalName: "InternetGateway"},
//	}
//	vpcforge.AttrRef{Resource: "FlowLogsBucket", Attribute: "Arn"}
//
// When serialized to CloudFormation JSON, AttrRef becomes:
//
//	{"Fn::GetAtt": ["FlowLogsBucket", "Arn"]}
type AttrRef struct {
	// Resource is the logical name of the referenced resource
	Resource string
	// Attribute is the attribute name (e.g., "Arn", "GroupId")
	Attribute string
}

// MarshalJSON serializes AttrRef to CloudFormation GetAtt syntax.
func (a AttrRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{
		"Fn::GetAtt": {a.Resource, a.Attribute},
	})
}

// IsZero returns true if the AttrRef has not been populated.
func (a AttrRef) IsZero() bool {
	return a.Resource == "" && a.Attribute == ""
}

// Template represents a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Parameters               map[string]Parameter   `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in the CloudFormation template.
// DeletionPolicy and UpdateReplacePolicy carry the environment-driven
// retention stance for stateful resources such as the flow-logs bucket.
type ResourceDef struct {
	Type                string         `json:"Type" yaml:"Type"`
	Properties          map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn           []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
	DeletionPolicy      string         `json:"DeletionPolicy,omitempty" yaml:"DeletionPolicy,omitempty"`
	UpdateReplacePolicy string         `json:"UpdateReplacePolicy,omitempty" yaml:"UpdateReplacePolicy,omitempty"`
}

// Parameter is a CloudFormation template parameter.
type Parameter struct {
	Type          string   `json:"Type" yaml:"Type"`
	Description   string   `json:"Description,omitempty" yaml:"Description,omitempty"`
	Default       any      `json:"Default,omitempty" yaml:"Default,omitempty"`
	AllowedValues []string `json:"AllowedValues,omitempty" yaml:"AllowedValues,omitempty"`
}

// Output is a CloudFormation template output.
type Output struct {
	Description string  `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any     `json:"Value" yaml:"Value"`
	Export      *Export `json:"Export,omitempty" yaml:"Export,omitempty"`
}

// Export is the cross-stack export name of an output. Name is any so
// outputs can export under a stack-qualified Fn::Sub key.
type Export struct {
	Name any `json:"Name" yaml:"Name"`
}

// BuildResult is the JSON output from `vpcforge build`.
type BuildResult struct {
	Success   bool     `json:"success"`
	Template  Template `json:"template,omitempty"`
	Resources []string `json:"resources,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// LintResult is the JSON output from `vpcforge lint`.
type LintResult struct {
	Success bool        `json:"success"`
	Issues  []LintIssue `json:"issues,omitempty"`
}

// LintIssue is a single linting issue against a synthesized template.
type LintIssue struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"` // "error", "warning", "info"
	Resource string `json:"resource,omitempty"`
	Message  string `json:"message"`
}

// ValidateResult is the JSON output from `vpcforge validate`.
type ValidateResult struct {
	Success   bool     `json:"success"`
	Resources int      `json:"resources"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ListResult is the JSON output from `vpcforge list`.
type ListResult struct {
	Configs []ListConfig `json:"configs"`
}

// ListConfig is a single discovered network config in the list output.
type ListConfig struct {
	Path        string `json:"path"`
	App         string `json:"app"`
	Environment string `json:"environment"`
}
