package planner

import (
	"fmt"

	vpcforge "github.com/eliodevbr/vpcforge"
	"github.com/eliodevbr/vpcforge/internal/template"
	"github.com/eliodevbr/vpcforge/resources/ec2"
)

// SubnetClass distinguishes internet-facing subnets from internal ones.
type SubnetClass string

const (
	SubnetPublic  SubnetClass = "public"
	SubnetPrivate SubnetClass = "private"
)

// SubnetPlan describes one planned subnet: its logical name, the AZ
// index it lands in (0-based), its class, and the CIDR block carved for
// it.
type SubnetPlan struct {
	LogicalName string
	AZIndex     int
	Class       SubnetClass
	CIDR        string
}

// PlannedResource is one CloudFormation resource in the plan: logical
// name, typed definition, explicit creation-order dependencies, and the
// optional deletion policy stamped on stateful resources.
type PlannedResource struct {
	Name           string
	Resource       vpcforge.Resource
	DependsOn      []string
	DeletionPolicy string
}

// PlannedOutput is one named template output.
type PlannedOutput struct {
	Name   string
	Output vpcforge.Output
}

// TopologyPlan is the result of a planning run. It is read-only after
// construction: inspect it or synthesize a template from it, but any
// configuration change means a fresh Plan call.
type TopologyPlan struct {
	config    NetworkConfig
	subnets   []SubnetPlan
	resources []PlannedResource
	outputs   []PlannedOutput
}

// Config returns the normalized configuration the plan was derived from.
func (p *TopologyPlan) Config() NetworkConfig { return p.config }

// Subnets returns the planned subnets, public subnets first, each class
// ordered by AZ index.
func (p *TopologyPlan) Subnets() []SubnetPlan { return p.subnets }

// Resources returns every planned resource in contribution order.
func (p *TopologyPlan) Resources() []PlannedResource { return p.resources }

// Outputs returns the planned template outputs in contribution order.
func (p *TopologyPlan) Outputs() []PlannedOutput { return p.outputs }

// Resource looks up a planned resource by logical name.
func (p *TopologyPlan) Resource(name string) (PlannedResource, bool) {
	for _, r := range p.resources {
		if r.Name == name {
			return r, true
		}
	}
	return PlannedResource{}, false
}

// CountByType returns how many planned resources have the given
// CloudFormation type.
func (p *TopologyPlan) CountByType(resourceType string) int {
	n := 0
	for _, r := range p.resources {
		if r.Resource.ResourceType() == resourceType {
			n++
		}
	}
	return n
}

// NATGatewayCount returns the number of NAT gateways in the plan.
func (p *TopologyPlan) NATGatewayCount() int {
	return p.CountByType("AWS::EC2::NatGateway")
}

// RouteTableCount returns the number of route tables in the plan.
func (p *TopologyPlan) RouteTableCount() int {
	return p.CountByType("AWS::EC2::RouteTable")
}

// FlowLogCount returns the number of flow logs in the plan.
func (p *TopologyPlan) FlowLogCount() int {
	return p.CountByType("AWS::EC2::FlowLog")
}

// HasIPv6Resources reports whether the plan carries an IPv6 CIDR block
// association.
func (p *TopologyPlan) HasIPv6Resources() bool {
	return p.CountByType("AWS::EC2::VPCCidrBlock") > 0
}

// SecurityGroup returns the typed security group planned under the
// given logical name.
func (p *TopologyPlan) SecurityGroup(name string) (ec2.SecurityGroup, bool) {
	r, ok := p.Resource(name)
	if !ok {
		return ec2.SecurityGroup{}, false
	}
	sg, ok := r.Resource.(ec2.SecurityGroup)
	return sg, ok
}

// Template synthesizes the CloudFormation template for the plan.
func (p *TopologyPlan) Template() (*vpcforge.Template, error) {
	b := template.NewBuilder()
	b.SetDescription(fmt.Sprintf("Network topology for %s (%s)", p.config.App, p.config.Environment))

	for _, r := range p.resources {
		b.Add(r.Name, r.Resource, r.DependsOn...)
		if r.DeletionPolicy != "" {
			b.SetDeletionPolicy(r.Name, r.DeletionPolicy)
		}
	}
	for _, o := range p.outputs {
		b.AddOutput(o.Name, o.Output)
	}

	tmpl, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("synthesizing template: %w", err)
	}
	return tmpl, nil
}
