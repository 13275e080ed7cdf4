package planner

import (
	"fmt"

	vpcforge "github.com/eliodevbr/vpcforge"
	"github.com/eliodevbr/vpcforge/intrinsics"
)

// Logical names of the plan's singleton resources. Subnet-scoped
// resources append a 1-based index to a class prefix instead.
const (
	LogicalVPC                  = "VPC"
	LogicalVPCIpv6CidrBlock     = "VpcIpv6CidrBlock"
	LogicalInternetGateway      = "InternetGateway"
	LogicalGatewayAttachment    = "VPCGatewayAttachment"
	LogicalPublicRouteTable     = "PublicRouteTable"
	LogicalPublicDefaultRoute   = "PublicDefaultRoute"
	LogicalPublicIpv6Route      = "PublicDefaultIpv6Route"
	LogicalLoadBalancerSG       = "LoadBalancerSecurityGroup"
	LogicalApplicationSG        = "ApplicationSecurityGroup"
	LogicalFlowLogsBucket       = "FlowLogsBucket"
	LogicalFlowLogsBucketPolicy = "FlowLogsBucketPolicy"
	LogicalVPCFlowLog           = "VpcFlowLog"
)

func publicSubnetName(i int) string      { return fmt.Sprintf("PublicSubnet%d", i) }
func privateSubnetName(i int) string     { return fmt.Sprintf("PrivateSubnet%d", i) }
func privateRouteTableName(i int) string { return fmt.Sprintf("PrivateRouteTable%d", i) }
func natEIPName(i int) string            { return fmt.Sprintf("NatEIP%d", i) }
func natGatewayName(i int) string        { return fmt.Sprintf("NatGateway%d", i) }

// Plan derives the topology for a configuration. It validates first and
// never returns a partial plan: either every constraint holds and the
// full plan comes back, or the joined validation errors do.
//
// Orthogonal features contribute independent sub-plans merged in a
// fixed order: the base network, the security groups, then IPv6 and
// flow-log delivery when their flags are set, and finally the outputs.
func Plan(cfg NetworkConfig) (*TopologyPlan, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	public, private, err := carveSubnets(cfg.VPCCidr, cfg.MaxAZs, cfg.PublicSubnetCidrMask, cfg.PrivateSubnetCidrMask)
	if err != nil {
		return nil, err
	}

	b := newPlanBuilder(cfg, public, private)

	subPlans := []struct {
		name    string
		enabled bool
		build   func(*planBuilder) error
	}{
		{"network", true, buildNetwork},
		{"security-groups", true, buildSecurityGroups},
		{"ipv6", cfg.EnableIPv6, buildIPv6},
		{"flow-logs", cfg.EnableVPCFlowLogs, buildFlowLogs},
		{"outputs", true, buildOutputs},
	}
	for _, sp := range subPlans {
		if !sp.enabled {
			continue
		}
		if err := sp.build(b); err != nil {
			return nil, fmt.Errorf("planning %s: %w", sp.name, err)
		}
	}

	return b.plan(), nil
}

// planBuilder accumulates the resources and outputs the feature
// sub-plans contribute. Logical names are deterministic, so a duplicate
// add is a programming error surfaced by the template builder later.
type planBuilder struct {
	cfg            *NetworkConfig
	publicSubnets  []SubnetPlan
	privateSubnets []SubnetPlan

	resources []PlannedResource
	index     map[string]int
	outputs   []PlannedOutput
}

func newPlanBuilder(cfg NetworkConfig, publicCidrs, privateCidrs []string) *planBuilder {
	b := &planBuilder{
		cfg:   &cfg,
		index: make(map[string]int),
	}
	for i, c := range publicCidrs {
		b.publicSubnets = append(b.publicSubnets, SubnetPlan{
			LogicalName: publicSubnetName(i + 1),
			AZIndex:     i,
			Class:       SubnetPublic,
			CIDR:        c,
		})
	}
	for i, c := range privateCidrs {
		b.privateSubnets = append(b.privateSubnets, SubnetPlan{
			LogicalName: privateSubnetName(i + 1),
			AZIndex:     i,
			Class:       SubnetPrivate,
			CIDR:        c,
		})
	}
	return b
}

func (b *planBuilder) add(name string, r vpcforge.Resource, deps ...string) {
	b.index[name] = len(b.resources)
	b.resources = append(b.resources, PlannedResource{Name: name, Resource: r, DependsOn: deps})
}

// addRetained adds a stateful resource carrying a deletion policy.
func (b *planBuilder) addRetained(name string, r vpcforge.Resource, policy string, deps ...string) {
	b.add(name, r, deps...)
	b.resources[b.index[name]].DeletionPolicy = policy
}

// replace swaps a previously added resource for an enriched copy,
// appending any extra dependencies. Sub-plans use it to layer optional
// behavior onto base resources.
func (b *planBuilder) replace(name string, r vpcforge.Resource, extraDeps ...string) {
	i, ok := b.index[name]
	if !ok {
		b.add(name, r, extraDeps...)
		return
	}
	b.resources[i].Resource = r
	b.resources[i].DependsOn = append(b.resources[i].DependsOn, extraDeps...)
}

func (b *planBuilder) resource(name string) (vpcforge.Resource, bool) {
	i, ok := b.index[name]
	if !ok {
		return nil, false
	}
	return b.resources[i].Resource, true
}

func (b *planBuilder) addOutput(name string, o vpcforge.Output) {
	b.outputs = append(b.outputs, PlannedOutput{Name: name, Output: o})
}

// allSubnets returns the planned subnets in template order: public
// first, then private, each by AZ index.
func (b *planBuilder) allSubnets() []SubnetPlan {
	all := make([]SubnetPlan, 0, len(b.publicSubnets)+len(b.privateSubnets))
	all = append(all, b.publicSubnets...)
	all = append(all, b.privateSubnets...)
	return all
}

func (b *planBuilder) plan() *TopologyPlan {
	return &TopologyPlan{
		config:    *b.cfg,
		subnets:   b.allSubnets(),
		resources: b.resources,
		outputs:   b.outputs,
	}
}

// ref is shorthand for an intrinsic reference by logical name.
func ref(name string) intrinsics.Ref {
	return intrinsics.Ref{LogicalName: name}
}

// attr is shorthand for a Fn::GetAtt reference.
func attr(name, attribute string) vpcforge.AttrRef {
	return vpcforge.AttrRef{Resource: name, Attribute: attribute}
}

// resourceTags builds the standard tag set every planned resource
// carries: Name, Environment, and the owning Component.
func resourceTags(cfg *NetworkConfig, name, component string) []any {
	return []any{
		intrinsics.Tag{Key: "Component", Value: component},
		intrinsics.Tag{Key: "Environment", Value: cfg.Environment},
		intrinsics.Tag{Key: "Name", Value: name},
	}
}

// azValue resolves the availability zone for an AZ index: the pinned
// literal when the config names zones, otherwise a deploy-time
// Fn::Select over Fn::GetAZs.
func azValue(cfg *NetworkConfig, azIndex int) any {
	if len(cfg.AvailabilityZones) > 0 {
		return cfg.AvailabilityZones[azIndex]
	}
	return intrinsics.Select{Index: azIndex, List: intrinsics.GetAZs{}}
}
