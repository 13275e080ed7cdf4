package planner

import (
	vpcforge "github.com/eliodevbr/vpcforge"
	"github.com/eliodevbr/vpcforge/intrinsics"
)

// buildOutputs contributes the fixed output surface. Every output is
// exported under a stack-qualified name so sibling stacks can import
// it. Conditional outputs follow their feature: flow-log outputs only
// when delivery is planned, the IPv6 block list only in dual-stack
// mode.
func buildOutputs(b *planBuilder) error {
	cfg := b.cfg

	b.addOutput("VpcId", export("VpcId", "VPC identifier", ref(LogicalVPC)))
	b.addOutput("VpcCidr", export("VpcCidr", "VPC IPv4 address space", attr(LogicalVPC, "CidrBlock")))

	var publicIds, privateIds []any
	for _, s := range b.publicSubnets {
		publicIds = append(publicIds, ref(s.LogicalName))
	}
	for _, s := range b.privateSubnets {
		privateIds = append(privateIds, ref(s.LogicalName))
	}
	b.addOutput("PublicSubnetIds", export("PublicSubnetIds",
		"Comma-separated public subnet identifiers",
		intrinsics.Join{Delimiter: ",", Values: publicIds}))
	b.addOutput("PrivateSubnetIds", export("PrivateSubnetIds",
		"Comma-separated private subnet identifiers",
		intrinsics.Join{Delimiter: ",", Values: privateIds}))

	b.addOutput("LoadBalancerSecurityGroupId", export("LoadBalancerSecurityGroupId",
		"Security group fronting the load balancer tier",
		attr(LogicalLoadBalancerSG, "GroupId")))
	b.addOutput("ApplicationSecurityGroupId", export("ApplicationSecurityGroupId",
		"Security group guarding the application tier",
		attr(LogicalApplicationSG, "GroupId")))

	azs := make([]any, 0, cfg.MaxAZs)
	for i := 0; i < cfg.MaxAZs; i++ {
		azs = append(azs, azValue(cfg, i))
	}
	b.addOutput("AvailabilityZones", export("AvailabilityZones",
		"Comma-separated availability zones spanned by the topology",
		intrinsics.Join{Delimiter: ",", Values: azs}))

	if cfg.EnableVPCFlowLogs {
		b.addOutput("FlowLogsBucketName", export("FlowLogsBucketName",
			"Bucket receiving VPC flow logs",
			ref(LogicalFlowLogsBucket)))
		b.addOutput("FlowLogsBucketArn", export("FlowLogsBucketArn",
			"ARN of the flow logs bucket",
			attr(LogicalFlowLogsBucket, "Arn")))
	}

	if cfg.EnableIPv6 {
		b.addOutput("VpcIpv6CidrBlocks", export("VpcIpv6CidrBlocks",
			"Comma-separated IPv6 CIDR blocks associated with the VPC",
			intrinsics.Join{Delimiter: ",", Values: attr(LogicalVPC, "Ipv6CidrBlocks")}))
	}

	return nil
}

// export wraps a value as an output exported under
// ${AWS::StackName}-<name>.
func export(name, description string, value any) vpcforge.Output {
	return vpcforge.Output{
		Description: description,
		Value:       value,
		Export: &vpcforge.Export{
			Name: intrinsics.Sub{String: "${AWS::StackName}-" + name},
		},
	}
}
