// Package ec2 provides CloudFormation resource types for Amazon EC2
// networking: VPCs, subnets, gateways, routing, security groups, and
// flow logs.
//
// Fields that accept references hold `any` so plan code can assign
// intrinsics:
//
//	ec2.Subnet{
//	    VpcId:     intrinsics.Ref{LogicalName: "VPC"},
//	    CidrBlock: "10.0.0.0/24",
//	}
//
// Zero-valued fields are omitted from the serialized properties.
package ec2

// VPC is an AWS::EC2::VPC resource.
type VPC struct {
	CidrBlock          string `json:"CidrBlock,omitempty"`
	EnableDnsHostnames bool   `json:"EnableDnsHostnames,omitempty"`
	EnableDnsSupport   bool   `json:"EnableDnsSupport,omitempty"`
	InstanceTenancy    string `json:"InstanceTenancy,omitempty"`
	Tags               []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (VPC) ResourceType() string { return "AWS::EC2::VPC" }

// VPCCidrBlock is an AWS::EC2::VPCCidrBlock resource. It associates an
// additional CIDR block, such as a provider-assigned or explicit IPv6
// range, with a VPC.
type VPCCidrBlock struct {
	VpcId                       any    `json:"VpcId,omitempty"`
	AmazonProvidedIpv6CidrBlock bool   `json:"AmazonProvidedIpv6CidrBlock,omitempty"`
	Ipv6CidrBlock               string `json:"Ipv6CidrBlock,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (VPCCidrBlock) ResourceType() string { return "AWS::EC2::VPCCidrBlock" }
