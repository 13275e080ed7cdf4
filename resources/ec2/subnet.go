package ec2

// Subnet is an AWS::EC2::Subnet resource.
//
// AvailabilityZone and Ipv6CidrBlock accept intrinsics, so a subnet can
// select its zone from Fn::GetAZs and carve its IPv6 block from the
// VPC's assigned range with Fn::Cidr.
type Subnet struct {
	VpcId                       any    `json:"VpcId,omitempty"`
	CidrBlock                   string `json:"CidrBlock,omitempty"`
	AvailabilityZone            any    `json:"AvailabilityZone,omitempty"`
	MapPublicIpOnLaunch         bool   `json:"MapPublicIpOnLaunch,omitempty"`
	AssignIpv6AddressOnCreation bool   `json:"AssignIpv6AddressOnCreation,omitempty"`
	Ipv6CidrBlock               any    `json:"Ipv6CidrBlock,omitempty"`
	Tags                        []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (Subnet) ResourceType() string { return "AWS::EC2::Subnet" }
