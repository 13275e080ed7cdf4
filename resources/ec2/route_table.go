package ec2

// RouteTable is an AWS::EC2::RouteTable resource.
type RouteTable struct {
	VpcId any   `json:"VpcId,omitempty"`
	Tags  []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (RouteTable) ResourceType() string { return "AWS::EC2::RouteTable" }

// Route is an AWS::EC2::Route resource. Exactly one destination and one
// target should be set.
type Route struct {
	RouteTableId             any    `json:"RouteTableId,omitempty"`
	DestinationCidrBlock     string `json:"DestinationCidrBlock,omitempty"`
	DestinationIpv6CidrBlock string `json:"DestinationIpv6CidrBlock,omitempty"`
	GatewayId                any    `json:"GatewayId,omitempty"`
	NatGatewayId             any    `json:"NatGatewayId,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (Route) ResourceType() string { return "AWS::EC2::Route" }

// SubnetRouteTableAssociation is an AWS::EC2::SubnetRouteTableAssociation
// resource.
type SubnetRouteTableAssociation struct {
	SubnetId     any `json:"SubnetId,omitempty"`
	RouteTableId any `json:"RouteTableId,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (SubnetRouteTableAssociation) ResourceType() string {
	return "AWS::EC2::SubnetRouteTableAssociation"
}
