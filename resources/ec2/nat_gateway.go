package ec2

// EIP is an AWS::EC2::EIP resource.
type EIP struct {
	Domain string `json:"Domain,omitempty"`
	Tags   []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (EIP) ResourceType() string { return "AWS::EC2::EIP" }

// NatGateway is an AWS::EC2::NatGateway resource.
type NatGateway struct {
	AllocationId     any    `json:"AllocationId,omitempty"`
	SubnetId         any    `json:"SubnetId,omitempty"`
	ConnectivityType string `json:"ConnectivityType,omitempty"`
	Tags             []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (NatGateway) ResourceType() string { return "AWS::EC2::NatGateway" }
