package ec2

// InternetGateway is an AWS::EC2::InternetGateway resource.
type InternetGateway struct {
	Tags []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (InternetGateway) ResourceType() string { return "AWS::EC2::InternetGateway" }

// VPCGatewayAttachment is an AWS::EC2::VPCGatewayAttachment resource.
type VPCGatewayAttachment struct {
	VpcId             any `json:"VpcId,omitempty"`
	InternetGatewayId any `json:"InternetGatewayId,omitempty"`
	VpnGatewayId      any `json:"VpnGatewayId,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (VPCGatewayAttachment) ResourceType() string { return "AWS::EC2::VPCGatewayAttachment" }
