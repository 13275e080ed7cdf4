package ec2

// SecurityGroup is an AWS::EC2::SecurityGroup resource.
type SecurityGroup struct {
	GroupDescription     string `json:"GroupDescription,omitempty"`
	GroupName            string `json:"GroupName,omitempty"`
	VpcId                any    `json:"VpcId,omitempty"`
	SecurityGroupIngress []any  `json:"SecurityGroupIngress,omitempty"`
	SecurityGroupEgress  []any  `json:"SecurityGroupEgress,omitempty"`
	Tags                 []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (SecurityGroup) ResourceType() string { return "AWS::EC2::SecurityGroup" }

// SecurityGroup_Ingress is an inbound rule on a SecurityGroup. Exactly one
// source should be set: CidrIp, CidrIpv6, or SourceSecurityGroupId.
type SecurityGroup_Ingress struct {
	Description           string `json:"Description,omitempty"`
	IpProtocol            string `json:"IpProtocol,omitempty"`
	FromPort              int    `json:"FromPort,omitempty"`
	ToPort                int    `json:"ToPort,omitempty"`
	CidrIp                string `json:"CidrIp,omitempty"`
	CidrIpv6              string `json:"CidrIpv6,omitempty"`
	SourceSecurityGroupId any    `json:"SourceSecurityGroupId,omitempty"`
}

// SecurityGroup_Egress is an outbound rule on a SecurityGroup.
type SecurityGroup_Egress struct {
	Description                string `json:"Description,omitempty"`
	IpProtocol                 string `json:"IpProtocol,omitempty"`
	FromPort                   int    `json:"FromPort,omitempty"`
	ToPort                     int    `json:"ToPort,omitempty"`
	CidrIp                     string `json:"CidrIp,omitempty"`
	CidrIpv6                   string `json:"CidrIpv6,omitempty"`
	DestinationSecurityGroupId any    `json:"DestinationSecurityGroupId,omitempty"`
}
