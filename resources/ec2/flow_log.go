package ec2

// FlowLog is an AWS::EC2::FlowLog resource. ResourceType_ carries the
// monitored resource kind ("VPC", "Subnet", "NetworkInterface"); the
// trailing underscore avoids colliding with the ResourceType method.
type FlowLog struct {
	ResourceId             any    `json:"ResourceId,omitempty"`
	ResourceType_          string `json:"ResourceType,omitempty"`
	TrafficType            string `json:"TrafficType,omitempty"`
	LogDestinationType     string `json:"LogDestinationType,omitempty"`
	LogDestination         any    `json:"LogDestination,omitempty"`
	MaxAggregationInterval int    `json:"MaxAggregationInterval,omitempty"`
	Tags                   []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (FlowLog) ResourceType() string { return "AWS::EC2::FlowLog" }
