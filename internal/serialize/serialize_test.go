package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vpcforge "github.com/eliodevbr/vpcforge"
	"github.com/eliodevbr/vpcforge/intrinsics"
	"github.com/eliodevbr/vpcforge/resources/ec2"
	"github.com/eliodevbr/vpcforge/resources/s3"
)

func TestResource_SimpleStruct(t *testing.T) {
	vpc := ec2.VPC{
		CidrBlock: "10.0.0.0/16",
	}

	props, err := Resource(vpc)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.0/16", props["CidrBlock"])
	assert.NotContains(t, props, "Tags")               // Empty slice should be omitted
	assert.NotContains(t, props, "EnableDnsHostnames") // False bool should be omitted
}

func TestResource_WithIntrinsics(t *testing.T) {
	subnet := ec2.Subnet{
		VpcId:            intrinsics.Ref{LogicalName: "VPC"},
		CidrBlock:        "10.0.1.0/24",
		AvailabilityZone: intrinsics.Select{Index: 1, List: intrinsics.GetAZs{}},
	}

	props, err := Resource(subnet)
	require.NoError(t, err)

	vpcID := props["VpcId"].(map[string]any)
	assert.Equal(t, "VPC", vpcID["Ref"])

	az := props["AvailabilityZone"].(map[string]any)
	sel := az["Fn::Select"].([]any)
	assert.Equal(t, float64(1), sel[0])
	getAZs := sel[1].(map[string]any)
	assert.Equal(t, "", getAZs["Fn::GetAZs"])
}

func TestResource_WithAttrRef(t *testing.T) {
	fl := ec2.FlowLog{
		ResourceId:         intrinsics.Ref{LogicalName: "VPC"},
		ResourceType_:      "VPC",
		TrafficType:        "ALL",
		LogDestinationType: "s3",
		LogDestination:     vpcforge.AttrRef{Resource: "FlowLogsBucket", Attribute: "Arn"},
	}

	props, err := Resource(fl)
	require.NoError(t, err)

	assert.Equal(t, "VPC", props["ResourceType"])

	dest := props["LogDestination"].(map[string]any)
	getAtt := dest["Fn::GetAtt"].([]any)
	assert.Equal(t, "FlowLogsBucket", getAtt[0])
	assert.Equal(t, "Arn", getAtt[1])
}

func TestResource_NestedPropertyStructs(t *testing.T) {
	bucket := s3.Bucket{
		BucketName: "testapp-vpc-flow-logs-dev-123456789012",
		BucketEncryption: s3.Bucket_BucketEncryption{
			ServerSideEncryptionConfiguration: []any{
				s3.Bucket_ServerSideEncryptionRule{
					ServerSideEncryptionByDefault: s3.Bucket_ServerSideEncryptionByDefault{
						SSEAlgorithm: "AES256",
					},
				},
			},
		},
	}

	props, err := Resource(bucket)
	require.NoError(t, err)

	encryption := props["BucketEncryption"].(map[string]any)
	rules := encryption["ServerSideEncryptionConfiguration"].([]any)
	require.Len(t, rules, 1)

	rule := rules[0].(map[string]any)
	byDefault := rule["ServerSideEncryptionByDefault"].(map[string]any)
	assert.Equal(t, "AES256", byDefault["SSEAlgorithm"])
}

func TestResource_SliceOfRules(t *testing.T) {
	sg := ec2.SecurityGroup{
		GroupDescription: "Security group for testapp load balancer",
		VpcId:            intrinsics.Ref{LogicalName: "VPC"},
		SecurityGroupIngress: []any{
			ec2.SecurityGroup_Ingress{IpProtocol: "tcp", FromPort: 80, ToPort: 80, CidrIp: "0.0.0.0/0"},
			ec2.SecurityGroup_Ingress{IpProtocol: "tcp", FromPort: 443, ToPort: 443, CidrIp: "0.0.0.0/0"},
		},
	}

	props, err := Resource(sg)
	require.NoError(t, err)

	ingress := props["SecurityGroupIngress"].([]any)
	require.Len(t, ingress, 2)

	first := ingress[0].(map[string]any)
	assert.Equal(t, int64(80), first["FromPort"])
	assert.Equal(t, "0.0.0.0/0", first["CidrIp"])
}

func TestResource_BoolInsideInterfaceKept(t *testing.T) {
	// A typed false is omitted, but explicit property structs assigned to
	// an `any` field serialize whole, including their true flags.
	bucket := s3.Bucket{
		BucketName: "testapp-vpc-flow-logs-dev-123456789012",
		PublicAccessBlockConfiguration: s3.Bucket_PublicAccessBlockConfiguration{
			BlockPublicAcls:       true,
			BlockPublicPolicy:     true,
			IgnorePublicAcls:      true,
			RestrictPublicBuckets: true,
		},
	}

	props, err := Resource(bucket)
	require.NoError(t, err)

	pab := props["PublicAccessBlockConfiguration"].(map[string]any)
	assert.Equal(t, true, pab["BlockPublicAcls"])
	assert.Equal(t, true, pab["BlockPublicPolicy"])
	assert.Equal(t, true, pab["IgnorePublicAcls"])
	assert.Equal(t, true, pab["RestrictPublicBuckets"])
}

func TestResource_OmitsZeroValues(t *testing.T) {
	route := ec2.Route{}

	props, err := Resource(route)
	require.NoError(t, err)

	assert.Empty(t, props)
}

func TestResource_WithPointer(t *testing.T) {
	vpc := &ec2.VPC{
		CidrBlock: "10.1.0.0/16",
	}

	props, err := Resource(vpc)
	require.NoError(t, err)

	assert.Equal(t, "10.1.0.0/16", props["CidrBlock"])
}

func TestResource_PolicyDocument(t *testing.T) {
	policy := s3.BucketPolicy{
		Bucket: intrinsics.Ref{LogicalName: "FlowLogsBucket"},
		PolicyDocument: intrinsics.PolicyDocument{
			Version: "2012-10-17",
			Statement: []any{
				intrinsics.PolicyStatement{
					Sid:       "AWSLogDeliveryAclCheck",
					Effect:    "Allow",
					Principal: intrinsics.ServicePrincipal{"delivery.logs.amazonaws.com"},
					Action:    []any{"s3:GetBucketAcl", "s3:ListBucket"},
					Resource:  vpcforge.AttrRef{Resource: "FlowLogsBucket", Attribute: "Arn"},
				},
			},
		},
	}

	props, err := Resource(policy)
	require.NoError(t, err)

	doc := props["PolicyDocument"].(map[string]any)
	assert.Equal(t, "2012-10-17", doc["Version"])

	statements := doc["Statement"].([]any)
	require.Len(t, statements, 1)

	stmt := statements[0].(map[string]any)
	assert.Equal(t, "AWSLogDeliveryAclCheck", stmt["Sid"])

	principal := stmt["Principal"].(map[string]any)
	assert.Equal(t, "delivery.logs.amazonaws.com", principal["Service"])

	actions := stmt["Action"].([]any)
	assert.Len(t, actions, 2)
}
