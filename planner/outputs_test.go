package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vpcforge "github.com/eliodevbr/vpcforge"
	"github.com/eliodevbr/vpcforge/intrinsics"
)

func outputNames(plan *TopologyPlan) []string {
	names := make([]string, 0, len(plan.Outputs()))
	for _, o := range plan.Outputs() {
		names = append(names, o.Name)
	}
	return names
}

func findOutput(t *testing.T, plan *TopologyPlan, name string) vpcforge.Output {
	t.Helper()
	for _, o := range plan.Outputs() {
		if o.Name == name {
			return o.Output
		}
	}
	t.Fatalf("missing output %s", name)
	return vpcforge.Output{}
}

func TestOutputs_FixedSurface(t *testing.T) {
	plan := mustPlan(t, NetworkConfig{Environment: "dev"})

	assert.Equal(t, []string{
		"VpcId",
		"VpcCidr",
		"PublicSubnetIds",
		"PrivateSubnetIds",
		"LoadBalancerSecurityGroupId",
		"ApplicationSecurityGroupId",
		"AvailabilityZones",
	}, outputNames(plan))
}

func TestOutputs_ConditionalSurface(t *testing.T) {
	plan := mustPlan(t, NetworkConfig{
		Environment:       "production",
		EnableIPv6:        true,
		EnableVPCFlowLogs: true,
	})

	names := outputNames(plan)
	assert.Contains(t, names, "FlowLogsBucketName")
	assert.Contains(t, names, "FlowLogsBucketArn")
	assert.Contains(t, names, "VpcIpv6CidrBlocks")
	assert.Len(t, names, 10)
}

func TestOutputs_StackQualifiedExports(t *testing.T) {
	plan := mustPlan(t, NetworkConfig{
		Environment:       "production",
		EnableIPv6:        true,
		EnableVPCFlowLogs: true,
	})

	for _, o := range plan.Outputs() {
		require.NotNil(t, o.Output.Export, "output %s has no export", o.Name)
		assert.Equal(t,
			intrinsics.Sub{String: "${AWS::StackName}-" + o.Name},
			o.Output.Export.Name,
			"output %s must export under its stack-qualified name", o.Name)
		assert.NotEmpty(t, o.Output.Description)
	}
}

func TestOutputs_Values(t *testing.T) {
	plan := mustPlan(t, NetworkConfig{Environment: "dev"})

	assert.Equal(t, ref(LogicalVPC), findOutput(t, plan, "VpcId").Value)
	assert.Equal(t, attr(LogicalVPC, "CidrBlock"), findOutput(t, plan, "VpcCidr").Value)
	assert.Equal(t,
		attr(LogicalLoadBalancerSG, "GroupId"),
		findOutput(t, plan, "LoadBalancerSecurityGroupId").Value)
	assert.Equal(t,
		attr(LogicalApplicationSG, "GroupId"),
		findOutput(t, plan, "ApplicationSecurityGroupId").Value)
}

func TestOutputs_SubnetIdsJoinInOrder(t *testing.T) {
	plan := mustPlan(t, NetworkConfig{Environment: "dev"})

	private := findOutput(t, plan, "PrivateSubnetIds").Value
	assert.Equal(t, intrinsics.Join{
		Delimiter: ",",
		Values: []any{
			ref(privateSubnetName(1)),
			ref(privateSubnetName(2)),
			ref(privateSubnetName(3)),
		},
	}, private)

	public := findOutput(t, plan, "PublicSubnetIds").Value
	assert.Equal(t, intrinsics.Join{
		Delimiter: ",",
		Values: []any{
			ref(publicSubnetName(1)),
			ref(publicSubnetName(2)),
			ref(publicSubnetName(3)),
		},
	}, public)
}

func TestOutputs_AvailabilityZones(t *testing.T) {
	t.Run("deploy-time zones", func(t *testing.T) {
		plan := mustPlan(t, NetworkConfig{Environment: "dev", MaxAZs: 2})

		azs := findOutput(t, plan, "AvailabilityZones").Value
		assert.Equal(t, intrinsics.Join{
			Delimiter: ",",
			Values: []any{
				intrinsics.Select{Index: 0, List: intrinsics.GetAZs{}},
				intrinsics.Select{Index: 1, List: intrinsics.GetAZs{}},
			},
		}, azs)
	})

	t.Run("pinned zones", func(t *testing.T) {
		plan := mustPlan(t, NetworkConfig{
			Environment:       "dev",
			MaxAZs:            2,
			AvailabilityZones: []string{"eu-central-1a", "eu-central-1b"},
		})

		azs := findOutput(t, plan, "AvailabilityZones").Value
		assert.Equal(t, intrinsics.Join{
			Delimiter: ",",
			Values:    []any{"eu-central-1a", "eu-central-1b"},
		}, azs)
	})
}

func TestOutputs_FlowLogValues(t *testing.T) {
	plan := mustPlan(t, NetworkConfig{Environment: "dev", EnableVPCFlowLogs: true})

	assert.Equal(t, ref(LogicalFlowLogsBucket), findOutput(t, plan, "FlowLogsBucketName").Value)
	assert.Equal(t, attr(LogicalFlowLogsBucket, "Arn"), findOutput(t, plan, "FlowLogsBucketArn").Value)
}

func TestOutputs_IPv6BlockList(t *testing.T) {
	plan := mustPlan(t, NetworkConfig{Environment: "dev", EnableIPv6: true})

	blocks := findOutput(t, plan, "VpcIpv6CidrBlocks").Value
	assert.Equal(t, intrinsics.Join{
		Delimiter: ",",
		Values:    attr(LogicalVPC, "Ipv6CidrBlocks"),
	}, blocks)
}
