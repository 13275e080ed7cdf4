package planner

import (
	"fmt"

	"github.com/eliodevbr/vpcforge/intrinsics"
	"github.com/eliodevbr/vpcforge/resources/ec2"
)

// A provider-assigned IPv6 block is a /56, which splits into 256 /64
// subnet blocks.
const (
	ipv6SubnetCount = 256
	ipv6SubnetBits  = 64
)

// buildIPv6 contributes dual-stack addressing: the VPC's IPv6 CIDR
// association (explicit block or provider-assigned), a /64 per subnet
// carved from it at deploy time, and the ::/0 default route for the
// public route table.
func buildIPv6(b *planBuilder) error {
	cfg := b.cfg

	block := ec2.VPCCidrBlock{VpcId: ref(LogicalVPC)}
	if cfg.IPv6CidrBlock != "" {
		block.Ipv6CidrBlock = cfg.IPv6CidrBlock
	} else {
		block.AmazonProvidedIpv6CidrBlock = true
	}
	b.add(LogicalVPCIpv6CidrBlock, block)

	// The VPC's assigned range is only knowable at deploy time, so each
	// subnet selects its /64 with Fn::Cidr over the first associated
	// block.
	for i, s := range b.allSubnets() {
		res, ok := b.resource(s.LogicalName)
		if !ok {
			return fmt.Errorf("subnet %s not planned before ipv6", s.LogicalName)
		}
		subnet, ok := res.(ec2.Subnet)
		if !ok {
			return fmt.Errorf("resource %s is not a subnet", s.LogicalName)
		}

		subnet.AssignIpv6AddressOnCreation = true
		subnet.Ipv6CidrBlock = intrinsics.Select{
			Index: i,
			List: intrinsics.Cidr{
				IPBlock: intrinsics.Select{
					Index: 0,
					List:  attr(LogicalVPC, "Ipv6CidrBlocks"),
				},
				Count:    ipv6SubnetCount,
				CidrBits: ipv6SubnetBits,
			},
		}
		b.replace(s.LogicalName, subnet, LogicalVPCIpv6CidrBlock)
	}

	b.add(LogicalPublicIpv6Route, ec2.Route{
		RouteTableId:             ref(LogicalPublicRouteTable),
		DestinationIpv6CidrBlock: "::/0",
		GatewayId:                ref(LogicalInternetGateway),
	}, LogicalGatewayAttachment)

	return nil
}
