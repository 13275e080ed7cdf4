package planner

import (
	"fmt"

	"github.com/eliodevbr/vpcforge/resources/ec2"
)

// buildNetwork contributes the base topology: the VPC, internet
// gateway, subnets, route tables, and NAT egress.
//
// Routing follows a fixed shape: one public route table shared by all
// public subnets, and one private route table per AZ. Each private
// table sends 0.0.0.0/0 through its AZ's own NAT gateway when one
// exists per AZ, through the single shared gateway when natGateways=1,
// and nowhere when NAT is disabled.
func buildNetwork(b *planBuilder) error {
	cfg := b.cfg

	b.add(LogicalVPC, ec2.VPC{
		CidrBlock:          cfg.VPCCidr,
		EnableDnsHostnames: true,
		EnableDnsSupport:   true,
		InstanceTenancy:    "default",
		Tags:               resourceTags(cfg, fmt.Sprintf("%s-vpc-%s", cfg.App, cfg.Environment), "Network"),
	})

	b.add(LogicalInternetGateway, ec2.InternetGateway{
		Tags: resourceTags(cfg, fmt.Sprintf("%s-igw-%s", cfg.App, cfg.Environment), "Network"),
	})
	b.add(LogicalGatewayAttachment, ec2.VPCGatewayAttachment{
		VpcId:             ref(LogicalVPC),
		InternetGatewayId: ref(LogicalInternetGateway),
	})

	b.add(LogicalPublicRouteTable, ec2.RouteTable{
		VpcId: ref(LogicalVPC),
		Tags:  resourceTags(cfg, fmt.Sprintf("%s-public-rt-%s", cfg.App, cfg.Environment), "Network"),
	})
	b.add(LogicalPublicDefaultRoute, ec2.Route{
		RouteTableId:         ref(LogicalPublicRouteTable),
		DestinationCidrBlock: "0.0.0.0/0",
		GatewayId:            ref(LogicalInternetGateway),
	}, LogicalGatewayAttachment)

	for _, s := range b.publicSubnets {
		b.add(s.LogicalName, ec2.Subnet{
			VpcId:               ref(LogicalVPC),
			CidrBlock:           s.CIDR,
			AvailabilityZone:    azValue(cfg, s.AZIndex),
			MapPublicIpOnLaunch: true,
			Tags: resourceTags(cfg,
				fmt.Sprintf("%s-public-%d-%s", cfg.App, s.AZIndex+1, cfg.Environment), "Network"),
		})
		b.add(s.LogicalName+"RouteTableAssociation", ec2.SubnetRouteTableAssociation{
			SubnetId:     ref(s.LogicalName),
			RouteTableId: ref(LogicalPublicRouteTable),
		})
	}

	// NAT gateways occupy the first resolved-count public subnets.
	// EIPs in a VPC need the internet gateway attached first.
	natCount := cfg.ResolvedNATGateways()
	for i := 1; i <= natCount; i++ {
		b.add(natEIPName(i), ec2.EIP{
			Domain: "vpc",
			Tags:   resourceTags(cfg, fmt.Sprintf("%s-nat-eip-%d-%s", cfg.App, i, cfg.Environment), "Network"),
		}, LogicalGatewayAttachment)
		b.add(natGatewayName(i), ec2.NatGateway{
			AllocationId: attr(natEIPName(i), "AllocationId"),
			SubnetId:     ref(publicSubnetName(i)),
			Tags:         resourceTags(cfg, fmt.Sprintf("%s-nat-%d-%s", cfg.App, i, cfg.Environment), "Network"),
		})
	}

	for _, s := range b.privateSubnets {
		n := s.AZIndex + 1
		b.add(s.LogicalName, ec2.Subnet{
			VpcId:            ref(LogicalVPC),
			CidrBlock:        s.CIDR,
			AvailabilityZone: azValue(cfg, s.AZIndex),
			Tags: resourceTags(cfg,
				fmt.Sprintf("%s-private-%d-%s", cfg.App, n, cfg.Environment), "Network"),
		})
		b.add(privateRouteTableName(n), ec2.RouteTable{
			VpcId: ref(LogicalVPC),
			Tags:  resourceTags(cfg, fmt.Sprintf("%s-private-rt-%d-%s", cfg.App, n, cfg.Environment), "Network"),
		})
		b.add(s.LogicalName+"RouteTableAssociation", ec2.SubnetRouteTableAssociation{
			SubnetId:     ref(s.LogicalName),
			RouteTableId: ref(privateRouteTableName(n)),
		})

		if natCount > 0 {
			// One NAT per AZ routes each table to its own gateway; a
			// single shared NAT serves every AZ.
			gw := s.AZIndex
			if gw >= natCount {
				gw = natCount - 1
			}
			b.add(fmt.Sprintf("PrivateDefaultRoute%d", n), ec2.Route{
				RouteTableId:         ref(privateRouteTableName(n)),
				DestinationCidrBlock: "0.0.0.0/0",
				NatGatewayId:         ref(natGatewayName(gw + 1)),
			})
		}
	}

	return nil
}
