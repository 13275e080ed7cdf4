package planner

import (
	"fmt"

	"github.com/eliodevbr/vpcforge/resources/ec2"
)

// The application tier listens on 8000; the load balancer health-checks
// it across the 8000-8999 range.
const (
	applicationPort    = 8000
	healthCheckPortMax = 8999
)

// buildSecurityGroups contributes the two fixed security groups.
//
// The load-balancer tier fronts the internet on 80 and 443, from ::/0
// as well when IPv6 is enabled. The application tier only ever accepts
// traffic by reference to the load-balancer group: no CIDR source
// appears on it under any configuration.
func buildSecurityGroups(b *planBuilder) error {
	cfg := b.cfg

	lbIngress := []any{
		ec2.SecurityGroup_Ingress{
			Description: "Allow HTTP from anywhere",
			IpProtocol:  "tcp",
			FromPort:    80,
			ToPort:      80,
			CidrIp:      "0.0.0.0/0",
		},
		ec2.SecurityGroup_Ingress{
			Description: "Allow HTTPS from anywhere",
			IpProtocol:  "tcp",
			FromPort:    443,
			ToPort:      443,
			CidrIp:      "0.0.0.0/0",
		},
	}
	if cfg.EnableIPv6 {
		lbIngress = append(lbIngress,
			ec2.SecurityGroup_Ingress{
				Description: "Allow HTTP from anywhere (IPv6)",
				IpProtocol:  "tcp",
				FromPort:    80,
				ToPort:      80,
				CidrIpv6:    "::/0",
			},
			ec2.SecurityGroup_Ingress{
				Description: "Allow HTTPS from anywhere (IPv6)",
				IpProtocol:  "tcp",
				FromPort:    443,
				ToPort:      443,
				CidrIpv6:    "::/0",
			},
		)
	}

	b.add(LogicalLoadBalancerSG, ec2.SecurityGroup{
		GroupDescription:     fmt.Sprintf("Load balancer tier for %s", cfg.App),
		VpcId:                ref(LogicalVPC),
		SecurityGroupIngress: lbIngress,
		Tags: resourceTags(cfg,
			fmt.Sprintf("%s-lb-sg-%s", cfg.App, cfg.Environment), "LoadBalancer"),
	})

	lbGroup := attr(LogicalLoadBalancerSG, "GroupId")
	b.add(LogicalApplicationSG, ec2.SecurityGroup{
		GroupDescription: fmt.Sprintf("Application tier for %s", cfg.App),
		VpcId:            ref(LogicalVPC),
		SecurityGroupIngress: []any{
			ec2.SecurityGroup_Ingress{
				Description:           "Application traffic from the load balancer",
				IpProtocol:            "tcp",
				FromPort:              applicationPort,
				ToPort:                applicationPort,
				SourceSecurityGroupId: lbGroup,
			},
			ec2.SecurityGroup_Ingress{
				Description:           "Health checks from the load balancer",
				IpProtocol:            "tcp",
				FromPort:              applicationPort,
				ToPort:                healthCheckPortMax,
				SourceSecurityGroupId: lbGroup,
			},
		},
		Tags: resourceTags(cfg,
			fmt.Sprintf("%s-app-sg-%s", cfg.App, cfg.Environment), "Application"),
	})

	return nil
}
