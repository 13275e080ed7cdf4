package advisor

import (
	"fmt"

	"github.com/eliodevbr/vpcforge/planner"
)

var rules = []Rule{
	{
		ID:       "ADV001",
		Category: "reliability",
		Title:    "Shared NAT gateway across availability zones",
		Check: func(plan *planner.TopologyPlan) *Suggestion {
			cfg := plan.Config()
			if plan.NATGatewayCount() != 1 || cfg.MaxAZs <= 1 {
				return nil
			}
			return &Suggestion{
				Message: fmt.Sprintf(
					"all %d private route tables egress through one NAT gateway in a single AZ; "+
						"losing that AZ cuts outbound connectivity everywhere. "+
						"Set enableHANatGateways for one gateway per AZ.",
					cfg.MaxAZs),
			}
		},
	},
	{
		ID:       "ADV002",
		Category: "cost",
		Title:    "One NAT gateway per availability zone",
		Check: func(plan *planner.TopologyPlan) *Suggestion {
			n := plan.NATGatewayCount()
			if n <= 1 {
				return nil
			}
			return &Suggestion{
				Message: fmt.Sprintf(
					"%d NAT gateways each accrue hourly and per-GB charges; "+
						"a single shared gateway is cheaper if cross-AZ egress resilience is not required.",
					n),
			}
		},
	},
	{
		ID:       "ADV003",
		Category: "reliability",
		Title:    "No outbound path for private subnets",
		Check: func(plan *planner.TopologyPlan) *Suggestion {
			if plan.NATGatewayCount() > 0 {
				return nil
			}
			return &Suggestion{
				Message: "natGateways is 0: private-subnet workloads cannot reach external networks. " +
					"Intentional for fully isolated tiers; otherwise set natGateways to at least 1.",
			}
		},
	},
	{
		ID:       "ADV004",
		Category: "reliability",
		Title:    "Single availability zone in production",
		Check: func(plan *planner.TopologyPlan) *Suggestion {
			cfg := plan.Config()
			if cfg.Environment != "production" || cfg.MaxAZs > 1 {
				return nil
			}
			return &Suggestion{
				Message: "the production topology spans one availability zone; " +
					"an AZ outage takes the whole network down. Raise maxAzs to 2 or more.",
			}
		},
	},
	{
		ID:       "ADV005",
		Category: "security",
		Title:    "Flow logs disabled in production",
		Check: func(plan *planner.TopologyPlan) *Suggestion {
			cfg := plan.Config()
			if cfg.Environment != "production" || cfg.EnableVPCFlowLogs {
				return nil
			}
			return &Suggestion{
				Message: "production traffic leaves no audit trail without VPC flow logs. " +
					"Set enableVPCFlowLogs to capture it.",
			}
		},
	},
}
