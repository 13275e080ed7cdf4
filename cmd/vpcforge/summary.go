package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/eliodevbr/vpcforge/planner"
)

func newSummaryCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the planned topology at a glance",
		Long: `Summary plans a configuration and prints the resulting topology: the
subnet layout and a resource inventory by type.

Examples:
    vpcforge summary -c network.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(configFile)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", defaultConfigFile, "Network configuration file")

	return cmd
}

func runSummary(configFile string) error {
	cfg, err := planner.LoadConfig(configFile)
	if err != nil {
		return err
	}
	plan, err := planner.Plan(*cfg)
	if err != nil {
		return err
	}

	resolved := plan.Config()
	fmt.Printf("%s (%s): %s across %d AZs, %d NAT gateway(s)\n\n",
		resolved.App, resolved.Environment, resolved.VPCCidr, resolved.MaxAZs, plan.NATGatewayCount())

	subnets := tablewriter.NewWriter(os.Stdout)
	subnets.SetHeader([]string{"Subnet", "Class", "AZ", "CIDR"})
	formatTable(subnets)
	for _, s := range plan.Subnets() {
		subnets.Append([]string{
			s.LogicalName,
			string(s.Class),
			strconv.Itoa(s.AZIndex + 1),
			s.CIDR,
		})
	}
	subnets.Render()
	fmt.Println()

	counts := make(map[string]int)
	for _, r := range plan.Resources() {
		counts[r.Resource.ResourceType()]++
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	inventory := tablewriter.NewWriter(os.Stdout)
	inventory.SetHeader([]string{"Resource Type", "Count"})
	formatTable(inventory)
	for _, t := range types {
		inventory.Append([]string{t, strconv.Itoa(counts[t])})
	}
	inventory.Render()

	return nil
}
