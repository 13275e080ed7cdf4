package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eliodevbr/vpcforge/internal/advisor"
	"github.com/eliodevbr/vpcforge/planner"
)

func newAdviseCmd() *cobra.Command {
	var (
		configFile   string
		category     string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Suggest cost, reliability, and security improvements",
		Long: `Advise analyzes the planned topology and reports trade-offs the
configuration has taken: shared NAT egress, missing flow logs in
production, single-AZ production layouts, and the like. Advisories are
informational and never fail the command.

Examples:
    vpcforge advise -c network.yaml
    vpcforge advise -c network.yaml --category cost`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvise(configFile, category, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", defaultConfigFile, "Network configuration file")
	cmd.Flags().StringVar(&category, "category", "all", "Filter: all, cost, reliability, or security")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runAdvise(configFile, category, format string) error {
	cfg, err := planner.LoadConfig(configFile)
	if err != nil {
		return err
	}
	plan, err := planner.Plan(*cfg)
	if err != nil {
		return err
	}

	result, err := advisor.Advise(plan, advisor.Options{Category: category})
	if err != nil {
		return err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if len(result.Suggestions) == 0 {
			fmt.Println("No suggestions.")
			return nil
		}
		for _, s := range result.Suggestions {
			fmt.Printf("[%s] %s: %s\n", s.Category, s.RuleID, s.Title)
			fmt.Printf("    %s\n", s.Message)
		}
		fmt.Printf("\n%d suggestion(s): %d cost, %d reliability, %d security\n",
			result.Summary.Total, result.Summary.Cost,
			result.Summary.Reliability, result.Summary.Security)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
