package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/eliodevbr/vpcforge/internal/discover"
)

func newListCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list [directory]",
		Short: "List network configurations in a directory tree",
		Long: `List walks a directory tree for network configuration files and shows
each one's application and environment.

Examples:
    vpcforge list
    vpcforge list ./deployments
    vpcforge list ./deployments --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runList(root, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runList(root, format string) error {
	result, err := discover.Discover(discover.Options{Root: root})
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if len(result.Configs) == 0 {
			fmt.Println("No configurations found.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Path", "App", "Environment"})
		formatTable(table)
		for _, c := range result.Configs {
			table.Append([]string{c.Path, c.App, c.Environment})
		}
		table.Render()

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}

// formatTable applies the house table style.
func formatTable(table *tablewriter.Table) {
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("-")
	table.SetColumnSeparator(" ")
}
