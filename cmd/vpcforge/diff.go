package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eliodevbr/vpcforge/internal/differ"
)

func newDiffCmd() *cobra.Command {
	var (
		outputFormat string
		ignoreOrder  bool
	)

	cmd := &cobra.Command{
		Use:   "diff <before> <after>",
		Short: "Compare two synthesized templates",
		Long: `Diff compares two template files semantically: resources and outputs
added, removed, or modified, with dotted property paths for changes.

Examples:
    vpcforge diff old-template.json new-template.json
    vpcforge diff old.yaml new.yaml --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], outputFormat, ignoreOrder)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&ignoreOrder, "ignore-order", false, "Ignore array element order")

	return cmd
}

func runDiff(beforePath, afterPath, format string, ignoreOrder bool) error {
	result, err := differ.CompareFiles(beforePath, afterPath, differ.Options{IgnoreOrder: ignoreOrder})
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
		printDiffText(result)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}

func printDiffText(result *differ.Result) {
	if !result.HasChanges() {
		fmt.Println("No changes.")
		return
	}

	printDiffSection("Resources", result.Resources)
	printDiffSection("Outputs", result.Outputs)
	fmt.Printf("%d added, %d removed, %d modified\n",
		result.Summary.Added, result.Summary.Removed, result.Summary.Modified)
}

func printDiffSection(title string, diff differ.Diff) {
	if len(diff.Added)+len(diff.Removed)+len(diff.Modified) == 0 {
		return
	}
	fmt.Printf("%s:\n", title)
	for _, e := range diff.Added {
		fmt.Printf("  + %s%s\n", e.Name, typeSuffix(e.Type))
	}
	for _, e := range diff.Removed {
		fmt.Printf("  - %s%s\n", e.Name, typeSuffix(e.Type))
	}
	for _, e := range diff.Modified {
		fmt.Printf("  ~ %s%s\n", e.Name, typeSuffix(e.Type))
		for _, c := range e.Changes {
			fmt.Printf("      %s\n", c)
		}
	}
	fmt.Println()
}

func typeSuffix(t string) string {
	if t == "" {
		return ""
	}
	return " (" + t + ")"
}
