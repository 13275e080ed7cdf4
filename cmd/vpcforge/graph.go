package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eliodevbr/vpcforge/internal/graph"
)

func newGraphCmd() *cobra.Command {
	var (
		configFile   string
		outputFormat string
		outputFile   string
		cluster      bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the planned resource dependency graph",
		Long: `Graph synthesizes the template for a configuration and renders its
resource dependency graph.

Examples:
    vpcforge graph -c network.yaml > topology.dot
    vpcforge graph -c network.yaml --format mermaid
    vpcforge graph -c network.yaml --cluster`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(configFile, outputFormat, outputFile, cluster)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", defaultConfigFile, "Network configuration file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&cluster, "cluster", false, "Group resources by AWS service")

	return cmd
}

func runGraph(configFile, format, outputFile string, cluster bool) error {
	tmpl, err := synthesize(configFile)
	if err != nil {
		return err
	}

	g := &graph.Generator{
		Format:           graph.Format(format),
		ClusterByService: cluster,
	}

	if outputFile == "" {
		return g.Generate(tmpl, os.Stdout)
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputFile, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return g.Generate(tmpl, f)
}
