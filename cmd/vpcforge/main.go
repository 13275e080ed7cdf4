// Command vpcforge plans a VPC network topology from a declarative
// configuration and synthesizes it as a CloudFormation template.
//
// Usage:
//
//	vpcforge build -c network.yaml       Synthesize the template
//	vpcforge validate -c network.yaml    Check the configuration
//	vpcforge summary -c network.yaml     Show the planned topology
//	vpcforge init myproject              Create a new project
//	vpcforge version                     Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eliodevbr/vpcforge/internal/log"
)

func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "vpcforge",
		Short: "Plan VPC network topologies as CloudFormation",
		Long: `vpcforge derives a deterministic VPC topology from a YAML configuration.

Describe the network declaratively:

    environment: production
    maxAzs: 3
    enableHANatGateways: true
    enableVPCFlowLogs: true

Then synthesize the CloudFormation template:

    vpcforge build -c network.yaml`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !debug && os.Getenv("VPCFORGE_DEBUG") != "" {
				debug = true
			}
			log.Setup(debug)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newBuildCmd(),
		newValidateCmd(),
		newLintCmd(),
		newGraphCmd(),
		newDiffCmd(),
		newWatchCmd(),
		newInitCmd(),
		newListCmd(),
		newSummaryCmd(),
		newAdviseCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vpcforge %s\n", getVersion())
		},
	}
}
