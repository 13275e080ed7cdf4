package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eliodevbr/vpcforge/internal/validation"
)

func newValidateCmd() *cobra.Command {
	var (
		configFile   string
		outputFormat string
		cfnLint      bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a network configuration",
		Long: `Validate loads a configuration, plans it, and synthesizes the template,
reporting every constraint violation with its offending field.

With --cfn-lint the synthesized template additionally runs through
cfn-lint-go.

Examples:
    vpcforge validate -c network.yaml
    vpcforge validate -c network.yaml --cfn-lint
    vpcforge validate -c network.yaml --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(configFile, outputFormat, cfnLint)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", defaultConfigFile, "Network configuration file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&cfnLint, "cfn-lint", false, "Run cfn-lint-go over the synthesized template")

	return cmd
}

func runValidate(configFile, format string, cfnLint bool) error {
	result, err := validation.ValidateConfig(configFile, validation.Options{CfnLint: cfnLint})
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
		if result.Valid {
			fmt.Printf("Configuration valid: %d resources planned\n", result.Resources)
		} else {
			for _, e := range result.Errors {
				fmt.Fprintln(os.Stderr, e)
			}
		}
		if result.CfnLint != nil {
			for _, w := range result.CfnLint.Warnings {
				fmt.Printf("warning: %s\n", w)
			}
			for _, i := range result.CfnLint.Informational {
				fmt.Printf("info: %s\n", i)
			}
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Valid {
		return fmt.Errorf("validation failed")
	}
	return nil
}
