package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	vpcforge "github.com/eliodevbr/vpcforge"
	"github.com/eliodevbr/vpcforge/internal/lint"
	"github.com/eliodevbr/vpcforge/planner"
)

func newLintCmd() *cobra.Command {
	var (
		configFile   string
		templateFile string
		outputFormat string
		rules        []string
	)

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check a synthesized template against network policy rules",
		Long: `Lint checks a template for policy violations.

Rules:
    VF001: Application-tier security groups must not accept open CIDR ingress
    VF002: Buckets must carry server-side encryption
    VF003: Buckets must block all public access
    VF004: IPv6 rules require an IPv6 CIDR block association
    VF005: Subnet CIDR blocks must sit inside the VPC range

By default the template is synthesized from the configuration; pass
--template to lint an existing template file instead.

Examples:
    vpcforge lint -c network.yaml
    vpcforge lint --template template.json
    vpcforge lint -c network.yaml --rule VF001 --rule VF004`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(configFile, templateFile, outputFormat, rules)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", defaultConfigFile, "Network configuration file")
	cmd.Flags().StringVarP(&templateFile, "template", "t", "", "Lint an existing template file instead")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().StringArrayVar(&rules, "rule", nil, "Restrict to specific rule IDs (repeatable)")

	return cmd
}

func runLint(configFile, templateFile, format string, rules []string) error {
	opts := lint.Options{EnabledRules: rules}

	var result lint.Result
	var err error
	if templateFile != "" {
		result, err = lint.LintFile(templateFile, opts)
	} else {
		var tmpl *vpcforge.Template
		tmpl, err = synthesize(configFile)
		if err != nil {
			return err
		}
		result, err = lint.LintTemplate(tmpl, opts)
	}
	if err != nil {
		return err
	}

	return outputLintResult(vpcforge.LintResult{
		Success: result.Success,
		Issues:  result.Issues,
	}, format)
}

// synthesize plans a configuration file and returns its template.
func synthesize(configFile string) (*vpcforge.Template, error) {
	cfg, err := planner.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	plan, err := planner.Plan(*cfg)
	if err != nil {
		return nil, err
	}
	return plan.Template()
}

func outputLintResult(result vpcforge.LintResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Success {
			fmt.Println("No issues found.")
			return nil
		}
		for _, issue := range result.Issues {
			if issue.Resource != "" {
				fmt.Printf("%s: %s: %s [%s]\n", issue.Severity, issue.Resource, issue.Message, issue.Rule)
			} else {
				fmt.Printf("%s: %s [%s]\n", issue.Severity, issue.Message, issue.Rule)
			}
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(2) // Exit code 2 for issues found
	}
	return nil
}
