package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	vpcforge "github.com/eliodevbr/vpcforge"
	"github.com/eliodevbr/vpcforge/internal/awsenv"
	"github.com/eliodevbr/vpcforge/internal/log"
	"github.com/eliodevbr/vpcforge/internal/template"
	"github.com/eliodevbr/vpcforge/planner"
)

const defaultConfigFile = "network.yaml"

func newBuildCmd() *cobra.Command {
	var (
		configFile   string
		outputFormat string
		outputFile   string
		resolve      bool
		profile      string
		region       string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Synthesize the CloudFormation template for a configuration",
		Long: `Build plans the topology for a network configuration and emits the template.

By default the template stays region-agnostic: availability zones select
with Fn::GetAZs and the account id substitutes at deploy time. With
--resolve, the zone names and account id are pinned from the live AWS
environment instead.

Examples:
    vpcforge build -c network.yaml
    vpcforge build -c network.yaml -o template.json
    vpcforge build -c network.yaml --format yaml
    vpcforge build -c network.yaml --resolve --profile staging`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), buildOptions{
				configFile:   configFile,
				outputFormat: outputFormat,
				outputFile:   outputFile,
				resolve:      resolve,
				profile:      profile,
				region:       region,
			})
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", defaultConfigFile, "Network configuration file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "Pin account id and zone names from the live AWS environment")
	cmd.Flags().StringVar(&profile, "profile", "", "AWS profile for --resolve")
	cmd.Flags().StringVar(&region, "region", "", "AWS region for --resolve")

	return cmd
}

type buildOptions struct {
	configFile   string
	outputFormat string
	outputFile   string
	resolve      bool
	profile      string
	region       string
}

func runBuild(ctx context.Context, opts buildOptions) error {
	cfg, err := planner.LoadConfig(opts.configFile)
	if err != nil {
		return err
	}

	if opts.resolve {
		if err := resolveEnvironment(ctx, cfg, opts.profile, opts.region); err != nil {
			return err
		}
	}

	plan, err := planner.Plan(*cfg)
	if err != nil {
		return err
	}

	tmpl, err := plan.Template()
	if err != nil {
		return err
	}

	log.Debugf("planned %d resources for %s/%s", len(tmpl.Resources), cfg.App, cfg.Environment)
	return outputTemplate(tmpl, opts.outputFormat, opts.outputFile)
}

// resolveEnvironment pins the account id and zone names from the live
// AWS environment, leaving explicitly configured values alone.
func resolveEnvironment(ctx context.Context, cfg *planner.NetworkConfig, profile, region string) error {
	resolver, err := awsenv.Load(ctx, awsenv.Options{Profile: profile, Region: region})
	if err != nil {
		return err
	}

	if cfg.AccountID == "" {
		id, err := resolver.AccountID(ctx)
		if err != nil {
			return fmt.Errorf("resolving account id: %w", err)
		}
		cfg.AccountID = id
	}
	if len(cfg.AvailabilityZones) == 0 {
		zones, err := resolver.AvailabilityZones(ctx, cfg.MaxAZs)
		if err != nil {
			return fmt.Errorf("resolving availability zones: %w", err)
		}
		cfg.AvailabilityZones = zones
	}
	return nil
}

// outputTemplate writes a template in the requested encoding to a file
// or stdout.
func outputTemplate(tmpl *vpcforge.Template, format, outputFile string) error {
	var data []byte
	var err error

	switch format {
	case "json":
		data, err = template.ToJSON(tmpl)
	case "yaml":
		data, err = template.ToYAML(tmpl)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outputFile, data, 0644)
}
