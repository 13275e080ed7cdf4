package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"gopkg.in/yaml.v3"

	"github.com/eliodevbr/vpcforge/planner"
)

// validProjectName matches valid project directory names (alphanumeric,
// hyphens, underscores).
var validProjectName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

func newInitCmd() *cobra.Command {
	var useDefaults bool

	cmd := &cobra.Command{
		Use:   "init [project-name]",
		Short: "Create a new vpcforge project",
		Long: `Init creates a project directory with a network configuration.

Without --defaults the configuration is assembled interactively.

Examples:
    vpcforge init storefront-network
    vpcforge init storefront-network --defaults`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(".", args[0], useDefaults)
		},
	}

	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Skip prompts and write a default dev configuration")

	return cmd
}

// runInit creates a new project in {workspaceDir}/{projectName}/.
func runInit(workspaceDir, projectName string, useDefaults bool) error {
	if !validProjectName.MatchString(projectName) {
		return fmt.Errorf("invalid project name %q: must start with a letter and contain only letters, numbers, hyphens, or underscores", projectName)
	}

	projectPath := filepath.Join(workspaceDir, projectName)
	if _, err := os.Stat(projectPath); err == nil {
		return fmt.Errorf("project already exists: %s", projectPath)
	}

	cfg := planner.NetworkConfig{Environment: "dev", App: projectName}
	if !useDefaults {
		if err := promptConfig(&cfg); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(projectPath, 0755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	configPath := filepath.Join(projectPath, defaultConfigFile)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", defaultConfigFile, err)
	}

	gitignore := `# Build output
template.json
template.yaml

# IDE
.idea/
.vscode/
*.swp

# OS
.DS_Store
`
	if err := os.WriteFile(filepath.Join(projectPath, ".gitignore"), []byte(gitignore), 0644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Printf("Created project: %s/\n", projectPath)
	fmt.Printf("  ├── %s\n", defaultConfigFile)
	fmt.Printf("  └── .gitignore\n")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  vpcforge build -c %s\n", configPath)
	fmt.Println()

	return nil
}

// promptConfig fills a configuration interactively.
func promptConfig(cfg *planner.NetworkConfig) error {
	if err := survey.AskOne(&survey.Select{
		Message: "Environment:",
		Options: []string{"dev", "test", "staging", "production"},
		Default: "dev",
	}, &cfg.Environment); err != nil {
		return err
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Application name:",
		Default: cfg.App,
	}, &cfg.App); err != nil {
		return err
	}

	var azs string
	if err := survey.AskOne(&survey.Select{
		Message: "Availability zones to span:",
		Options: []string{"1", "2", "3"},
		Default: strconv.Itoa(planner.DefaultMaxAZs),
	}, &azs); err != nil {
		return err
	}
	maxAzs, err := strconv.Atoi(azs)
	if err != nil {
		return fmt.Errorf("parsing availability zone count: %w", err)
	}
	cfg.MaxAZs = maxAzs

	if err := survey.AskOne(&survey.Confirm{
		Message: "One NAT gateway per AZ (high availability)?",
		Default: false,
	}, &cfg.EnableHANATGateways); err != nil {
		return err
	}

	if err := survey.AskOne(&survey.Confirm{
		Message: "Enable IPv6 (dual stack)?",
		Default: false,
	}, &cfg.EnableIPv6); err != nil {
		return err
	}

	if err := survey.AskOne(&survey.Confirm{
		Message: "Enable VPC flow logs?",
		Default: cfg.Environment == "production",
	}, &cfg.EnableVPCFlowLogs); err != nil {
		return err
	}

	return nil
}
