package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/eliodevbr/vpcforge/internal/validation"
)

// newWatchCmd creates the "watch" subcommand for auto-rebuilding on
// configuration changes.
func newWatchCmd() *cobra.Command {
	var (
		configFile   string
		validateOnly bool
		debounce     time.Duration
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Auto-rebuild when the configuration changes",
		Long: `Watch monitors the configuration file and rebuilds the template on
every change:

- Validates the configuration on each change
- Rebuilds the template if validation passes (unless --validate-only)
- Debounces rapid changes to avoid excessive rebuilds

Examples:
    vpcforge watch -c network.yaml -o template.json
    vpcforge watch -c network.yaml --validate-only
    vpcforge watch -c network.yaml --debounce 1s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(watchOptions{
				configFile:   configFile,
				validateOnly: validateOnly,
				debounce:     debounce,
				outputFormat: outputFormat,
				outputFile:   outputFile,
			})
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", defaultConfigFile, "Network configuration file")
	cmd.Flags().BoolVar(&validateOnly, "validate-only", false, "Only validate, skip build")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format for build: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for build (default: stdout)")

	return cmd
}

type watchOptions struct {
	configFile   string
	validateOnly bool
	debounce     time.Duration
	outputFormat string
	outputFile   string
}

// runWatch monitors the configuration file and revalidates/rebuilds on
// changes. Editors often replace files on save, so the parent directory
// is watched and events filtered to the configuration file itself.
func runWatch(opts watchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	absConfig, err := filepath.Abs(opts.configFile)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(absConfig)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absConfig), err)
	}
	fmt.Printf("Watching: %s\n", absConfig)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Running initial validate/build...")
	validateAndBuild(opts)

	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			eventPath, err := filepath.Abs(event.Name)
			if err != nil || eventPath != absConfig {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			// Debounce: reset timer on each change.
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			fmt.Printf("\n[%s] Change detected, rebuilding...\n", time.Now().Format("15:04:05"))
			validateAndBuild(opts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-sigChan:
			fmt.Println("\nStopping watch...")
			return nil
		}
	}
}

// validateAndBuild validates the configuration and, when it passes,
// rebuilds the template.
func validateAndBuild(opts watchOptions) {
	result, err := validation.ValidateConfig(opts.configFile, validation.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validate error: %v\n", err)
		return
	}
	if !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "Error: %s\n", e)
		}
		fmt.Println("Validation failed, skipping build")
		return
	}

	fmt.Println("Validation passed")

	if opts.validateOnly {
		return
	}

	tmpl, err := synthesize(opts.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Build error: %v\n", err)
		return
	}

	if opts.outputFile == "" {
		fmt.Printf("Build successful, %d resources\n", len(tmpl.Resources))
		return
	}
	if err := outputTemplate(tmpl, opts.outputFormat, opts.outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return
	}
	fmt.Printf("Build successful, wrote %s\n", opts.outputFile)
}
