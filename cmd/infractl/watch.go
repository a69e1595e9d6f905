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

	"github.com/evo-uds/infractl/internal/config"
)

// newWatchCmd creates the "watch" subcommand for auto-regenerating on
// SAM template changes.
func newWatchCmd() *cobra.Command {
	var (
		configPath   string
		debounce     time.Duration
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the CloudFormation template on SAM changes",
		Long: `Watch monitors the SAM deployment template and regenerates the
consolidated CloudFormation template whenever it changes. Rapid changes
are debounced to avoid excessive regeneration.

Examples:
    infractl watch
    infractl watch --debounce 1s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runWatch(cfg, debounce, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: "+config.DefaultFile+" if present)")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "yaml", "Output format: yaml or json")

	return cmd
}

// runWatch monitors the SAM template and regenerates on changes.
func runWatch(cfg config.Config, debounce time.Duration, format string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	// Watch the directory, not the file: editors replace files on save,
	// which drops a file-level watch.
	samPath, err := filepath.Abs(cfg.SAMTemplate)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(samPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(samPath), err)
	}
	fmt.Printf("Watching: %s\n", samPath)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Running initial generate...")
	if err := runGenerate(cfg, format); err != nil {
		fmt.Fprintf(os.Stderr, "Generate error: %v\n", err)
	}

	var debounceTimer *time.Timer
	regenChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			name, err := filepath.Abs(event.Name)
			if err != nil || name != samPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Debounce: reset timer on each change.
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				select {
				case regenChan <- struct{}{}:
				default:
				}
			})

		case <-regenChan:
			fmt.Printf("\n[%s] Change detected, regenerating...\n", time.Now().Format("15:04:05"))
			if err := runGenerate(cfg, format); err != nil {
				fmt.Fprintf(os.Stderr, "Generate error: %v\n", err)
			}

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
