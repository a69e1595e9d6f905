package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	infractl "github.com/evo-uds/infractl"
	"github.com/evo-uds/infractl/internal/config"
	"github.com/evo-uds/infractl/internal/provision"
)

func newRoutesCmd() *cobra.Command {
	var (
		configPath   string
		delay        time.Duration
		preview      bool
		verbose      bool
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Provision API Gateway routes for the configured Lambdas",
		Long: `Routes creates one AWS_PROXY integration, one POST route, and one
invoke permission per configured entry, pausing between entries to stay
under the provider rate limit.

Every step checks for the existing resource first, so reruns converge:
an already-wired route is verified and counted as success. A route that
fails is logged and skipped; the batch continues.

Examples:
    infractl routes
    infractl routes --preview
    infractl routes --config staging.yaml --delay 1s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("delay") {
				cfg.Delay = config.Duration(delay)
			}
			return runRoutes(cfg, preview, verbose, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: "+config.DefaultFile+" if present)")
	cmd.Flags().DurationVar(&delay, "delay", 500*time.Millisecond, "Pause between routes")
	cmd.Flags().BoolVar(&preview, "preview", false, "Log what would be created without calling AWS")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug-level logging")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runRoutes(cfg config.Config, preview, verbose bool, format string) error {
	logger, err := setupLogger(verbose)
	if err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api, fns, err := provision.NewClients(ctx, cfg)
	if err != nil {
		return err
	}

	prov := provision.New(cfg, api, fns, logger)
	prov.Preview = preview

	fmt.Printf("Provisioning %d routes on API %s...\n", len(cfg.Routes), cfg.APIID)
	result, err := prov.Provision(ctx)
	if err != nil {
		// Cancelled mid-batch: already-created routes stay in place.
		outputRoutesResult(result, format)
		return err
	}
	return outputRoutesResult(result, format)
}

func outputRoutesResult(result *infractl.ProvisionResult, format string) error {
	if result == nil {
		return nil
	}
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		for _, rt := range result.Routes {
			switch {
			case rt.Error != "":
				fmt.Printf("  FAIL %s -> %s: %s\n", rt.Path, rt.Function, rt.Error)
			case rt.Created:
				fmt.Printf("  ok   %s -> %s (created)\n", rt.Path, rt.Function)
			default:
				fmt.Printf("  ok   %s -> %s (already wired)\n", rt.Path, rt.Function)
			}
		}
		fmt.Printf("\nDone: %d succeeded, %d failed of %d routes\n", result.Succeeded, result.Failed, result.Total)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}

// setupLogger builds the operational logger: human console output,
// debug level when verbose.
func setupLogger(verbose bool) (*zap.Logger, error) {
	var zapCfg zap.Config
	if verbose {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return zapCfg.Build()
}
