package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	infractl "github.com/evo-uds/infractl"
	"github.com/evo-uds/infractl/internal/config"
	"github.com/evo-uds/infractl/internal/validation"
)

func newValidateCmd() *cobra.Command {
	var (
		configPath   string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "validate [template]",
		Short: "Validate a generated CloudFormation template",
		Long: `Validate parses a CloudFormation template and lints it with cfn-lint.

Without an argument the configured generate output path is checked.
Warnings are reported but do not fail validation; errors do.

Examples:
    infractl validate
    infractl validate sam/production-lambdas-only.yaml
    infractl validate --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := config.Load(configPath)
				if err != nil {
					return err
				}
				path = cfg.Output
			}
			return runValidate(path, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: "+config.DefaultFile+" if present)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runValidate(path, format string) error {
	result, err := validation.ValidateFile(path)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return outputValidateResult(result, format)
}

func outputValidateResult(result *infractl.ValidateResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Success {
			fmt.Printf("Validation passed: %d resources OK", result.Resources)
			if len(result.Warnings) > 0 {
				fmt.Printf(" (%d warnings)", len(result.Warnings))
			}
			fmt.Println()
			for _, w := range result.Warnings {
				fmt.Printf("  WARNING: %s\n", w)
			}
			return nil
		}

		fmt.Println("Validation FAILED:")
		for _, e := range result.Errors {
			fmt.Printf("  ERROR: %s\n", e)
		}
		for _, w := range result.Warnings {
			fmt.Printf("  WARNING: %s\n", w)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(2) // Exit code 2 for issues found
	}
	return nil
}
