package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evo-uds/infractl/internal/config"
	"github.com/evo-uds/infractl/internal/sam"
	"github.com/evo-uds/infractl/internal/template"
)

func newGenerateCmd() *cobra.Command {
	var (
		configPath   string
		inputFile    string
		outputFile   string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the consolidated Lambda CloudFormation template",
		Long: `Generate scans the SAM deployment template for function declarations
and emits one CloudFormation template declaring every discovered function
plus the shared execution role.

The SAM template is parsed structurally, not pattern-matched, so
formatting changes cannot break extraction. Output is deterministic:
rerunning on unchanged input produces byte-identical output.

Examples:
    infractl generate
    infractl generate -i sam/template.yaml -o out.yaml
    infractl generate -o - --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if inputFile != "" {
				cfg.SAMTemplate = inputFile
			}
			if outputFile != "" {
				cfg.Output = outputFile
			}
			return runGenerate(cfg, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: "+config.DefaultFile+" if present)")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "SAM template to scan (default from config)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file, or - for stdout (default from config)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "yaml", "Output format: yaml or json")

	return cmd
}

func runGenerate(cfg config.Config, format string) error {
	funcs, err := sam.ScanFile(cfg.SAMTemplate)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d Lambda functions\n", len(funcs))

	tmpl, err := template.Build(funcs, template.Options{
		Project:      cfg.Project,
		Environment:  cfg.Environment,
		LayerArn:     cfg.LayerArn,
		CodeS3Bucket: cfg.CodeS3Bucket,
		CodeS3Key:    cfg.CodeS3Key,
	})
	if err != nil {
		return fmt.Errorf("building template: %w", err)
	}

	var data []byte
	switch format {
	case "yaml":
		data, err = template.ToYAML(tmpl)
	case "json":
		data, err = template.ToJSON(tmpl)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if cfg.Output == "-" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(cfg.Output, data, 0644); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	fmt.Printf("Generated %s with %d Lambda functions\n", cfg.Output, len(funcs))
	return nil
}
