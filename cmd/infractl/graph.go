package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evo-uds/infractl/internal/config"
	"github.com/evo-uds/infractl/internal/graph"
)

func newGraphCmd() *cobra.Command {
	var (
		configPath   string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate a DOT graph of the configured routes",
		Long: `Generate a DOT or Mermaid graph of the route table: the HTTP API
fanning out to routes and the Lambda function behind each one.

Render with Graphviz:
    infractl graph | dot -Tpng -o routes.png

Or in GitHub markdown (Mermaid format):
    infractl graph -f mermaid`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runGraph(cfg, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: "+config.DefaultFile+" if present)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")

	return cmd
}

func runGraph(cfg config.Config, format string) error {
	if len(cfg.Routes) == 0 {
		return fmt.Errorf("no routes configured")
	}

	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	gen := &graph.Generator{Format: graphFormat}
	return gen.Generate(cfg, os.Stdout)
}
