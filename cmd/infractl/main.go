// Command infractl operates the EVO UDS serverless stack:
//
//	infractl routes               Wire API Gateway routes to Lambdas
//	infractl generate             Regenerate the consolidated CF template
//	infractl validate             Lint a generated template
//	infractl graph                Render the route table as DOT/Mermaid
//	infractl watch                Regenerate on SAM template changes
//	infractl init                 Write a starter config file
//	infractl version              Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "infractl",
		Short: "Provision API Gateway routes and generate Lambda CloudFormation",
		Long: `infractl manages the serverless plumbing of the EVO UDS stack.

It wires HTTP API routes to deployed Lambda functions (idempotently, so
reruns converge) and scrapes the SAM deployment template to emit one
consolidated CloudFormation template covering every function plus the
shared execution role.`,
	}

	rootCmd.AddCommand(
		newRoutesCmd(),
		newGenerateCmd(),
		newValidateCmd(),
		newGraphCmd(),
		newWatchCmd(),
		newInitCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("infractl %s\n", getVersion())
		},
	}
}
