// Package validation checks a generated CloudFormation template:
// a structural parse with cloudformation-schema-go, then cfn-lint-go as
// a library for rule-level findings.
package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"
	"github.com/lex00/cloudformation-schema-go/template"

	infractl "github.com/evo-uds/infractl"
)

// ValidateFile validates the template at path. Lint warnings do not fail
// validation; parse failures and lint errors do.
func ValidateFile(path string) (*infractl.ValidateResult, error) {
	result := &infractl.ValidateResult{}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	tmpl, err := template.ParseTemplateContent(content, path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("parse: %v", err))
		return result, nil
	}
	result.Resources = len(tmpl.Resources)

	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("lint: %v", err))
		return result, nil
	}

	for _, match := range matches {
		formatted := formatMatch(match)
		switch match.Level {
		case "Error":
			result.Errors = append(result.Errors, formatted)
		case "Warning":
			result.Warnings = append(result.Warnings, formatted)
		default:
			result.Informational = append(result.Informational, formatted)
		}
	}

	result.Success = len(result.Errors) == 0
	return result, nil
}

// formatMatch renders a cfn-lint match for display.
func formatMatch(match lint.Match) string {
	pathStr := ""
	if len(match.Location.Path) > 0 {
		parts := make([]string, len(match.Location.Path))
		for i, p := range match.Location.Path {
			parts[i] = fmt.Sprintf("%v", p)
		}
		pathStr = strings.Join(parts, "/")
	}

	if pathStr != "" {
		return fmt.Sprintf("%s: %s (at %s)", match.Rule.ID, match.Message, pathStr)
	}
	return fmt.Sprintf("%s: %s", match.Rule.ID, match.Message)
}
