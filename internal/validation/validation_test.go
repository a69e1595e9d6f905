package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lex00/cfn-lint-go/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFile_Missing(t *testing.T) {
	_, err := ValidateFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateFile_ParseFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Resources: [not: {a template"), 0o644))

	result, err := ValidateFile(path)
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "parse")
}

func TestValidateFile_CountsResources(t *testing.T) {
	body := `AWSTemplateFormatVersion: "2010-09-09"
Resources:
  LambdaExecutionRole:
    Type: AWS::IAM::Role
    Properties:
      AssumeRolePolicyDocument:
        Version: "2012-10-17"
        Statement:
          - Effect: Allow
            Principal:
              Service: lambda.amazonaws.com
            Action: sts:AssumeRole
`
	path := filepath.Join(t.TempDir(), "template.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	result, err := ValidateFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Resources)
}

func TestFormatMatch(t *testing.T) {
	match := lint.Match{
		Rule:    lint.MatchRule{ID: "E3001"},
		Message: "Invalid resource type",
		Level:   "Error",
	}
	assert.Equal(t, "E3001: Invalid resource type", formatMatch(match))

	match.Location.Path = []any{"Resources", "FetchCostsFunction", "Type"}
	assert.Equal(t, "E3001: Invalid resource type (at Resources/FetchCostsFunction/Type)", formatMatch(match))
}
