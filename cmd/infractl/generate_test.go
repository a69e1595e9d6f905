package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evo-uds/infractl/internal/config"
)

const sampleSAM = `AWSTemplateFormatVersion: "2010-09-09"
Transform: AWS::Serverless-2016-10-31
Resources:
  FetchCostsFunction:
    Type: AWS::Serverless::Function
    Properties:
      Handler: dist/fetchCosts.handler
      CodeUri: .
  ApiGatewayApi:
    Type: AWS::Serverless::Api
    Properties:
      StageName: prod
  ListUsersFunction:
    Type: AWS::Serverless::Function
    Properties:
      Handler: listUsers.handler
      CodeUri: .
`

func generateConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.SAMTemplate = filepath.Join(dir, "template.yaml")
	cfg.Output = filepath.Join(dir, "out.yaml")
	require.NoError(t, os.WriteFile(cfg.SAMTemplate, []byte(sampleSAM), 0o644))
	return cfg
}

func TestRunGenerate(t *testing.T) {
	cfg := generateConfig(t)

	require.NoError(t, runGenerate(cfg, "yaml"))

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "FetchCostsFunction:")
	assert.Contains(t, text, "ListUsersFunction:")
	assert.Contains(t, text, "LambdaExecutionRole:")
	// Handler prefix stripped, SAM-only resources dropped.
	assert.Contains(t, text, "fetchCosts.handler")
	assert.NotContains(t, text, "dist/")
	assert.NotContains(t, text, "ApiGatewayApi")
}

func TestRunGenerate_Deterministic(t *testing.T) {
	cfg := generateConfig(t)

	require.NoError(t, runGenerate(cfg, "yaml"))
	first, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	require.NoError(t, runGenerate(cfg, "yaml"))
	second, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunGenerate_JSON(t *testing.T) {
	cfg := generateConfig(t)
	cfg.Output = strings.TrimSuffix(cfg.Output, ".yaml") + ".json"

	require.NoError(t, runGenerate(cfg, "json"))

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{"))
}

func TestRunGenerate_UnknownFormat(t *testing.T) {
	cfg := generateConfig(t)
	assert.Error(t, runGenerate(cfg, "toml"))
}

func TestRunGenerate_MissingInput(t *testing.T) {
	cfg := config.Default()
	cfg.SAMTemplate = filepath.Join(t.TempDir(), "absent.yaml")
	assert.Error(t, runGenerate(cfg, "yaml"))
}

func TestRunInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "infractl.yaml")

	require.NoError(t, runInit(path))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().APIID, cfg.APIID)
	assert.Len(t, cfg.Routes, 27)

	// Refuses to clobber an existing file.
	assert.Error(t, runInit(path))
}
