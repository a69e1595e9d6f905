// Package config holds the operator-controlled settings for infractl.
//
// Values resolve in three layers: built-in defaults for the production
// stack, then an optional YAML file, then INFRACTL_* environment
// variables. Nothing is baked into command logic.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file loaded when --config is not given.
const DefaultFile = "infractl.yaml"

// Route binds a Lambda function to an HTTP API path.
// Function is the short name; the deployed name is
// "<project>-<environment>-<function>".
type Route struct {
	Function string `yaml:"function"`
	Path     string `yaml:"path"`
	Auth     bool   `yaml:"auth"`
}

// Duration wraps time.Duration so YAML configs can say "500ms".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	v, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML emits the duration string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config carries everything infractl needs to talk to the stack.
type Config struct {
	Project     string `yaml:"project"`
	Environment string `yaml:"environment"`
	Region      string `yaml:"region"`
	AccountID   string `yaml:"account_id"`
	Profile     string `yaml:"profile"`

	APIID        string `yaml:"api_id"`
	AuthorizerID string `yaml:"authorizer_id"`

	LayerArn     string `yaml:"layer_arn"`
	CodeS3Bucket string `yaml:"code_s3_bucket"`
	CodeS3Key    string `yaml:"code_s3_key"`

	SAMTemplate string `yaml:"sam_template"`
	Output      string `yaml:"output"`

	Delay Duration `yaml:"delay"`

	Routes []Route `yaml:"routes"`
}

// Default returns the built-in production settings, including the full
// route table.
func Default() Config {
	return Config{
		Project:      "evo-uds-v3",
		Environment:  "production",
		Region:       "us-east-1",
		AccountID:    "523115032346",
		Profile:      "EVO_PRODUCTION",
		APIID:        "w5gyvgfskh",
		AuthorizerID: "shn0ze",
		LayerArn:     "arn:aws:lambda:us-east-1:523115032346:layer:evo-uds-v3-production-deps:3",
		CodeS3Bucket: "evo-sam-artifacts-523115032346",
		CodeS3Key:    "lambda-code/lambda-code-prod-v2.zip",
		SAMTemplate:  "sam/template.yaml",
		Output:       "sam/production-lambdas-only.yaml",
		Delay:        Duration(500 * time.Millisecond),
		Routes:       defaultRoutes(),
	}
}

// Load resolves the configuration. An explicit path must exist; the
// default file is optional.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; defaults apply.
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv("INFRACTL_" + key); ok {
			*dst = v
		}
	}
	setString(&c.Project, "PROJECT")
	setString(&c.Environment, "ENVIRONMENT")
	setString(&c.Region, "REGION")
	setString(&c.AccountID, "ACCOUNT_ID")
	setString(&c.Profile, "PROFILE")
	setString(&c.APIID, "API_ID")
	setString(&c.AuthorizerID, "AUTHORIZER_ID")
	setString(&c.LayerArn, "LAYER_ARN")
	setString(&c.CodeS3Bucket, "CODE_S3_BUCKET")
	setString(&c.CodeS3Key, "CODE_S3_KEY")
	setString(&c.SAMTemplate, "SAM_TEMPLATE")
	setString(&c.Output, "OUTPUT")

	if v, ok := os.LookupEnv("INFRACTL_DELAY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.Delay = Duration(d)
		}
	}
}

// FunctionName returns the deployed name for a short function name.
func (c Config) FunctionName(fn string) string {
	return fmt.Sprintf("%s-%s-%s", c.Project, c.Environment, fn)
}

// FunctionArn returns the invocation ARN for a short function name.
func (c Config) FunctionArn(fn string) string {
	return fmt.Sprintf("arn:aws:lambda:%s:%s:function:%s", c.Region, c.AccountID, c.FunctionName(fn))
}

// SourceArn returns the execute-api ARN wildcard scoping invoke
// permissions to this HTTP API.
func (c Config) SourceArn() string {
	return fmt.Sprintf("arn:aws:execute-api:%s:%s:%s/*/*", c.Region, c.AccountID, c.APIID)
}
