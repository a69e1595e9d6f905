// Package template renders the consolidated CloudFormation template for
// all Lambda functions discovered in the SAM deployment descriptor.
package template

import (
	"encoding/json"
	"fmt"

	"github.com/lex00/cloudformation-schema-go/intrinsics"
	"gopkg.in/yaml.v3"

	infractl "github.com/evo-uds/infractl"
	"github.com/evo-uds/infractl/internal/sam"
	"github.com/evo-uds/infractl/internal/serialize"
)

// Options are the preamble values injected into the rendered template.
type Options struct {
	Project      string
	Environment  string
	LayerArn     string
	CodeS3Bucket string
	CodeS3Key    string
}

// RoleName is the logical id of the shared execution role.
const RoleName = "LambdaExecutionRole"

// Fixed per-function settings. Every function in the consolidated
// template shares one runtime and sizing; per-function tuning lives in
// the SAM template, not here.
const (
	functionRuntime = "nodejs20.x"
	functionArch    = "arm64"
	functionTimeout = 30
	functionMemory  = 256
)

// managedPolicyArns are attached to the shared execution role.
var managedPolicyArns = []string{
	"arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole",
	"arn:aws:iam::aws:policy/service-role/AWSLambdaVPCAccessExecutionRole",
	"arn:aws:iam::aws:policy/AmazonBedrockFullAccess",
}

// roleActions is the broad inline permission set. Deliberately wide:
// one role serves every function, trading least-privilege for
// operational simplicity.
var roleActions = []any{
	"logs:*",
	"secretsmanager:*",
	"cognito-idp:*",
	"s3:*",
	"ses:*",
	"sts:*",
	"ce:*",
	"cloudwatch:*",
	"cloudtrail:*",
	"guardduty:*",
	"securityhub:*",
	"iam:*",
	"ec2:Describe*",
	"rds:Describe*",
	"lambda:*",
	"wafv2:*",
}

// Build renders the template for the given functions, in order. An empty
// function list still produces the preamble, role, and outputs.
func Build(funcs []sam.Function, opts Options) (*infractl.Template, error) {
	tmpl := &infractl.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              fmt.Sprintf("%s %s - all %d Lambda functions", opts.Project, opts.Environment, len(funcs)),
		Parameters: map[string]infractl.Parameter{
			"Environment":  {Type: "String", Default: opts.Environment},
			"ProjectName":  {Type: "String", Default: opts.Project},
			"LayerArn":     {Type: "String", Default: opts.LayerArn},
			"CodeS3Bucket": {Type: "String", Default: opts.CodeS3Bucket},
			"CodeS3Key":    {Type: "String", Default: opts.CodeS3Key},
		},
	}

	role, err := executionRole()
	if err != nil {
		return nil, err
	}
	tmpl.Resources.Set(RoleName, role)

	for _, fn := range funcs {
		def, err := functionResource(fn)
		if err != nil {
			return nil, fmt.Errorf("rendering %sFunction: %w", fn.Name, err)
		}
		tmpl.Resources.Set(fn.Name+"Function", def)
	}

	roleArn, err := serialize.Value(intrinsics.GetAtt{LogicalName: RoleName, Attribute: "Arn"})
	if err != nil {
		return nil, err
	}
	layerRef, err := serialize.Value(intrinsics.Ref{LogicalName: "LayerArn"})
	if err != nil {
		return nil, err
	}
	tmpl.Outputs = map[string]infractl.Output{
		"LambdaExecutionRoleArn": {Value: roleArn},
		"LayerArn":               {Value: layerRef},
	}

	return tmpl, nil
}

func executionRole() (infractl.ResourceDef, error) {
	props, err := serialize.Properties(map[string]any{
		"RoleName": intrinsics.Sub{String: "${ProjectName}-${Environment}-lambda-role"},
		"AssumeRolePolicyDocument": PolicyDocument{
			Version: "2012-10-17",
			Statement: []any{PolicyStatement{
				Effect:    "Allow",
				Principal: ServicePrincipal{"lambda.amazonaws.com"},
				Action:    "sts:AssumeRole",
			}},
		},
		"ManagedPolicyArns": managedPolicyArns,
		"Policies": []any{RolePolicy{
			PolicyName: "LambdaPolicy",
			PolicyDocument: PolicyDocument{
				Version: "2012-10-17",
				Statement: []any{PolicyStatement{
					Effect:   "Allow",
					Action:   roleActions,
					Resource: "*",
				}},
			},
		}},
	})
	if err != nil {
		return infractl.ResourceDef{}, fmt.Errorf("rendering execution role: %w", err)
	}
	return infractl.ResourceDef{Type: "AWS::IAM::Role", Properties: props}, nil
}

func functionResource(fn sam.Function) (infractl.ResourceDef, error) {
	props, err := serialize.Properties(map[string]any{
		"FunctionName": intrinsics.Sub{String: "${ProjectName}-${Environment}-" + Kebab(fn.Name)},
		"Runtime":      functionRuntime,
		"Handler":      NormalizeHandler(fn.Handler),
		"Code": map[string]any{
			"S3Bucket": intrinsics.Ref{LogicalName: "CodeS3Bucket"},
			"S3Key":    intrinsics.Ref{LogicalName: "CodeS3Key"},
		},
		"Layers":        []any{intrinsics.Ref{LogicalName: "LayerArn"}},
		"Architectures": []string{functionArch},
		"Timeout":       functionTimeout,
		"MemorySize":    functionMemory,
		"Role":          intrinsics.GetAtt{LogicalName: RoleName, Attribute: "Arn"},
	})
	if err != nil {
		return infractl.ResourceDef{}, err
	}
	return infractl.ResourceDef{Type: "AWS::Lambda::Function", Properties: props}, nil
}

// ToJSON serializes the template to JSON.
func ToJSON(t *infractl.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *infractl.Template) ([]byte, error) {
	return yaml.Marshal(t)
}
