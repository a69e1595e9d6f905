// Package infractl provides shared types for the infractl CLI.
//
// infractl is a one-shot operator tool for the EVO UDS serverless stack:
// it wires API Gateway HTTP routes to the deployed Lambda functions and
// regenerates the consolidated CloudFormation template that declares every
// function found in the SAM deployment descriptor.
package infractl

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Template represents a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string               `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string               `json:"Description,omitempty" yaml:"Description,omitempty"`
	Parameters               map[string]Parameter `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Resources                ResourceMap          `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output    `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in the CloudFormation template.
type ResourceDef struct {
	Type       string         `json:"Type" yaml:"Type"`
	Properties map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
}

// Parameter is a CloudFormation template parameter.
type Parameter struct {
	Type        string `json:"Type" yaml:"Type"`
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Default     any    `json:"Default,omitempty" yaml:"Default,omitempty"`
}

// Output is a CloudFormation template output.
type Output struct {
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any    `json:"Value" yaml:"Value"`
}

// ResourceMap holds template resources in insertion order.
//
// CloudFormation itself does not care about resource order, but the
// generator must emit functions in the order they appear in the source
// SAM template, and regeneration on unchanged input must be
// byte-identical. A plain map loses both properties.
type ResourceMap struct {
	names []string
	defs  map[string]ResourceDef
}

// Set adds or replaces a resource. Insertion order is kept; replacing an
// existing name keeps its original position.
func (m *ResourceMap) Set(name string, def ResourceDef) {
	if m.defs == nil {
		m.defs = make(map[string]ResourceDef)
	}
	if _, exists := m.defs[name]; !exists {
		m.names = append(m.names, name)
	}
	m.defs[name] = def
}

// Get returns the resource with the given logical name.
func (m ResourceMap) Get(name string) (ResourceDef, bool) {
	def, ok := m.defs[name]
	return def, ok
}

// Len returns the number of resources.
func (m ResourceMap) Len() int { return len(m.names) }

// Names returns the logical names in insertion order.
func (m ResourceMap) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// MarshalYAML emits the resources as a mapping in insertion order.
func (m ResourceMap) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range m.names {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		val := &yaml.Node{}
		if err := val.Encode(m.defs[name]); err != nil {
			return nil, fmt.Errorf("encoding resource %s: %w", name, err)
		}
		root.Content = append(root.Content, key, val)
	}
	return root, nil
}

// MarshalJSON emits the resources as an object in insertion order.
func (m ResourceMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.defs[name])
		if err != nil {
			return nil, fmt.Errorf("encoding resource %s: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RouteOutcome records what happened to a single route during provisioning.
type RouteOutcome struct {
	Function string `json:"function"`
	Path     string `json:"path"`
	Auth     bool   `json:"auth"`
	Created  bool   `json:"created"`
	Error    string `json:"error,omitempty"`
}

// ProvisionResult is the aggregate outcome of `infractl routes`.
type ProvisionResult struct {
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Routes    []RouteOutcome `json:"routes"`
}

// ValidateResult is the JSON output from `infractl validate`.
type ValidateResult struct {
	Success       bool     `json:"success"`
	Resources     int      `json:"resources"`
	Errors        []string `json:"errors,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
	Informational []string `json:"informational,omitempty"`
}
