// Package sam extracts Lambda function declarations from a SAM
// deployment template.
//
// The template is walked as parsed YAML rather than scraped with regular
// expressions, so formatting and indentation changes cannot break
// extraction. Document order of the Resources section is preserved.
package sam

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Function is one discovered serverless function declaration.
type Function struct {
	// Name is the logical id with the "Function" suffix stripped,
	// e.g. "FetchCosts" for resource "FetchCostsFunction".
	Name string
	// Handler is the raw handler reference from the template.
	Handler string
}

const serverlessFunctionType = "AWS::Serverless::Function"

// logicalID matches function resource names: a PascalCase identifier
// ending in "Function".
var logicalID = regexp.MustCompile(`^([A-Z][a-zA-Z]+)Function$`)

// ScanFile reads a SAM template from disk and extracts its functions.
func ScanFile(path string) ([]Function, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening SAM template: %w", err)
	}
	defer f.Close()
	return Scan(f)
}

// Scan extracts every AWS::Serverless::Function resource that has a
// Handler property, in document order. A template with no matching
// resources yields an empty slice, not an error.
func Scan(r io.Reader) ([]Function, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing SAM template: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("SAM template root is not a mapping")
	}

	resources := mapValue(root, "Resources")
	if resources == nil || resources.Kind != yaml.MappingNode {
		return nil, nil
	}

	var funcs []Function
	for i := 0; i+1 < len(resources.Content); i += 2 {
		key, val := resources.Content[i], resources.Content[i+1]
		if !logicalID.MatchString(key.Value) || val.Kind != yaml.MappingNode {
			continue
		}
		if typ := mapValue(val, "Type"); typ == nil || typ.Value != serverlessFunctionType {
			continue
		}
		props := mapValue(val, "Properties")
		if props == nil || props.Kind != yaml.MappingNode {
			continue
		}
		handler := mapValue(props, "Handler")
		if handler == nil || handler.Value == "" {
			continue
		}
		funcs = append(funcs, Function{
			Name:    strings.TrimSuffix(key.Value, "Function"),
			Handler: handler.Value,
		})
	}
	return funcs, nil
}

// mapValue returns the value node for key in a mapping node, or nil.
func mapValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
