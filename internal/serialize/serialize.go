// Package serialize converts typed CloudFormation values into plain
// structures safe for both YAML and JSON emission.
//
// Intrinsic types (Ref, Sub, GetAtt) and policy documents declare their
// CloudFormation shape through MarshalJSON. YAML encoding does not honor
// json.Marshaler, so values are round-tripped through JSON once and the
// resulting maps/slices are emitted verbatim in either format.
package serialize

import (
	"encoding/json"
	"fmt"
)

// Value converts v into plain maps, slices, and scalars.
func Value(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializing value: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding serialized value: %w", err)
	}
	return normalizeNumbers(out), nil
}

// Properties converts a property map, preserving keys.
func Properties(props map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(props))
	for k, v := range props {
		plain, err := Value(v)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", k, err)
		}
		out[k] = plain
	}
	return out, nil
}

// normalizeNumbers rewrites float64 values that are whole numbers back to
// int, so Timeout: 30 does not render as 30.0 in YAML.
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, elem := range val {
			val[k] = normalizeNumbers(elem)
		}
		return val
	case []any:
		for i, elem := range val {
			val[i] = normalizeNumbers(elem)
		}
		return val
	case float64:
		if val == float64(int64(val)) {
			return int(val)
		}
		return val
	default:
		return v
	}
}
