package serialize

import (
	"testing"

	"github.com/lex00/cloudformation-schema-go/intrinsics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Intrinsics(t *testing.T) {
	ref, err := Value(intrinsics.Ref{LogicalName: "CodeS3Bucket"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Ref": "CodeS3Bucket"}, ref)

	sub, err := Value(intrinsics.Sub{String: "${ProjectName}-role"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Fn::Sub": "${ProjectName}-role"}, sub)

	att, err := Value(intrinsics.GetAtt{LogicalName: "Role", Attribute: "Arn"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Fn::GetAtt": []any{"Role", "Arn"}}, att)
}

func TestValue_NumbersStayIntegral(t *testing.T) {
	out, err := Value(map[string]any{
		"Timeout":    30,
		"MemorySize": 256,
		"Ratio":      1.5,
	})
	require.NoError(t, err)

	props := out.(map[string]any)
	assert.Equal(t, 30, props["Timeout"])
	assert.Equal(t, 256, props["MemorySize"])
	assert.Equal(t, 1.5, props["Ratio"])
}

func TestValue_NestedSlices(t *testing.T) {
	out, err := Value([]any{intrinsics.Ref{LogicalName: "LayerArn"}, 30})
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"Ref": "LayerArn"}, 30}, out)
}

func TestProperties(t *testing.T) {
	props, err := Properties(map[string]any{
		"Handler": "index.handler",
		"Role":    intrinsics.GetAtt{LogicalName: "Role", Attribute: "Arn"},
	})
	require.NoError(t, err)
	assert.Equal(t, "index.handler", props["Handler"])
	assert.Equal(t, map[string]any{"Fn::GetAtt": []any{"Role", "Arn"}}, props["Role"])
}

func TestValue_Unserializable(t *testing.T) {
	_, err := Value(func() {})
	assert.Error(t, err)
}
