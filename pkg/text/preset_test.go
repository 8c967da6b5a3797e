package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPresetReplacer(t *testing.T) *SimpleTextReplacer {
	t.Helper()
	rules, err := Preset(PresetGenAIVertexAI)
	require.NoError(t, err)
	replacer, err := NewSimpleTextReplacer(rules)
	require.NoError(t, err)
	return replacer
}

func TestPresetGenAIVertexAI(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "client_constructor_across_lines",
			content: "\tgenaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{\n\t\tAPIKey:  cfg.GeminiAPIKey,\n\t\tBackend: genai.BackendGeminiAPI,\n\t})\n",
			want:    "\tgenaiClient, err := vertexai.NewVertexAIClient(ctx, cfg.VertexAIProject, cfg.VertexAILocation)\n",
		},
		{
			name:    "part_from_text",
			content: "parts := []genai.Part{genai.NewPartFromText(prompt)}",
			want:    "parts := []genai.Part{genai.Text(prompt)}",
		},
		{
			name:    "inline_blob",
			content: `parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: imgData}})`,
			want:    `parts = append(parts, genai.ImageData("image/jpeg", imgData))`,
		},
		{
			name:    "guard_then_field_access",
			content: "\tfor _, part := range parts {\n\t\tif part.InlineData != nil && len(part.InlineData.Data) > 0 {\n\t\t\tdata := part.InlineData.Data\n\t\t\tuse(data)\n\t\t}\n\t}\n",
			want:    "\tfor _, part := range parts {\n\t\tif blob, ok := part.(genai.Blob); ok {\n\t\t\tif len(blob.Data) > 0 {\n\t\t\tdata := blob.Data\n\t\t\tuse(data)\n\t\t}\n\t}\n",
		},
		{
			name:    "unrelated_content",
			content: "package main\n\nfunc main() {}\n",
			want:    "package main\n\nfunc main() {}\n",
		},
	}

	replacer := newPresetReplacer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := replacer.Apply(tt.content)
			assert.Equal(t, tt.want, result.ModifiedContent)
			assert.Equal(t, tt.content != tt.want, result.WasModified)
		})
	}
}

func TestPresetGenAIVertexAI_Idempotent(t *testing.T) {
	content := "" +
		"genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{\n\tAPIKey: cfg.GeminiAPIKey,\n\tBackend: genai.BackendGeminiAPI,\n})\n" +
		"p := genai.NewPartFromText(s)\n" +
		"b := &genai.Part{InlineData: &genai.Blob{MIMEType: \"image/png\", Data: raw}}\n" +
		"if part.InlineData != nil && len(part.InlineData.Data) > 0 {\n\tx := part.InlineData.Data\n}\n"

	replacer := newPresetReplacer(t)
	first := replacer.Apply(content)
	require.True(t, first.WasModified)

	second := replacer.Apply(first.ModifiedContent)
	assert.False(t, second.WasModified, "second pass should find nothing to do")
	assert.Equal(t, 0, second.ReplacementCount)
	assert.Equal(t, first.ModifiedContent, second.ModifiedContent)
}

func TestPresetGenAIVertexAI_OrderMatters(t *testing.T) {
	rules, err := Preset(PresetGenAIVertexAI)
	require.NoError(t, err)

	// swap blob-guard and blob-data
	rules[3], rules[4] = rules[4], rules[3]
	replacer, err := NewSimpleTextReplacer(rules)
	require.NoError(t, err)

	result := replacer.Apply("if part.InlineData != nil && len(part.InlineData.Data) > 0 {")
	assert.Equal(t, "if part.InlineData != nil && len(blob.Data) > 0 {", result.ModifiedContent)
	assert.NotContains(t, result.ModifiedContent, "part.(genai.Blob)")
}

func TestPreset(t *testing.T) {
	_, err := Preset("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown preset "nope"`)

	assert.Equal(t, []string{PresetGenAIVertexAI}, PresetNames())

	a, err := Preset(PresetGenAIVertexAI)
	require.NoError(t, err)
	a[0].Name = "changed"
	b, err := Preset(PresetGenAIVertexAI)
	require.NoError(t, err)
	assert.Equal(t, "vertexai-client", b[0].Name, "Preset should return a copy")
}
