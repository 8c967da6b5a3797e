package text

import (
	"sort"

	"gitlab.com/tozd/go/errors"
)

// PresetGenAIVertexAI migrates google genai Gemini API call sites to the Vertex AI client wrapper
const PresetGenAIVertexAI = "genai-vertexai"

var presets = map[string][]ReplacementRule{
	PresetGenAIVertexAI: {
		{
			Name:    "vertexai-client",
			Pattern: `genaiClient, err := genai\.NewClient\(ctx, &genai\.ClientConfig\{\s*APIKey:\s*cfg\.GeminiAPIKey,\s*Backend:\s*genai\.BackendGeminiAPI,\s*\}\)`,
			Replace: `genaiClient, err := vertexai.NewVertexAIClient(ctx, cfg.VertexAIProject, cfg.VertexAILocation)`,
		},
		{
			Name:    "part-from-text",
			Literal: `genai.NewPartFromText(`,
			Replace: `genai.Text(`,
		},
		{
			Name:    "inline-blob",
			Pattern: `&genai\.Part\{\s*InlineData:\s*&genai\.Blob\{\s*MIMEType:\s*"([^"]+)",\s*Data:\s*([^,\}]+),?\s*\}\s*\}`,
			Replace: `genai.ImageData("${1}", ${2})`,
		},
		// must run before blob-data: its pattern contains part.InlineData.Data
		{
			Name:    "blob-guard",
			Pattern: `if part\.InlineData != nil && len\(part\.InlineData\.Data\) > 0 \{`,
			Replace: "if blob, ok := part.(genai.Blob); ok {\n\t\t\tif len(blob.Data) > 0 {",
		},
		{
			Name:    "blob-data",
			Literal: `part.InlineData.Data`,
			Replace: `blob.Data`,
		},
	},
}

// PresetFiles are the call sites the genai-vertexai preset was written for
var PresetFiles = map[string][]string{
	PresetGenAIVertexAI: {
		"modules/beauty/service.go",
		"modules/cartoon/service.go",
		"modules/cinema/service.go",
		"modules/eats/service.go",
		"modules/fashion/service.go",
		"modules/generate-image/service.go",
		"modules/modify/worker.go",
		"modules/multiview/service.go",
		"modules/multiview/worker.go",
		"modules/submodule/nanobanana/service.go",
		"modules/unified-prompt/landing/service.go",
		"modules/unified-prompt/studio/service.go",
	},
}

// Preset returns a copy of the named rule list
func Preset(name string) ([]ReplacementRule, error) {
	rules, ok := presets[name]
	if !ok {
		return nil, errors.Errorf("unknown preset %q", name)
	}
	out := make([]ReplacementRule, len(rules))
	copy(out, rules)
	return out, nil
}

// PresetNames lists the registered presets, sorted
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
