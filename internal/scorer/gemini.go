package scorer

import (
	"context"

	"google.golang.org/genai"
)

// responseSchema constrains the model output to the rating object, which
// keeps the parsing path boring: no prose, no surprise fields.
var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"priority": {
			Type:        genai.TypeInteger,
			Description: "Urgency from 1 (ignore) to 5 (urgent).",
		},
		"reason": {
			Type:        genai.TypeString,
			Description: "One short sentence explaining the rating.",
		},
		"action_needed": {
			Type:        genai.TypeBoolean,
			Description: "Whether the recipient must respond or act.",
		},
	},
	Required: []string{"priority", "reason", "action_needed"},
}

// geminiGenerator is the production generator backed by the Gemini API.
type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema,
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
