package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/easynewsgr/easynews/internal/category"
	"github.com/easynewsgr/easynews/internal/logger"
)

const classifyInstructions = `Κατατάσσεις ειδήσεις σε μία από τις σταθερές κατηγορίες.
Διάλεξε την κατηγορία που ταιριάζει καλύτερα στο άρθρο.
"serious" είναι πολιτική, οικονομία, κοινωνία και γενικές ειδήσεις.
Απάντησε μόνο με το JSON που ζητείται.`

// ClassificationResult is always a valid member of the taxonomy with a
// confidence clamped into [0,1].
type ClassificationResult struct {
	Category   category.Category
	Confidence float64
	Reason     string
	Fallback   bool
}

type classifyPayload struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"brief_reason"`
}

// Classify maps the article onto the taxonomy via schema-constrained
// model output. It never returns an error: call failures, schema
// violations and out-of-taxonomy categories all resolve to the fallback
// category with confidence 0.
func (c *Client) Classify(ctx context.Context, title, simpleText, rawText string, fallback category.Category) ClassificationResult {
	if title == "" {
		title = "Είδηση"
	}
	prompt := fmt.Sprintf("%s\n\nΤίτλος: %s\n\nΑπλοποιημένο κείμενο:\n%s\n\nΑρχικό κείμενο (προαιρετικά):\n%s",
		classifyInstructions, title, simpleText, rawText)

	out, err := c.generateWithRetry(ctx, prompt, func(m *genai.GenerativeModel) {
		m.ResponseMIMEType = "application/json"
		m.ResponseSchema = &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"category":     {Type: genai.TypeString, Enum: category.KeyStrings()},
				"confidence":   {Type: genai.TypeNumber},
				"brief_reason": {Type: genai.TypeString},
			},
			Required: []string{"category", "confidence", "brief_reason"},
		}
	})
	if err != nil {
		logger.Warn("classification failed, using fallback", "title", title, "error", err)
		return fallbackResult(fallback, "model call failed")
	}

	return parseClassification(out, fallback)
}

// parseClassification validates the model JSON against the taxonomy.
func parseClassification(raw string, fallback category.Category) ClassificationResult {
	var payload classifyPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		return fallbackResult(fallback, "JSON parse fallback")
	}

	cat := category.Category(payload.Category)
	if !cat.Valid() {
		return fallbackResult(fallback, "JSON parse fallback")
	}

	return ClassificationResult{
		Category:   cat,
		Confidence: clamp01(payload.Confidence),
		Reason:     strings.TrimSpace(payload.Reason),
	}
}

func fallbackResult(fallback category.Category, reason string) ClassificationResult {
	return ClassificationResult{Category: fallback, Confidence: 0, Reason: reason, Fallback: true}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
