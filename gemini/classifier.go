// Package gemini implements the oracle document classifier using Google
// Gemini. It is consulted only for candidates the rule-based classifier
// marks "other"; the closed category set is enforced through a constrained
// response schema.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/knakagawa/shingidoc"
)

const model = "gemini-2.5-flash"

var _ shingidoc.Classifier = (*Classifier)(nil)

// Classifier implements shingidoc.Classifier using Google Gemini.
type Classifier struct {
	client *genai.Client
}

// NewClassifier creates a new Classifier.
func NewClassifier(client *genai.Client) *Classifier {
	return &Classifier{client: client}
}

// Classify asks the model to categorize one document link from its title,
// filename, and URL.
func (c *Classifier) Classify(ctx context.Context, text, filename, url string) (shingidoc.Category, error) {
	if text == "" && filename == "" && url == "" {
		return "", shingidoc.Errorf(shingidoc.EINVALID, "nothing to classify")
	}

	prompt := BuildUserPrompt(text, filename, url)
	config := BuildConfig()

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", shingidoc.Errorf(shingidoc.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(result.Text())
}

// BuildConfig returns the GenerateContentConfig for classification calls.
// The response schema pins the output to the closed category enum.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)

	categories := make([]string, 0, len(shingidoc.Categories()))
	for _, cat := range shingidoc.Categories() {
		categories = append(categories, string(cat))
	}

	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "Classify Japanese government PDF links. " +
					"Use title/filename/url only. " +
					"If title indicates substantive material like '資料', " +
					"'説明資料', '事務局資料', or '○○省/府/庁説明資料', prefer 'material'. " +
					"But if title clearly says '参考資料', classify as 'reference'.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:     genai.TypeObject,
			Required: []string{"category"},
			Properties: map[string]*genai.Schema{
				"category": {
					Type: genai.TypeString,
					Enum: categories,
				},
			},
		},
	}
}

// BuildUserPrompt builds the user prompt for one link.
func BuildUserPrompt(text, filename, url string) string {
	payload, _ := json.Marshal(map[string]string{
		"title":    text,
		"filename": filename,
		"url":      url,
	})
	return fmt.Sprintf("Classify this document link:\n%s", payload)
}

// ParseResponse extracts the category from the model's JSON response.
// Anything outside the closed set is rejected.
func ParseResponse(raw string) (shingidoc.Category, error) {
	var resp struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return "", shingidoc.Errorf(shingidoc.EINTERNAL, "malformed classifier response: %v", err)
	}

	cat := shingidoc.Category(resp.Category)
	if !cat.Valid() {
		return "", shingidoc.Errorf(shingidoc.EINTERNAL, "classifier returned unknown category %q", resp.Category)
	}
	return cat, nil
}
