package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"os"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/joseph-ayodele/court-orders/internal/llm/openai"
)

const visionInstruction = "Extract all text from this court order page. Return plain text only."

// VisionRecognizer sends each page image to a vision-capable chat model.
type VisionRecognizer struct {
	API   openai.ChatCompleter
	Model string // default gpt-4o
}

func (v VisionRecognizer) Recognize(ctx context.Context, page PageImage) (string, error) {
	if v.API == nil {
		return "", ErrUnavailable
	}
	model := v.Model
	if model == "" {
		model = "gpt-4o"
	}
	url, err := readAsDataURL(page.Path)
	if err != nil {
		return "", fmt.Errorf("page %d: %w", page.Number, err)
	}

	resp, err := v.API.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       model,
		Temperature: math.SmallestNonzeroFloat32,
		Messages: []goopenai.ChatCompletionMessage{{
			Role: goopenai.ChatMessageRoleUser,
			MultiContent: []goopenai.ChatMessagePart{
				{Type: goopenai.ChatMessagePartTypeText, Text: visionInstruction},
				{
					Type: goopenai.ChatMessagePartTypeImageURL,
					ImageURL: &goopenai.ChatMessageImageURL{
						URL:    url,
						Detail: goopenai.ImageURLDetailHigh,
					},
				},
			},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("vision page %d: %w", page.Number, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("vision page %d: no choices", page.Number)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func readAsDataURL(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(b), nil
}
