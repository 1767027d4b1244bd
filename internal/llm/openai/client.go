package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/joseph-ayodele/court-orders/constants"
	"github.com/joseph-ayodele/court-orders/internal/llm"
)

// InferFields implements llm.FieldInferencer with a JSON-object chat completion.
// The returned Inference has passed schema validation but not the national_id /
// action acceptance rules; callers apply llm.ValidateInference.
func (c *Client) InferFields(ctx context.Context, text string) (llm.Inference, error) {
	rid := uuid.New().String()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	c.logger.Info("llm.infer.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(text),
	)

	// temperature is omitempty in the request type; a zero would fall back to the API default
	temp := c.cfg.Temperature
	if temp == 0 {
		temp = math.SmallestNonzeroFloat32
	}

	req := goopenai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: temp,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: llm.SystemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: llm.BuildUserPrompt(text, constants.ActionNames(), c.cfg.MaxTextChars)},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("llm.infer.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.ErrorInference(err), fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		c.logger.Error("llm.infer.no_choices",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		err := fmt.Errorf("no choices in openai response")
		return llm.ErrorInference(err), err
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	cleaned, _, err := llm.NormalizeInferenceJSON([]byte(content), c.logger)
	if err != nil {
		c.logger.Error("llm.infer.decode_error",
			"req_id", rid, "error", err, "content", truncate(content, 512),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.ErrorInference(err), err
	}
	schema := llm.BuildInferenceJSONSchema()
	if err := llm.ValidateJSONAgainstSchema(schema, cleaned); err != nil {
		c.logger.Error("llm.infer.schema_validation_failed",
			"req_id", rid, "error", err, "content", truncate(content, 512),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.ErrorInference(err), fmt.Errorf("schema validation failed: %w", err)
	}

	var out llm.Inference
	if err := json.Unmarshal(cleaned, &out); err != nil {
		c.logger.Error("llm.infer.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.ErrorInference(err), fmt.Errorf("unmarshal fields: %w", err)
	}
	out.Status = llm.StatusSuccess
	out.ErrorMessage = ""

	c.logger.Info("llm.infer.ok",
		"req_id", rid,
		"has_national_id", out.NationalID != nil,
		"action", deref(out.Action),
		"total_tokens", resp.Usage.TotalTokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
