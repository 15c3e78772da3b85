package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GroqClient reformats raw OCR text through the Groq chat-completions API.
// The model's output is free-form text that is re-parsed heuristically, so
// the client never trusts it beyond that.
type GroqClient struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

// NewGroqClient creates a Groq formatter client.
func NewGroqClient(apiURL, apiKey, model string) *GroqClient {
	return &GroqClient{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

const formatPrompt = `Below is text scanned from a shopping receipt. ` +
	`List every purchased item on its own line as "NAME $PRICE". ` +
	`If present, add final lines "Tax: $AMOUNT" and "Total: $AMOUNT". ` +
	`Output only those lines.

`

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Format sends the raw text to the model and returns its reply.
func (c *GroqClient) Format(ctx context.Context, rawText string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Messages:  []chatMessage{{Role: "user", Content: formatPrompt + rawText}},
		Model:     c.model,
		MaxTokens: 1024,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
