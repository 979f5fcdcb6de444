// Package chat proxies user questions to an OpenAI-compatible chat
// completions API for productivity coaching.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"habitflow/internal/config"
)

var (
	ErrNotConfigured = errors.New("chat API key not configured")
	ErrEmptyResponse = errors.New("empty response from chat API")
)

const systemPrompt = `You are a productivity assistant focused on helping users improve their time management, goal setting, habit formation, and overall productivity.

Keep your responses practical, actionable, concise and encouraging, based on proven productivity principles, and formatted with markdown (headers, lists, bold text) for readability.

If the user asks about topics outside of productivity, politely redirect them back to productivity-related topics.`

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"` // user or assistant
	Content string `json:"content"`
}

// Client calls the upstream chat completions endpoint.
type Client struct {
	url    string
	apiKey string
	model  string
	http   *http.Client
}

// NewClient builds a client from application config.
func NewClient() *Client {
	cfg := config.Get()
	return &Client{
		url:    cfg.ChatAPIURL,
		apiKey: cfg.ChatAPIKey,
		model:  cfg.ChatModel,
		http:   &http.Client{Timeout: time.Duration(cfg.ChatTimeout) * time.Second},
	}
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Ask sends the user's message with prior history and returns the assistant
// reply. History roles must be "user" or "assistant"; the system prompt is
// prepended here.
func (c *Client) Ask(ctx context.Context, message string, history []Message) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: message})

	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   1500,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat API status %d: %s", resp.StatusCode, string(b))
	}
	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return out.Choices[0].Message.Content, nil
}
