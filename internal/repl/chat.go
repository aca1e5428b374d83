package repl

import (
	"context"
	"fmt"

	"github.com/go-deepseek/deepseek"
	"github.com/go-deepseek/deepseek/request"
)

const chatSystemPrompt = "You are a virtual assistant named Jarvis skilled in general tasks. Keep replies short and conversational."

// ChatClient answers non-reminder input through the DeepSeek API.
type ChatClient struct {
	client deepseek.Client
	model  string
}

// NewChatClient creates the small-talk client.
func NewChatClient(apiKey, model string) (*ChatClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := deepseek.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create DeepSeek client: %w", err)
	}

	return &ChatClient{client: client, model: model}, nil
}

// Send asks for a single-turn reply to the user's utterance.
func (c *ChatClient) Send(ctx context.Context, text string) (string, error) {
	chatReq := &request.ChatCompletionsRequest{
		Model: c.model,
		Messages: []*request.Message{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: text},
		},
		Stream: false,
	}

	resp, err := c.client.CallChatCompletionsChat(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("DeepSeek API request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}
	return resp.Choices[0].Message.Content, nil
}
