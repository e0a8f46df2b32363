package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/korjavin/recipematch/pkg/logger"
	"github.com/sashabaranov/go-openai"
)

// Client represents an OpenAI API client
type Client struct {
	client *openai.Client
	model  string
	logger *logger.Logger
}

// New creates a new OpenAI client
func New(apiKey, apiBase, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	if apiBase != "" {
		config.BaseURL = apiBase
	}

	client := openai.NewClientWithConfig(config)
	return &Client{
		client: client,
		model:  model,
		logger: logger.New("openai"),
	}
}

// recipeInfoResponse is the JSON shape the model is asked to return.
type recipeInfoResponse struct {
	Name         string   `json:"name"`
	Cuisine      string   `json:"cuisine"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Description  string   `json:"description"`
}

// GetRecipeInfo retrieves the ingredient list and instructions for a
// dish from the LLM. Used to seed the recipe catalog.
func (c *Client) GetRecipeInfo(ctx context.Context, dishName, cuisine string) ([]string, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(`
You are a cooking expert. Please provide detailed information about the dish "%s" from %s cuisine.
Return the information in the following JSON format:
{
  "name": "Full dish name",
  "cuisine": "Cuisine type",
  "ingredients": ["ingredient1", "ingredient2", ...],
  "instructions": ["step1", "step2", ...],
  "description": "Brief description of the dish"
}
Use plain ingredient names without quantities.
Only return the JSON, no other text.
`, dishName, cuisine)

	c.logger.Info("Requesting recipe info for %s (%s cuisine)", dishName, cuisine)
	c.logger.Debug("OpenAI prompt (first 100 chars): %s", truncateString(prompt, 100))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a cooking expert who provides accurate information about dishes and recipes.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, nil, fmt.Errorf("no response from OpenAI API")
	}

	content := resp.Choices[0].Message.Content
	c.logger.Debug("OpenAI response (first 100 chars): %s", truncateString(content, 100))

	// Clean up the response - sometimes the model returns markdown code blocks
	content = cleanJSONResponse(content)

	var info recipeInfoResponse
	if err := json.Unmarshal([]byte(content), &info); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)
		return nil, nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	c.logger.Info("Successfully got information for dish: %s", dishName)
	return info.Ingredients, info.Instructions, nil
}

// GenerateChatMessage generates a chat message for a specific intent
func (c *Client) GenerateChatMessage(intent string, contextData map[string]interface{}) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Convert context to JSON string
	contextJSON, err := json.Marshal(contextData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal context: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a friendly recipe assistant bot for a Telegram chat. Generate a short, engaging message for the following intent: "%s".
Use the context provided below to personalize the message. Keep it concise and mobile-friendly.
Add appropriate emojis for fun and readability.

Context:
%s

Return only the message text, no explanations or other text.
`, intent, string(contextJSON))

	c.logger.Info("Generating chat message for intent: %s", intent)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
		},
	)

	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI API")
	}

	return resp.Choices[0].Message.Content, nil
}

// cleanJSONResponse strips markdown code fences the model sometimes
// wraps JSON in.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}

// truncateString shortens a string for debug logging
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
