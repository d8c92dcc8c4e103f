package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/platewise/backend/internal/types"
)

const (
	defaultLLMAPIURL = "https://router.huggingface.co/v1/chat/completions"
	defaultLLMModel  = "deepseek-ai/DeepSeek-V3.2:novita"
	llmTimeout       = 30 * time.Second
)

// LLMService talks to the chat-completions upstream that drafts recipe
// text. Network failures and timeouts surface as ErrUpstream; a 503 from
// the upstream (model still loading) surfaces as ErrModelLoading so the
// handler can tell the user to retry.
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMService reads HUGGINGFACE_API_KEY (or HUGGINGFACE_API_KEY_FILE for
// secret mounts) plus optional URL/model overrides.
func NewLLMService() (*LLMService, error) {
	apiKey := os.Getenv("HUGGINGFACE_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("HUGGINGFACE_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("HUGGINGFACE_API_KEY or HUGGINGFACE_API_KEY_FILE must be set")
		}
		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}
		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("HUGGINGFACE_API_URL")
	if apiURL == "" {
		apiURL = defaultLLMAPIURL
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = defaultLLMModel
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: llmTimeout},
	}, nil
}

// Message represents a message in the chat.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete performs one chat-completions round trip and returns the raw
// assistant content.
func (s *LLMService) complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{Model: s.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %v: %w", err, ErrUpstream)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		return "", fmt.Errorf("upstream returned 503: %w", ErrModelLoading)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream returned %d: %w", resp.StatusCode, ErrUpstream)
	}

	var result chatResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %v: %w", err, ErrUpstream)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response: %w", ErrUpstream)
	}
	return result.Choices[0].Message.Content, nil
}

// GenerateRecipe drafts a single recipe from a free-text prompt, with the
// user's dietary context folded into the instruction. Upstream errors
// propagate; unparseable upstream text degrades to a templated draft built
// from the prompt instead of failing.
func (s *LLMService) GenerateRecipe(ctx context.Context, prompt, aiContext string) (*types.RecipeDraft, error) {
	instruction := fmt.Sprintf(`Generate a recipe in the following JSON format:
{
  "title": "Recipe Title",
  "description": "A brief description of the recipe",
  "ingredients": "- ingredient 1\n- ingredient 2\n- ingredient 3",
  "instructions": "1. Step one\n2. Step two\n3. Step three"
}
The user's recipe request: %s`, prompt)
	if aiContext != "" {
		instruction += "\nThe user's dietary context: " + aiContext
	}

	content, err := s.complete(ctx, []Message{{Role: "user", Content: instruction}})
	if err != nil {
		return nil, err
	}

	draft := parseRecipeContent(content, prompt)
	return draft, nil
}

// GenerateMealPlanRecipes drafts days*len(mealTypes) recipes, each tagged
// with its meal type, in day order.
func (s *LLMService) GenerateMealPlanRecipes(ctx context.Context, days int, mealTypes []string, preferences string) ([]types.RecipeDraft, error) {
	total := days * len(mealTypes)
	prompt := fmt.Sprintf(`Generate a %d-day meal plan with %d recipes (%s for each day).
`, days, total, strings.Join(mealTypes, ", "))
	if preferences != "" {
		prompt += "Dietary preferences: " + preferences + "\n"
	}
	prompt += fmt.Sprintf(`
Return ONLY a JSON array with exactly %d recipes in this format:
[
  {
    "title": "Recipe Title",
    "description": "Brief description",
    "ingredients": "- ingredient 1\n- ingredient 2",
    "instructions": "1. Step one\n2. Step two",
    "meal_type": "%s"
  }
]

Important:
- Return ONLY the JSON array, no additional text
- Make recipes varied and interesting
- Generate %d recipes per day, one for each meal type, in day order`,
		total, strings.Join(mealTypes, "|"), len(mealTypes))

	content, err := s.complete(ctx, []Message{{Role: "user", Content: prompt}})
	if err != nil {
		return nil, err
	}

	// Models often wrap the array in prose or a code fence; take whatever
	// sits between the first '[' and the last ']'.
	first := strings.Index(content, "[")
	last := strings.LastIndex(content, "]")
	if first != -1 && last > first {
		content = content[first : last+1]
	}

	var drafts []types.RecipeDraft
	if err := json.Unmarshal([]byte(content), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse meal plan response: %v: %w", err, ErrUpstream)
	}
	return drafts, nil
}

var (
	titleRe        = regexp.MustCompile(`(?i)title:\s*([^\n]+)`)
	descriptionRe  = regexp.MustCompile(`(?i)description:\s*([^\n]+)`)
	ingredientsRe  = regexp.MustCompile(`(?i)ingredients:\s*((?:\n?\s*-[^\n]+)+)`)
	instructionsRe = regexp.MustCompile(`(?i)instructions:\s*((?:\n?\s*\d+\.[^\n]+)+)`)
)

// parseRecipeContent extracts a structured draft from raw model output.
// It tries a JSON object first, then labelled plain text, and falls back
// to a templated recipe seeded from the prompt for any field still empty.
func parseRecipeContent(content, prompt string) *types.RecipeDraft {
	draft := &types.RecipeDraft{}

	if first, last := strings.Index(content, "{"), strings.LastIndex(content, "}"); first != -1 && last > first {
		_ = json.Unmarshal([]byte(content[first:last+1]), draft)
	}

	if draft.Title == "" {
		if m := titleRe.FindStringSubmatch(content); m != nil {
			draft.Title = strings.TrimSpace(m[1])
		}
	}
	if draft.Description == "" {
		if m := descriptionRe.FindStringSubmatch(content); m != nil {
			draft.Description = strings.TrimSpace(m[1])
		}
	}
	if draft.Ingredients == "" {
		if m := ingredientsRe.FindStringSubmatch(content); m != nil {
			draft.Ingredients = strings.TrimSpace(m[1])
		}
	}
	if draft.Instructions == "" {
		if m := instructionsRe.FindStringSubmatch(content); m != nil {
			draft.Instructions = strings.TrimSpace(m[1])
		}
	}

	fallback := FallbackRecipe(prompt)
	if draft.Title == "" {
		draft.Title = fallback.Title
	}
	if draft.Description == "" {
		draft.Description = fallback.Description
	}
	if draft.Ingredients == "" {
		draft.Ingredients = fallback.Ingredients
	}
	if draft.Instructions == "" {
		draft.Instructions = fallback.Instructions
	}
	return draft
}

// FallbackRecipe builds the generic templated draft used when structured
// extraction comes up empty.
func FallbackRecipe(prompt string) *types.RecipeDraft {
	subject := strings.TrimSpace(strings.ToLower(prompt))
	if subject == "" {
		subject = "dish"
	}
	return &types.RecipeDraft{
		Title:       strings.TrimSpace(prompt),
		Description: fmt.Sprintf("A delicious %s recipe that combines wonderful flavors and textures. Perfect for any occasion.", subject),
		Ingredients: fmt.Sprintf("- 2 cups main ingredient for %s\n- 1 tbsp olive oil or butter\n- 1 onion, diced\n- 2 cloves garlic, minced\n- Salt and pepper to taste\n- Fresh herbs for garnish", subject),
		Instructions: "1. Heat oil or butter in a large pan over medium heat\n" +
			"2. Add onion and cook until softened, about 3-4 minutes\n" +
			"3. Add garlic and cook for another minute\n" +
			"4. Add main ingredients and cook through\n" +
			"5. Season with salt, pepper and desired spices\n" +
			"6. Garnish with fresh herbs and serve immediately",
	}
}
