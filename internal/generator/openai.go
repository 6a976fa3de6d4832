package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fitflow/internal/domain"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1/chat/completions"
	DefaultModel   = "llama-3.3-70b-versatile"
)

// openaiGenerator talks to an OpenAI-compatible chat-completions endpoint
// and asks for the plan as a single JSON document.
type openaiGenerator struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIGenerator creates a PlanGenerator for the given endpoint.
// Empty baseURL/model fall back to the defaults above.
func NewOpenAIGenerator(baseURL, apiKey, model string) PlanGenerator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &openaiGenerator{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (g *openaiGenerator) Generate(ctx context.Context, profile domain.UserProfile) (*domain.WorkoutPlan, error) {
	reqBody := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(profile)},
		},
		Temperature:    0.4,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrGenerationFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrGenerationFailed, err)
	}
	if chat.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrGenerationFailed, chat.Error.Message)
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return nil, ErrGenerationFailed
	}

	var plan generatedPlan
	if err := json.Unmarshal([]byte(stripCodeFence(chat.Choices[0].Message.Content)), &plan); err != nil {
		return nil, fmt.Errorf("%w: decoding plan: %v", ErrGenerationFailed, err)
	}
	if err := plan.validate(); err != nil {
		return nil, err
	}
	return plan.toDomain(), nil
}

const systemPrompt = `You are an elite personal trainer and exercise physiologist.
Respond with a single JSON object of this exact shape:
{"planName": string, "days": [{"name": string, "exercises": [{"exerciseName": string, "muscleGroup": string, "sets": int, "reps": string, "restSeconds": int, "notes": string, "instructions": [string]}]}]}
Rules:
1. Every day name MUST describe its muscle-group focus, e.g. "Day A - Chest and Triceps", never "Day 1".
2. "reps" is a range like "8-12".
3. "instructions" holds three short execution steps.
4. Volume and exercise selection must match the athlete's level.`

func buildPrompt(profile domain.UserProfile) string {
	equipment := "none"
	if len(profile.Equipment) > 0 {
		equipment = strings.Join(profile.Equipment, ", ")
	}
	limitations := profile.Limitations
	if limitations == "" {
		limitations = "none"
	}
	preferences := profile.Preferences
	if preferences == "" {
		preferences = "none"
	}
	return fmt.Sprintf(
		"Create a complete workout plan for this athlete:\n"+
			"- Goal: %s\n- Level: %s\n- Days per week: %d\n"+
			"- Equipment: %s\n- Limitations or injuries: %s\n- Preferences: %s",
		profile.Goal, profile.Level, profile.DaysPerWeek,
		equipment, limitations, preferences,
	)
}

// stripCodeFence removes a surrounding markdown code block, a common way
// for models to wrap JSON even when asked not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
