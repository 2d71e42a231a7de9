package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"calm_learning_hub/internal/config"
	"calm_learning_hub/internal/model"
)

// AIService talks to an OpenAI-compatible API: chat completions for the
// gentle lesson rewrite and image generation for the illustration.
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{config: cfg}
}

// UpdateConfig swaps the AI endpoint and credentials on a config reload.
// The watcher goroutine calls this while requests are in flight.
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

// snapshot returns a consistent copy of the config so a reload cannot tear
// the endpoint/credential pair mid-request.
func (s *AIService) snapshot() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type ImageGenerationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
	N      int    `json:"n"`
}

type ImageGenerationResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// The rewrite prompt keeps the material calm and predictable and must never
// mention autism, disorders, or special needs.
const gentleSystemPrompt = "You are an expert in creating calm, step-by-step learning material for children.\n" +
	"You always:\n" +
	"- Use very clear and simple language.\n" +
	"- Break content into short numbered steps.\n" +
	"- Make each step 1-3 short sentences.\n" +
	"- Keep the tone gentle, encouraging, and predictable.\n" +
	"- DO NOT mention autism, disorders, or special needs.\n"

// GentleRewrite turns a chapter or story into a numbered, step-by-step
// lesson with short sentences.
func (s *AIService) GentleRewrite(original string, kind model.LessonKind) (string, error) {
	cfg := s.snapshot()

	styleHint := "chapter from school"
	if kind == model.LessonStory {
		styleHint = "short life story"
	}

	userMsg := fmt.Sprintf(
		"Turn the following %s into a numbered, step-by-step lesson.\n"+
			"Focus on clarity, predictability, and calm pacing.\n\nCONTENT:\n%s",
		styleHint, original,
	)

	reqBody := ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: gentleSystemPrompt},
			{Role: "user", Content: userMsg},
		},
		Temperature: 0.4,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("AI returned no choices")
}

// GenerateIllustration asks the image model for a soft, friendly lesson
// illustration and returns the base64-encoded image bytes.
func (s *AIService) GenerateIllustration(title string) (string, error) {
	cfg := s.snapshot()

	prompt := fmt.Sprintf(
		"Create a simple, friendly, colorful illustration for a children's lesson titled '%s'. "+
			"The scene should be calm and easy to understand. "+
			"Avoid text in the image. The style should be soft and inviting.",
		title,
	)

	reqBody := ImageGenerationRequest{
		Model:  cfg.ImageModel,
		Prompt: prompt,
		Size:   "1024x1024",
		N:      1,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", cfg.BaseURL+"/images/generations", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ImageGenerationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if len(result.Data) == 0 || result.Data[0].B64JSON == "" {
		return "", fmt.Errorf("AI returned no image")
	}

	return result.Data[0].B64JSON, nil
}
