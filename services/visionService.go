package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"nagarseva-be/models"

	"github.com/sashabaranov/go-openai"
)

// ErrVisionUnavailable signals that image classification could not run. It is
// a soft failure: intake proceeds without AI input.
var ErrVisionUnavailable = errors.New("vision classification unavailable")

// VisionResult is the normalized output of an image classification call.
type VisionResult struct {
	IssueType   models.IssueType
	Priority    models.Priority
	Description string
}

// VisionClassifier infers an issue classification from a photo.
type VisionClassifier interface {
	Classify(ctx context.Context, imageData []byte, contentType string) (*VisionResult, error)
}

const visionTimeout = 30 * time.Second

const visionPrompt = `You are classifying a photo of a civic issue reported by a citizen.
Respond with a JSON object only, no other text:
{"issueType": one of "pothole", "garbage", "streetlight", "water-leakage", "dirty-toilet", "other",
 "priority": one of "low", "medium", "high", "critical",
 "description": one short sentence describing what the photo shows}`

// OpenAIVisionClassifier calls the OpenAI vision API. Without an API key it
// reports ErrVisionUnavailable immediately, without any network call.
type OpenAIVisionClassifier struct {
	client *openai.Client
	model  string
}

// NewOpenAIVisionClassifier builds a classifier from the OPENAI_API_KEY
// environment variable.
func NewOpenAIVisionClassifier() *OpenAIVisionClassifier {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return &OpenAIVisionClassifier{}
	}
	return &OpenAIVisionClassifier{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4o,
	}
}

func (v *OpenAIVisionClassifier) Classify(ctx context.Context, imageData []byte, contentType string) (*VisionResult, error) {
	if v.client == nil {
		return nil, ErrVisionUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, visionTimeout)
	defer cancel()

	imageURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(imageData))

	completion, err := v.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     v.model,
		MaxTokens: 300,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: visionPrompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL, Detail: openai.ImageURLDetailLow},
					},
				},
			},
		},
	})
	if err != nil {
		log.Println("Vision classification call failed:", err)
		return nil, ErrVisionUnavailable
	}
	if len(completion.Choices) == 0 {
		return nil, ErrVisionUnavailable
	}

	result, err := parseVisionResponse(completion.Choices[0].Message.Content)
	if err != nil {
		log.Println("Vision classification response unusable:", err)
		return nil, ErrVisionUnavailable
	}
	return result, nil
}

// parseVisionResponse normalizes the model output: strips markdown code
// fences the model sometimes wraps the JSON in, then coerces the fields onto
// the domain enums.
func parseVisionResponse(content string) (*VisionResult, error) {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var raw struct {
		IssueType   string `json:"issueType"`
		Priority    string `json:"priority"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, err
	}

	issueType := models.IssueType(strings.ToLower(strings.TrimSpace(raw.IssueType)))
	if !models.ValidIssueType(issueType) {
		return nil, fmt.Errorf("unknown issue type %q", raw.IssueType)
	}
	priority := models.Priority(strings.ToLower(strings.TrimSpace(raw.Priority)))
	if !models.ValidPriority(priority) {
		priority = models.PriorityMedium
	}

	return &VisionResult{
		IssueType:   issueType,
		Priority:    priority,
		Description: strings.TrimSpace(raw.Description),
	}, nil
}
