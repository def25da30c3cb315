package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"lexassist-backend/models"

	"github.com/google/generative-ai-go/genai"
)

const (
	defaultGeminiModel = "gemini-2.0-flash"
	generationAPIBase  = "https://generativelanguage.googleapis.com/v1beta/models"

	// parseFailurePrefix marks a soft-failed analysis whose summary
	// carries the raw model output.
	parseFailurePrefix = "The analysis could not be structured automatically. Raw output: "
)

const documentPrompt = `You are a legal assistant for Indian law. Analyze the attached legal document and respond with ONLY a JSON object of this exact shape, no other text:
{
  "summary": "concise summary of the document",
  "facts": "the key facts of the matter",
  "judgments": [{"title": "related judgment name", "court": "court", "relevance": "why it is relevant"}],
  "next_steps": ["suggested action item"]
}`

const swotPrompt = `You are a legal assistant for Indian law. Given the case facts below, respond with ONLY a JSON object of this exact shape, no other text:
{
  "summary": "concise summary of the case position",
  "facts": "restatement of the key facts",
  "strengths": ["a strength of the case"],
  "weaknesses": ["a weakness of the case"]
}

CASE FACTS:
%s`

const chatPrompt = `You are a helpful legal assistant for Indian law. Answer the user's question clearly and concisely in plain text.

QUESTION:
%s`

// AnalysisService is the adapter over the Gemini API. Its operations
// never return an error: upstream failures and malformed responses
// degrade to a well-shaped result carrying the failure description.
type AnalysisService struct {
	geminiClient *genai.Client
	apiKey       string
	model        string
	httpClient   *http.Client
	apiBase      string
}

// AnalysisServiceOption is a functional option for AnalysisService
type AnalysisServiceOption func(*AnalysisService)

// AnalysisWithGeminiClient sets the Gemini SDK client
func AnalysisWithGeminiClient(client *genai.Client) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.geminiClient = client
	}
}

// AnalysisWithAPIKey sets the API key used by the raw-HTTP fallback
func AnalysisWithAPIKey(key string) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.apiKey = key
	}
}

// AnalysisWithModel sets the model name
func AnalysisWithModel(model string) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.model = model
	}
}

// AnalysisWithHTTPClient sets the HTTP client used by the fallback path
func AnalysisWithHTTPClient(client *http.Client) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.httpClient = client
	}
}

// AnalysisWithAPIBase overrides the generation API base URL
func AnalysisWithAPIBase(base string) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.apiBase = base
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(opts ...AnalysisServiceOption) *AnalysisService {
	s := &AnalysisService{
		model:      defaultGeminiModel,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		apiBase:    generationAPIBase,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeDocument submits document bytes for analysis and returns the
// canonical result shape. It never fails: parse problems land in the
// summary field, missing configuration yields a mock result.
func (s *AnalysisService) AnalyzeDocument(ctx context.Context, data []byte, mimeType string) *models.AnalysisResult {
	if !s.configured() {
		return mockAnalysisResult()
	}

	text, err := s.generate(ctx, documentPrompt, &blobPart{MIMEType: mimeType, Data: data})
	if err != nil {
		log.Printf("Document analysis failed upstream: %v", err)
		return &models.AnalysisResult{
			Summary:    "The document could not be analyzed: " + err.Error(),
			Judgments:  models.Judgments{},
			NextSteps:  models.StringList{},
			Strengths:  models.StringList{},
			Weaknesses: models.StringList{},
		}
	}

	return parseAnalysisResponse(text)
}

// AnalyzeSWOT runs a strengths/weaknesses analysis over case facts.
func (s *AnalysisService) AnalyzeSWOT(ctx context.Context, facts string) *models.AnalysisResult {
	if !s.configured() {
		return mockAnalysisResult()
	}

	text, err := s.generate(ctx, fmt.Sprintf(swotPrompt, facts), nil)
	if err != nil {
		log.Printf("SWOT analysis failed upstream: %v", err)
		return &models.AnalysisResult{
			Summary:    "The case could not be analyzed: " + err.Error(),
			Facts:      facts,
			Judgments:  models.Judgments{},
			NextSteps:  models.StringList{},
			Strengths:  models.StringList{},
			Weaknesses: models.StringList{},
		}
	}

	return parseAnalysisResponse(text)
}

// Chat answers a free-text question with a plain string reply.
func (s *AnalysisService) Chat(ctx context.Context, message string) string {
	if !s.configured() {
		return "The AI assistant is not configured. Please set GEMINI_API_KEY."
	}

	text, err := s.generate(ctx, fmt.Sprintf(chatPrompt, message), nil)
	if err != nil {
		log.Printf("Chat generation failed upstream: %v", err)
		return "The AI assistant is temporarily unavailable. Please try again later."
	}

	return strings.TrimSpace(text)
}

func (s *AnalysisService) configured() bool {
	return s.geminiClient != nil || s.apiKey != ""
}

// blobPart carries binary content for the generation request.
type blobPart struct {
	MIMEType string
	Data     []byte
}

// generate runs one generation round trip. The SDK client is the
// primary path; if it errors (or is absent) the raw-HTTP fallback
// repeats the call against the REST endpoint.
func (s *AnalysisService) generate(ctx context.Context, prompt string, blob *blobPart) (string, error) {
	if s.geminiClient != nil {
		text, err := s.generateSDK(ctx, prompt, blob)
		if err == nil {
			return text, nil
		}
		log.Printf("Gemini SDK call failed, retrying over raw HTTP: %v", err)
	}

	return s.generateHTTP(ctx, prompt, blob)
}

func (s *AnalysisService) generateSDK(ctx context.Context, prompt string, blob *blobPart) (string, error) {
	model := s.geminiClient.GenerativeModel(s.model)

	parts := []genai.Part{genai.Text(prompt)}
	if blob != nil {
		parts = append(parts, genai.Blob{MIMEType: blob.MIMEType, Data: blob.Data})
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("model returned no candidates")
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}
	if builder.Len() == 0 {
		return "", errors.New("model returned empty content")
	}

	return builder.String(), nil
}

// generateHTTP calls the generation REST endpoint directly.
func (s *AnalysisService) generateHTTP(ctx context.Context, prompt string, blob *blobPart) (string, error) {
	if s.apiKey == "" {
		return "", errors.New("GEMINI_API_KEY not set")
	}

	parts := []map[string]interface{}{
		{"text": prompt},
	}
	if blob != nil {
		parts = append(parts, map[string]interface{}{
			"inline_data": map[string]interface{}{
				"mime_type": blob.MIMEType,
				"data":      base64.StdEncoding.EncodeToString(blob.Data),
			},
		})
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.2,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", s.apiBase, s.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("Gemini API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return "", fmt.Errorf("API error: %d", resp.StatusCode)
	}

	var apiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason,omitempty"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason,omitempty"`
		} `json:"promptFeedback,omitempty"`
	}

	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("API blocked prompt: %s", apiResp.PromptFeedback.BlockReason)
	}
	if len(apiResp.Candidates) == 0 {
		return "", errors.New("API returned no candidates")
	}

	var responseText strings.Builder
	for _, candidate := range apiResp.Candidates {
		if candidate.FinishReason != "" && candidate.FinishReason != "STOP" {
			log.Printf("Warning: candidate finished with reason: %s", candidate.FinishReason)
		}
		for _, part := range candidate.Content.Parts {
			responseText.WriteString(part.Text)
		}
	}

	result := responseText.String()
	if result == "" {
		return "", errors.New("API returned empty content")
	}

	return result, nil
}

// parseAnalysisResponse strips markdown code fencing and parses the
// model output into the canonical result shape. Non-JSON output
// soft-fails: the raw text is preserved in the summary field.
func parseAnalysisResponse(text string) *models.AnalysisResult {
	cleaned := stripCodeFences(text)

	result := &models.AnalysisResult{}
	if err := json.Unmarshal([]byte(cleaned), result); err != nil {
		log.Printf("Model response was not valid JSON: %v", err)
		return &models.AnalysisResult{
			Summary:    parseFailurePrefix + text,
			Judgments:  models.Judgments{},
			NextSteps:  models.StringList{},
			Strengths:  models.StringList{},
			Weaknesses: models.StringList{},
		}
	}

	if result.Judgments == nil {
		result.Judgments = models.Judgments{}
	}
	if result.NextSteps == nil {
		result.NextSteps = models.StringList{}
	}
	if result.Strengths == nil {
		result.Strengths = models.StringList{}
	}
	if result.Weaknesses == nil {
		result.Weaknesses = models.StringList{}
	}

	return result
}

// stripCodeFences removes a surrounding markdown code fence, with or
// without a language tag, from the model output.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line (e.g. "json").
		firstLine := strings.TrimSpace(trimmed[:idx])
		if firstLine == "" || !strings.ContainsAny(firstLine, "{[") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}

// mockAnalysisResult is returned when no Gemini credentials are
// configured so the rest of the flow stays usable in demos.
func mockAnalysisResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Summary: "AI analysis is not configured (GEMINI_API_KEY missing). This is sample output.",
		Facts:   "Sample facts: the parties dispute the terms of a rental agreement.",
		Judgments: models.Judgments{
			{Title: "Sample v. Placeholder", Court: "High Court", Relevance: "Illustrative only"},
		},
		NextSteps:  models.StringList{"Configure GEMINI_API_KEY to enable real analysis"},
		Strengths:  models.StringList{"Documentation is complete"},
		Weaknesses: models.StringList{"No real analysis was performed"},
	}
}
