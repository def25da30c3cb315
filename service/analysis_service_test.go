package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"summary": "ok"}`, `{"summary": "ok"}`},
		{"fenced with tag", "```json\n{\"summary\": \"ok\"}\n```", `{"summary": "ok"}`},
		{"fenced without tag", "```\n{\"summary\": \"ok\"}\n```", `{"summary": "ok"}`},
		{"fence on same line", "```{\"summary\": \"ok\"}```", `{"summary": "ok"}`},
		{"surrounding whitespace", "  \n```json\n{\"a\": 1}\n```\n ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestParseAnalysisResponseValidJSON(t *testing.T) {
	raw := "```json\n" + `{
		"summary": "Deposit dispute",
		"facts": "Landlord kept the deposit",
		"judgments": [{"title": "A v. B", "court": "High Court", "relevance": "On point"}],
		"next_steps": ["Send notice"]
	}` + "\n```"

	result := parseAnalysisResponse(raw)
	assert.Equal(t, "Deposit dispute", result.Summary)
	assert.Equal(t, "Landlord kept the deposit", result.Facts)
	require.Len(t, result.Judgments, 1)
	assert.Equal(t, "A v. B", result.Judgments[0].Title)
	assert.Equal(t, []string{"Send notice"}, []string(result.NextSteps))

	// Missing list fields come back as empty slices, not nil.
	assert.NotNil(t, result.Strengths)
	assert.NotNil(t, result.Weaknesses)
}

func TestParseAnalysisResponseSoftFailsOnNonJSON(t *testing.T) {
	raw := "I am sorry, I cannot produce JSON for this document."

	result := parseAnalysisResponse(raw)
	assert.True(t, strings.HasPrefix(result.Summary, parseFailurePrefix))
	assert.Contains(t, result.Summary, raw)
	assert.NotNil(t, result.Judgments)
	assert.NotNil(t, result.NextSteps)
}

func TestAnalyzeDocumentUnconfiguredReturnsMock(t *testing.T) {
	svc := NewAnalysisService()

	result := svc.AnalyzeDocument(context.Background(), []byte("data"), "application/pdf")
	require.NotNil(t, result)
	assert.Contains(t, result.Summary, "not configured")
	assert.NotNil(t, result.Judgments)
}

func TestChatUnconfigured(t *testing.T) {
	svc := NewAnalysisService()

	reply := svc.Chat(context.Background(), "What is anticipatory bail?")
	assert.Contains(t, reply, "not configured")
}

func geminiResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func TestAnalyzeSWOTParsesModelOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Contains(t, r.URL.Path, "gemini-2.0-flash:generateContent")
		assert.NotEmpty(t, r.Header.Get("x-goog-api-key"))

		out := `{"summary": "Strong position", "facts": "As stated", "strengths": ["Written contract"], "weaknesses": ["Delay in filing"]}`
		json.NewEncoder(w).Encode(geminiResponse(out))
	}))
	defer server.Close()

	svc := NewAnalysisService(
		AnalysisWithAPIKey("test-key"),
		AnalysisWithAPIBase(server.URL),
	)

	result := svc.AnalyzeSWOT(context.Background(), "Contract breach by supplier")
	assert.Equal(t, "Strong position", result.Summary)
	assert.Equal(t, []string{"Written contract"}, []string(result.Strengths))
	assert.Equal(t, []string{"Delay in filing"}, []string(result.Weaknesses))
	assert.NotNil(t, result.Judgments)
}

func TestAnalyzeSWOTUpstreamErrorDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewAnalysisService(
		AnalysisWithAPIKey("test-key"),
		AnalysisWithAPIBase(server.URL),
	)

	result := svc.AnalyzeSWOT(context.Background(), "Some facts")
	require.NotNil(t, result)
	assert.Contains(t, result.Summary, "could not be analyzed")
	assert.Equal(t, "Some facts", result.Facts)
}

func TestChatReturnsPlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse("  Anticipatory bail is pre-arrest bail under Section 438 CrPC.\n"))
	}))
	defer server.Close()

	svc := NewAnalysisService(
		AnalysisWithAPIKey("test-key"),
		AnalysisWithAPIBase(server.URL),
	)

	reply := svc.Chat(context.Background(), "What is anticipatory bail?")
	assert.Equal(t, "Anticipatory bail is pre-arrest bail under Section 438 CrPC.", reply)
}

func TestGenerateHTTPBlockedPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"promptFeedback": map[string]interface{}{"blockReason": "SAFETY"},
		})
	}))
	defer server.Close()

	svc := NewAnalysisService(
		AnalysisWithAPIKey("test-key"),
		AnalysisWithAPIBase(server.URL),
	)

	_, err := svc.generateHTTP(context.Background(), "prompt", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAFETY")
}
