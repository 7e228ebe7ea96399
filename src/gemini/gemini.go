package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"buchat/src/log"
)

const (
	DefaultURL            = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel          = "gemini-2.0-flash"
	DefaultEmbeddingModel = "text-embedding-004"
)

// ErrProviderUnavailable is returned when the Gemini API cannot be reached
// or answers with a non-success status. Callers degrade instead of failing.
var ErrProviderUnavailable = errors.New("gemini: provider unavailable")

// Part is a single text fragment inside a content block
type Part struct {
	Text string `json:"text"`
}

// Content is a block of parts with an optional role
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// EmbedContentRequest represents the request structure for embeddings
type EmbedContentRequest struct {
	Model   string  `json:"model,omitempty"`
	Content Content `json:"content"`
}

// EmbedContentResponse represents the response structure from embeddings
type EmbedContentResponse struct {
	Embedding struct {
		Values []float64 `json:"values"`
	} `json:"embedding"`
}

// BatchEmbedRequest represents the request structure for batch embeddings
type BatchEmbedRequest struct {
	Requests []EmbedContentRequest `json:"requests"`
}

// BatchEmbedResponse represents the response structure from batch embeddings
type BatchEmbedResponse struct {
	Embeddings []struct {
		Values []float64 `json:"values"`
	} `json:"embeddings"`
}

// GenerateRequest represents the request structure for content generation
type GenerateRequest struct {
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Contents          []Content         `json:"contents"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerationConfig holds sampling parameters for generation
type GenerationConfig struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"topP,omitempty"`
}

// GenerateResponse represents the response structure from generation
type GenerateResponse struct {
	Candidates []struct {
		Content      Content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// Client represents a Gemini API client
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	model          string
	embeddingModel string
}

// NewClient creates a new Gemini API client
func NewClient(baseURL, apiKey, model, embeddingModel string, c *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}

	return &Client{
		httpClient:     c,
		baseURL:        baseURL,
		apiKey:         apiKey,
		model:          model,
		embeddingModel: embeddingModel,
	}
}

func (c *Client) post(ctx context.Context, url string, body interface{}, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error(err, "failed to make request to gemini")
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrProviderUnavailable, resp.StatusCode, string(msg))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

// EmbedOne generates an embedding vector for the given text
func (c *Client) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	reqBody := EmbedContentRequest{
		Content: Content{Parts: []Part{{Text: text}}},
	}

	url := fmt.Sprintf("%s/models/%s:embedContent", c.baseURL, c.embeddingModel)
	var result EmbedContentResponse
	if err := c.post(ctx, url, reqBody, &result); err != nil {
		return nil, err
	}

	if len(result.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding in response", ErrProviderUnavailable)
	}

	// Convert float64 to float32
	embedding32 := make([]float32, len(result.Embedding.Values))
	for i, v := range result.Embedding.Values {
		embedding32[i] = float32(v)
	}

	return embedding32, nil
}

// EmbedMany generates embedding vectors for the given texts in one batch call
func (c *Client) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("cannot embed empty batch")
	}

	reqBody := BatchEmbedRequest{
		Requests: make([]EmbedContentRequest, len(texts)),
	}
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("cannot embed empty text at index %d", i)
		}
		reqBody.Requests[i] = EmbedContentRequest{
			Model:   "models/" + c.embeddingModel,
			Content: Content{Parts: []Part{{Text: text}}},
		}
	}

	url := fmt.Sprintf("%s/models/%s:batchEmbedContents", c.baseURL, c.embeddingModel)
	var result BatchEmbedResponse
	if err := c.post(ctx, url, reqBody, &result); err != nil {
		return nil, err
	}

	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrProviderUnavailable, len(result.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, e := range result.Embeddings {
		vectors[i] = make([]float32, len(e.Values))
		for j, v := range e.Values {
			vectors[i][j] = float32(v)
		}
	}

	return vectors, nil
}

// Generate performs model generation with the given system instruction and prompt
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	reqBody := GenerateRequest{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: &GenerationConfig{
			Temperature: 0.7,
			TopP:        0.9,
		},
	}
	if system != "" {
		reqBody.SystemInstruction = &Content{Parts: []Part{{Text: system}}}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	var result GenerateResponse
	if err := c.post(ctx, url, reqBody, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", ErrProviderUnavailable)
	}

	var full strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		full.WriteString(part.Text)
	}

	return strings.TrimSpace(full.String()), nil
}

// Translate renders the given text in the target language, keeping tone and
// domain terms intact. targetLang is a human-readable language name.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	system := "You are a professional translator. Translate the user's text to " + targetLang +
		". Output only the translation, with no commentary."

	translated, err := c.Generate(ctx, system, text)
	if err != nil {
		return "", fmt.Errorf("failed to translate text: %w", err)
	}

	return translated, nil
}
