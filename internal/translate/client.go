// Package translate turns OCR'd balloon text into Simplified Chinese
// through any OpenAI-compatible chat completion API.
package translate

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrNotConfigured is returned when no API key has been set.
var ErrNotConfigured = errors.New("API not configured")

const (
	maxCompletionTokens = 1000
	testTimeout         = 10 * time.Second
)

// Request describes one translation job. Text holds the OCR result; Image
// is the balloon crop, sent to the model only when UseVision is set.
type Request struct {
	Text      string
	Context   string
	Image     image.Image
	UseVision bool
}

// Client wraps an OpenAI-compatible endpoint. Safe for concurrent use;
// Configure may be called at any time to swap credentials.
type Client struct {
	mu      sync.Mutex
	api     *openai.Client
	model   string
	baseURL string
}

// New returns an unconfigured client. Call Configure before Translate.
func New() *Client {
	return &Client{}
}

// Configure sets credentials and rebuilds the underlying API client.
// An empty apiKey deconfigures the client.
func (c *Client) Configure(apiKey, baseURL, model string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.baseURL = strings.TrimRight(baseURL, "/")
	c.model = model

	if apiKey == "" {
		c.api = nil
		return
	}
	c.api = newAPIClient(apiKey, c.baseURL, 0)
}

// Configured reports whether an API key has been set.
func (c *Client) Configured() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.api != nil
}

// Translate performs one translation call. The raw model output is
// returned; run it through FormatTranslation before display.
func (c *Client) Translate(ctx context.Context, req Request) (string, error) {
	c.mu.Lock()
	api, model := c.api, c.model
	c.mu.Unlock()

	if api == nil {
		return "", ErrNotConfigured
	}

	messages, err := buildMessages(req)
	if err != nil {
		return "", err
	}

	resp, err := api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: maxCompletionTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}

	return resp.Choices[0].Message.Content, nil
}

// TestConnection checks the given credentials with a minimal completion
// request. The returned report always carries the request details (key
// masked) so a failure can be diagnosed from the settings dialog.
func (c *Client) TestConnection(ctx context.Context, apiKey, baseURL, model string) (string, error) {
	baseURL = strings.TrimRight(baseURL, "/")

	var report strings.Builder
	fmt.Fprintf(&report, "Target URL: %s\n", baseURL)
	fmt.Fprintf(&report, "Model: %s\n", model)
	fmt.Fprintf(&report, "API Key: %s\n", maskKey(apiKey))
	if isOpenRouter(baseURL) {
		report.WriteString("OpenRouter headers: enabled\n")
	}

	api := newAPIClient(apiKey, baseURL, testTimeout)

	resp, err := api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: 5,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Hi"},
		},
	})
	if err != nil {
		fmt.Fprintf(&report, "ERROR: %v\n", err)
		return report.String(), fmt.Errorf("connection failed: %w", err)
	}

	if len(resp.Choices) > 0 {
		fmt.Fprintf(&report, "Response: %s\n", resp.Choices[0].Message.Content)
	}
	report.WriteString("Connection successful.")
	return report.String(), nil
}

func buildMessages(req Request) ([]openai.ChatCompletionMessage, error) {
	parts := []openai.ChatMessagePart{userTextPart(req)}

	if req.UseVision && req.Image != nil {
		url, err := imageDataURL(req.Image)
		if err != nil {
			return nil, err
		}
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: url},
		})
	}

	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(req.Context)},
		{Role: openai.ChatMessageRoleUser, MultiContent: parts},
	}, nil
}

// imageDataURL encodes a crop as a base64 PNG data URL for vision models.
func imageDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode crop: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func newAPIClient(apiKey, baseURL string, timeout time.Duration) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	httpClient := &http.Client{Timeout: timeout}
	if isOpenRouter(baseURL) {
		httpClient.Transport = &headerTransport{
			base: http.DefaultTransport,
			headers: map[string]string{
				"HTTP-Referer": "https://github.com",
				"X-Title":      "BubbleTrans",
			},
		}
	}
	cfg.HTTPClient = httpClient
	return openai.NewClientWithConfig(cfg)
}

// isOpenRouter reports whether the endpoint wants OpenRouter's
// attribution headers.
func isOpenRouter(baseURL string) bool {
	return strings.Contains(baseURL, "openrouter.ai")
}

// headerTransport injects fixed headers into every request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for k, v := range t.headers {
		clone.Header.Set(k, v)
	}
	return t.base.RoundTrip(clone)
}

// maskKey hides an API key except its first and last four characters.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
