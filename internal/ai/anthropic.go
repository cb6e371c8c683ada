package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/Iron-Ham/cerebro/internal/coach"
	"github.com/Iron-Ham/cerebro/internal/errors"
)

const (
	// anthropicAPIURL is the Anthropic Messages API endpoint.
	anthropicAPIURL = "https://api.anthropic.com/v1/messages"

	// DefaultAnthropicModel is the model used when ai.model is empty.
	DefaultAnthropicModel = "claude-3-5-haiku-latest"

	// defaultAnthropicTimeout is the HTTP request timeout.
	defaultAnthropicTimeout = 30 * time.Second

	// Token budgets per request kind.
	substepsMaxTokens = 300
	replyMaxTokens    = 200
)

// AnthropicBackend implements Backend using the Anthropic Messages API.
type AnthropicBackend struct {
	apiKey     string
	model      string
	url        string
	httpClient *http.Client
}

// AnthropicOption configures an AnthropicBackend.
type AnthropicOption func(*AnthropicBackend)

// WithAnthropicModel overrides DefaultAnthropicModel.
func WithAnthropicModel(model string) AnthropicOption {
	return func(b *AnthropicBackend) {
		b.model = model
	}
}

// WithAnthropicTimeout sets the HTTP client timeout.
func WithAnthropicTimeout(timeout time.Duration) AnthropicOption {
	return func(b *AnthropicBackend) {
		b.httpClient.Timeout = timeout
	}
}

// WithAnthropicURL points the backend at a different Messages endpoint.
func WithAnthropicURL(url string) AnthropicOption {
	return func(b *AnthropicBackend) {
		b.url = url
	}
}

// NewAnthropicBackend creates a backend using apiKey.
func NewAnthropicBackend(apiKey string, opts ...AnthropicOption) *AnthropicBackend {
	b := &AnthropicBackend{
		apiKey: apiKey,
		model:  DefaultAnthropicModel,
		url:    anthropicAPIURL,
		httpClient: &http.Client{
			Timeout: defaultAnthropicTimeout,
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// messagesRequest is the Anthropic Messages API request structure.
type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the Anthropic Messages API response structure.
type messagesResponse struct {
	Content []contentBlock `json:"content"`
	Error   *apiError      `json:"error,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Name implements Backend.
func (b *AnthropicBackend) Name() BackendName { return BackendAnthropic }

// GenerateSubsteps implements coach.Capability.
func (b *AnthropicBackend) GenerateSubsteps(ctx context.Context, content string) ([]string, error) {
	text, err := b.send(ctx, messagesRequest{
		Model:     b.model,
		MaxTokens: substepsMaxTokens,
		Messages:  []message{{Role: "user", Content: breakdownPrompt(content)}},
	})
	if err != nil {
		return nil, b.wrap("generate substeps", err)
	}
	steps, err := parseSteps(text)
	if err != nil {
		return nil, b.wrap("generate substeps", err)
	}
	return steps, nil
}

// Reply implements coach.Capability.
func (b *AnthropicBackend) Reply(ctx context.Context, history []coach.Message, text string) (string, error) {
	out, err := b.send(ctx, messagesRequest{
		Model:     b.model,
		MaxTokens: replyMaxTokens,
		System:    coachPersona,
		Messages:  toAnthropicMessages(history, text),
	})
	if err != nil {
		return "", b.wrap("reply", err)
	}
	return out, nil
}

// toAnthropicMessages converts history to Messages API turns. The API
// requires the first turn to come from the user, so leading assistant turns
// (such as the welcome message) are dropped.
func toAnthropicMessages(history []coach.Message, text string) []message {
	msgs := make([]message, 0, len(history)+1)
	for _, m := range history {
		role := "user"
		if m.Role == coach.RoleModel {
			role = "assistant"
		}
		if len(msgs) == 0 && role == "assistant" {
			continue
		}
		msgs = append(msgs, message{Role: role, Content: m.Text})
	}
	return append(msgs, message{Role: "user", Content: text})
}

func (b *AnthropicBackend) send(ctx context.Context, reqBody messagesRequest) (string, error) {
	reqBytes, err := sonic.ConfigStd.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", b.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var respData messagesResponse
	if err := sonic.ConfigStd.Unmarshal(body, &respData); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrMalformedResponse, err)
	}

	if respData.Error != nil {
		return "", fmt.Errorf("API error: %s", respData.Error.Message)
	}

	var sb strings.Builder
	for _, block := range respData.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("%w: empty response from API", errors.ErrMalformedResponse)
	}
	return out, nil
}

func (b *AnthropicBackend) wrap(op string, err error) error {
	return errors.NewCapabilityError(op, err).WithBackend(string(BackendAnthropic))
}
