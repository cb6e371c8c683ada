package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/Iron-Ham/cerebro/internal/coach"
	"github.com/Iron-Ham/cerebro/internal/errors"
)

// DefaultGeminiModel is the model used when ai.model is empty.
const DefaultGeminiModel = "gemini-2.5-flash"

// contentGenerator is the slice of *genai.Models the backend uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiBackend implements Backend with the Gemini API.
type GeminiBackend struct {
	models contentGenerator
	model  string
}

// GeminiOption configures a GeminiBackend.
type GeminiOption func(*GeminiBackend)

// WithGeminiModel overrides DefaultGeminiModel.
func WithGeminiModel(model string) GeminiOption {
	return func(b *GeminiBackend) {
		b.model = model
	}
}

// NewGeminiBackend creates a backend using apiKey.
func NewGeminiBackend(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGeminiBackend(client.Models, opts...), nil
}

func newGeminiBackend(models contentGenerator, opts ...GeminiOption) *GeminiBackend {
	b := &GeminiBackend{models: models, model: DefaultGeminiModel}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name implements Backend.
func (b *GeminiBackend) Name() BackendName { return BackendGemini }

// Model returns the model in use.
func (b *GeminiBackend) Model() string { return b.model }

// GenerateSubsteps implements coach.Capability. The response is constrained
// to a JSON array of strings.
func (b *GeminiBackend) GenerateSubsteps(ctx context.Context, content string) ([]string, error) {
	resp, err := b.models.GenerateContent(ctx, b.model,
		genai.Text(breakdownPrompt(content)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
	)
	if err != nil {
		return nil, b.wrap("generate substeps", err)
	}
	text := resp.Text()
	if text == "" {
		return nil, b.wrap("generate substeps", errors.ErrMalformedResponse)
	}
	steps, err := parseSteps(text)
	if err != nil {
		return nil, b.wrap("generate substeps", err)
	}
	return steps, nil
}

// Reply implements coach.Capability.
func (b *GeminiBackend) Reply(ctx context.Context, history []coach.Message, text string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == coach.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))

	resp, err := b.models.GenerateContent(ctx, b.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(coachPersona, genai.RoleUser),
	})
	if err != nil {
		return "", b.wrap("reply", err)
	}
	out := resp.Text()
	if out == "" {
		return "", b.wrap("reply", errors.ErrMalformedResponse)
	}
	return out, nil
}

func (b *GeminiBackend) wrap(op string, err error) error {
	return errors.NewCapabilityError(op, err).WithBackend(string(BackendGemini))
}
