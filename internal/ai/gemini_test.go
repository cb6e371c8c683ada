package ai

import (
	"context"
	"fmt"
	"testing"

	"google.golang.org/genai"

	"github.com/Iron-Ham/cerebro/internal/coach"
	"github.com/Iron-Ham/cerebro/internal/errors"
)

type stubGenerator struct {
	text     string
	err      error
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (s *stubGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.model = model
	s.contents = contents
	s.config = config
	if s.err != nil {
		return nil, s.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(s.text, genai.RoleModel)},
		},
	}, nil
}

func TestGeminiBackend_GenerateSubsteps(t *testing.T) {
	stub := &stubGenerator{text: `["Abrir documento", "Escribir título", "Guardar"]`}
	b := newGeminiBackend(stub)

	steps, err := b.GenerateSubsteps(context.Background(), "Escribir informe")
	if err != nil {
		t.Fatalf("GenerateSubsteps() error = %v", err)
	}
	if len(steps) != 3 || steps[0] != "Abrir documento" {
		t.Errorf("steps = %v", steps)
	}
	if stub.model != DefaultGeminiModel {
		t.Errorf("model = %q, want %q", stub.model, DefaultGeminiModel)
	}
	if stub.config == nil || stub.config.ResponseMIMEType != "application/json" {
		t.Fatal("expected JSON response MIME type")
	}
	if stub.config.ResponseSchema == nil || stub.config.ResponseSchema.Type != genai.TypeArray {
		t.Error("expected array response schema")
	}
}

func TestGeminiBackend_GenerateSubsteps_Errors(t *testing.T) {
	tests := []struct {
		name string
		stub *stubGenerator
	}{
		{"api error", &stubGenerator{err: fmt.Errorf("quota exceeded")}},
		{"empty text", &stubGenerator{text: ""}},
		{"not json", &stubGenerator{text: "sorry"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newGeminiBackend(tt.stub)
			_, err := b.GenerateSubsteps(context.Background(), "x")
			if err == nil {
				t.Fatal("expected error")
			}
			var capErr *errors.CapabilityError
			if !errors.As(err, &capErr) {
				t.Fatalf("error type = %T, want *CapabilityError", err)
			}
			if capErr.Backend != "gemini" {
				t.Errorf("Backend = %q, want gemini", capErr.Backend)
			}
		})
	}
}

func TestGeminiBackend_Reply(t *testing.T) {
	stub := &stubGenerator{text: "Lo entiendo. Abre el documento ahora."}
	b := newGeminiBackend(stub, WithGeminiModel("gemini-test"))

	history := []coach.Message{
		{Role: coach.RoleModel, Text: "Hola"},
		{Role: coach.RoleUser, Text: "No puedo empezar"},
	}
	out, err := b.Reply(context.Background(), history, "Ayuda")
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if out != "Lo entiendo. Abre el documento ahora." {
		t.Errorf("Reply() = %q", out)
	}
	if stub.model != "gemini-test" {
		t.Errorf("model = %q, want gemini-test", stub.model)
	}
	if len(stub.contents) != 3 {
		t.Fatalf("contents = %d, want 3", len(stub.contents))
	}
	if stub.contents[0].Role != string(genai.RoleModel) {
		t.Errorf("first role = %q, want model", stub.contents[0].Role)
	}
	if stub.contents[2].Role != string(genai.RoleUser) || stub.contents[2].Parts[0].Text != "Ayuda" {
		t.Errorf("last content = %+v", stub.contents[2])
	}
	if stub.config == nil || stub.config.SystemInstruction == nil {
		t.Error("expected system instruction")
	}
}

func TestGeminiBackend_Name(t *testing.T) {
	b := newGeminiBackend(&stubGenerator{})
	if b.Name() != BackendGemini {
		t.Errorf("Name() = %q", b.Name())
	}
	if b.Model() != DefaultGeminiModel {
		t.Errorf("Model() = %q", b.Model())
	}
}
