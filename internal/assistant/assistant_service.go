package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/hopeIsCo0l/AnuTest/internal/repository"
	custom_error "github.com/hopeIsCo0l/AnuTest/pkg/errors"
	"github.com/hopeIsCo0l/AnuTest/pkg/models"

	"go.uber.org/zap"
)

const (
	analyzeKeyMissing = "API Key missing. Cannot generate insights."
	askKeyMissing     = "API Key missing."
	analyzeFailed     = "Sorry, I couldn't analyze the inventory at this moment."
	askFailed         = "I'm having trouble connecting to the candy cloud right now."

	DefaultTimeout = 20 * time.Second
)

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Disabled stands in for a generator when no API key is configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", custom_error.New(custom_error.ReasonExternalUnavailable, "gemini", "assistant is not configured")
}

type Reply struct {
	Text      string `json:"text"`
	Available bool   `json:"available"`
}

type AssistantService struct {
	r         *repository.Repository
	generator Generator
	timeout   time.Duration
	log       *zap.Logger
}

func NewAssistantService(r *repository.Repository, generator Generator, timeout time.Duration, log *zap.Logger) *AssistantService {
	if generator == nil {
		generator = Disabled{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &AssistantService{r: r, generator: generator, timeout: timeout, log: log}
}

// Analyze asks for an executive summary of the current stock and latest ledger entries.
func (s *AssistantService) Analyze(ctx context.Context) Reply {
	state := s.r.Snapshot()
	recent := make([]models.Transaction, 0, len(state.Ledger))
	for i := len(state.Ledger) - 1; i >= 0; i-- {
		recent = append(recent, state.Ledger[i])
	}

	return s.generate(ctx, "analyze", analysisPrompt(state.Items, recent), analyzeKeyMissing, analyzeFailed)
}

func (s *AssistantService) Ask(ctx context.Context, message string) Reply {
	prompt, err := chatPrompt(s.r.Snapshot().Items, message)
	if err != nil {
		s.log.Error("Unable to build assistant prompt", zap.Error(err))
		return Reply{Text: askFailed}
	}
	return s.generate(ctx, "ask", prompt, askKeyMissing, askFailed)
}

func (s *AssistantService) generate(ctx context.Context, kind, prompt, keyMissing, failed string) Reply {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, custom_error.ErrUnavailable) {
			return Reply{Text: keyMissing}
		}
		s.log.Error("Assistant request failed", zap.String("kind", kind), zap.Error(err))
		return Reply{Text: failed}
	}
	return Reply{Text: text, Available: true}
}
