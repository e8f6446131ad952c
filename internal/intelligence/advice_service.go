package intelligence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/llm"
	"github.com/alexanderramin/carewise/internal/logging"
)

// AdviceRequest is one user action: a role, the intake record, and for
// question roles the free-text question.
type AdviceRequest struct {
	Role     domain.Role
	Record   *domain.PatientRecord
	Question string
}

// AdviceResult is the provider's text, unmodified, plus what produced it.
type AdviceResult struct {
	Role         domain.Role
	Text         string
	Model        string
	LatencyMs    int64
	Timeline     domain.Timeline
	Prompt       string
	SystemPrompt string
}

// AdviceRecorder persists successful exchanges. Recording failures never
// fail the advice request.
type AdviceRecorder interface {
	RecordAdvice(ctx context.Context, entry *domain.AdviceEntry) error
}

// AdviceService turns an intake record into role-specific nursing advice.
type AdviceService interface {
	RequestAdvice(ctx context.Context, req AdviceRequest) (*AdviceResult, error)
}

type adviceService struct {
	client   llm.LLMClient
	clock    domain.Clock
	recorder AdviceRecorder
}

// NewAdviceService creates an AdviceService. clock supplies "today" and
// recorder may be nil.
func NewAdviceService(client llm.LLMClient, clock domain.Clock, recorder AdviceRecorder) AdviceService {
	return &adviceService{client: client, clock: clock, recorder: recorder}
}

func (s *adviceService) RequestAdvice(ctx context.Context, req AdviceRequest) (*AdviceResult, error) {
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, req.Role)
	}
	ctx = logging.AppendCtx(ctx, slog.String("role", string(req.Role)))
	if req.Record == nil {
		return nil, domain.ErrIncompleteInput
	}
	if err := req.Record.Validate(); err != nil {
		return nil, err
	}

	question := strings.TrimSpace(req.Question)
	if req.Role.IsQuestion() && question == "" {
		return nil, domain.ErrMissingQuestion
	}

	opDate, startDate, err := req.Record.Dates()
	if err != nil {
		return nil, err
	}
	tl := domain.ComputeTimeline(opDate, startDate, s.clock())

	prompt, err := ComposePrompt(req.Role, req.Record, tl, question)
	if err != nil {
		return nil, err
	}
	system, err := SystemPrompt(req.Role)
	if err != nil {
		return nil, err
	}

	task := llm.TaskAdvice
	if req.Role.IsQuestion() {
		task = llm.TaskQuestion
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: system,
		UserPrompt:   prompt,
	})
	if err != nil {
		slog.DebugContext(ctx, "advice request failed", "error", err)
		return nil, &domain.AdviceUnavailableError{Role: req.Role, Err: err}
	}

	result := &AdviceResult{
		Role:         req.Role,
		Text:         resp.Text,
		Model:        resp.Model,
		LatencyMs:    resp.LatencyMs,
		Timeline:     tl,
		Prompt:       prompt,
		SystemPrompt: system,
	}

	if s.recorder != nil {
		err := s.recorder.RecordAdvice(ctx, &domain.AdviceEntry{
			Role:      req.Role,
			Question:  question,
			Record:    *req.Record,
			Timeline:  tl,
			Prompt:    prompt,
			Response:  resp.Text,
			Model:     resp.Model,
			LatencyMs: resp.LatencyMs,
		})
		if err != nil {
			slog.WarnContext(ctx, "advice history not recorded", "error", err)
		}
	}

	return result, nil
}
