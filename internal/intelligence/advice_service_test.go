package intelligence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLLMClient struct {
	response string
	err      error
	calls    []llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "gpt-4", LatencyMs: 5}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

type recorderFunc func(ctx context.Context, e *domain.AdviceEntry) error

func (f recorderFunc) RecordAdvice(ctx context.Context, e *domain.AdviceEntry) error { return f(ctx, e) }

// 2025-06-15: operation 10 days earlier, treatment 5 days later.
func fixedClock() time.Time { return time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC) }

func TestRequestAdvice_Success(t *testing.T) {
	client := &mockLLMClient{response: "\n1. **PATIENT STAGE ASSESSMENT**: ...  "}
	svc := NewAdviceService(client, fixedClock, nil)

	res, err := svc.RequestAdvice(context.Background(), AdviceRequest{
		Role:   domain.RoleGeneralAdvice,
		Record: testRecord(),
	})

	require.NoError(t, err)
	assert.Equal(t, "\n1. **PATIENT STAGE ASSESSMENT**: ...  ", res.Text)
	assert.Equal(t, 10, res.Timeline.DaysSinceOperation)
	assert.Equal(t, domain.PhaseFuture, res.Timeline.Status.Phase)
	assert.Equal(t, 5, res.Timeline.Status.Days)

	require.Len(t, client.calls, 1)
	call := client.calls[0]
	assert.Equal(t, llm.TaskAdvice, call.Task)
	assert.Contains(t, call.UserPrompt, "Treatment starts in 5 days (future)")
	assert.Equal(t, systemPrompts[domain.RoleGeneralAdvice], call.SystemPrompt)
}

func TestRequestAdvice_TaskPerRole(t *testing.T) {
	for _, role := range domain.AllRoles {
		client := &mockLLMClient{response: "ok"}
		svc := NewAdviceService(client, fixedClock, nil)

		_, err := svc.RequestAdvice(context.Background(), AdviceRequest{Role: role, Record: testRecord(), Question: "Is walking ok?"})
		require.NoError(t, err, role)
		require.Len(t, client.calls, 1)

		want := llm.TaskAdvice
		if role.IsQuestion() {
			want = llm.TaskQuestion
		}
		assert.Equal(t, want, client.calls[0].Task, role)
	}
}

func TestRequestAdvice_IncompleteInputSkipsProvider(t *testing.T) {
	blankers := []func(r *domain.PatientRecord){
		func(r *domain.PatientRecord) { r.Gender = "" },
		func(r *domain.PatientRecord) { r.Age = nil },
		func(r *domain.PatientRecord) { r.Diagnosis = "" },
		func(r *domain.PatientRecord) { r.OperationDescription = "" },
		func(r *domain.PatientRecord) { r.OperationDate = "" },
		func(r *domain.PatientRecord) { r.TreatmentDetails = "" },
		func(r *domain.PatientRecord) { r.TreatmentStartDate = "" },
	}
	for i, blank := range blankers {
		client := &mockLLMClient{response: "should not be used"}
		svc := NewAdviceService(client, fixedClock, nil)

		rec := testRecord()
		blank(rec)
		_, err := svc.RequestAdvice(context.Background(), AdviceRequest{Role: domain.RoleCarerAdvice, Record: rec})

		assert.ErrorIs(t, err, domain.ErrIncompleteInput, "field %d", i)
		assert.Empty(t, client.calls, "field %d", i)
	}
}

func TestRequestAdvice_MissingQuestion(t *testing.T) {
	client := &mockLLMClient{response: "x"}
	svc := NewAdviceService(client, fixedClock, nil)

	_, err := svc.RequestAdvice(context.Background(), AdviceRequest{
		Role:     domain.RolePatientQuestion,
		Record:   testRecord(),
		Question: "   ",
	})

	assert.ErrorIs(t, err, domain.ErrMissingQuestion)
	assert.ErrorIs(t, err, domain.ErrIncompleteInput)
	assert.Empty(t, client.calls)
}

func TestRequestAdvice_InvalidDate(t *testing.T) {
	client := &mockLLMClient{response: "x"}
	svc := NewAdviceService(client, fixedClock, nil)

	rec := testRecord()
	rec.OperationDate = "05/06/2025"
	_, err := svc.RequestAdvice(context.Background(), AdviceRequest{Role: domain.RoleGeneralAdvice, Record: rec})

	assert.ErrorIs(t, err, domain.ErrInvalidDate)
	var dateErr *domain.InvalidDateError
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, "operation date", dateErr.Field)
	assert.Empty(t, client.calls)
}

func TestRequestAdvice_InvalidRole(t *testing.T) {
	svc := NewAdviceService(&mockLLMClient{}, fixedClock, nil)
	_, err := svc.RequestAdvice(context.Background(), AdviceRequest{Role: "nurse_notes", Record: testRecord()})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestRequestAdvice_ProviderFailureCarriesRawText(t *testing.T) {
	providerErr := errors.New("error, status code: 401, message: Incorrect API key provided")
	svc := NewAdviceService(&mockLLMClient{err: providerErr}, fixedClock, nil)

	_, err := svc.RequestAdvice(context.Background(), AdviceRequest{Role: domain.RolePatientAdvice, Record: testRecord()})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAdviceUnavailable)
	assert.ErrorIs(t, err, providerErr)
	var au *domain.AdviceUnavailableError
	require.True(t, errors.As(err, &au))
	assert.Equal(t, domain.RolePatientAdvice, au.Role)
	assert.Equal(t, providerErr.Error(), au.Raw())
}

func TestRequestAdvice_RecordsSuccessfulExchange(t *testing.T) {
	var recorded *domain.AdviceEntry
	rec := recorderFunc(func(_ context.Context, e *domain.AdviceEntry) error {
		recorded = e
		return nil
	})
	svc := NewAdviceService(&mockLLMClient{response: "Keep the wound dry."}, fixedClock, rec)

	_, err := svc.RequestAdvice(context.Background(), AdviceRequest{
		Role:     domain.RoleCarerQuestion,
		Record:   testRecord(),
		Question: "  Can he shower?  ",
	})

	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.Equal(t, domain.RoleCarerQuestion, recorded.Role)
	assert.Equal(t, "Can he shower?", recorded.Question)
	assert.Equal(t, "Keep the wound dry.", recorded.Response)
	assert.Equal(t, "Colorectal cancer", recorded.Record.Diagnosis)
	assert.Contains(t, recorded.Prompt, `"Can he shower?"`)
}

func TestRequestAdvice_RecorderFailureDoesNotFailRequest(t *testing.T) {
	rec := recorderFunc(func(context.Context, *domain.AdviceEntry) error { return errors.New("disk full") })
	svc := NewAdviceService(&mockLLMClient{response: "ok"}, fixedClock, rec)

	res, err := svc.RequestAdvice(context.Background(), AdviceRequest{Role: domain.RoleGeneralAdvice, Record: testRecord()})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Text)
}

func TestRequestAdvice_ProviderFailureNotRecorded(t *testing.T) {
	called := false
	rec := recorderFunc(func(context.Context, *domain.AdviceEntry) error { called = true; return nil })
	svc := NewAdviceService(&mockLLMClient{err: context.DeadlineExceeded}, fixedClock, rec)

	_, err := svc.RequestAdvice(context.Background(), AdviceRequest{Role: domain.RoleGeneralAdvice, Record: testRecord()})
	require.Error(t, err)
	assert.False(t, called)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, MsgIncompleteInput, UserMessage(domain.RoleGeneralAdvice, domain.ErrIncompleteInput))
	assert.Equal(t, MsgMissingQuestion, UserMessage(domain.RoleCarerQuestion, domain.ErrMissingQuestion))

	unavailable := &domain.AdviceUnavailableError{Role: domain.RoleCarerAdvice, Err: errors.New("connection reset by peer")}
	msg := UserMessage(domain.RoleCarerAdvice, unavailable)
	assert.Equal(t, "❌ Error getting carer advice: connection reset by peer\n\nPlease check your API key and internet connection.", msg)

	dateErr := &domain.InvalidDateError{Field: "operation date", Value: "tomorrow", Err: errors.New("bad")}
	assert.Contains(t, UserMessage(domain.RoleGeneralAdvice, dateErr), "YYYY-MM-DD")

	assert.Empty(t, UserMessage(domain.RoleGeneralAdvice, nil))
}
