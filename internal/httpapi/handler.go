// Package httpapi exposes advice, saved records, and history over JSON HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/intelligence"
	"github.com/alexanderramin/carewise/internal/repository"
	"github.com/alexanderramin/carewise/internal/service"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// Handler serves the API. History may be nil, in which case history routes
// answer 404.
type Handler struct {
	advice  intelligence.AdviceService
	records service.RecordService
	history service.HistoryService
}

func NewHandler(advice intelligence.AdviceService, records service.RecordService, history service.HistoryService) *Handler {
	return &Handler{advice: advice, records: records, history: history}
}

type adviceResponse struct {
	Role      domain.Role     `json:"role"`
	Advice    string          `json:"advice"`
	Model     string          `json:"model,omitempty"`
	LatencyMs int64           `json:"latency_ms"`
	Timeline  domain.Timeline `json:"timeline"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type historyItem struct {
	ID        string          `json:"id"`
	Role      domain.Role     `json:"role"`
	Heading   string          `json:"heading"`
	Question  string          `json:"question,omitempty"`
	Record    json.RawMessage `json:"record"`
	Timeline  domain.Timeline `json:"timeline"`
	Response  string          `json:"response"`
	Model     string          `json:"model"`
	CreatedAt time.Time       `json:"created_at"`
}

// RequestAdvice handles POST /advice/{role}. The body is a record document
// with an optional top-level "question".
func (h *Handler) RequestAdvice(w http.ResponseWriter, r *http.Request) {
	role := domain.Role(chi.URLParam(r, "role"))
	if !role.IsValid() {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown advice role: " + string(role)})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	var rec domain.PatientRecord
	var extra struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal(body, &rec); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := json.Unmarshal(body, &extra); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := validateIntake(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	res, err := h.advice.RequestAdvice(r.Context(), intelligence.AdviceRequest{
		Role:     role,
		Record:   &rec,
		Question: extra.Question,
	})
	if err != nil {
		writeJSON(w, adviceErrorStatus(err), errorResponse{Error: intelligence.UserMessage(role, err)})
		return
	}

	writeJSON(w, http.StatusOK, adviceResponse{
		Role:      res.Role,
		Advice:    res.Text,
		Model:     res.Model,
		LatencyMs: res.LatencyMs,
		Timeline:  res.Timeline,
	})
}

// ListRecords handles GET /records.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	files, err := h.records.Choices(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"files": files})
}

// GetRecord handles GET /records/{name}.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	rec, err := h.records.Load(r.Context(), name)
	if err != nil {
		writeJSON(w, recordErrorStatus(err), errorResponse{Error: service.LoadStatus(name, err)})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// PutRecord handles PUT /records/{name}.
func (h *Handler) PutRecord(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var rec domain.PatientRecord
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&rec); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := validateIntake(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	filename, err := h.records.Save(r.Context(), &rec, name)
	status := service.SaveStatus(filename, err)
	if err != nil {
		writeJSON(w, recordErrorStatus(err), errorResponse{Error: status})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status, "file": filename})
}

// ListHistory handles GET /history?role=&limit=.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		http.NotFound(w, r)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	role := domain.Role(r.URL.Query().Get("role"))

	entries, err := h.history.List(r.Context(), role, limit)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidRole) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	items := make([]historyItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, toHistoryItem(e))
	}
	writeJSON(w, http.StatusOK, map[string][]historyItem{"entries": items})
}

// GetHistory handles GET /history/{id}.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		http.NotFound(w, r)
		return
	}
	e, err := h.history.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, toHistoryItem(e))
}

// ListRoles handles GET /roles.
func (h *Handler) ListRoles(w http.ResponseWriter, _ *http.Request) {
	type roleItem struct {
		Role     domain.Role `json:"role"`
		Label    string      `json:"label"`
		Question bool        `json:"question"`
	}
	items := make([]roleItem, 0, len(domain.AllRoles))
	for _, role := range domain.AllRoles {
		items = append(items, roleItem{Role: role, Label: role.Label(), Question: role.IsQuestion()})
	}
	writeJSON(w, http.StatusOK, map[string][]roleItem{"roles": items})
}

func toHistoryItem(e *domain.AdviceEntry) historyItem {
	rec, _ := json.Marshal(e.Record)
	return historyItem{
		ID:        e.ID,
		Role:      e.Role,
		Heading:   e.Heading(),
		Question:  e.Question,
		Record:    rec,
		Timeline:  e.Timeline,
		Response:  e.Response,
		Model:     e.Model,
		CreatedAt: e.CreatedAt,
	}
}

func adviceErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrIncompleteInput), errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAdviceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func recordErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMissingFilename), errors.Is(err, domain.ErrInvalidFilename):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// validateIntake applies the form constraints to a decoded record: gender from
// the closed set and age within range. Blank fields are left to the advice
// service, which reports them as incomplete.
func validateIntake(rec *domain.PatientRecord) error {
	if rec.Gender != "" {
		if _, err := domain.ParseGender(string(rec.Gender)); err != nil {
			return err
		}
	}
	if rec.Age != nil {
		if err := domain.ValidateAge(*rec.Age); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
