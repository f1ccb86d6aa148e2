package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/muliwe/package-sorter/internal/classifier"
	"github.com/muliwe/package-sorter/internal/logger"
	"github.com/muliwe/package-sorter/internal/sorting"
)

// Version is reported by the API and the CLI
const Version = "1.0.0"

const maxBodyBytes = 1 << 16

// SortRequest is the body of POST /sort. Values stay untyped so that a
// non-numeric measurement is reported as an invalid type.
type SortRequest struct {
	Width  any `json:"width"`
	Height any `json:"height"`
	Length any `json:"length"`
	Mass   any `json:"mass"`
}

// Response represents the API response
type Response struct {
	Stack     sorting.Stack `json:"stack"`
	Bulky     bool          `json:"bulky"`
	Heavy     bool          `json:"heavy"`
	Volume    float64       `json:"volume"`
	Reason    string        `json:"reason"`
	RequestID string        `json:"request_id"`
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	classifier *classifier.Classifier
	decisions  *logger.Logger
	log        *slog.Logger
}

// NewHandler creates a new handler. decisions may be nil to disable the
// decision log; log may be nil to discard operational output.
func NewHandler(cl *classifier.Classifier, decisions *logger.Logger, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		classifier: cl,
		decisions:  decisions,
		log:        log,
	}
}

// HandleSort classifies the package described by a JSON body
func (h *Handler) HandleSort(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	dec.DisallowUnknownFields()

	var req SortRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, badRequest("invalid request body: "+err.Error()))
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, badRequest("invalid request body: unexpected data after the JSON object"))
		return
	}

	result, err := h.classifier.ClassifyValues(req.Width, req.Height, req.Length, req.Mass)
	h.respond(w, r, result, err, startTime)
}

// HandleSortQuery classifies the package described by query parameters
func (h *Handler) HandleSortQuery(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	q := r.URL.Query()
	result, err := h.classifier.ClassifyValues(
		queryValue(q.Get(sorting.FieldWidth), q.Has(sorting.FieldWidth)),
		queryValue(q.Get(sorting.FieldHeight), q.Has(sorting.FieldHeight)),
		queryValue(q.Get(sorting.FieldLength), q.Has(sorting.FieldLength)),
		queryValue(q.Get(sorting.FieldMass), q.Has(sorting.FieldMass)),
	)
	h.respond(w, r, result, err, startTime)
}

// queryValue maps a missing parameter to nil so it reads as "got nothing"
func queryValue(v string, present bool) any {
	if !present {
		return nil
	}
	return v
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, result classifier.Result, err error, startTime time.Time) {
	if err != nil {
		h.log.Info("package refused",
			"remote", r.RemoteAddr,
			"kind", sorting.ErrorKind(err),
			"field", sorting.FieldOf(err),
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}

	responseTime := time.Since(startTime).Milliseconds()

	if h.decisions != nil {
		if err := h.decisions.LogResult(result, r.RemoteAddr, responseTime); err != nil {
			h.log.Error("writing decision log", "error", err)
		}
	}

	h.log.Info("package sorted",
		"remote", r.RemoteAddr,
		"request_id", result.RequestID,
		"stack", result.Stack.String(),
		"bulky", result.Bulky,
		"heavy", result.Heavy,
		"ms", responseTime,
	)

	writeJSON(w, http.StatusOK, Response{
		Stack:     result.Stack,
		Bulky:     result.Bulky,
		Heavy:     result.Heavy,
		Volume:    result.Volume,
		Reason:    result.Reason,
		RequestID: result.RequestID,
		Timestamp: result.Timestamp,
		Version:   Version,
	})
}

// HandleHealth handles the health check endpoint
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleDebug returns the full classification result for query parameters
func (h *Handler) HandleDebug(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.classifier.ClassifyValues(
		queryValue(q.Get(sorting.FieldWidth), q.Has(sorting.FieldWidth)),
		queryValue(q.Get(sorting.FieldHeight), q.Has(sorting.FieldHeight)),
		queryValue(q.Get(sorting.FieldLength), q.Has(sorting.FieldLength)),
		queryValue(q.Get(sorting.FieldMass), q.Has(sorting.FieldMass)),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		h.log.Error("encoding debug response", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
