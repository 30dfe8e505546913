package rag

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/Rohang10/saas-copilot/internal/pkg/logger"
	"github.com/Rohang10/saas-copilot/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	usecase  RAGUsecase
	adminKey string
}

func NewHandler(usecase RAGUsecase, adminKey string) *Handler {
	return &Handler{
		usecase:  usecase,
		adminKey: adminKey,
	}
}

// Ingest handles POST /rag/ingest
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Ingest")

	result, err := h.usecase.Ingest(ctx)
	if err != nil {
		status, message := response.Classify(err)
		if status >= http.StatusInternalServerError {
			ctxzap.Error(ctx, "ingestion failed", zap.Error(err))
		} else {
			ctxzap.Warn(ctx, "ingestion rejected", zap.Error(err))
		}

		response.JSON(w, status, entity.IngestErrorResponse{
			Status:  entity.IngestStatusError,
			Error:   http.StatusText(status),
			Message: message,
		})
		return
	}

	response.Success(w, result)
}

// Ask handles POST /rag/ask. The answer is always returned with 200,
// failures are reported through its status field.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Ask")

	req := h.parseAskRequest(w, r)

	response.Success(w, h.usecase.Ask(ctx, req))
}

// Evaluate handles POST /rag/evaluate
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.usecase.Evaluation())
}

// Ready handles GET /ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Ready")

	ready, err := h.usecase.Readiness(ctx)
	if err != nil {
		ctxzap.Error(ctx, "readiness check failed", zap.Error(err))
		response.JSON(w, http.StatusServiceUnavailable, entity.ReadyResponse{Status: entity.ReadinessNotReady})
		return
	}

	response.Success(w, ready)
}

// parseAskRequest reads question and top_k from the query string and falls
// back to a JSON body for whatever the query does not carry.
func (h *Handler) parseAskRequest(w http.ResponseWriter, r *http.Request) entity.AskRequest {
	query := r.URL.Query()
	req := entity.AskRequest{Question: query.Get("question")}

	if raw := query.Get("top_k"); raw != "" {
		topK, err := strconv.Atoi(raw)
		if err != nil {
			ctxzap.Warn(r.Context(), "ignoring invalid top_k", zap.String("top_k", raw))
		} else {
			req.TopK = topK
		}
	}

	if req.Question != "" && query.Has("top_k") {
		return req
	}

	if r.Body == nil {
		return req
	}

	var body entity.AskRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		if !errors.Is(err, io.EOF) {
			ctxzap.Warn(r.Context(), "ignoring invalid ask body", zap.Error(err))
		}
		return req
	}

	if req.Question == "" {
		req.Question = body.Question
	}
	if !query.Has("top_k") {
		req.TopK = body.TopK
	}

	return req
}
