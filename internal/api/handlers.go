package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/glamourhall/glamourhall/internal/advisor"
	"github.com/glamourhall/glamourhall/internal/models"
)

const genericErrorMessage = "Something went wrong while styling your request. Please try again in a moment."

// Processor handles one fashion-advice request.
type Processor interface {
	Process(ctx context.Context, req advisor.Request) (*advisor.Response, error)
}

// ProductFinder exposes the scrape pipeline directly for debugging.
type ProductFinder interface {
	ScrapeProducts(ctx context.Context, keyword string) []models.Product
}

// MessageWriter records conversation turns after advice has been served.
// May be nil when no database is configured.
type MessageWriter interface {
	AppendMessage(ctx context.Context, conversationID, role, content string) (models.Message, error)
}

type Handlers struct {
	advisor  Processor
	finder   ProductFinder
	messages MessageWriter
	logger   *slog.Logger
}

func NewHandlers(advisorSvc Processor, finder ProductFinder, messages MessageWriter, logger *slog.Logger) *Handlers {
	return &Handlers{
		advisor:  advisorSvc,
		finder:   finder,
		messages: messages,
		logger:   logger,
	}
}

// Process handles POST /api/v1/process.
func (h *Handlers) Process(w http.ResponseWriter, r *http.Request) {
	var req advisor.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.advisor.Process(r.Context(), req)
	if err != nil {
		if errors.Is(err, advisor.ErrEmptyRequest) {
			h.respondError(w, http.StatusBadRequest, "please send a message or an image to get styling advice")
			return
		}
		h.logger.Error("process request failed", "error", err, "user_id", req.UserID)
		h.respondError(w, http.StatusInternalServerError, genericErrorMessage)
		return
	}

	h.recordTurns(r.Context(), req, resp)

	h.respondJSON(w, http.StatusOK, resp)
}

// recordTurns persists the user turn and the advisor's reply. Failures are
// logged only; the advice has already been produced.
func (h *Handlers) recordTurns(ctx context.Context, req advisor.Request, resp *advisor.Response) {
	if h.messages == nil || req.ConversationID == "" {
		return
	}

	if prompt := strings.TrimSpace(req.Prompt); prompt != "" {
		if _, err := h.messages.AppendMessage(ctx, req.ConversationID, models.RoleUser, prompt); err != nil {
			h.logger.Warn("failed to record user turn", "conversation_id", req.ConversationID, "error", err)
		}
	}

	if _, err := h.messages.AppendMessage(ctx, req.ConversationID, models.RoleAssistant, resp.Advice); err != nil {
		h.logger.Warn("failed to record reply", "conversation_id", req.ConversationID, "error", err)
	}
}

// ProductsRequest represents a direct keyword scrape request.
type ProductsRequest struct {
	Keyword string `json:"keyword"`
}

type ProductsResponse struct {
	Products []models.Product `json:"products"`
}

// Products handles POST /api/v1/products. The scrape pipeline never fails
// outward, so the only error path here is a bad request body.
func (h *Handlers) Products(w http.ResponseWriter, r *http.Request) {
	var req ProductsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Keyword) == "" {
		h.respondError(w, http.StatusBadRequest, "keyword is required")
		return
	}

	products := h.finder.ScrapeProducts(r.Context(), req.Keyword)

	h.respondJSON(w, http.StatusOK, ProductsResponse{Products: products})
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
