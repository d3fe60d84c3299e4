package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamourhall/glamourhall/internal/advisor"
	"github.com/glamourhall/glamourhall/internal/models"
)

type stubProcessor struct {
	resp *advisor.Response
	err  error
}

func (s *stubProcessor) Process(_ context.Context, _ advisor.Request) (*advisor.Response, error) {
	return s.resp, s.err
}

type stubFinder struct {
	products []models.Product
	keyword  string
}

func (s *stubFinder) ScrapeProducts(_ context.Context, keyword string) []models.Product {
	s.keyword = keyword
	return s.products
}

type recordedTurn struct {
	conversationID string
	role           string
	content        string
}

type stubWriter struct {
	turns []recordedTurn
	err   error
}

func (s *stubWriter) AppendMessage(_ context.Context, conversationID, role, content string) (models.Message, error) {
	s.turns = append(s.turns, recordedTurn{conversationID, role, content})
	return models.Message{ConversationID: conversationID, Role: role, Content: content}, s.err
}

func newTestHandlers(p Processor, f ProductFinder) *Handlers {
	return NewHandlers(p, f, nil, slog.Default())
}

func TestProcessHandlerSuccess(t *testing.T) {
	h := newTestHandlers(&stubProcessor{resp: &advisor.Response{
		Advice:   "Wear the blue one.",
		Products: []models.Product{{Name: "Blue Shirt", Price: "Rs. 899"}},
	}}, &stubFinder{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process",
		strings.NewReader(`{"user_id":"u1","prompt":"which shirt"}`))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp advisor.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Wear the blue one.", resp.Advice)
	require.Len(t, resp.Products, 1)
}

func TestProcessHandlerEmptyRequest(t *testing.T) {
	h := newTestHandlers(&stubProcessor{err: advisor.ErrEmptyRequest}, &stubFinder{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessHandlerInternalError(t *testing.T) {
	h := newTestHandlers(&stubProcessor{err: errors.New("llm exploded: secret detail")}, &stubFinder{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process",
		strings.NewReader(`{"prompt":"style me"}`))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, genericErrorMessage, body["error"])
	assert.NotContains(t, body["error"], "secret detail", "internal detail never leaks")
}

func TestProcessHandlerRecordsTurns(t *testing.T) {
	writer := &stubWriter{}
	h := NewHandlers(&stubProcessor{resp: &advisor.Response{Advice: "Go with linen."}},
		&stubFinder{}, writer, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process",
		strings.NewReader(`{"user_id":"u1","conversation_id":"c1","prompt":"summer outfit"}`))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, writer.turns, 2)
	assert.Equal(t, recordedTurn{"c1", models.RoleUser, "summer outfit"}, writer.turns[0])
	assert.Equal(t, recordedTurn{"c1", models.RoleAssistant, "Go with linen."}, writer.turns[1])
}

func TestProcessHandlerSkipsRecordingWithoutConversation(t *testing.T) {
	writer := &stubWriter{}
	h := NewHandlers(&stubProcessor{resp: &advisor.Response{Advice: "Go with linen."}},
		&stubFinder{}, writer, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process",
		strings.NewReader(`{"user_id":"u1","prompt":"summer outfit"}`))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, writer.turns)
}

func TestProcessHandlerStoreFailureStillResponds(t *testing.T) {
	writer := &stubWriter{err: errors.New("db down")}
	h := NewHandlers(&stubProcessor{resp: &advisor.Response{Advice: "Go with linen."}},
		&stubFinder{}, writer, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process",
		strings.NewReader(`{"conversation_id":"c1","prompt":"summer outfit"}`))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp advisor.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Go with linen.", resp.Advice)
}

func TestProcessHandlerBadJSON(t *testing.T) {
	h := newTestHandlers(&stubProcessor{}, &stubFinder{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductsHandler(t *testing.T) {
	finder := &stubFinder{products: []models.Product{{Name: "Silk Scarf", Price: "Rs. 499"}}}
	h := newTestHandlers(&stubProcessor{}, finder)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products",
		strings.NewReader(`{"keyword":"silk scarves"}`))
	rec := httptest.NewRecorder()

	h.Products(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "silk scarves", finder.keyword)

	var resp ProductsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Silk Scarf", resp.Products[0].Name)
}

func TestProductsHandlerRequiresKeyword(t *testing.T) {
	h := newTestHandlers(&stubProcessor{}, &stubFinder{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"keyword":"  "}`))
	rec := httptest.NewRecorder()

	h.Products(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
