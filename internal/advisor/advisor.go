package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/glamourhall/glamourhall/internal/intercept"
	"github.com/glamourhall/glamourhall/internal/llm"
	"github.com/glamourhall/glamourhall/internal/models"
)

// ErrEmptyRequest marks a request with neither prompt text nor images. The
// API layer maps it to a 400.
var ErrEmptyRequest = errors.New("request needs a prompt or at least one image")

const (
	maxProductsPerAdvice = 6
	maxProductsPerImage  = 6
	maxProductsOverall   = 10

	historyWindow = 5

	imageFallbackAdvice = "I couldn't analyze this look. Try sharing another photo and I'll give it a go!"
)

// ConversationStore reads stored conversation turns, newest last.
type ConversationStore interface {
	GetMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
}

// PreferenceStore reads the user's styling profile.
type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID string) (models.Preferences, error)
}

// ProductFinder is the scrape pipeline's entry point. It never fails; any
// internal trouble shows up as an empty slice.
type ProductFinder interface {
	ScrapeProducts(ctx context.Context, keyword string) []models.Product
}

// Classifier short-circuits non-substantive prompts with canned replies.
type Classifier interface {
	Classify(prompt string) *intercept.Reply
}

type Request struct {
	UserID         string   `json:"user_id"`
	ConversationID string   `json:"conversation_id"`
	Prompt         string   `json:"prompt"`
	Images         []string `json:"images"`
}

type Response struct {
	Advice   string                 `json:"advice"`
	Products []models.Product       `json:"products"`
	Analyses []models.ImageAnalysis `json:"analyses,omitempty"`
}

// Service orchestrates one advice request: intercept check, context loading,
// LLM calls, keyword fan-out into the scrape pipeline, and gender filtering.
type Service struct {
	conversations ConversationStore
	preferences   PreferenceStore
	llm           llm.Client
	finder        ProductFinder
	classifier    Classifier
	logger        *slog.Logger
}

func NewService(conversations ConversationStore, preferences PreferenceStore, client llm.Client, finder ProductFinder, classifier Classifier) *Service {
	if classifier == nil {
		classifier = intercept.NewClassifier()
	}
	return &Service{
		conversations: conversations,
		preferences:   preferences,
		llm:           client,
		finder:        finder,
		classifier:    classifier,
		logger:        slog.Default().With("component", "advisor"),
	}
}

// Process handles one fashion-advice request end to end.
func (s *Service) Process(ctx context.Context, req Request) (*Response, error) {
	hasText := trimmed(req.Prompt) != ""
	hasImages := len(req.Images) > 0

	if !hasText && !hasImages {
		return nil, ErrEmptyRequest
	}

	prefs := s.loadPreferences(ctx, req.UserID)
	history := s.loadHistory(ctx, req.ConversationID)

	if hasText && !hasImages {
		return s.processText(ctx, trimmed(req.Prompt), history, prefs)
	}

	return s.processImages(ctx, req.Images, trimmed(req.Prompt), history, prefs)
}

func (s *Service) processText(ctx context.Context, prompt string, history []models.Message, prefs models.Preferences) (*Response, error) {
	if reply := s.classifier.Classify(prompt); reply != nil {
		s.logger.Info("prompt intercepted", "category", reply.Category)
		return &Response{
			Advice:   reply.Advice,
			Products: []models.Product{},
		}, nil
	}

	out, err := s.llm.Complete(ctx, buildAdvicePrompt(prompt, history, prefs))
	if err != nil {
		return nil, fmt.Errorf("advice completion failed: %w", err)
	}

	advice, keywords := ParseAdvice(out)
	products := s.fanOut(ctx, keywords, maxProductsPerAdvice)

	return &Response{
		Advice:   advice,
		Products: FilterByGender(products, prefs),
	}, nil
}

func (s *Service) processImages(ctx context.Context, images []string, prompt string, history []models.Message, prefs models.Preferences) (*Response, error) {
	analyses := make([]models.ImageAnalysis, len(images))

	for i, image := range images {
		analyses[i] = s.analyzeImage(ctx, image, prompt, history, prefs)
	}

	merged := make([]models.Product, 0, maxProductsOverall)
	var adviceParts []string

	for _, a := range analyses {
		adviceParts = append(adviceParts, a.Advice)
		for _, p := range a.Products {
			if len(merged) == maxProductsOverall {
				break
			}
			merged = append(merged, p)
		}
	}

	return &Response{
		Advice:   joinAdvice(adviceParts),
		Products: FilterByGender(merged, prefs),
		Analyses: analyses,
	}, nil
}

// analyzeImage runs the describe-then-refine pair for one image. Either call
// failing degrades this image to the fallback sentence without touching the
// rest of the batch.
func (s *Service) analyzeImage(ctx context.Context, image, prompt string, history []models.Message, prefs models.Preferences) models.ImageAnalysis {
	fallback := models.ImageAnalysis{
		Advice:   imageFallbackAdvice,
		Products: []models.Product{},
	}

	description, err := s.llm.CompleteWithImage(ctx, visionPrompt, image)
	if err != nil {
		s.logger.Error("image analysis failed", "error", err)
		return fallback
	}

	out, err := s.llm.Complete(ctx, buildRefinementPrompt(description, prompt, history, prefs))
	if err != nil {
		s.logger.Error("refinement failed", "error", err)
		return fallback
	}

	advice, keywords := ParseAdvice(out)
	products := s.fanOut(ctx, keywords, maxProductsPerImage)

	return models.ImageAnalysis{
		Advice:   advice,
		Products: FilterByGender(products, prefs),
	}
}

// fanOut scrapes every keyword concurrently and merges results in keyword
// order, not completion order, so output stays deterministic for fixed
// inputs. The scrape service's own limiter bounds browser concurrency.
func (s *Service) fanOut(ctx context.Context, keywords []string, limit int) []models.Product {
	if len(keywords) == 0 {
		return []models.Product{}
	}

	results := make([][]models.Product, len(keywords))
	var wg sync.WaitGroup

	for i, kw := range keywords {
		wg.Add(1)
		go func(i int, kw string) {
			defer wg.Done()
			results[i] = s.finder.ScrapeProducts(ctx, kw)
		}(i, kw)
	}
	wg.Wait()

	merged := make([]models.Product, 0, limit)
	for _, batch := range results {
		for _, p := range batch {
			if len(merged) == limit {
				return merged
			}
			merged = append(merged, p)
		}
	}

	return merged
}

func (s *Service) loadPreferences(ctx context.Context, userID string) models.Preferences {
	if s.preferences == nil || userID == "" {
		return models.Preferences{}
	}

	prefs, err := s.preferences.GetPreferences(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load preferences", "user_id", userID, "error", err)
		return models.Preferences{}
	}
	return prefs
}

func (s *Service) loadHistory(ctx context.Context, conversationID string) []models.Message {
	if s.conversations == nil || conversationID == "" {
		return nil
	}

	messages, err := s.conversations.GetMessages(ctx, conversationID, historyWindow)
	if err != nil {
		s.logger.Warn("failed to load conversation", "conversation_id", conversationID, "error", err)
		return nil
	}
	return messages
}

func joinAdvice(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return imageFallbackAdvice
	}
	return strings.Join(kept, "\n\n")
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
