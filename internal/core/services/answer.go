package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
	"github.com/custodia-labs/encephalon/internal/core/ports/driving"
	"github.com/custodia-labs/encephalon/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// DocumentSeparator joins retrieved chunk texts in the answer prompt.
// It is the two characters backslash and n, not a newline.
const DocumentSeparator = `\n`

// AnswerService answers questions from retrieved chunks.
type AnswerService struct {
	search  driving.SearchService
	llm     driven.LLMService
	prompts driven.PromptStore
	topK    int
}

// NewAnswerService creates an answer service. topK <= 0 means 3.
func NewAnswerService(search driving.SearchService, llm driven.LLMService, topK int) *AnswerService {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &AnswerService{
		search: search,
		llm:    llm,
		topK:   topK,
	}
}

// SetPromptStore sets the store for the customisable answer template.
func (s *AnswerService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// Answer retrieves the nearest chunks and streams the model's answer to emit.
// An empty store still produces an answer from an empty document list.
func (s *AnswerService) Answer(ctx context.Context, question string, emit func(fragment string) error) error {
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("empty question: %w", domain.ErrInvalidInput)
	}
	if s.llm == nil {
		return domain.ErrLLMUnavailable
	}

	results, err := s.search.Search(ctx, question, domain.SearchOptions{Limit: s.topK})
	if err != nil {
		return fmt.Errorf("retrieve: %w", err)
	}

	prompt := s.BuildPrompt(question, results)
	logger.Section("Generation")
	logger.Debug("prompt: %d bytes from %d chunks, model %s", len(prompt), len(results), s.llm.ModelName())

	if err := s.llm.Stream(ctx, prompt, driven.GenerateOptions{Temperature: 0}, emit); err != nil {
		return fmt.Errorf("generate answer: %w", err)
	}
	return nil
}

// BuildPrompt fills the answer template with the question and the chunk
// texts in rank order.
func (s *AnswerService) BuildPrompt(question string, results []domain.QueryResult) string {
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	r := strings.NewReplacer(
		driven.PlaceholderQuestion, question,
		driven.PlaceholderDocuments, strings.Join(texts, DocumentSeparator),
	)
	return r.Replace(s.template())
}

func (s *AnswerService) template() string {
	if s.prompts == nil {
		return driven.DefaultAnswerPrompt
	}
	tmpl, err := s.prompts.Load(driven.PromptAnswer)
	if err != nil || !strings.Contains(tmpl, driven.PlaceholderQuestion) ||
		!strings.Contains(tmpl, driven.PlaceholderDocuments) {
		logger.Warn("answer prompt unusable, using default")
		return driven.DefaultAnswerPrompt
	}
	return tmpl
}
