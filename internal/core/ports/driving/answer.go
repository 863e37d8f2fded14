package driving

import "context"

// AnswerService answers questions from the knowledge base.
type AnswerService interface {
	// Answer streams the answer to question, calling emit for every
	// fragment as the model produces it.
	Answer(ctx context.Context, question string, emit func(fragment string) error) error
}
