package driven

// Tokenizer is a deterministic subword tokenizer.
type Tokenizer interface {
	// Encode converts text to token ids.
	Encode(text string) []int

	// Decode converts token ids back to text.
	Decode(tokens []int) string

	// Name returns the encoding name.
	Name() string
}
