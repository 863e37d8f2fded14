// Package tiktoken adapts the tiktoken BPE encodings to driven.Tokenizer.
// Encodings are loaded from data compiled into the binary, so no network
// access is needed at runtime.
package tiktoken

import (
	"fmt"
	"sync"

	tk "github.com/pkoukk/tiktoken-go"
	loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// DefaultEncoding is the encoding used when none is configured.
const DefaultEncoding = domain.DefaultEncoding

var offlineLoader sync.Once

// Tokenizer wraps one tiktoken encoding.
type Tokenizer struct {
	name string
	enc  *tk.Tiktoken
}

// New loads the named encoding, or cl100k_base when name is empty.
func New(name string) (*Tokenizer, error) {
	if name == "" {
		name = DefaultEncoding
	}

	offlineLoader.Do(func() {
		tk.SetBpeLoader(loader.NewOfflineLoader())
	})

	enc, err := tk.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("load encoding %q: %w", name, domain.ErrConfiguration)
	}

	return &Tokenizer{name: name, enc: enc}, nil
}

// Encode converts text to token ids. Special-token text is encoded as
// ordinary text.
func (t *Tokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

// Decode converts token ids back to text.
func (t *Tokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}

// Name returns the encoding name.
func (t *Tokenizer) Name() string {
	return t.name
}
