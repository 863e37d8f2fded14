package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

func TestAskCmd_StreamsAnswer(t *testing.T) {
	answer := &fakeAnswer{answers: map[string][]string{
		"why is the sky blue": {"Rayleigh ", "scattering."},
	}}
	useBackend(t, &fakeBackend{answer: answer})

	out, _, err := execute(t, "", "ask", "why", "is", "the", "sky", "blue")

	require.NoError(t, err)
	assert.Equal(t, "Rayleigh scattering.\n", out)
	assert.Equal(t, []string{"why is the sky blue"}, answer.questions)
}

func TestAskCmd_ModelUnreachable(t *testing.T) {
	useBackend(t, &fakeBackend{answerErr: domain.ErrLLMUnavailable})

	out, _, err := execute(t, "", "ask", "anything")

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Empty(t, out)
}

func TestAskCmd_FailureAfterFragments(t *testing.T) {
	answer := &fakeAnswer{
		answers: map[string][]string{"q": {"partial"}},
		errs:    map[string]error{"q": domain.ErrLLMUnavailable},
	}
	useBackend(t, &fakeBackend{answer: answer})

	out, _, err := execute(t, "", "ask", "q")

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Equal(t, "partial\n", out)
}
