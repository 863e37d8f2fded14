package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/custodia-labs/encephalon/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driving"
	"github.com/custodia-labs/encephalon/internal/core/services"
)

type fakeBackend struct {
	settings   driving.SettingsService
	ingest     driving.IngestService
	search     driving.SearchService
	answer     driving.AnswerService
	answerErr  error
	closed     bool
	configPath string
}

func (f *fakeBackend) Settings() driving.SettingsService { return f.settings }
func (f *fakeBackend) ConfigPath() string                { return f.configPath }

func (f *fakeBackend) Ingest(context.Context) (driving.IngestService, error) { return f.ingest, nil }
func (f *fakeBackend) Search(context.Context) (driving.SearchService, error) { return f.search, nil }

func (f *fakeBackend) Answer(context.Context) (driving.AnswerService, error) {
	if f.answerErr != nil {
		return nil, f.answerErr
	}
	return f.answer, nil
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

type fakeSearch struct {
	results []domain.QueryResult
	err     error
	query   string
	limit   int
}

func (f *fakeSearch) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.QueryResult, error) {
	f.query = query
	f.limit = opts.Limit
	return f.results, f.err
}

// fakeAnswer answers from a script keyed by question.
type fakeAnswer struct {
	answers   map[string][]string
	errs      map[string]error
	questions []string
}

func (f *fakeAnswer) Answer(_ context.Context, question string, emit func(string) error) error {
	f.questions = append(f.questions, question)
	for _, frag := range f.answers[question] {
		if err := emit(frag); err != nil {
			return err
		}
	}
	return f.errs[question]
}

type fakeIngest struct {
	reports map[string]*driving.IngestReport
	errs    map[string]error
	history []domain.Ingestion
	calls   []string
	limit   int
}

func (f *fakeIngest) Ingest(_ context.Context, kind domain.DocumentKind, input string) (*driving.IngestReport, error) {
	f.calls = append(f.calls, kind.String()+":"+input)
	if err := f.errs[input]; err != nil {
		return nil, err
	}
	return f.reports[input], nil
}

func (f *fakeIngest) History(_ context.Context, limit int) ([]domain.Ingestion, error) {
	f.limit = limit
	return f.history, nil
}

// useBackend installs b for one test and resets flag state.
func useBackend(t *testing.T, b Backend) {
	t.Helper()
	prevBackend, prevOpener := backend, openBackend
	backend, openBackend = b, nil
	t.Cleanup(func() {
		backend, openBackend = prevBackend, prevOpener
		searchLimit = domain.DefaultTopK
		searchShowText = false
		searchJSON = false
		ingestionsLimit = 20
		verbose = false
	})
}

func newSettingsService() *services.SettingsService {
	return services.NewSettingsService(memory.NewConfigStore(), nil)
}

// execute runs the root command with args and stdin, returning stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	if args == nil {
		args = []string{}
	}
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}
