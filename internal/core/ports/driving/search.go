package driving

import (
	"context"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

// SearchService retrieves stored chunks nearest to a question.
type SearchService interface {
	// Search embeds the query and returns up to opts.Limit results,
	// most similar first. An empty store yields an empty slice.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.QueryResult, error)
}
