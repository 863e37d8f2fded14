package domain

// SearchOptions configures a retrieval request.
type SearchOptions struct {
	// Limit is the number of nearest chunks to return.
	Limit int
}

// DefaultSearchOptions returns the retrieval defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Limit: DefaultTopK}
}

// Sources returns the distinct source identifiers of the results in rank order.
func Sources(results []QueryResult) []string {
	seen := make(map[string]struct{}, len(results))
	sources := make([]string, 0, len(results))
	for _, r := range results {
		if _, ok := seen[r.Source]; ok {
			continue
		}
		seen[r.Source] = struct{}{}
		sources = append(sources, r.Source)
	}
	return sources
}
