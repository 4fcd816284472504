package search

// VisibilityFilter mandatory moderation filter.
// Documents authored by a flagged user are hidden from everyone, except
// that a caller always sees their own documents, flagged or not. An empty
// flagged set matches nothing inside must_not, so the first should clause
// then lets everything through.
func VisibilityFilter(flagged []string, userID string) map[string]any {
	if flagged == nil {
		flagged = []string{}
	}

	should := []map[string]any{
		{
			"bool": map[string]any{
				"must_not": []map[string]any{
					{"terms": map[string]any{"user": flagged}},
				},
			},
		},
	}
	if userID != "" {
		should = append(should, map[string]any{"term": map[string]any{"user": userID}})
	}

	return map[string]any{"bool": map[string]any{"should": should}}
}

// WithVisibility attach the visibility filter to a built query document.
// Always called on the search path; user input never reaches the filter.
func WithVisibility(query map[string]any, flagged []string, userID string) map[string]any {
	boolQuery := query["query"].(map[string]any)["bool"].(map[string]any)
	boolQuery["filter"] = VisibilityFilter(flagged, userID)

	return query
}
