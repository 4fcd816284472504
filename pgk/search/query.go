package search

import (
	"strconv"

	"github.com/saveblush/annotate-api/core/cctx"
	"github.com/saveblush/annotate-api/models"
)

const (
	defaultFrom      = 0
	defaultSize      = 20
	defaultSortField = "updated"
	defaultSortOrder = "desc"
)

// control parameters, never turned into match clauses
var reservedParams = map[string]bool{
	"offset": true,
	"limit":  true,
	"sort":   true,
	"order":  true,
}

// fields the "any" keyword parameter searches across
var keywordFields = []string{"quote", "tags", "text", "uri.parts", "user"}

// BuildQuery translate request parameters into a search query document.
// Parameters the builder doesn't know pass through as match clauses on the
// literal field name, so callers can filter on any indexed field.
func (s *service) BuildQuery(c *cctx.Context, params models.Params) (map[string]any, error) {
	musts := []map[string]any{}
	for _, group := range params.Groups(reservedParams) {
		switch group.Key {
		case "any":
			musts = append(musts, map[string]any{
				"multi_match": map[string]any{
					"fields": keywordFields,
					"query":  group.Values,
					"type":   "cross_fields",
				},
			})

		case "uri":
			for _, v := range group.Values {
				clause, err := s.uriClause(c, v)
				if err != nil {
					return nil, err
				}
				musts = append(musts, clause)
			}

		default:
			for _, v := range group.Values {
				musts = append(musts, matchClause(group.Key, v))
			}
		}
	}

	if len(musts) == 0 {
		musts = append(musts, map[string]any{"match_all": map[string]any{}})
	}

	query := map[string]any{
		"from": intParam(params, "offset", defaultFrom),
		"size": intParam(params, "limit", defaultSize),
		"sort": sortParam(params),
		"query": map[string]any{
			"bool": map[string]any{"must": musts},
		},
	}

	return query, nil
}

func matchClause(field, value string) map[string]any {
	return map[string]any{"match": map[string]any{field: value}}
}

// uriClause match a uri parameter against every equivalent representation.
// One representation is a plain match; several become a disjunction.
func (s *service) uriClause(c *cctx.Context, rawURI string) (map[string]any, error) {
	uris, err := s.uri.Expand(c, rawURI)
	if err != nil {
		return nil, err
	}

	if len(uris) == 1 {
		return matchClause("uri", uris[0]), nil
	}

	should := make([]map[string]any, 0, len(uris))
	for _, v := range uris {
		should = append(should, matchClause("uri", v))
	}

	return map[string]any{
		"bool": map[string]any{
			"minimum_should_match": 1,
			"should":               should,
		},
	}, nil
}

// intParam first value of key if it parses as a non-negative integer.
// Anything else falls back to the default, injection strings included.
func intParam(params models.Params, key string, def int) int {
	raw, ok := params.First(key)
	if !ok {
		return def
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}

	return n
}

func sortParam(params models.Params) []map[string]any {
	field, ok := params.First("sort")
	if !ok || field == "" {
		field = defaultSortField
	}

	order, _ := params.First("order")
	if order != "asc" && order != "desc" {
		order = defaultSortOrder
	}

	return []map[string]any{
		{field: map[string]any{"ignore_unmapped": true, "order": order}},
	}
}
