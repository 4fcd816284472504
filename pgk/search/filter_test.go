package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saveblush/annotate-api/core/cctx"
	"github.com/saveblush/annotate-api/models"
)

func TestVisibilityFilterHidesFlaggedUsers(t *testing.T) {
	filter := VisibilityFilter([]string{"fred", "bob"}, "")

	assert.Equal(t, map[string]any{
		"bool": map[string]any{
			"should": []map[string]any{
				{
					"bool": map[string]any{
						"must_not": []map[string]any{
							{"terms": map[string]any{"user": []string{"fred", "bob"}}},
						},
					},
				},
			},
		},
	}, filter)
}

func TestVisibilityFilterKeepsOwnDocumentsVisible(t *testing.T) {
	filter := VisibilityFilter([]string{"fred"}, "fred")

	should := filter["bool"].(map[string]any)["should"].([]map[string]any)
	assert.Len(t, should, 2)
	assert.Equal(t, map[string]any{"term": map[string]any{"user": "fred"}}, should[1])
}

func TestVisibilityFilterWithoutCallerHasNoTermClause(t *testing.T) {
	filter := VisibilityFilter([]string{"fred"}, "")

	should := filter["bool"].(map[string]any)["should"].([]map[string]any)
	assert.Len(t, should, 1)
}

func TestVisibilityFilterNilFlaggedList(t *testing.T) {
	filter := VisibilityFilter(nil, "")

	should := filter["bool"].(map[string]any)["should"].([]map[string]any)
	mustNot := should[0]["bool"].(map[string]any)["must_not"].([]map[string]any)
	assert.Equal(t, map[string]any{"terms": map[string]any{"user": []string{}}}, mustNot[0])
}

func TestWithVisibilityAttachesFilter(t *testing.T) {
	s := newTestBuilder(nil)

	query, err := s.BuildQuery(cctx.New(), models.Params{}.Add("user", "bob"))
	assert.NoError(t, err)

	query = WithVisibility(query, []string{"fred"}, "alice")

	boolQuery := query["query"].(map[string]any)["bool"].(map[string]any)
	assert.Equal(t, VisibilityFilter([]string{"fred"}, "alice"), boolQuery["filter"])
	assert.Equal(t, []map[string]any{
		{"match": map[string]any{"user": "bob"}},
	}, boolQuery["must"].([]map[string]any))
}
