package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saveblush/annotate-api/core/cctx"
	"github.com/saveblush/annotate-api/models"
)

type fakeEngine struct {
	query map[string]any
	opts  *SearchOptions
	res   *models.SearchResults
}

func (f *fakeEngine) SearchRaw(ctx context.Context, query map[string]any, opts *SearchOptions) (*models.SearchResults, error) {
	f.query = query
	f.opts = opts

	return f.res, nil
}

type fakeFlagService struct {
	flagged []string
}

func (f *fakeFlagService) Flag(c *cctx.Context, userID string) error   { return nil }
func (f *fakeFlagService) Unflag(c *cctx.Context, userID string) error { return nil }
func (f *fakeFlagService) IsFlagged(c *cctx.Context, userID string) (bool, error) {
	return false, nil
}
func (f *fakeFlagService) FlaggedUserIDs(c *cctx.Context) ([]string, error) {
	return f.flagged, nil
}
func (f *fakeFlagService) Announce(c *cctx.Context) error { return nil }

func newTestService(engine *fakeEngine, flagged []string) *service {
	return &service{
		ctx:    context.TODO(),
		engine: engine,
		uri:    &fakeExpander{},
		nipsa:  &fakeFlagService{flagged: flagged},
	}
}

func TestSearchAlwaysAppliesVisibilityFilter(t *testing.T) {
	engine := &fakeEngine{res: &models.SearchResults{}}
	s := newTestService(engine, []string{"fred"})

	_, err := s.Search(cctx.New(), models.Params{}.Add("tags", "foo"), "alice")
	assert.NoError(t, err)

	boolQuery := engine.query["query"].(map[string]any)["bool"].(map[string]any)
	assert.Equal(t, VisibilityFilter([]string{"fred"}, "alice"), boolQuery["filter"])
	assert.Equal(t, "alice", engine.opts.User)
}

func TestSearchReturnsEngineResultsUnmodified(t *testing.T) {
	want := &models.SearchResults{
		Total: 2,
		Rows: []map[string]any{
			{"id": "a1"},
			{"id": "a2"},
		},
	}
	engine := &fakeEngine{res: want}
	s := newTestService(engine, nil)

	res, err := s.Search(cctx.New(), models.Params{}, "")
	assert.NoError(t, err)
	assert.Equal(t, want, res)
}

func TestIndexSearchesWithDefaults(t *testing.T) {
	engine := &fakeEngine{res: &models.SearchResults{}}
	s := newTestService(engine, nil)

	_, err := s.Index(cctx.New())
	assert.NoError(t, err)

	assert.Equal(t, 0, engine.query["from"])
	assert.Equal(t, 20, engine.query["size"])
	assert.Equal(t, "", engine.opts.User)

	boolQuery := engine.query["query"].(map[string]any)["bool"].(map[string]any)
	assert.Equal(t, []map[string]any{{"match_all": map[string]any{}}}, boolQuery["must"].([]map[string]any))

	should := boolQuery["filter"].(map[string]any)["bool"].(map[string]any)["should"].([]map[string]any)
	assert.Len(t, should, 1)
}
