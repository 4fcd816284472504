package search

import (
	"context"
	"strconv"

	"github.com/saveblush/annotate-api/core/cctx"
	"github.com/saveblush/annotate-api/core/config"
	"github.com/saveblush/annotate-api/core/utils/logger"
	"github.com/saveblush/annotate-api/models"
	"github.com/saveblush/annotate-api/pgk/nipsa"
	"github.com/saveblush/annotate-api/pgk/uri"
)

// Service service interface
type Service interface {
	BuildQuery(c *cctx.Context, params models.Params) (map[string]any, error)
	Search(c *cctx.Context, params models.Params, userID string) (*models.SearchResults, error)
	Index(c *cctx.Context) (*models.SearchResults, error)
}

type service struct {
	config *config.Configs
	ctx    context.Context
	engine Engine

	uri   uri.Service
	nipsa nipsa.Service
}

func NewService(engine Engine) Service {
	return &service{
		config: config.CF,
		ctx:    context.TODO(),
		engine: engine,
		uri:    uri.NewService(),
		nipsa:  nipsa.NewService(),
	}
}

// Search build the query, attach the visibility filter, run it.
// Results come back from the engine unmodified.
func (s *service) Search(c *cctx.Context, params models.Params, userID string) (*models.SearchResults, error) {
	query, err := s.BuildQuery(c, params)
	if err != nil {
		logger.Log.Errorf("build query error: %s", err)
		return nil, err
	}

	flagged, err := s.nipsa.FlaggedUserIDs(c)
	if err != nil {
		logger.Log.Errorf("find flagged users error: %s", err)
		return nil, err
	}
	query = WithVisibility(query, flagged, userID)

	res, err := s.engine.SearchRaw(s.ctx, query, &SearchOptions{User: userID})
	if err != nil {
		logger.Log.Errorf("search raw error: %s", err)
		return nil, err
	}

	return res, nil
}

// Index default listing: a search with default parameters and limit 20
func (s *service) Index(c *cctx.Context) (*models.SearchResults, error) {
	params := models.Params{}.Add("limit", strconv.Itoa(defaultSize))

	return s.Search(c, params, "")
}
