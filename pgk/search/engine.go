package search

import (
	"bytes"
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/goccy/go-json"

	"github.com/saveblush/annotate-api/core/config"
	"github.com/saveblush/annotate-api/models"
)

// Engine external full-text search engine.
// Failures come back opaque; retry and timeout policy live with the engine,
// not here.
type Engine interface {
	SearchRaw(ctx context.Context, query map[string]any, opts *SearchOptions) (*models.SearchResults, error)
}

// SearchOptions options forwarded with a raw search
type SearchOptions struct {
	// User optional caller identity, used as the search preference so one
	// caller keeps hitting the same shards
	User string
}

type esEngine struct {
	client *elasticsearch.Client
	index  string
}

// NewEngine connect an elasticsearch-backed engine
func NewEngine(cf *config.SearchConfig) (Engine, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cf.Addresses,
		Username:  cf.Username,
		Password:  cf.Password,
	})
	if err != nil {
		return nil, err
	}

	return &esEngine{client: client, index: cf.Index}, nil
}

func (e *esEngine) SearchRaw(ctx context.Context, query map[string]any, opts *SearchOptions) (*models.SearchResults, error) {
	var buf bytes.Buffer
	err := json.NewEncoder(&buf).Encode(query)
	if err != nil {
		return nil, err
	}

	reqOpts := []func(*esapi.SearchRequest){
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(&buf),
		e.client.Search.WithTrackTotalHits(true),
	}
	if opts != nil && opts.User != "" {
		reqOpts = append(reqOpts, e.client.Search.WithPreference(opts.User))
	}

	res, err := e.client.Search(reqOpts...)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search engine: %s", res.String())
	}

	var out struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	err = json.NewDecoder(res.Body).Decode(&out)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]any, 0, len(out.Hits.Hits))
	for _, hit := range out.Hits.Hits {
		rows = append(rows, hit.Source)
	}

	return &models.SearchResults{Total: out.Hits.Total.Value, Rows: rows}, nil
}
