package uri

import (
	"net/url"
	"strings"

	"github.com/saveblush/annotate-api/core/cctx"
	"github.com/saveblush/annotate-api/core/config"
	"github.com/saveblush/annotate-api/core/generic"
	"github.com/saveblush/annotate-api/core/utils/logger"
	"github.com/saveblush/annotate-api/models"
)

// Service service interface
type Service interface {
	Normalize(rawURI string) string
	Expand(c *cctx.Context, rawURI string) ([]string, error)
	AddEquivalence(c *cctx.Context, documentID int64, rawURI string) error
}

type service struct {
	config     *config.Configs
	repository Repository
}

func NewService() Service {
	return &service{
		config:     config.CF,
		repository: NewRepository(),
	}
}

// Normalize canonical form of a URI.
// Lowercases scheme and host, strips default ports, drops the fragment and
// an empty query. Unparseable input comes back unchanged.
func (s *service) Normalize(rawURI string) string {
	u, err := url.Parse(rawURI)
	if err != nil || u.Scheme == "" {
		return rawURI
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	host, port, found := strings.Cut(u.Host, ":")
	if found {
		if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
			u.Host = host
		}
	}

	if u.RawQuery == "" {
		u.ForceQuery = false
	}

	return u.String()
}

// Expand all URIs equivalent to the given one.
// Every URI of every document claiming the normalized URI, in store order.
// A URI no document knows expands to itself, so the result is never empty.
func (s *service) Expand(c *cctx.Context, rawURI string) ([]string, error) {
	normalized := s.Normalize(rawURI)

	ids, err := s.repository.FindDocumentIDs(c.GetDatabase(), normalized)
	if err != nil {
		logger.Log.Errorf("find document ids error: %s", err)
		return nil, err
	}
	if generic.IsEmpty(ids) {
		return []string{normalized}, nil
	}

	uris, err := s.repository.FindURIs(c.GetDatabase(), ids)
	if err != nil {
		logger.Log.Errorf("find document uris error: %s", err)
		return nil, err
	}
	if generic.IsEmpty(uris) {
		return []string{normalized}, nil
	}

	return uris, nil
}

// AddEquivalence record a URI as an address of a document
func (s *service) AddEquivalence(c *cctx.Context, documentID int64, rawURI string) error {
	v := &models.DocumentURI{
		DocumentID: documentID,
		URI:        s.Normalize(rawURI),
	}
	err := s.repository.Insert(c.GetDatabase(), v)
	if err != nil {
		logger.Log.Errorf("insert document uri error: %s", err)
		return err
	}

	return nil
}
