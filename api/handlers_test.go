package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/saveblush/annotate-api/core/cctx"
	"github.com/saveblush/annotate-api/core/utils/limiter"
	"github.com/saveblush/annotate-api/core/utils/logger"
	"github.com/saveblush/annotate-api/models"
)

func init() {
	logger.InitLogger()
}

type fakeSearchService struct {
	params models.Params
	userID string
	res    *models.SearchResults
	err    error
}

func (f *fakeSearchService) BuildQuery(c *cctx.Context, params models.Params) (map[string]any, error) {
	return nil, nil
}

func (f *fakeSearchService) Search(c *cctx.Context, params models.Params, userID string) (*models.SearchResults, error) {
	f.params = params
	f.userID = userID

	return f.res, f.err
}

func (f *fakeSearchService) Index(c *cctx.Context) (*models.SearchResults, error) {
	return f.res, f.err
}

type fakeFlagService struct {
	flagged map[string]bool
	actions []string
}

func (f *fakeFlagService) Flag(c *cctx.Context, userID string) error {
	f.flagged[userID] = true
	f.actions = append(f.actions, "nipsa:"+userID)

	return nil
}

func (f *fakeFlagService) Unflag(c *cctx.Context, userID string) error {
	delete(f.flagged, userID)
	f.actions = append(f.actions, "unnipsa:"+userID)

	return nil
}

func (f *fakeFlagService) IsFlagged(c *cctx.Context, userID string) (bool, error) {
	return f.flagged[userID], nil
}

func (f *fakeFlagService) FlaggedUserIDs(c *cctx.Context) ([]string, error) {
	userIDs := []string{}
	for userID := range f.flagged {
		userIDs = append(userIDs, userID)
	}

	return userIDs, nil
}

func (f *fakeFlagService) Announce(c *cctx.Context) error { return nil }

type fakeURIService struct {
	added map[int64][]string
}

func (f *fakeURIService) Normalize(rawURI string) string {
	return rawURI
}

func (f *fakeURIService) Expand(c *cctx.Context, rawURI string) ([]string, error) {
	return []string{rawURI}, nil
}

func (f *fakeURIService) AddEquivalence(c *cctx.Context, documentID int64, rawURI string) error {
	f.added[documentID] = append(f.added[documentID], rawURI)

	return nil
}

type fakeNotify struct{}

func (f *fakeNotify) Publish(topic string, message []byte) error     { return nil }
func (f *fakeNotify) ServeWS(w http.ResponseWriter, r *http.Request) {}
func (f *fakeNotify) Close()                                         {}

func newTestServer(searchService *fakeSearchService, flagService *fakeFlagService) *Server {
	return &Server{
		serveMux: &http.ServeMux{},
		cctx:     cctx.New(),
		limiter:  limiter.NewIPRateLimiter(rate.Limit(1000), 1000),

		search: searchService,
		nipsa:  flagService,
		notify: &fakeNotify{},
		uri:    &fakeURIService{added: map[int64][]string{}},

		Info: &models.ServiceInformationDocument{Name: "annotate-api", Version: "1.0.0"},
	}
}

func doRequest(handler http.Handler, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestHandleSearch(t *testing.T) {
	searchService := &fakeSearchService{res: &models.SearchResults{Total: 1, Rows: []map[string]any{{"id": "a1"}}}}
	srv := newTestServer(searchService, &fakeFlagService{flagged: map[string]bool{}})

	rec := doRequest(srv.Serve(), http.MethodGet, "/api/search?user=fred&tags=foo", map[string]string{HeaderUser: "alice"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	assert.Equal(t, "alice", searchService.userID)
	assert.Equal(t, models.Params{
		{Key: "user", Value: "fred"},
		{Key: "tags", Value: "foo"},
	}, searchService.params)

	res := &models.SearchResults{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), res))
	assert.Equal(t, searchService.res, res)
}

func TestHandleSearchEngineFailure(t *testing.T) {
	searchService := &fakeSearchService{err: errors.New("engine unavailable")}
	srv := newTestServer(searchService, &fakeFlagService{flagged: map[string]bool{}})

	rec := doRequest(srv.Serve(), http.MethodGet, "/api/search", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleFlagAndStatus(t *testing.T) {
	flagService := &fakeFlagService{flagged: map[string]bool{}}
	srv := newTestServer(&fakeSearchService{}, flagService)
	handler := srv.Serve()

	rec := doRequest(handler, http.MethodPut, "/api/nipsa/fred", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	notice := &models.FlagNotice{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), notice))
	assert.Equal(t, &models.FlagNotice{Action: models.FlagActionNipsa, UserID: "fred"}, notice)

	rec = doRequest(handler, http.MethodGet, "/api/nipsa/fred", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"fred","nipsa":true}`, rec.Body.String())
}

func TestHandleUnflag(t *testing.T) {
	flagService := &fakeFlagService{flagged: map[string]bool{"fred": true}}
	srv := newTestServer(&fakeSearchService{}, flagService)

	rec := doRequest(srv.Serve(), http.MethodDelete, "/api/nipsa/fred", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	notice := &models.FlagNotice{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), notice))
	assert.Equal(t, &models.FlagNotice{Action: models.FlagActionUnnipsa, UserID: "fred"}, notice)
	assert.Equal(t, []string{"unnipsa:fred"}, flagService.actions)
}

func TestHandleFlagList(t *testing.T) {
	flagService := &fakeFlagService{flagged: map[string]bool{"fred": true}}
	srv := newTestServer(&fakeSearchService{}, flagService)

	rec := doRequest(srv.Serve(), http.MethodGet, "/api/nipsa", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["fred"]`, rec.Body.String())
}

func TestHandleAddDocumentURI(t *testing.T) {
	srv := newTestServer(&fakeSearchService{}, &fakeFlagService{flagged: map[string]bool{}})
	handler := srv.Serve()

	rec := doRequest(handler, http.MethodPut, "/api/documents/7/uris?uri=http%3A%2F%2Fexample.com%2F", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"document_id":7,"uri":"http://example.com/"}`, rec.Body.String())

	uriService := srv.uri.(*fakeURIService)
	assert.Equal(t, []string{"http://example.com/"}, uriService.added[7])

	rec = doRequest(handler, http.MethodPut, "/api/documents/not-a-number/uris?uri=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(handler, http.MethodPut, "/api/documents/7/uris", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleInfo(t *testing.T) {
	srv := newTestServer(&fakeSearchService{}, &fakeFlagService{flagged: map[string]bool{}})

	rec := doRequest(srv.Serve(), http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	info := &models.ServiceInformationDocument{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), info))
	assert.Equal(t, srv.Info, info)
}
