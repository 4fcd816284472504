package api

import (
	"net/http"

	"github.com/jinzhu/copier"
	"golang.org/x/time/rate"

	"github.com/saveblush/annotate-api/core/cctx"
	"github.com/saveblush/annotate-api/core/config"
	"github.com/saveblush/annotate-api/core/utils"
	"github.com/saveblush/annotate-api/core/utils/limiter"
	"github.com/saveblush/annotate-api/models"
	"github.com/saveblush/annotate-api/pgk/nipsa"
	"github.com/saveblush/annotate-api/pgk/notify"
	"github.com/saveblush/annotate-api/pgk/search"
	"github.com/saveblush/annotate-api/pgk/uri"
)

// HeaderUser caller identity, set by the authenticating proxy in front
const HeaderUser = "X-Annotation-User"

type Server struct {
	serveMux *http.ServeMux
	cctx     *cctx.Context
	limiter  *limiter.IPRateLimiter

	search search.Service
	nipsa  nipsa.Service
	notify notify.Service
	uri    uri.Service

	Info *models.ServiceInformationDocument
}

// NewServer new api server
func NewServer(searchService search.Service) *Server {
	info := &models.ServiceInformationDocument{}
	copier.Copy(info, &config.CF.Info)

	return &Server{
		serveMux: &http.ServeMux{},
		cctx:     cctx.New(),
		limiter:  limiter.NewIPRateLimiter(rate.Limit(20), 40),

		search: searchService,
		nipsa:  nipsa.NewService(),
		notify: notify.NewService(),
		uri:    uri.NewService(),

		Info: info,
	}
}

func (s *Server) Serve() *http.ServeMux {
	mux := s.serveMux
	mux.HandleFunc("GET /api/search", s.rateLimit(s.handleSearch))
	mux.HandleFunc("GET /api/annotations", s.rateLimit(s.handleIndex))
	mux.HandleFunc("GET /api/nipsa", s.rateLimit(s.handleFlagList))
	mux.HandleFunc("GET /api/nipsa/{user_id}", s.rateLimit(s.handleFlagStatus))
	mux.HandleFunc("PUT /api/nipsa/{user_id}", s.rateLimit(s.handleFlag))
	mux.HandleFunc("DELETE /api/nipsa/{user_id}", s.rateLimit(s.handleUnflag))
	mux.HandleFunc("PUT /api/documents/{document_id}/uris", s.rateLimit(s.handleAddDocumentURI))
	mux.HandleFunc("GET /ws", s.handleNotifications)
	mux.HandleFunc("GET /", s.handleInfo)

	return mux
}

func (s *Server) rateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.GetLimiter(utils.GetIP(r)).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		next(w, r)
	}
}
