package api

import (
	"net/http"
	"strconv"

	"github.com/saveblush/annotate-api/core/utils/logger"
	"github.com/saveblush/annotate-api/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := models.ParseParams(r.URL.RawQuery)
	userID := r.Header.Get(HeaderUser)

	res, err := s.search.Search(s.cctx, params, userID)
	if err != nil {
		logger.Log.Errorf("[search] error: %s", err)
		s.responseError(w, err)
		return
	}

	s.responseJSON(w, http.StatusOK, res)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	res, err := s.search.Index(s.cctx)
	if err != nil {
		logger.Log.Errorf("[index] error: %s", err)
		s.responseError(w, err)
		return
	}

	s.responseJSON(w, http.StatusOK, res)
}

func (s *Server) handleFlag(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	err := s.nipsa.Flag(s.cctx, userID)
	if err != nil {
		logger.Log.Errorf("[nipsa] error: %s", err)
		s.responseError(w, err)
		return
	}

	s.responseJSON(w, http.StatusOK, &models.FlagNotice{Action: models.FlagActionNipsa, UserID: userID})
}

func (s *Server) handleUnflag(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	err := s.nipsa.Unflag(s.cctx, userID)
	if err != nil {
		logger.Log.Errorf("[unnipsa] error: %s", err)
		s.responseError(w, err)
		return
	}

	s.responseJSON(w, http.StatusOK, &models.FlagNotice{Action: models.FlagActionUnnipsa, UserID: userID})
}

func (s *Server) handleFlagStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	flagged, err := s.nipsa.IsFlagged(s.cctx, userID)
	if err != nil {
		logger.Log.Errorf("[nipsa status] error: %s", err)
		s.responseError(w, err)
		return
	}

	s.responseJSON(w, http.StatusOK, map[string]any{"user_id": userID, "nipsa": flagged})
}

func (s *Server) handleFlagList(w http.ResponseWriter, r *http.Request) {
	userIDs, err := s.nipsa.FlaggedUserIDs(s.cctx)
	if err != nil {
		logger.Log.Errorf("[nipsa list] error: %s", err)
		s.responseError(w, err)
		return
	}

	s.responseJSON(w, http.StatusOK, userIDs)
}

func (s *Server) handleAddDocumentURI(w http.ResponseWriter, r *http.Request) {
	documentID, err := strconv.ParseInt(r.PathValue("document_id"), 10, 64)
	if err != nil {
		s.responseJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid document id"})
		return
	}

	rawURI := r.URL.Query().Get("uri")
	if rawURI == "" {
		s.responseJSON(w, http.StatusBadRequest, map[string]any{"error": "missing uri"})
		return
	}

	err = s.uri.AddEquivalence(s.cctx, documentID, rawURI)
	if err != nil {
		logger.Log.Errorf("[document uri] error: %s", err)
		s.responseError(w, err)
		return
	}

	s.responseJSON(w, http.StatusOK, map[string]any{
		"document_id": documentID,
		"uri":         s.uri.Normalize(rawURI),
	})
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	s.notify.ServeWS(w, r)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.responseJSON(w, http.StatusOK, s.Info)
}
