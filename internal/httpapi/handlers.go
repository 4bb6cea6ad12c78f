package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"urlmonitor/internal/domain"
	"urlmonitor/internal/repo"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type monitorPayload struct {
	URL string `json:"url"`
}

// paginatedResponse is the envelope every list endpoint returns.
type paginatedResponse struct {
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
	Results    []domain.Record `json:"results"`
}

func envelope(results []domain.Record, total, page, pageSize int) paginatedResponse {
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	if results == nil {
		results = []domain.Record{}
	}
	return paginatedResponse{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Results:    results,
	}
}

func (s *Server) handleMonitor(w http.ResponseWriter, r *http.Request) {
	var p monitorPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid JSON body")
		return
	}
	target, ok := validateHTTPURL(p.URL)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "url must be a valid http(s) URL")
		return
	}

	rec, err := s.Monitor.CheckAndSave(r.Context(), target)
	if err != nil {
		s.Logger.Error("check_save_failed", zap.String("url", target), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save monitoring result")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	rows, total, err := s.Results.List(r.Context(), page, pageSize)
	if err != nil {
		s.Logger.Error("list_failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list results")
		return
	}
	writeJSON(w, http.StatusOK, envelope(rows, total, page, pageSize))
}

func (s *Server) handleFiltered(healthy bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize, err := parsePagination(r)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		rows, total, err := s.Results.ListByHealth(r.Context(), healthy, page, pageSize)
		if err != nil {
			s.Logger.Error("filter_failed", zap.Bool("healthy", healthy), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not list results")
			return
		}
		writeJSON(w, http.StatusOK, envelope(rows, total, page, pageSize))
	}
}

func (s *Server) handleSearchResults(w http.ResponseWriter, r *http.Request) {
	substr := r.URL.Query().Get("url")
	if substr == "" {
		writeError(w, http.StatusUnprocessableEntity, "query parameter url is required")
		return
	}
	page, pageSize, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	rows, total, err := s.Results.SearchByURL(r.Context(), substr, page, pageSize)
	if err != nil {
		s.Logger.Error("search_failed", zap.String("substr", substr), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not search results")
		return
	}
	writeJSON(w, http.StatusOK, envelope(rows, total, page, pageSize))
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "id must be an integer")
		return
	}
	rec, err := s.Results.GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("monitoring result with id %d not found", id))
		return
	}
	if err != nil {
		s.Logger.Error("get_failed", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load result")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "id must be an integer")
		return
	}
	found, err := s.Results.Delete(r.Context(), id)
	if err != nil {
		s.Logger.Error("delete_failed", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not delete result")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("monitoring result with id %d not found", id))
		return
	}
	s.Logger.Info("result_deleted", zap.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.Monitor.Stats(r.Context())
	if err != nil {
		s.Logger.Error("stats_failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not compute stats")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// validateHTTPURL accepts only absolute http(s) URLs with a host. The core
// never re-validates, so everything that passes here is fair game for the
// prober.
func validateHTTPURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	return u.String(), true
}

// parsePagination applies the API defaults and bounds: page >= 1,
// 1 <= page_size <= 100. Explicit values outside those are a validation
// error, not something to silently clamp.
func parsePagination(r *http.Request) (page, pageSize int, err error) {
	page, pageSize = 1, defaultPageSize
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 1 {
			return 0, 0, errors.New("page must be an integer >= 1")
		}
		page = n
	}
	if v := q.Get("page_size"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 1 || n > maxPageSize {
			return 0, 0, fmt.Errorf("page_size must be between 1 and %d", maxPageSize)
		}
		pageSize = n
	}
	return page, pageSize, nil
}
