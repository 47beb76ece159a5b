package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// ReindexResponse reports how many media were indexed
// @Description Reindex result
type ReindexResponse struct {
	Count int `json:"count" example:"1234"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Verifies database and cache connectivity
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with username and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Search endpoints

// handleSearch godoc
// @Summary      Search media
// @Description  Evaluates space-separated query tokens against the index
// @Tags         Search
// @Produce      json
// @Param        q         query  string  false  "Query tokens, space separated"
// @Param        pageNumber  query  int   false  "Page number (default 1)"
// @Param        pageSize    query  int   false  "Page size"
// @Success      200  {object}  domain.Pagination[*domain.IndexedMedium]
// @Security     BearerAuth
// @Router       /search [get]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	caller, ok := GetCallerContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tokens := strings.Fields(r.URL.Query().Get("q"))
	pageNumber := intQueryParam(r, "pageNumber", 1)
	pageSize := intQueryParam(r, "pageSize", 20)

	page, err := s.searchService.Search(r.Context(), tokens, caller, pageNumber, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Medium endpoints

// handleGetMedium godoc
// @Summary      Get a medium
// @Tags         Media
// @Produce      json
// @Param        id  path  int  true  "Medium ID"
// @Success      200  {object}  domain.IndexedMedium
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /media/{id} [get]
func (s *Server) handleGetMedium(w http.ResponseWriter, r *http.Request) {
	caller, ok := GetCallerContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid medium id")
		return
	}

	medium, err := s.mediumService.Get(r.Context(), id, caller)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "medium not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, medium)
}

// handleGetSimilar godoc
// @Summary      Similar media
// @Description  Up to five media ranked by innate tag overlap
// @Tags         Media
// @Produce      json
// @Param        id  path  int  true  "Medium ID"
// @Success      200  {array}  domain.IndexedMedium
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /media/{id}/similar [get]
func (s *Server) handleGetSimilar(w http.ResponseWriter, r *http.Request) {
	caller, ok := GetCallerContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid medium id")
		return
	}

	similar, err := s.mediumService.Similar(r.Context(), id, caller)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "medium not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, similar)
}

// Tag endpoints

// handleListImplications godoc
// @Summary      List implication edges
// @Tags         Tags
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Security     BearerAuth
// @Router       /tags/implications [get]
func (s *Server) handleListImplications(w http.ResponseWriter, r *http.Request) {
	edges, err := s.tagService.ListImplications(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list implications")
		return
	}
	writeJSON(w, http.StatusOK, edges)
}

// handleAddImplication godoc
// @Summary      Add an implication edge
// @Tags         Tags
// @Produce      json
// @Param        implying  path  string  true  "Implying tag name"
// @Param        implied   path  string  true  "Implied tag name"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse  "Unknown tag"
// @Failure      409  {object}  ErrorResponse  "Would create a cycle"
// @Security     BearerAuth
// @Router       /tags/{implying}/implications/{implied} [put]
func (s *Server) handleAddImplication(w http.ResponseWriter, r *http.Request) {
	err := s.tagService.AddImplication(r.Context(), r.PathValue("implying"), r.PathValue("implied"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "unknown tag")
		case errors.Is(err, domain.ErrCycleDetected):
			writeError(w, http.StatusConflict, "implication would create a cycle")
		default:
			writeError(w, http.StatusInternalServerError, "failed to add implication")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRemoveImplication godoc
// @Summary      Remove an implication edge
// @Tags         Tags
// @Produce      json
// @Param        implying  path  string  true  "Implying tag name"
// @Param        implied   path  string  true  "Implied tag name"
// @Success      200  {object}  StatusResponse
// @Security     BearerAuth
// @Router       /tags/{implying}/implications/{implied} [delete]
func (s *Server) handleRemoveImplication(w http.ResponseWriter, r *http.Request) {
	err := s.tagService.RemoveImplication(r.Context(), r.PathValue("implying"), r.PathValue("implied"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove implication")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// renameRequest is the body for tag renames
type renameRequest struct {
	NewName string `json:"new_name"`
}

// handleRenameTag godoc
// @Summary      Rename a tag
// @Tags         Tags
// @Accept       json
// @Produce      json
// @Param        name     path  string         true  "Current tag name"
// @Param        request  body  renameRequest  true  "New name"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Invalid or taken name"
// @Failure      404  {object}  ErrorResponse  "Unknown tag"
// @Security     BearerAuth
// @Router       /tags/{name} [put]
func (s *Server) handleRenameTag(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.tagService.Rename(r.Context(), r.PathValue("name"), req.NewName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "unknown tag")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid or taken name")
		default:
			writeError(w, http.StatusInternalServerError, "failed to rename tag")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAddAlias godoc
// @Summary      Add a tag alias
// @Tags         Tags
// @Produce      json
// @Param        name   path  string  true  "Tag name"
// @Param        alias  path  string  true  "Alias name"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Invalid or taken name"
// @Failure      404  {object}  ErrorResponse  "Unknown tag"
// @Security     BearerAuth
// @Router       /tags/{name}/aliases/{alias} [post]
func (s *Server) handleAddAlias(w http.ResponseWriter, r *http.Request) {
	err := s.tagService.AddAlias(r.Context(), r.PathValue("name"), r.PathValue("alias"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "unknown tag")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid or taken name")
		default:
			writeError(w, http.StatusInternalServerError, "failed to add alias")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRemoveAlias godoc
// @Summary      Remove a tag alias
// @Tags         Tags
// @Produce      json
// @Param        alias  path  string  true  "Alias name"
// @Success      200  {object}  StatusResponse
// @Security     BearerAuth
// @Router       /tags/aliases/{alias} [delete]
func (s *Server) handleRemoveAlias(w http.ResponseWriter, r *http.Request) {
	if err := s.tagService.RemoveAlias(r.Context(), r.PathValue("alias")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove alias")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Index maintenance endpoints

// handleReindex godoc
// @Summary      Rebuild the index
// @Description  Full rebuild from the canonical store; maintenance operation
// @Tags         Index
// @Produce      json
// @Success      200  {object}  ReindexResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /index/reindex [post]
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	count, err := s.indexService.Reindex(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reindex failed")
		return
	}
	writeJSON(w, http.StatusOK, ReindexResponse{Count: count})
}

// handleStatus godoc
// @Summary      Index status
// @Description  Lightweight listing of all indexed media
// @Tags         Index
// @Produce      json
// @Success      200  {array}  domain.MediumInfo
// @Security     BearerAuth
// @Router       /index/status [get]
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	infos, err := s.indexService.Status(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "status failed")
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

// Helpers

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
