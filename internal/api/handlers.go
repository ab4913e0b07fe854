package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/akeshr/autifyme/internal/credential"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, constraint, msg string) {
	writeJSON(w, status, map[string]string{"error": msg, "constraint": constraint})
}

func (s *Server) refreshServices() {
	if s.registry != nil {
		s.registry.Refresh()
	}
}

// GET /status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	expiring := s.store.ExpiringWithin(7)
	writeJSON(w, http.StatusOK, map[string]any{
		"credentials":        s.store.Len(),
		"expiring_within_7d": len(expiring),
	})
}

// GET /credentials
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.List())
}

// PUT /credentials/{name}
func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req struct {
		Value     string     `json:"value"`
		ExpiresAt *time.Time `json:"expires_at"`
		Encrypt   *bool      `json:"encrypt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON")
		return
	}
	if req.Value == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "value required")
		return
	}

	var opts []credential.SetOption
	if req.ExpiresAt != nil {
		opts = append(opts, credential.WithExpiry(*req.ExpiresAt))
	}
	if req.Encrypt != nil && !*req.Encrypt {
		opts = append(opts, credential.WithoutEncryption())
	}

	if err := s.store.Set(name, req.Value, opts...); err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("store failed")
		writeError(w, http.StatusInternalServerError, "persistence", "failed to persist credential")
		return
	}
	s.refreshServices()
	writeJSON(w, http.StatusOK, map[string]string{"status": "stored", "name": name})
}

// DELETE /credentials/{name}
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	removed, err := s.store.Delete(name)
	if err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("delete failed")
		writeError(w, http.StatusInternalServerError, "persistence", "failed to persist deletion")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "not_found", "no such credential")
		return
	}
	s.refreshServices()
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "name": name})
}

// GET /credentials/{name}/value
func (s *Server) handleValue(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	value, ok := s.store.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "no such credential")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name, "value": value})
}

// POST /credentials/{name}/rotate
func (s *Server) handleRotate(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "value required")
		return
	}

	rotated, err := s.store.Rotate(name, req.Value)
	if err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("rotate failed")
		writeError(w, http.StatusInternalServerError, "persistence", "failed to persist rotation")
		return
	}
	if !rotated {
		writeError(w, http.StatusNotFound, "not_found", "no such credential")
		return
	}
	s.refreshServices()
	writeJSON(w, http.StatusOK, map[string]string{"status": "rotated", "name": name})
}

// POST /credentials/{name}/validate
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	validator, ok := credential.DefaultValidators()[name]
	if !ok {
		writeError(w, http.StatusBadRequest, "no_validator", "no validator registered for this credential")
		return
	}

	valid, err := s.store.Validate(name, validator)
	if err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("validate failed")
		writeError(w, http.StatusInternalServerError, "persistence", "failed to persist validation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "valid": valid})
}

// GET /credentials/expiring?days=N
func (s *Server) handleExpiring(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "days must be a non-negative integer")
			return
		}
		days = n
	}

	expiring := s.store.ExpiringWithin(days)
	// Metadata only; the expiring set carries values internally.
	out := make(map[string]any, len(expiring))
	for name, cred := range expiring {
		out[name] = map[string]any{
			"name":       cred.Name,
			"expires_at": cred.ExpiresAt,
			"created_at": cred.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /audit?limit=N
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	if s.auditLog == nil {
		writeError(w, http.StatusNotFound, "no_audit", "audit log is not enabled")
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.auditLog.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to read audit log")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
