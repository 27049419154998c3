// internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"time"

	"chatbus/internal/common/errors"
	"chatbus/internal/models"
)

// errorResponse is the body of every non-2xx reply except a degraded
// prompt response, which keeps the chat shape.
type errorResponse struct {
	Error     string                 `json:"error"`
	Code      errors.ErrorCode       `json:"code"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

func (s *Server) predictFromPrompt(w http.ResponseWriter, r *http.Request) {
	prompt, ok := s.decodePrompt(w, r)
	if !ok {
		return
	}

	resp, err := s.assistant.Respond(r.Context(), prompt)
	if resp == nil {
		s.writeError(w, r, err)
		return
	}

	resp.RequestID = RequestID(r.Context())
	status := http.StatusOK
	if err != nil {
		status = errors.HTTPStatus(errors.AsStandardError(err).Code)
		s.logger.Error("prompt answered with degraded response", map[string]interface{}{
			"error":     err.Error(),
			"requestId": resp.RequestID,
		})
	}
	writeJSON(w, status, resp)
}

func (s *Server) predictStructured(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, errors.NewInvalidRequestError("request body could not be read"))
		return
	}

	resp, err := s.assistant.PredictStructured(r.Context(), body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) extractData(w http.ResponseWriter, r *http.Request) {
	prompt, ok := s.decodePrompt(w, r)
	if !ok {
		return
	}

	resp, err := s.assistant.Extract(r.Context(), prompt)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "chatbus",
		"version":   s.version,
		"languages": []models.Language{models.LanguageEnglish, models.LanguageSwahili},
		"time":      time.Now().Format(time.RFC3339),
	})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	checks := make(map[string]string, len(names))
	for _, name := range names {
		if err := s.checks[name](ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not_ready"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": state,
		"checks": checks,
		"time":   time.Now().Format(time.RFC3339),
	})
}

// decodePrompt writes the 400 itself when the body has no prompt.
func (s *Server) decodePrompt(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req models.PromptRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, r, errors.NewInvalidRequestError("No prompt provided"))
		return "", false
	}
	if req.Prompt == nil {
		s.writeError(w, r, errors.NewInvalidRequestError("No prompt provided"))
		return "", false
	}
	return *req.Prompt, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := errors.AsStandardError(err)
	status := errors.HTTPStatus(stdErr.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", map[string]interface{}{
			"error":     stdErr.Error(),
			"errorCode": string(stdErr.Code),
			"path":      r.URL.Path,
		})
	}

	writeJSON(w, status, errorResponse{
		Error:     stdErr.Message,
		Code:      stdErr.Code,
		Details:   stdErr.Details,
		Metadata:  stdErr.Metadata,
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
