package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
)

// Error codes returned in APIError.Code.
const (
	codeBadRequest   = "BAD_REQUEST"
	codeInvalidRange = "INVALID_RANGE"
	codeNotFound     = "NOT_FOUND"
	codeInternal     = "INTERNAL_ERROR"
)

// APIResponse is the envelope for every /api/v1 response.
type APIResponse struct {
	Data     any       `json:"data"`
	Error    *APIError `json:"error,omitempty"`
	Status   string    `json:"status"`
	Metadata Metadata  `json:"metadata"`
}

// APIError describes a failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata carries response bookkeeping.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	QueryMs   int64     `json:"query_ms"`
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	data, err := json.Marshal(response)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logger.Error("Failed to write JSON response", "error", err)
	}
}

// respondData wraps data in a success envelope.
func respondData(w http.ResponseWriter, start time.Time, data any) {
	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data:   data,
		Metadata: Metadata{
			Timestamp: time.Now(),
			QueryMs:   time.Since(start).Milliseconds(),
		},
	})
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logger.Warn("API error", "code", code, "status", status, "error", err)
	}

	respondJSON(w, status, &APIResponse{
		Status: "error",
		Metadata: Metadata{
			Timestamp: time.Now(),
		},
		Error: &APIError{
			Code:    code,
			Message: message,
		},
	})
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return `"` + strconv.FormatUint(uint64(hash), 16) + `"`
}
