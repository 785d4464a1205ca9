package api

import (
	"encoding/json"
	"log"
	"net/http"

	errs "github.com/soliyanakewani/Project-Management-System/internal/platform/errors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// writeJSON writes a JSON body with normalized headers and status.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps err to its HTTP status and writes the error body. Mutation
// failures are counted.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if h.metrics != nil && r.Method != http.MethodGet {
		h.metrics.MutationErrors.Add(r.Context(), 1)
	}
	code := errs.CodeOf(err)
	message := err.Error()
	if code == errs.CodeUnknown || code == errs.CodeStoreUnavailable || code == errs.CodeTimeout {
		// Internal detail stays in logs.
		log.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)
		message = "internal error"
	}
	writeJSON(w, errs.HTTPStatus(err), errorResponse{Error: errorBody{
		Code:    string(code),
		Message: message,
	}})
}

// decodeJSON reads the request body into target.
func decodeJSON(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return errs.Wrap(errs.CodeValidationFailed, "request body is not valid JSON", err)
	}
	return nil
}
