package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bankd/internal/common"
)

// Stable wire codes of the error taxonomy.
const (
	codeUnauthorized = "UNAUTHORIZED"
	codeConflict     = "CONFLICT"
	codeNotFound     = "NOT_FOUND"
	codeBadRequest   = "BAD_REQUEST"
	codeInternal     = "INTERNAL"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError sends a typed error response with a stable code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

// readJSON decodes the request body into the given destination.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeServiceError maps service sentinel errors to the wire taxonomy.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Invalid email or password")
	case errors.Is(err, common.ErrSessionExpired):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Session expired")
	case errors.Is(err, common.ErrorDuplicateAccountType):
		writeError(w, http.StatusConflict, codeConflict, "Account of this type already exists")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, codeConflict, "Email already registered")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "Account not found")
	case errors.Is(err, common.ErrorAccountInactive):
		writeError(w, http.StatusBadRequest, codeBadRequest, "Account is not active")
	case errors.Is(err, common.ErrorInvalidAmount):
		writeError(w, http.StatusBadRequest, codeBadRequest, "Amount must be positive")
	case errors.Is(err, common.ErrorInvalidCardNumber):
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid card number")
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request")
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, "Internal error")
	}
}
