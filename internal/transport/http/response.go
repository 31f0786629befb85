package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"marketplace-ledger-service/internal/ledger"
)

type apiError struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, apiError{Message: msg})
}

// writeLedgerErr maps ledger error kinds onto HTTP statuses.
func writeLedgerErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInvalidState), errors.Is(err, ledger.ErrAlreadyExists):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrUnauthorized):
		writeErr(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ledger.ErrInvalidArgument):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}
