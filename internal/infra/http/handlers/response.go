package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/call-screener/internal/usecase"
	"github.com/xavierca1/call-screener/pkg/logging"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// writeUseCaseError maps use case failures onto HTTP. Domain errors are the
// caller's fault; technical errors mean the caller store let us down.
func writeUseCaseError(w http.ResponseWriter, logger *logging.Logger, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeErrorResponse(w, domainStatus(de.Code), de.Code, de.Message)
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		logger.Error("store failure", "code", te.Code, "error", err)
		writeErrorResponse(w, http.StatusBadGateway, te.Code, te.Message)
		return
	}

	logger.Error("unexpected error", "error", err)
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeInvalidTransition, usecase.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
