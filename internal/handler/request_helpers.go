package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/osse101/GuildPoints_Go/internal/logger"
)

// accountScoped is implemented by request bodies that act on a single account
type accountScoped interface {
	accountKey() string
}

// withAccount tags the request context with the account a body acts on,
// so every log line for the operation carries user_id.
func withAccount(ctx context.Context, req any) context.Context {
	if s, ok := req.(accountScoped); ok {
		return logger.WithUserID(ctx, s.accountKey())
	}
	return ctx
}

// DecodeAndValidateRequest decodes a JSON body into req and runs struct validation.
// On failure a 400 has already been written and the handler should return.
//
//	var req CheckInRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Check in"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, opName string) error {
	log := logger.FromContext(r.Context()).With("operation", opName)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		fields := FormatValidationError(err)
		log.Debug(LogMsgValidationFailed, "fields", fields)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: fields,
		})
		return err
	}

	return nil
}

// ValidationErrorResponse is the 400 body for bodies that fail struct validation
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetQueryParam returns a required query parameter.
// When it is missing a 400 has already been written and ok is false.
func GetQueryParam(r *http.Request, w http.ResponseWriter, name string) (string, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		logger.FromContext(r.Context()).Warn(LogMsgMissingQueryParam, "param", name)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, name))
		return "", false
	}
	return value, true
}

// GetLimitParam parses the optional "limit" query parameter.
// Zero means the service default; non-numeric or negative values get a 400.
func GetLimitParam(r *http.Request, w http.ResponseWriter) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return 0, false
	}
	return limit, true
}

// handleAction is the shared decode, call, respond path for POST commands.
func handleAction[REQ any, RES any](
	w http.ResponseWriter,
	r *http.Request,
	opName string,
	action func(context.Context, REQ) (RES, error),
) {
	var req REQ
	if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
		return
	}

	r = r.WithContext(withAccount(r.Context(), req))
	res, err := action(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, opName, err)
		return
	}

	respondJSON(w, http.StatusOK, res)
}
