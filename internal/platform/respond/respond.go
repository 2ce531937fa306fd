// Copyright (c) 2026 Savora. All rights reserved.
// Author: eng@savora.app

/*
Package respond standardizes JSON HTTP responses across the API.

Every successful payload is wrapped in a {"data": ...} envelope, list
responses additionally carry a {"meta": ...} pagination block, and errors
follow the {"error", "code", "details"} shape consumed by clients.

Response Shapes:

	{"data": {...}}
	{"data": [...], "meta": {"page": 1, "page_size": 20, "total": 42}}
	{"error": "Validation failed", "code": "VALIDATION_ERROR", "details": [...]}

Handlers never call json.NewEncoder or WriteHeader directly — this package
is the single exit point for every HTTP response body.
*/
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/savora/savora/internal/platform/apperr"
	"github.com/savora/savora/internal/platform/ctxutil"
	"github.com/savora/savora/pkg/pagination"
)

// # Envelope Types

// SuccessEnvelope wraps a single resource payload.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PaginatedEnvelope wraps a collection payload with pagination metadata.
type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the uniform error body returned to clients.
type ErrorEnvelope struct {
	Error   string             `json:"error"`
	Code    string             `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// # Success Responses

// OK writes a 200 response with the payload wrapped in a data envelope.
func OK(writer http.ResponseWriter, request *http.Request, payload any) {
	writeJSON(writer, request, http.StatusOK, SuccessEnvelope{Data: payload})
}

// Created writes a 201 response with the payload wrapped in a data envelope.
func Created(writer http.ResponseWriter, request *http.Request, payload any) {
	writeJSON(writer, request, http.StatusCreated, SuccessEnvelope{Data: payload})
}

// Paginated writes a 200 response with a collection payload and its meta block.
func Paginated(writer http.ResponseWriter, request *http.Request, payload any, meta pagination.Meta) {
	writeJSON(writer, request, http.StatusOK, PaginatedEnvelope{Data: payload, Meta: meta})
}

// JSON writes an arbitrary payload with an explicit status code, unwrapped.
// Reserved for infrastructure endpoints (health probes) whose shape is fixed
// by external consumers.
func JSON(writer http.ResponseWriter, request *http.Request, status int, payload any) {
	writeJSON(writer, request, status, payload)
}

// NoContent writes an empty 204 response.
func NoContent(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusNoContent)
}

// # Error Responses

// Error maps any error to the uniform JSON error shape.
//
// [apperr.AppError] values keep their status, code, and field details.
// Anything else is logged and collapsed into a generic 500 so internal
// failure modes never leak to clients.
func Error(writer http.ResponseWriter, request *http.Request, err error) {

	logger := ctxutil.GetLogger(request.Context())

	var appErr *apperr.AppError
	if !errors.As(err, &appErr) {
		logger.ErrorContext(request.Context(), "unhandled_error", slog.Any("error", err))
		appErr = apperr.Internal(err)
	}

	// Internal errors keep their diagnostic cause out of the response body
	if appErr.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "internal_error",
			slog.String("code", appErr.Code),
			slog.Any("cause", appErr.Unwrap()),
		)
	}

	writeJSON(writer, request, appErr.HTTPStatus, ErrorEnvelope{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// # Internal Helpers

func writeJSON(writer http.ResponseWriter, request *http.Request, status int, body any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)

	if err := json.NewEncoder(writer).Encode(body); err != nil {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "response_encode_failed", slog.Any("error", err))
	}
}
