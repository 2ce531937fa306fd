// Copyright (c) 2026 Savora. All rights reserved.
// Author: eng@savora.app

// Package requestutil provides helpers for extracting and decoding inbound
// HTTP request data: JSON bodies, URL parameters, and auth claims.
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/savora/savora/internal/platform/apperr"
	"github.com/savora/savora/internal/platform/ctxutil"
	"github.com/savora/savora/internal/platform/sec"
	"github.com/savora/savora/internal/platform/validate"
)

// maxBodyBytes caps request bodies at 1 MiB to protect against abuse.
const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dst.
//
// Unknown fields are rejected so typos in payload keys surface as 400s
// instead of silently dropping data.
func DecodeJSON(request *http.Request, dst any) error {
	request.Body = http.MaxBytesReader(nil, request.Body, maxBodyBytes)

	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// DecodeJSONAllowUnknown decodes the request body into dst, dropping any
// unknown keys.
//
// Used where the API contract says extra fields are ignored rather than
// rejected, such as a client-sent owner on a recipe payload.
func DecodeJSONAllowUnknown(request *http.Request, dst any) error {
	request.Body = http.MaxBytesReader(nil, request.Body, maxBodyBytes)

	if err := json.NewDecoder(request.Body).Decode(dst); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID extracts the "id" URL parameter and validates it as a UUID.
//
// An unparseable ID is reported as NotFound rather than a validation
// error, matching the behavior for well-formed IDs that match nothing.
func ID(request *http.Request, resource string) (string, error) {
	id := chi.URLParam(request, "id")

	v := &validate.Validator{}
	if v.UUID("id", id); v.HasErrors() {
		return "", apperr.NotFound(resource)
	}
	return id, nil
}

// Param extracts a named URL parameter as a raw string.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims returns the verified auth claims from the request context,
// or nil when the request is anonymous.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims returns the verified auth claims, or a 401 [apperr.AppError]
// when the request carries none.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// RequiredUserID is a shortcut for handlers that only need the caller's ID.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
