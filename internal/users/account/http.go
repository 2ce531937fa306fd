// Copyright (c) 2026 Savora. All rights reserved.
// Author: eng@savora.app

/*
Package account provides the HTTP delivery layer for the signed-in user's
own profile.

It implements the RESTful interface for users to read and update their
account data.

# Security

All endpoints in this package require an active authentication session
provided by the RequireAuth middleware.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/savora/savora/internal/platform/request"
	"github.com/savora/savora/internal/platform/respond"
	"github.com/savora/savora/internal/platform/validate"
	"github.com/savora/savora/internal/users/auth"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// RegisterRoutes mounts the account domain's endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {

	// Account Management. PUT and PATCH are both partial-tolerant.
	router.Get("/me", handler.getMe)
	router.Put("/me", handler.updateMe)
	router.Patch("/me", handler.updateMe)
}

// # User Profile Endpoints

/*
GET /user/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, user)
}

// updateMeRequest defines the expected JSON payload for profile updates.
type updateMeRequest struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

/*
PUT|PATCH /user/me.

Description: Applies partial updates to the authenticated user's profile.
Absent fields are left unchanged regardless of the verb.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
  - 409: ErrConflict: Email already in use
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Email != nil {
		v.Required(auth.FieldEmail, *input.Email).Email(auth.FieldEmail, *input.Email)
	}
	if input.Name != nil {
		v.Required(auth.FieldName, *input.Name).MaxLen(auth.FieldName, *input.Name, 255)
	}
	if input.Password != nil {
		v.MinLen(auth.FieldPassword, *input.Password, auth.PasswordMinLength)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Email:    input.Email,
		Name:     input.Name,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, user)
}
