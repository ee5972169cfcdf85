package http

import (
	"net/http"

	"github.com/aussiebroadwan/posts/internal/posts/service"
	"github.com/aussiebroadwan/posts/pkg/apierr"
	"github.com/aussiebroadwan/posts/pkg/httpx"
	"github.com/aussiebroadwan/posts/pkg/postsdk"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Create a user and return a bearer token for it
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		postsdk.RegisterRequest		true	"username and password"
//	@Success		200		{object}	postsdk.UserResponse		"token, username"
//	@Failure		422		{object}	postsdk.FieldErrorResponse	"username taken or missing fields"
//	@Failure		500		{object}	postsdk.MessageResponse
//	@Router			/api/users [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req postsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	sess, err := h.UserService.Register(r.Context(), req.User.Username, req.User.Password)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	writeUser(w, sess)
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchange a username and password for a bearer token
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		postsdk.LoginRequest		true	"username and password"
//	@Success		200		{object}	postsdk.UserResponse		"token, username"
//	@Failure		401		"wrong password"
//	@Failure		422		{object}	postsdk.FieldErrorResponse	"unknown user or missing fields"
//	@Failure		500		{object}	postsdk.MessageResponse
//	@Router			/api/users/login [post].
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req postsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	sess, err := h.UserService.Login(r.Context(), req.User.Username, req.User.Password)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	writeUser(w, sess)
}

// HandleCurrent godoc
//
//	@Summary		Current user
//	@Description	Return the authenticated user with a freshly issued token
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	postsdk.UserResponse	"token, username"
//	@Failure		401	"missing, invalid or expired token"
//	@Failure		500	{object}	postsdk.MessageResponse
//	@Router			/api/user [get].
func (h *UsersHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, r, apierr.Unauthorized())
		return
	}

	sess, err := h.UserService.Current(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	writeUser(w, sess)
}

// HandleUpdate godoc
//
//	@Summary		Update current user
//	@Description	Change the username and/or password. An empty patch behaves like GET /api/user.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		postsdk.UpdateUserRequest	true	"fields to change"
//	@Success		200		{object}	postsdk.UserResponse		"token, username"
//	@Failure		401		"missing, invalid or expired token"
//	@Failure		422		{object}	postsdk.FieldErrorResponse	"username taken or blank fields"
//	@Failure		500		{object}	postsdk.MessageResponse
//	@Router			/api/user [patch].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, r, apierr.Unauthorized())
		return
	}

	var req postsdk.UpdateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	sess, err := h.UserService.Update(r.Context(), id, service.UserUpdate{
		Username: req.User.Username,
		Password: req.User.Password,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	writeUser(w, sess)
}

func writeUser(w http.ResponseWriter, sess service.Session) {
	httpx.WriteJSON(w, http.StatusOK, postsdk.UserResponse{
		User: postsdk.User{Token: sess.Token, Username: sess.Username},
	})
}
