package handlers

import (
	"errors"
	"net/http"

	"github.com/Wissal65/RAG-Application/internal/adapter"
	"github.com/Wissal65/RAG-Application/internal/api"
	"github.com/Wissal65/RAG-Application/internal/auth"
)

// RegisterHandler godoc
// @Summary      Register a new user
// @Description  Creates an account from an email and password and returns the new user.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      api.RegisterRequest  true  "Email and password"
// @Success      201      {object}  api.UserResponse
// @Failure      400      {object}  api.JobResponse  "Invalid email or password"
// @Failure      409      {object}  api.JobResponse  "Email already registered"
// @Router       /auth/register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.RegisterRequest
	if !decodeJsonBody(w, r, &requestData) {
		return
	}

	user, err := authService.Register(r.Context(), requestData.Email, requestData.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			WriteErrorResponse(w, http.StatusConflict, "", "Email already registered")
			return
		}
		WriteErrorResponse(w, http.StatusBadRequest, "", err.Error())
		return
	}

	writeJsonResponse(w, http.StatusCreated, adapter.ToUserResponse(user))
}

// LoginHandler godoc
// @Summary      Log in
// @Description  Verifies credentials and returns a bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      api.LoginRequest  true  "Email and password"
// @Success      200      {object}  api.TokenResponse
// @Failure      401      {object}  api.JobResponse  "Invalid credentials"
// @Router       /auth/login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.LoginRequest
	if !decodeJsonBody(w, r, &requestData) {
		return
	}

	token, _, err := authService.Login(r.Context(), requestData.Email, requestData.Password)
	if err != nil {
		WriteErrorResponse(w, http.StatusUnauthorized, "", "Invalid email or password")
		return
	}

	writeJsonResponse(w, http.StatusOK, api.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// MeHandler godoc
// @Summary      Current user
// @Description  Returns the profile of the authenticated user.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.UserResponse
// @Failure      401  {object}  api.JobResponse
// @Router       /auth/me [get]
func MeHandler(w http.ResponseWriter, r *http.Request) {
	_, userId := requestIdentity(r.Context())
	user, err := dataStore.GetUserByID(r.Context(), userId)
	if err != nil {
		WriteErrorResponse(w, http.StatusNotFound, userId, "User not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToUserResponse(user))
}
