package handlers

import (
	"errors"
	"net/http"
	"strings"

	"route-plan-service/internal/api/dto"
	"route-plan-service/internal/auth"
)

type AuthHandler struct {
	Auth *auth.Service
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.Auth.Login(strings.TrimSpace(req.Username), req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LoginResponse{Token: session.Token, Role: session.Role})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout(BearerToken(r))
	w.WriteHeader(http.StatusNoContent)
}

// BearerToken extracts the token of an "Authorization: Bearer" header,
// or "" when absent.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
