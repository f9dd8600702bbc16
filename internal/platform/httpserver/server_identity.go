package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	autherrors "atlas/contexts/identity-access/auth-service/domain/errors"
	authhttp "atlas/contexts/identity-access/auth-service/transport/http"
	authzerrors "atlas/contexts/identity-access/authorization-service/domain/errors"
	authzhttp "atlas/contexts/identity-access/authorization-service/transport/http"
	"atlas/internal/shared/authctx"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req authhttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.auth.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	s.setSessionCookie(w, resp.Token, resp.ExpiresAt)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authhttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.auth.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	s.setSessionCookie(w, resp.Token, resp.ExpiresAt)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := s.auth.Handler.LogoutHandler(r.Context(), cookie.Value); err != nil {
			writeAuthDomainError(w, err)
			return
		}
	}
	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := authctx.From(r.Context())
	resp, err := s.auth.Handler.CurrentUserHandler(r.Context(), actor.UserID)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	actor, _ := authctx.From(r.Context())
	resp, err := s.authorization.Handler.ListRolesHandler(r.Context(), actor)
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssignRole(w http.ResponseWriter, r *http.Request) {
	actor, _ := authctx.From(r.Context())
	var req authzhttp.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if err := s.authorization.Handler.AssignRoleHandler(r.Context(), actor, r.PathValue("user_id"), req); err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCompanyUsers(w http.ResponseWriter, r *http.Request) {
	actor, _ := authctx.From(r.Context())
	resp, err := s.authorization.Handler.ListCompanyUsersHandler(r.Context(), actor)
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAuthDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, autherrors.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, autherrors.ErrUsernameTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, autherrors.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, autherrors.ErrSessionNotFound):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, autherrors.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeAuthzDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authzerrors.ErrAdminRequired):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, authzerrors.ErrInvalidRoleName),
		errors.Is(err, authzerrors.ErrInvalidAssignment):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, authzerrors.ErrRoleNotFound),
		errors.Is(err, authzerrors.ErrUserNotFound),
		errors.Is(err, authzerrors.ErrCompanyMismatch):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, authzerrors.ErrRoleAlreadyAssigned):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, authhttp.ErrorResponse{Message: message})
}
