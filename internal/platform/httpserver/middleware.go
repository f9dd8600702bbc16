package httpserver

import (
	"net/http"
	"time"

	"atlas/internal/shared/authctx"
)

const sessionCookieName = "atlas_session"

// withAuth resolves the session cookie into an immutable caller identity and
// stores it on the request context. Session expiry slides on every
// authenticated request.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		user, err := s.auth.Handler.AuthenticateHandler(r.Context(), cookie.Value)
		if err != nil {
			s.clearSessionCookie(w)
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		actor, err := s.authorization.Handler.ResolveContextHandler(
			r.Context(), user.ID, user.Username, user.CompanyID,
		)
		if err != nil {
			s.logger.Error("auth context resolution failed",
				"event", "http_auth_context_failed",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"user_id", user.ID,
				"error", err,
			)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		next(w, r.WithContext(authctx.With(r.Context(), actor)))
	}
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
