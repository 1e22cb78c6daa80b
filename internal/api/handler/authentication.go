package handler

import (
	"net/http"
	"time"

	"github.com/uniqverse/marketplace-api/internal/usecases/authenticating"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
	"github.com/uniqverse/marketplace-api/pkg/log"
	"github.com/uniqverse/marketplace-api/pkg/middleware"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login checks the credentials, sets the session cookie and returns the token.
func Login(service authenticating.Authenticator, cookieName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		session, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("login rejected")
			writeServiceError(w, r, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    session.Token,
			Path:     "/",
			Expires:  session.ExpiresAt,
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})

		writeSuccess(w, r, http.StatusOK, session)
	}
}

// Logout expires the session cookie. Tokens are stateless and stay valid
// until they expire.
func Logout(cookieName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeSuccess(w, r, http.StatusOK, map[string]string{"message": "logged out"})
	}
}

// GetMe returns the profile of the logged in user.
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingToken, "authentication required", nil)
			return
		}

		user, err := service.GetUserProfile(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeSuccess(w, r, http.StatusOK, user)
	}
}
