package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mkarpov/go-bucketlist/internal/logger"
	"github.com/mkarpov/go-bucketlist/internal/service"
	"github.com/mkarpov/go-bucketlist/internal/utils"
	"github.com/mkarpov/go-bucketlist/models"
)

// auth is the HTTP middleware enforcing bearer-token authentication.
//
// The checks run in a fixed order, each short-circuiting with 401 and its own
// message:
//  1. The "Authorization" header key is absent entirely.
//  2. The header key is present but its value is empty.
//  3. The value does not split into exactly two space-separated parts.
//     The scheme part is never validated, only the pair shape.
//  4. The token part is an empty string.
//  5. Token validation fails (expired and invalid produce different messages).
//
// On success the authenticated user's ID is stored in the request context
// under [utils.UserIDCtxKey] before delegating to the next handler.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		if _, present := r.Header["Authorization"]; !present {
			log.Error().Msg("authorization header missing")
			utils.WriteJSON(w, models.Message{Message: msgAuthHeaderMissing}, http.StatusUnauthorized)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Error().Msg("authorization header empty")
			utils.WriteJSON(w, models.Message{Message: msgTokenNotProvided}, http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 {
			log.Error().Msg("authorization header has invalid format")
			utils.WriteJSON(w, models.Message{Message: msgInvalidTokenFmt}, http.StatusUnauthorized)
			return
		}

		accessToken := parts[1]
		if accessToken == "" {
			log.Error().Msg("empty token string in authorization header")
			utils.WriteJSON(w, models.Message{Message: msgEmptyTokenString}, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, accessToken)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenExpired):
				log.Err(err).Msg("token expired")
				utils.WriteJSON(w, models.Message{Message: msgTokenExpired}, http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("token validation failed")
				utils.WriteJSON(w, models.Message{Message: msgTokenInvalid}, http.StatusUnauthorized)
				return
			}
		}

		// Store the authenticated user's ID in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
