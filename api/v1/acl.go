package v1 // import "github.com/bookdenapp/bookden/api/v1"

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/bookdenapp/bookden/api/auth"
	"github.com/bookdenapp/bookden/http/request"
	"github.com/bookdenapp/bookden/http/response"
	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/model"
	"github.com/bookdenapp/bookden/store"
	"github.com/bookdenapp/bookden/util"
	"go.uber.org/zap"
)

type AuthInterceptor struct {
	store  *store.Store
	secret string
}

func NewAuthInterceptor(store *store.Store, secret string) *AuthInterceptor {
	return &AuthInterceptor{
		store:  store,
		secret: secret,
	}
}

// AuthenticationInterceptor verifies the access token, loads the user it
// names and attaches the identity to the request context. The caller's
// role is read from the verified user record, a role claimed by the
// client is never trusted.
func (in *AuthInterceptor) AuthenticationInterceptor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isUnauthorizeAllowed(r) {
			next.ServeHTTP(w, r)
			return
		}

		token := findAccessToken(r)
		if token == "" {
			log.Debug("Missing access token",
				zap.String("client_ip", request.FindClientIP(r)),
				zap.String("request.uri", r.RequestURI),
			)
			response.Unauthorized(w, r)
			return
		}

		userID, err := in.authenticate(token)
		if err != nil {
			log.Debug("Failed to authenticate", zap.Error(err))
			response.Unauthorized(w, r)
			return
		}

		user, err := in.store.GetUser(&model.FindUser{ID: &userID})
		if err != nil {
			response.ServerError(w, r, errors.Wrap(err, "get user"))
			return
		}
		if user == nil {
			response.Unauthorized(w, r)
			return
		}
		if user.RowStatus == model.Archived {
			response.Unauthorized(w, r)
			return
		}

		if isOnlyForAdminAllowedPath(r.Method, r.URL.Path) && user.Role != model.RoleAdmin {
			response.Forbidden(w, r)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, request.UserIDContextKey, user.ID)
		ctx = context.WithValue(ctx, request.UserNameContextKey, user.Name)
		ctx = context.WithValue(ctx, request.UserEmailContextKey, user.Email)
		ctx = context.WithValue(ctx, request.UserRoleContextKey, user.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (in *AuthInterceptor) authenticate(token string) (int32, error) {
	claims := &auth.ClaimsMessage{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		if kid, ok := t.Header["kid"].(string); !ok || kid != auth.KeyID {
			return nil, errors.Errorf("unexpected key id: %v", t.Header["kid"])
		}
		return []byte(in.secret), nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "parse access token")
	}

	audienceValid := false
	for _, audience := range claims.Audience {
		if audience == auth.AccessTokenAudienceName {
			audienceValid = true
			break
		}
	}
	if !audienceValid {
		return 0, errors.Errorf("invalid audience %v", claims.Audience)
	}

	userID, err := util.ConvertStringToInt32(claims.Subject)
	if err != nil {
		return 0, errors.Wrap(err, "malformed subject")
	}
	return userID, nil
}

// findAccessToken prefers the cookie set at login and falls back to a
// bearer Authorization header.
func findAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(auth.AccessTokenCookieName); err == nil {
		return cookie.Value
	}
	authorization := r.Header.Get("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		return strings.TrimPrefix(authorization, "Bearer ")
	}
	return ""
}
