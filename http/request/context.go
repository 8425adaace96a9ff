package request // import "github.com/bookdenapp/bookden/http/request"

import (
	"net/http"

	"github.com/bookdenapp/bookden/model"
)

type ContextKey int

const (
	ClientIPContextKey ContextKey = iota
	UserIDContextKey
	UserNameContextKey
	UserEmailContextKey
	UserRoleContextKey
)

func getContextStringValue(r *http.Request, key ContextKey) string {
	if v := r.Context().Value(key); v != nil {
		if value, valid := v.(string); valid {
			return value
		}
	}
	return ""
}

// FindClientIP returns the client IP, trusting forwarding headers over
// the socket address.
func FindClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func GetUserID(r *http.Request) int32 {
	if v := r.Context().Value(UserIDContextKey); v != nil {
		if value, valid := v.(int32); valid {
			return value
		}
	}
	return 0
}

func GetUserName(r *http.Request) string {
	return getContextStringValue(r, UserNameContextKey)
}

func GetUserEmail(r *http.Request) string {
	return getContextStringValue(r, UserEmailContextKey)
}

func GetUserRole(r *http.Request) model.Role {
	if v := r.Context().Value(UserRoleContextKey); v != nil {
		if value, valid := v.(model.Role); valid {
			return value
		}
	}
	return ""
}

// IsAdmin reports whether the authenticated caller carries the admin
// role. The role comes from the verified token's user record, never
// from a client-supplied header.
func IsAdmin(r *http.Request) bool {
	return GetUserRole(r) == model.RoleAdmin
}
