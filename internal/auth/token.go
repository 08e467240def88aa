package auth

import (
	"net/http"
	"strings"
)

// AccessTokenCookie is the cookie an admin dashboard stores its token in.
const AccessTokenCookie = "access_token"

// ExtractAccessToken reads the token from the access_token cookie, falling
// back to an "Authorization: Bearer" header. The scheme is matched
// case-insensitively.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		if v := strings.TrimSpace(cookie.Value); v != "" {
			return v
		}
	}

	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
