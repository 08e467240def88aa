package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAccessToken(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
		header string
		want   string
	}{
		{name: "Cookie preferred", cookie: &http.Cookie{Name: AccessTokenCookie, Value: "cookie_token"}, header: "Bearer header_token", want: "cookie_token"},
		{name: "Header fallback", header: "Bearer header_token", want: "header_token"},
		{name: "Lowercase scheme", header: "bearer header_token", want: "header_token"},
		{name: "Empty cookie falls back", cookie: &http.Cookie{Name: AccessTokenCookie, Value: ""}, header: "Bearer header_token", want: "header_token"},
		{name: "Other cookie ignored", cookie: &http.Cookie{Name: "session", Value: "x"}, want: ""},
		{name: "No token", want: ""},
		{name: "Basic auth", header: "Basic user:pass", want: ""},
		{name: "Scheme only", header: "Bearer", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractAccessToken(req))
		})
	}
}
