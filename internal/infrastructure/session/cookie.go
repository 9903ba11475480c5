package session

import (
	"net/http"
	"net/url"
	"time"
)

// CookieName is the cookie the session token travels in.
const CookieName = "sessionId"

// NewCookie builds the Set-Cookie value carrying token for ttl.
func NewCookie(token string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(token),
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie clears the session cookie (serialised as Max-Age=0).
func ExpiredCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// TokenFromRequest returns the URL-decoded session token, or "" when the
// request carries none. Values that fail to decode are returned raw.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	token, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return cookie.Value
	}
	return token
}
