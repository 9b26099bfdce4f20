package middleware

// identity.go holds the context keys set by JWTAuth and the helpers that
// read them back.

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/electramart-api/internal/utils"
)

// Context keys populated by JWTAuth.
const (
    ClaimsKey   = "claims"
    UsernameKey = "username"
    UsertypeKey = "usertype"
)

// ClaimsFrom returns the verified token claims of the request, if any.
func ClaimsFrom(c echo.Context) (*utils.Claims, bool) {
    cl, ok := c.Get(ClaimsKey).(*utils.Claims)
    return cl, ok && cl != nil
}

// UserID returns the account id (the token's sub) or "" for anonymous
// requests.
func UserID(c echo.Context) string {
    if cl, ok := ClaimsFrom(c); ok {
        return cl.Subject
    }
    return ""
}

// Username returns the authenticated username or "" for anonymous requests.
func Username(c echo.Context) string {
    if cl, ok := ClaimsFrom(c); ok {
        return cl.Username
    }
    return ""
}

// identity names the caller for rate-limit keys.
func identity(c echo.Context) string {
    if u := Username(c); u != "" {
        return u
    }
    return "anon"
}
