package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // splitting the Authorization header

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/electramart-api/internal/utils" // token parsing
)

// unauthorized is the body of every rejection, 401 and 403 alike.
var unauthorized = echo.Map{"status": false, "message": "Unauthorized Access"}

// JWTAuth returns an Echo middleware that verifies the bearer token of the
// Authorization header ("<scheme> <token>") with secret.
//
//   - no header, or no space-separated token segment: 401
//   - empty token segment: 401
//   - bad signature, malformed, expired or non-HS256 token: 403
//
// On success the *utils.Claims are stored under ClaimsKey and the username
// and usertype under their own keys; nothing else about the request changes.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
            if !ok {
                return c.JSON(http.StatusUnauthorized, unauthorized)
            }
            claims, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusForbidden, unauthorized)
            }
            c.Set(ClaimsKey, claims)
            c.Set(UsernameKey, claims.Username)
            c.Set(UsertypeKey, claims.Usertype)
            return next(c)
        }
    }
}

// bearerToken returns the segment after the scheme.  The scheme itself is
// not checked, matching clients that send "Bearer" or "JWT".
func bearerToken(header string) (string, bool) {
    _, token, found := strings.Cut(header, " ")
    if !found {
        return "", false
    }
    token = strings.TrimSpace(token)
    return token, token != ""
}
