package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireUsertype returns a middleware that admits only tokens whose
// usertype claim is one of types.  It must run after JWTAuth; a request
// without claims or with another usertype gets 403.
func RequireUsertype(types ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(types))
    for _, t := range types {
        allowed[t] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            cl, ok := ClaimsFrom(c)
            if !ok || !allowed[cl.Usertype] {
                return c.JSON(http.StatusForbidden, unauthorized)
            }
            return next(c)
        }
    }
}
