package handler // declare the package name; contains HTTP handlers

import (
    "context"
    "net/http" // net/http provides status codes and response helpers

    "github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Pinger is any dependency the health check probes.
type Pinger func(ctx context.Context) error

// Health reports liveness and, for each named dependency, whether it
// answers.  A failing dependency turns the status into 503 so load
// balancers stop routing to the instance.
func Health(deps map[string]Pinger) echo.HandlerFunc {
    return func(c echo.Context) error {
        ctx, cancel := reqCtx(c)
        defer cancel()

        status := http.StatusOK
        checks := make(map[string]string, len(deps))
        for name, ping := range deps {
            if err := ping(ctx); err != nil {
                checks[name] = err.Error()
                status = http.StatusServiceUnavailable
                continue
            }
            checks[name] = "ok"
        }
        return c.JSON(status, echo.Map{"status": status == http.StatusOK, "checks": checks})
    }
}
