package handler

import (
    "context"
    "errors"
    "net/http"
    "reflect"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/electramart-api/internal/service"
)

// requestTimeout bounds the store work of a single request.
const requestTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
    v *validator.Validate
}

// NewValidator reports fields by their json names.
func NewValidator() *Validator {
    v := validator.New()
    v.RegisterTagNameFunc(func(f reflect.StructField) string {
        name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
        if name == "-" {
            return ""
        }
        return name
    })
    return &Validator{v: v}
}

func (cv *Validator) Validate(i interface{}) error { return cv.v.Struct(i) }

// bindValid binds the body into req and validates it.  When it reports
// false the 400 response has been written and err is the write error.
func bindValid(c echo.Context, req interface{}) (ok bool, err error) {
    if err := c.Bind(req); err != nil {
        return false, c.JSON(http.StatusBadRequest, echo.Map{"status": false, "msg": "invalid body"})
    }
    if err := c.Validate(req); err != nil {
        return false, c.JSON(http.StatusBadRequest, echo.Map{"status": false, "msg": validationMsg(err)})
    }
    return true, nil
}

func validationMsg(err error) string {
    var ve validator.ValidationErrors
    if errors.As(err, &ve) && len(ve) > 0 {
        fe := ve[0]
        switch fe.Tag() {
        case "required":
            return fe.Field() + " is required"
        case "email":
            return fe.Field() + " must be a valid email"
        default:
            return fe.Field() + " is invalid"
        }
    }
    return "invalid request"
}

// clientMsg is the message shown to the client for a business failure.
var clientMsg = map[error]string{
    service.ErrUsernameExists:   "Username already exists",
    service.ErrEmailExists:      "Email already exists",
    service.ErrInvalidUsername:  "Invalid username",
    service.ErrInvalidEmail:     "Invalid email",
    service.ErrInvalidPassword:  "Invalid password",
    service.ErrPasswordMismatch: "Passwords do not match",
    service.ErrInvalidResetCode: "Invalid or expired reset code",
    service.ErrAdminPassword:    "Incorrect Admin Password",
    service.ErrUsernameTooShort: "Username must be at least 5 characters long.",
    service.ErrUserNotFound:     "User not found",
}

// businessFailure answers a known business error with 200 and
// {status:false, msg}.  Any other error is returned for the error sink.
func businessFailure(c echo.Context, err error) error {
    for target, msg := range clientMsg {
        if errors.Is(err, target) {
            return c.JSON(http.StatusOK, echo.Map{"status": false, "msg": msg})
        }
    }
    return err
}

// ErrorHandler is the single sink for errors returned by handlers.  echo
// HTTP errors keep their code; anything else is logged and answered with a
// generic 500.
func ErrorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
    return func(err error, c echo.Context) {
        if c.Response().Committed {
            return
        }
        code := http.StatusInternalServerError
        msg := http.StatusText(code)

        var he *echo.HTTPError
        if errors.As(err, &he) {
            code = he.Code
            if m, ok := he.Message.(string); ok {
                msg = m
            } else {
                msg = http.StatusText(code)
            }
        } else {
            log.WithError(err).WithFields(logrus.Fields{
                "method": c.Request().Method,
                "path":   c.Path(),
            }).Error("request failed")
        }

        if c.Request().Method == http.MethodHead {
            err = c.NoContent(code)
        } else {
            err = c.JSON(code, echo.Map{"status": false, "msg": msg})
        }
        if err != nil {
            log.WithError(err).Error("write error response")
        }
    }
}
