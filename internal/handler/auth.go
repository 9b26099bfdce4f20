package handler

import (
    "encoding/json"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/electramart-api/internal/service"
)

// AuthHandler serves /api/auth.
type AuthHandler struct {
    Auth *service.AuthService
}

func NewAuthHandler(a *service.AuthService) *AuthHandler { return &AuthHandler{Auth: a} }

// ----- DTOs -----

type registerReq struct {
    Firstname       string          `json:"firstname"`
    Lastname        string          `json:"lastname"`
    Username        string          `json:"username" validate:"required"`
    Email           string          `json:"email" validate:"required,email"`
    Password        string          `json:"password" validate:"required"`
    ConfirmPassword string          `json:"confirmPassword"`
    Usertype        string          `json:"usertype"`
    Pincode         string          `json:"pincode"`
    Phone           string          `json:"phone"`
    Address         string          `json:"address"`
    Status          string          `json:"status"`
    Cart            json.RawMessage `json:"cart"`
    Transaction     json.RawMessage `json:"transaction"`
    Products        json.RawMessage `json:"products"`
}

type loginReq struct {
    Username string `json:"username" validate:"required"`
    Email    string `json:"email" validate:"required"`
    Password string `json:"password" validate:"required"`
    Usertype string `json:"usertype"`
}

type forgotPasswordReq struct {
    Email string `json:"email" validate:"required,email"`
}

type newPasswordReq struct {
    Email    string `json:"email" validate:"required,email"`
    Password string `json:"password" validate:"required"`
    Code     string `json:"code" validate:"required"`
}

type adminLoginReq struct {
    Password string `json:"password" validate:"required"`
}

// Register: create the account and return it without the password.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if ok, err := bindValid(c, &req); !ok {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    u, err := h.Auth.Register(ctx, service.RegisterInput{
        Firstname:       req.Firstname,
        Lastname:        req.Lastname,
        Username:        req.Username,
        Email:           req.Email,
        Password:        req.Password,
        ConfirmPassword: req.ConfirmPassword,
        Usertype:        req.Usertype,
        Pincode:         req.Pincode,
        Phone:           req.Phone,
        Address:         req.Address,
        Status:          req.Status,
        Cart:            req.Cart,
        Transaction:     req.Transaction,
        Products:        req.Products,
    })
    if err != nil {
        return businessFailure(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"status": true, "user": u})
}

// Login: verify credentials and return the user with an access token.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if ok, err := bindValid(c, &req); !ok {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    u, tok, err := h.Auth.Login(ctx, service.LoginInput(req))
    if err != nil {
        return businessFailure(c, err)
    }
    resp := echo.Map{"status": true, "user": u, "accessToken": tok.Token}
    if !tok.Exp.IsZero() {
        resp["expiresAt"] = tok.Exp.Format(time.RFC3339)
    }
    return c.JSON(http.StatusOK, resp)
}

// ForgotPassword mails a reset code.  The answer is the same whether or not
// the email is registered.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
    var req forgotPasswordReq
    if ok, err := bindValid(c, &req); !ok {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Auth.RequestPasswordReset(ctx, req.Email); err != nil {
        return err
    }
    return c.JSON(http.StatusOK, echo.Map{
        "status": true,
        "msg":    "If the email is registered, a reset code has been sent.",
    })
}

// NewPassword sets a new password using a mailed reset code.
func (h *AuthHandler) NewPassword(c echo.Context) error {
    var req newPasswordReq
    if ok, err := bindValid(c, &req); !ok {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    u, err := h.Auth.SetNewPassword(ctx, req.Email, req.Code, req.Password)
    if err != nil {
        return businessFailure(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"status": true, "user": u})
}

// AdminLogin checks the admin password; no token is issued.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
    var req adminLoginReq
    if ok, err := bindValid(c, &req); !ok {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Auth.AdminLogin(ctx, req.Password); err != nil {
        return businessFailure(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"status": true})
}
