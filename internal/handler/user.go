package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/electramart-api/internal/middleware"
    "github.com/iliyamo/electramart-api/internal/service"
)

// UserHandler serves /api/users.  Edits apply only to the account whose id
// is the token's subject.
type UserHandler struct {
    Profiles *service.ProfileService
}

func NewUserHandler(p *service.ProfileService) *UserHandler { return &UserHandler{Profiles: p} }

type updateProfileReq struct {
    ActualName string `json:"actualName"`
    Username   string `json:"username"`
    Email      string `json:"email" validate:"omitempty,email"`
    Password   string `json:"password"`
    Phone      string `json:"phone"`
    Address    string `json:"address"`
}

type profilePicReq struct {
    URL      string `json:"url" validate:"required,url"`
    Username string `json:"username"`
}

type profileDetailsReq struct {
    Email string `json:"email" validate:"required,email"`
}

var errNotOwner = echo.NewHTTPError(http.StatusForbidden, "You can only change your own profile")

// profileFailure maps a failed profile write to its response.
func profileFailure(c echo.Context, err error) error {
    switch {
    case errors.Is(err, service.ErrNotOwner):
        return errNotOwner
    case errors.Is(err, service.ErrUsernameTooShort):
        return c.JSON(http.StatusBadRequest, echo.Map{"status": false, "msg": clientMsg[service.ErrUsernameTooShort]})
    }
    return businessFailure(c, err)
}

// UpdateProfile edits username, email, password, phone and address.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
    var req updateProfileReq
    if ok, err := bindValid(c, &req); !ok {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    err := h.Profiles.UpdateProfile(ctx, service.ProfileInput{
        UserID:     middleware.UserID(c),
        ActualName: req.ActualName,
        Username:   req.Username,
        Email:      req.Email,
        Password:   req.Password,
        Phone:      req.Phone,
        Address:    req.Address,
    })
    if err != nil {
        return profileFailure(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"status": true, "msg": "Profile updated successfully."})
}

// ProfilePic stores the URL of an already uploaded picture.
func (h *UserHandler) ProfilePic(c echo.Context) error {
    var req profilePicReq
    if ok, err := bindValid(c, &req); !ok {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Profiles.SetProfilePic(ctx, middleware.UserID(c), req.Username, req.URL); err != nil {
        return profileFailure(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"status": true, "msg": "Profile picture uploaded successfully."})
}

// ProfileDetails returns {user} for an email, user being null if unknown.
func (h *UserHandler) ProfileDetails(c echo.Context) error {
    var req profileDetailsReq
    if ok, err := bindValid(c, &req); !ok {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    u, err := h.Profiles.ProfileDetails(ctx, req.Email)
    if err != nil && !errors.Is(err, service.ErrUserNotFound) {
        return err
    }
    return c.JSON(http.StatusOK, echo.Map{"user": u})
}

// Get returns one user by id, or null.
func (h *UserHandler) Get(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    u, err := h.Profiles.GetUser(ctx, c.Param("id"))
    if err != nil && !errors.Is(err, service.ErrUserNotFound) {
        return err
    }
    return c.JSON(http.StatusOK, u)
}

// List returns every user, passwords omitted.
func (h *UserHandler) List(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    users, err := h.Profiles.ListUsers(ctx)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, users)
}
