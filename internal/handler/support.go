package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/electramart-api/internal/middleware"
    "github.com/iliyamo/electramart-api/internal/model"
    "github.com/iliyamo/electramart-api/internal/service"
)

// SupportHandler serves /api/services.
type SupportHandler struct {
    Support *service.SupportService
}

func NewSupportHandler(s *service.SupportService) *SupportHandler { return &SupportHandler{Support: s} }

type queryReq struct {
    Name  string `json:"name"`
    Email string `json:"email" validate:"omitempty,email"`
    Ques  string `json:"ques" validate:"required"`
    Sug   string `json:"sug"`
}

type transactionReq struct {
    Accountholder string  `json:"accountholder" validate:"required"`
    Phone         string  `json:"phone"`
    Accountnumber string  `json:"accountnumber" validate:"required"`
    IFSC          string  `json:"ifsc"`
    Amount        float64 `json:"amount" validate:"gt=0"`
    Pincode       string  `json:"pincode"`
    Address       string  `json:"address"`
}

// Query stores a support question.  The name defaults to the caller's
// username.
func (h *SupportHandler) Query(c echo.Context) error {
    var req queryReq
    if ok, err := bindValid(c, &req); !ok {
        return err
    }
    if req.Name == "" {
        req.Name = middleware.Username(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Support.RecordQuery(ctx, &model.Query{
        Username: req.Name, Email: req.Email, Ques: req.Ques, Sug: req.Sug,
    }); err != nil {
        return err
    }
    return c.JSON(http.StatusOK, echo.Map{"status": true})
}

// Transaction stores a payment record.
func (h *SupportHandler) Transaction(c echo.Context) error {
    var req transactionReq
    if ok, err := bindValid(c, &req); !ok {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    t := &model.Transaction{
        Accountholder: req.Accountholder,
        Phone:         req.Phone,
        Accountnumber: req.Accountnumber,
        IFSC:          req.IFSC,
        Amount:        req.Amount,
        Pincode:       req.Pincode,
        Address:       req.Address,
    }
    if err := h.Support.RecordTransaction(ctx, t, middleware.Username(c)); err != nil {
        return err
    }
    return c.JSON(http.StatusOK, echo.Map{"status": true})
}

func (h *SupportHandler) AllQueries(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    qs, err := h.Support.ListQueries(ctx)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, qs)
}

func (h *SupportHandler) AllTransactions(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    ts, err := h.Support.ListTransactions(ctx)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, ts)
}
