package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/electramart-api/internal/model"
    "github.com/iliyamo/electramart-api/internal/service"
)

// ProductHandler serves /api/products.  OnChange, when set, runs after the
// catalogue was modified (the router uses it to drop cached listings).
type ProductHandler struct {
    Catalog  *service.CatalogService
    OnChange func(ctx context.Context)
}

func NewProductHandler(cat *service.CatalogService, onChange func(ctx context.Context)) *ProductHandler {
    return &ProductHandler{Catalog: cat, OnChange: onChange}
}

type newProductReq struct {
    Productname string `json:"productname" validate:"required"`
    Img         string `json:"img"`
    Type        string `json:"type"`
    Price       string `json:"price"`
    Status      string `json:"status"`
}

// All lists the whole catalogue.
func (h *ProductHandler) All(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    items, err := h.Catalog.ListProducts(ctx)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, items)
}

// ByType lists the products of one type.
func (h *ProductHandler) ByType(productType string) echo.HandlerFunc {
    return func(c echo.Context) error {
        ctx, cancel := reqCtx(c)
        defer cancel()
        items, err := h.Catalog.ListProductsByType(ctx, productType)
        if err != nil {
            return err
        }
        return c.JSON(http.StatusOK, items)
    }
}

// Get returns one product by id, or null.
func (h *ProductHandler) Get(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    p, err := h.Catalog.GetProduct(ctx, c.Param("id"))
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, p)
}

// Create adds a product; status is false when the productname is taken.
func (h *ProductHandler) Create(c echo.Context) error {
    var req newProductReq
    if ok, err := bindValid(c, &req); !ok {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    created, err := h.Catalog.CreateProduct(ctx, &model.Product{
        Productname: req.Productname,
        Img:         req.Img,
        Type:        req.Type,
        Price:       req.Price,
        Status:      req.Status,
    })
    if err != nil {
        return err
    }
    if created && h.OnChange != nil {
        h.OnChange(ctx)
    }
    return c.JSON(http.StatusOK, echo.Map{"status": created})
}
