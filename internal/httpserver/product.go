package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/internal/service"
	"github.com/Skotchmaster/shop_api/internal/transport"
	"github.com/Skotchmaster/shop_api/pkg/logging"
	middleware "github.com/Skotchmaster/shop_api/pkg/middleware/auth"
)

const (
	msgProductNotFound = "Product not found"
	msgNameAndPrice    = "Name and price are required"
	msgInvalidBody     = "Invalid request body"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.ListProducts(ctx)
	if err != nil {
		l.Error("get_products_failed", "status", http.StatusInternalServerError, "reason", "cannot fetch products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching products")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, ok := productID(c)
	if !ok {
		l.Warn("get_product_failed", "status", http.StatusNotFound, "reason", "id is not an integer", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_failed", "status", http.StatusNotFound, "reason", "product with this id does not exist", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		l.Error("get_product_failed", "status", http.StatusInternalServerError, "reason", "cannot fetch product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}

	prod, err := h.Svc.CreateProduct(ctx, req, actorID(c))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_failed", "status", http.StatusBadRequest, "reason", "name or price missing")
			return echo.NewHTTPError(http.StatusBadRequest, msgNameAndPrice)
		}
		l.Error("create_product_failed", "status", http.StatusInternalServerError, "reason", "cannot add product to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating product")
	}

	l.Info("create_product_success", "id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_failed", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}

	id, ok := productID(c)
	if !ok {
		if req.Name == "" || !req.HasPrice() {
			l.Warn("update_product_failed", "status", http.StatusBadRequest, "reason", "name or price missing")
			return echo.NewHTTPError(http.StatusBadRequest, msgNameAndPrice)
		}
		l.Warn("update_product_failed", "status", http.StatusNotFound, "reason", "id is not an integer", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}

	prod, err := h.Svc.UpdateProduct(ctx, id, req, actorID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_product_failed", "status", http.StatusBadRequest, "reason", "name or price missing")
			return echo.NewHTTPError(http.StatusBadRequest, msgNameAndPrice)
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_product_failed", "status", http.StatusNotFound, "reason", "cannot find product in db", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		default:
			l.Error("update_product_failed", "status", http.StatusInternalServerError, "reason", "cannot update product", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Error updating product")
		}
	}

	l.Info("update_product_success", "id", id)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, ok := productID(c)
	if !ok {
		l.Warn("delete_product_failed", "status", http.StatusNotFound, "reason", "id is not an integer", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}

	if err := h.Svc.DeleteProduct(ctx, id, actorID(c)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_product_failed", "status", http.StatusNotFound, "reason", "product not found", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		l.Error("delete_product_failed", "status", http.StatusInternalServerError, "reason", "cannot delete product from db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error deleting product")
	}

	l.Info("delete_product_success", "id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Product deleted successfully"})
}

// productID rejects anything that cannot be a row id; such ids never match.
func productID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func actorID(c echo.Context) uint {
	if claims, ok := middleware.ClaimsFrom(c); ok {
		return claims.UserID
	}
	return 0
}
