package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"farmfresh/internal/common"
	"farmfresh/internal/services"
)

// ProductHandlers serves the storefront catalog.
type ProductHandlers struct {
	products services.ProductServiceInterface
}

func NewProductHandlers(products services.ProductServiceInterface) *ProductHandlers {
	return &ProductHandlers{products: products}
}

// ListProducts handles GET /products with limit/offset pagination.
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	limit := 50
	offset := 0
	if v := c.QueryParam("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	products, err := h.products.ListProducts(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list products")
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id.
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return common.SendClientError(c, "invalid product id")
	}

	product, err := h.products.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Product")
		}
		return common.SendServerError(c, "Failed to load product")
	}
	return c.JSON(http.StatusOK, product)
}

// UploadProductImage handles PUT /products/:id/image (multipart form,
// field "image").
func (h *ProductHandlers) UploadProductImage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return common.SendClientError(c, "invalid product id")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return common.SendValidationError(c, "image", "image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded image")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.products.SetProductImage(c.Request().Context(), id, fileHeader.Filename, contentType, file, fileHeader.Size); err != nil {
		return common.SendServerError(c, "Failed to store product image")
	}
	return c.NoContent(http.StatusNoContent)
}
