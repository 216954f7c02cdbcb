package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"farmfresh/internal/common"
	"farmfresh/internal/models"
	"farmfresh/internal/services"
)

// cartSessionCookie scopes a browser to its persisted cart snapshot. The
// cookie carries an opaque id only; this is session affinity, not
// authentication.
const cartSessionCookie = "farmfresh_cart"

// CartHandlers exposes the cart store's operations over HTTP. Every
// handler routes through the cart service so all mutations share one
// restore-mutate-persist path.
type CartHandlers struct {
	carts services.CartServiceInterface
}

func NewCartHandlers(carts services.CartServiceInterface) *CartHandlers {
	return &CartHandlers{carts: carts}
}

// CartView is the rendered cart: line items in insertion order plus
// totals derived fresh from them.
type CartView struct {
	Items  []models.CartItem `json:"items"`
	Totals models.CartTotals `json:"totals"`
}

func newCartView(cart *models.Cart) *CartView {
	return &CartView{Items: cart.Items(), Totals: cart.Totals()}
}

// session returns the cart session id, minting a cookie on first contact.
func (h *CartHandlers) session(c echo.Context) string {
	if cookie, err := c.Cookie(cartSessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     cartSessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func (h *CartHandlers) itemID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	return id, nil
}

// GetCart handles GET /cart.
func (h *CartHandlers) GetCart(c echo.Context) error {
	cart, err := h.carts.Get(c.Request().Context(), h.session(c))
	if err != nil {
		return common.SendServerError(c, "Failed to load cart")
	}
	return c.JSON(http.StatusOK, newCartView(cart))
}

// AddItem handles POST /cart/items. Adding an already-present product
// merges quantities; the response is the refreshed cart so the client can
// open its cart panel with current state.
func (h *CartHandlers) AddItem(c echo.Context) error {
	var req struct {
		ID    int64   `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Image string  `json:"image"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidatePositiveInt64(req.ID, "id"); err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if req.Price < 0 {
		return common.SendValidationError(c, "price", "price cannot be negative")
	}

	cart, err := h.carts.Add(c.Request().Context(), h.session(c),
		req.ID, common.SanitizeText(req.Name), req.Price, common.SanitizeText(req.Image))
	if err != nil {
		return common.SendServerError(c, "Failed to update cart")
	}
	return c.JSON(http.StatusOK, newCartView(cart))
}

// IncreaseItem handles POST /cart/items/:id/increase.
func (h *CartHandlers) IncreaseItem(c echo.Context) error {
	id, err := h.itemID(c)
	if err != nil {
		return err
	}
	cart, err := h.carts.Increase(c.Request().Context(), h.session(c), id)
	if err != nil {
		return common.SendServerError(c, "Failed to update cart")
	}
	return c.JSON(http.StatusOK, newCartView(cart))
}

// DecreaseItem handles POST /cart/items/:id/decrease. Decreasing a
// quantity-one item removes it entirely.
func (h *CartHandlers) DecreaseItem(c echo.Context) error {
	id, err := h.itemID(c)
	if err != nil {
		return err
	}
	cart, err := h.carts.Decrease(c.Request().Context(), h.session(c), id)
	if err != nil {
		return common.SendServerError(c, "Failed to update cart")
	}
	return c.JSON(http.StatusOK, newCartView(cart))
}

// RemoveItem handles DELETE /cart/items/:id.
func (h *CartHandlers) RemoveItem(c echo.Context) error {
	id, err := h.itemID(c)
	if err != nil {
		return err
	}
	cart, err := h.carts.Remove(c.Request().Context(), h.session(c), id)
	if err != nil {
		return common.SendServerError(c, "Failed to update cart")
	}
	return c.JSON(http.StatusOK, newCartView(cart))
}

// Checkout handles POST /cart/checkout: it hands back the serialized
// cart_data payload and discriminator for the delivery form. The cart
// itself is untouched until the order is confirmed.
func (h *CartHandlers) Checkout(c echo.Context) error {
	cartData, itemCount, err := h.carts.SerializeForCheckout(c.Request().Context(), h.session(c))
	if err != nil {
		return common.SendServerError(c, "Failed to prepare checkout")
	}
	if itemCount == 0 {
		return common.SendClientError(c, "Your cart is empty. Please add items before checking out.")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"submission_type": models.SubmissionTypeOrder,
		"cart_data":       cartData,
	})
}

// ClearCart handles DELETE /cart.
func (h *CartHandlers) ClearCart(c echo.Context) error {
	if err := h.carts.Clear(c.Request().Context(), h.session(c)); err != nil {
		return common.SendServerError(c, "Failed to clear cart")
	}
	return c.NoContent(http.StatusNoContent)
}
