package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"maktaba/internal/catalog"
	applog "maktaba/internal/log"
	"maktaba/internal/session"
	"maktaba/internal/validate"
)

type CartHandler struct {
	Catalog  *catalog.Store
	Sessions *session.Store
}

// GET /cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	return render(c, "cart", fiber.Map{
		"Items": sess.Cart.Items(),
		"Total": sess.Cart.Total(),
	})
}

// POST /cart — add one unit of a product.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	p, found := h.Catalog.ProductByID(pid)
	if !found {
		return notFound(c, "هذا المنتج لم يعد متاحاً")
	}
	sess.Cart.Add(p)
	applog.Info(c, "cart.add", map[string]any{"product": pid})
	back := c.Get("Referer")
	if back == "" {
		back = "/cart"
	}
	return c.Redirect(back)
}

// POST /cart/update — set a line's quantity; anything at or below zero
// removes it.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if n, err := strconv.Atoi(strings.TrimSpace(c.FormValue("qty"))); err == nil && n <= 0 {
		sess.Cart.Remove(pid)
	} else {
		sess.Cart.SetQuantity(pid, validate.Qty(c.FormValue("qty")))
	}
	return c.Redirect("/cart")
}

// POST /cart/remove
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	sess.Cart.Remove(pid)
	return c.Redirect("/cart")
}

// POST /cart/clear
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	sess.Cart.Clear()
	return c.Redirect("/cart")
}
