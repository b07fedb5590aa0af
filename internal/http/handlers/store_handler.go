package handlers

import (
	"github.com/gofiber/fiber/v2"

	"maktaba/internal/catalog"
	applog "maktaba/internal/log"
	"maktaba/internal/session"
	"maktaba/internal/validate"
	"maktaba/internal/view"
)

// StoreHandler serves the storefront screens: home, category drill-down and
// product detail. Each request is a view-state transition followed by the
// shared render dispatch.
type StoreHandler struct {
	Catalog  *catalog.Store
	Sessions *session.Store
}

// GET /
func (h *StoreHandler) Home(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	transition(sess, view.Home())
	return renderView(c, sess, h.Catalog)
}

// GET /category/:id
func (h *StoreHandler) Category(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "category"})
		return notFound(c, "هذا القسم غير موجود")
	}
	next := sess.View().SelectCategory(id)
	if sub := c.Query("sub"); sub != "" {
		if sub, ok := validate.ID(sub); ok {
			next = next.FilterSubcategory(sub)
		} else {
			applog.Security(c, "validation.fail", map[string]any{"field": "sub"})
		}
	}
	transition(sess, next)
	return renderView(c, sess, h.Catalog)
}

// GET /product/:id
func (h *StoreHandler) Product(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFound(c, "هذا المنتج لم يعد متاحاً")
	}
	transition(sess, sess.View().SelectProduct(id))
	return renderView(c, sess, h.Catalog)
}

// GET /api/v1/availability — stock badge for the product page.
func (h *StoreHandler) Availability(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	p, found := h.Catalog.ProductByID(id)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown product"})
	}
	return c.JSON(catalog.CheckAvailability(p))
}
