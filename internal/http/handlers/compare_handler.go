package handlers

import (
	"github.com/gofiber/fiber/v2"

	"maktaba/internal/catalog"
	"maktaba/internal/session"
	"maktaba/internal/validate"
)

// CompareHandler manages the side-by-side comparison set. Adds beyond the
// cap or of duplicates are ignored without an error, matching the silent
// policy of the comparison session.
type CompareHandler struct {
	Catalog  *catalog.Store
	Sessions *session.Store
}

// GET /compare
func (h *CompareHandler) View(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	return render(c, "compare", fiber.Map{
		"Items":  sess.Compare.Items(),
		"IsFull": sess.Compare.IsFull(),
	})
}

// POST /compare
func (h *CompareHandler) Add(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if p, found := h.Catalog.ProductByID(pid); found {
		sess.Compare.Add(p)
	}
	back := c.Get("Referer")
	if back == "" {
		back = "/compare"
	}
	return c.Redirect(back)
}

// POST /compare/remove
func (h *CompareHandler) Remove(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	sess.Compare.Remove(pid)
	return c.Redirect("/compare")
}

// POST /compare/clear
func (h *CompareHandler) Clear(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	sess.Compare.Clear()
	return c.Redirect("/")
}
