package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"maktaba/internal/catalog"
	applog "maktaba/internal/log"
	"maktaba/internal/session"
	"maktaba/internal/validate"
)

type SearchHandler struct {
	Catalog  *catalog.Store
	Sessions *session.Store
}

// GET /search — full results over name, author and description.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// Initial page load: empty search screen, no error.
		return render(c, "search", fiber.Map{"Q": "", "Products": []any{}, "Count": 0})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		c.Status(fiber.StatusBadRequest)
		return render(c, "search", fiber.Map{
			"Q": "", "Products": []any{}, "Count": 0, "Err": "أدخل كلمة بحث صحيحة",
		})
	}

	transition(sess, sess.View().Search(q))
	return renderView(c, sess, h.Catalog)
}

// GET /api/v1/suggest — typeahead suggestions, minimum two characters,
// capped at five, in catalog order.
func (h *SearchHandler) Suggest(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return c.JSON([]any{})
	}
	matches := h.Catalog.Suggest(q, 5)
	type suggestion struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Author string `json:"author"`
	}
	out := make([]suggestion, 0, len(matches))
	for _, p := range matches {
		out = append(out, suggestion{ID: p.ID, Name: p.Name, Author: p.Author})
	}
	return c.JSON(out)
}
