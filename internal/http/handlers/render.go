package handlers

import (
	"github.com/gofiber/fiber/v2"

	"maktaba/internal/catalog"
	"maktaba/internal/domain"
	"maktaba/internal/session"
	"maktaba/internal/view"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	} else if cookTok := c.Cookies("csrf_"); cookTok != "" {
		data["CSRFToken"] = cookTok
	}
	return c.Render(tmpl, data)
}

// transition applies a view-state change. Leaving the order-status screen
// cancels the order lifecycle timers.
func transition(sess *session.Session, next view.State) {
	prev := sess.View()
	if prev.Kind == view.KindOrderStatus && next.Kind != view.KindOrderStatus {
		sess.EndOrder()
	}
	sess.SetView(next)
}

// renderView is the single dispatch site over the view-state variant.
func renderView(c *fiber.Ctx, sess *session.Session, cat *catalog.Store) error {
	v := sess.View()
	base := fiber.Map{
		"Cart":    sess.Cart.Items(),
		"Total":   sess.Cart.Total(),
		"Compare": sess.Compare.Items(),
	}

	switch v.Kind {
	case view.KindHome:
		base["Categories"] = cat.Categories()
		base["Featured"] = cat.Featured(8)
		return render(c, "home", base)

	case view.KindCategory:
		category, ok := cat.CategoryByID(v.CategoryID)
		if !ok {
			return notFound(c, "هذا القسم غير موجود")
		}
		base["Category"] = category
		base["Sub"] = v.Subcategory
		base["Products"] = cat.ProductsBySubcategory(category.ID, v.Subcategory)
		return render(c, "category", base)

	case view.KindProduct:
		p, ok := cat.ProductByID(v.ProductID)
		if !ok {
			return notFound(c, "هذا المنتج لم يعد متاحاً")
		}
		base["P"] = p
		base["Availability"] = catalog.CheckAvailability(p)
		base["Related"] = cat.Related(p, 4)
		base["InCompare"] = sess.Compare.Contains(p.ID)
		base["CompareFull"] = sess.Compare.IsFull()
		return render(c, "product", base)

	case view.KindSearch:
		base["Q"] = v.Query
		base["Products"] = cat.Search(v.Query)
		return render(c, "search", base)

	case view.KindOrderStatus:
		l := sess.Lifecycle()
		if l == nil {
			return notFound(c, "الطلب غير موجود")
		}
		o := l.Order()
		if o.Status != domain.OrderCompleted {
			// browser re-polls the status screen until the order settles
			c.Set("Refresh", "3")
		}
		base["Order"] = o
		base["Choice"] = string(l.Choice())
		return render(c, "order", base)
	}
	return notFound(c, "الصفحة غير موجودة")
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg})
}
