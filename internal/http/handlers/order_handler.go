package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"maktaba/internal/catalog"
	applog "maktaba/internal/log"
	"maktaba/internal/notify"
	"maktaba/internal/order"
	"maktaba/internal/session"
	"maktaba/internal/validate"
)

type OrderHandler struct {
	Catalog        *catalog.Store
	Sessions       *session.Store
	Notifier       *notify.Service
	WhatsAppNumber string
	ReadyDelay     time.Duration
	CompleteDelay  time.Duration
}

// GET /checkout — order summary plus the phone form. Requires a signed-in
// shopper and a non-empty cart.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	if sess.User() == nil {
		return c.Redirect("/cart")
	}
	if sess.Cart.Len() == 0 {
		return c.Redirect("/cart")
	}
	return render(c, "checkout", fiber.Map{
		"Items": sess.Cart.Items(),
		"Total": sess.Cart.Total(),
	})
}

// POST /checkout — builds the order and hands the shopper the pre-filled
// WhatsApp link. The order is only pending confirmation at this point; the
// cart is untouched until the shopper confirms.
func (h *OrderHandler) Initiate(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	u := sess.User()
	if u == nil || sess.Cart.Len() == 0 {
		return c.Redirect("/cart")
	}
	phone, ok := validate.Phone(c.FormValue("phone"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "phone"})
		c.Status(fiber.StatusBadRequest)
		return render(c, "checkout", fiber.Map{
			"Items": sess.Cart.Items(), "Total": sess.Cart.Total(),
			"Err": "أدخل رقم هاتف صحيح",
		})
	}

	o := order.New(*u, phone, sess.Cart.Items(), sess.Cart.Total(), time.Now())
	sess.SetPendingOrder(&o)
	applog.Audit(c, "order.initiate", map[string]any{"order_id": o.ID, "total": o.Total})

	return render(c, "order_sent", fiber.Map{
		"Order":        o,
		"WhatsAppLink": order.WhatsAppLink(h.WhatsAppNumber, o),
	})
}

// POST /orders/confirm — the shopper reports they sent the WhatsApp message.
// Finalizes the order, clears the cart and enters the order-status screen.
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	o := sess.PendingOrder()
	if o == nil {
		return c.Redirect("/cart")
	}
	sess.SetPendingOrder(nil)
	sess.Cart.Clear()

	l := order.NewLifecycle(*o, h.ReadyDelay, h.CompleteDelay, h.Notifier)
	sess.StartOrder(l)
	sess.SetView(sess.View().OrderConfirmed(o.ID))

	applog.Audit(c, "order.place", map[string]any{"order_id": o.ID, "total": o.Total})
	return c.Redirect("/order/" + o.ID)
}

// POST /orders/cancel — abandons the pending order before confirmation.
func (h *OrderHandler) CancelPending(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	sess.SetPendingOrder(nil)
	return c.Redirect("/cart")
}

// GET /order/:id — the status screen. Auto-refreshes while timers run.
func (h *OrderHandler) View(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	l := sess.Lifecycle()
	if l == nil || l.Order().ID != c.Params("id") {
		return notFound(c, "الطلب غير موجود")
	}
	sess.SetView(sess.View().OrderConfirmed(l.Order().ID))
	return renderView(c, sess, h.Catalog)
}

// POST /order/:id/notify — records the push/email opt-in.
func (h *OrderHandler) Notify(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	l := sess.Lifecycle()
	if l == nil || l.Order().ID != c.Params("id") {
		return notFound(c, "الطلب غير موجود")
	}
	switch c.FormValue("choice") {
	case "push":
		l.SetChoice(order.ChoicePush)
	case "email":
		// Email notices need an address, so a signed-in shopper.
		if sess.User() == nil {
			return c.Redirect("/order/" + l.Order().ID)
		}
		l.SetChoice(order.ChoiceEmail)
	}
	applog.Info(c, "order.notify.choice", map[string]any{"order_id": l.Order().ID, "choice": string(l.Choice())})
	return c.Redirect("/order/" + l.Order().ID)
}

// POST /orders/new — back to shopping; tears the lifecycle down.
func (h *OrderHandler) NewOrder(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	transition(sess, sess.View().NewOrder())
	return c.Redirect("/")
}
