package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"
	"golang.org/x/crypto/bcrypt"

	"maktaba/internal/admin"
	"maktaba/internal/auth"
	"maktaba/internal/catalog"
	"maktaba/internal/config"
	"maktaba/internal/gentext"
	"maktaba/internal/http/handlers"
	"maktaba/internal/notify"
	"maktaba/internal/session"
)

type fixture struct {
	app      *fiber.App
	sessions *session.Store
	cat      *catalog.Store
	gate     *admin.Gate
}

// newApp assembles the full route table over the bundled catalog, with the
// mock identity provider and millisecond order timers.
func newApp(t *testing.T) *fixture {
	t.Helper()

	cat := catalog.NewStore(nil)
	cat.Load(context.Background())
	sessions := session.NewStore()
	authSvc := &auth.Service{}

	hash, err := bcrypt.GenerateFromPassword([]byte("secure123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	gate := admin.NewGate("admin", string(hash))

	cfg := config.Config{
		WhatsAppNumber: "201105049122",
		AdminUser:      "admin",
		AdminPath:      "/admin",
		ReadyDelay:     30 * time.Millisecond,
		CompleteDelay:  30 * time.Millisecond,
	}
	notifier := &notify.Service{GenText: gentext.New("", "test-model")}
	deps := handlers.NewDeps(cfg, cat, sessions, authSvc, gate, notifier)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	app.Get("/", deps.StoreHandler.Home)
	app.Get("/category/:id", deps.StoreHandler.Category)
	app.Get("/product/:id", deps.StoreHandler.Product)
	app.Get("/search", deps.SearchHandler.Search)
	app.Get("/api/v1/suggest", deps.SearchHandler.Suggest)
	app.Get("/api/v1/availability", deps.StoreHandler.Availability)

	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/update", deps.CartHandler.Update)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Post("/cart/clear", deps.CartHandler.Clear)

	app.Get("/compare", deps.CompareHandler.View)
	app.Post("/compare", deps.CompareHandler.Add)
	app.Post("/compare/remove", deps.CompareHandler.Remove)
	app.Post("/compare/clear", deps.CompareHandler.Clear)

	app.Get("/checkout", deps.OrderHandler.Checkout)
	app.Post("/checkout", deps.OrderHandler.Initiate)
	app.Post("/orders/confirm", deps.OrderHandler.Confirm)
	app.Post("/orders/cancel", deps.OrderHandler.CancelPending)
	app.Post("/orders/new", deps.OrderHandler.NewOrder)
	app.Get("/order/:id", deps.OrderHandler.View)
	app.Post("/order/:id/notify", deps.OrderHandler.Notify)

	app.Post("/auth/login", deps.AuthHandler.Login)
	app.Get("/auth/callback", deps.AuthHandler.Callback)
	app.Post("/auth/logout", deps.AuthHandler.Logout)

	adm := app.Group("/admin")
	adm.Get("/login", deps.AdminHandler.LoginForm)
	adm.Post("/login", deps.AdminHandler.Login)
	adm.Post("/logout", deps.AdminHandler.Logout)
	guarded := adm.Group("", handlers.RequireAdmin(gate, "/admin"))
	guarded.Get("/", deps.AdminHandler.Dashboard)
	guarded.Get("/products", deps.AdminHandler.Products)
	guarded.Get("/products/new", deps.AdminHandler.ProductForm)
	guarded.Get("/products/:id/edit", deps.AdminHandler.ProductForm)
	guarded.Post("/products/save", deps.AdminHandler.SaveProduct)
	guarded.Post("/products/:id/delete", deps.AdminHandler.DeleteProduct)
	guarded.Get("/categories", deps.AdminHandler.Categories)
	guarded.Get("/categories/new", deps.AdminHandler.CategoryForm)
	guarded.Get("/categories/:id/edit", deps.AdminHandler.CategoryForm)
	guarded.Post("/categories/save", deps.AdminHandler.SaveCategory)
	guarded.Post("/categories/:id/delete", deps.AdminHandler.DeleteCategory)

	return &fixture{app: app, sessions: sessions, cat: cat, gate: gate}
}

// client keeps cookies across requests, like a browser session.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newClient(t *testing.T, app *fiber.App) *client {
	return &client{t: t, app: app, cookies: map[string]string{}}
}

func (c *client) do(method, target string, form url.Values) *http.Response {
	c.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for name, val := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: val})
	}
	resp, err := c.app.Test(req, 5000)
	if err != nil {
		c.t.Fatal(err)
	}
	for _, ck := range resp.Cookies() {
		if ck.MaxAge < 0 || (!ck.Expires.IsZero() && ck.Expires.Before(time.Now())) {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck.Value
	}
	return resp
}

func (c *client) get(target string) *http.Response {
	return c.do(http.MethodGet, target, nil)
}

func (c *client) post(target string, form url.Values) *http.Response {
	return c.do(http.MethodPost, target, form)
}

func (c *client) session(sessions *session.Store) *session.Session {
	c.t.Helper()
	sid := c.cookies["sid"]
	if sid == "" {
		c.t.Fatal("no sid cookie; make a request first")
	}
	return sessions.Get(sid)
}

func urlQuery(s string) string { return url.QueryEscape(s) }

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
