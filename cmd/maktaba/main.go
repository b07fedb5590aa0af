package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"maktaba/internal/admin"
	"maktaba/internal/auth"
	"maktaba/internal/catalog"
	"maktaba/internal/config"
	"maktaba/internal/gentext"
	"maktaba/internal/http/handlers"
	applog "maktaba/internal/log"
	"maktaba/internal/notify"
	"maktaba/internal/remote"
	"maktaba/internal/repos"
	"maktaba/internal/session"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	// ---------- Catalog backend selection ----------
	var backend catalog.Backend
	var remoteClient *remote.Client
	var localUsers *repos.UserRepo
	switch {
	case cfg.RemoteURL != "" && cfg.RemoteKey != "":
		remoteClient = remote.New(cfg.RemoteURL, cfg.RemoteKey)
		backend = &catalog.RemoteBackend{Client: remoteClient}
	case cfg.DBDSN != "":
		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			log.Fatal(err)
		}
		backend = &catalog.LocalBackend{
			Products:   repos.NewProductRepo(db),
			Categories: repos.NewCategoryRepo(db),
		}
		localUsers = repos.NewUserRepo(db)
	default:
		log.Printf("[catalog] no backend configured, serving bundled dataset")
	}

	cat := catalog.NewStore(backend)
	loadCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	cat.Load(loadCtx)
	cancel()

	// ---------- Session/auth/admin wiring ----------
	sessions := session.NewStore()
	authSvc := &auth.Service{}
	if remoteClient != nil {
		authSvc.Provider = remoteClient
		authSvc.Profiles = remoteClient
	} else if localUsers != nil {
		authSvc.Profiles = localUsers
	}
	gate := admin.NewGate(cfg.AdminUser, cfg.AdminPassHash)
	notifier := &notify.Service{GenText: gentext.New(cfg.GenTextKey, cfg.GenTextModel)}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "حدث خطأ ما. حاول مرة أخرى.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("حدث خطأ ما. حاول مرة أخرى.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach the session user for templates
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u := sessions.Get(sid).User(); u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			// The provider callback arrives without our form token.
			return c.Path() == "/auth/callback"
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "فشل التحقق الأمني. حدّث الصفحة وحاول مجدداً."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	app.Static("/static", "./web/static")
	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(cfg, cat, sessions, authSvc, gate, notifier)

	// Storefront
	app.Get("/", deps.StoreHandler.Home)
	app.Get("/category/:id", deps.StoreHandler.Category)
	app.Get("/product/:id", deps.StoreHandler.Product)
	app.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.SearchHandler.Search)

	// API
	api := app.Group("/api/v1")
	api.Get("/suggest", deps.SearchHandler.Suggest)
	api.Get("/availability", deps.StoreHandler.Availability)

	// Cart
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/update", deps.CartHandler.Update)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Post("/cart/clear", deps.CartHandler.Clear)

	// Comparison
	app.Get("/compare", deps.CompareHandler.View)
	app.Post("/compare", deps.CompareHandler.Add)
	app.Post("/compare/remove", deps.CompareHandler.Remove)
	app.Post("/compare/clear", deps.CompareHandler.Clear)

	// Checkout & orders
	app.Get("/checkout", deps.OrderHandler.Checkout)
	app.Post("/checkout", deps.OrderHandler.Initiate)
	app.Post("/orders/confirm", deps.OrderHandler.Confirm)
	app.Post("/orders/cancel", deps.OrderHandler.CancelPending)
	app.Post("/orders/new", deps.OrderHandler.NewOrder)
	app.Get("/order/:id", deps.OrderHandler.View)
	app.Post("/order/:id/notify", deps.OrderHandler.Notify)

	// Shopper auth
	app.Post("/auth/login", deps.AuthHandler.Login)
	app.Get("/auth/callback", deps.AuthHandler.Callback)
	app.Post("/auth/logout", deps.AuthHandler.Logout)

	// Admin surface (login throttled)
	adm := app.Group(cfg.AdminPath)
	adm.Get("/login", deps.AdminHandler.LoginForm)
	adm.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.admin.login.hit", nil)
			tok, _ := c.Locals("CSRFToken").(string)
			return c.Status(fiber.StatusTooManyRequests).Render("admin_login", fiber.Map{
				"AdminPath": cfg.AdminPath,
				"CSRFToken": tok,
				"Err":       "محاولات كثيرة. حاول لاحقاً.",
			})
		},
	}), deps.AdminHandler.Login)
	adm.Post("/logout", deps.AdminHandler.Logout)

	guarded := adm.Group("", handlers.RequireAdmin(gate, cfg.AdminPath))
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

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "الصفحة غير موجودة"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
