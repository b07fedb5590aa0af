package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"maktaba/internal/admin"
	"maktaba/internal/catalog"
	"maktaba/internal/domain"
	applog "maktaba/internal/log"
	"maktaba/internal/validate"
)

// AdminHandler exposes the catalog CRUD behind the admin gate. Mutations are
// optimistic: the in-memory catalog changes first, the backend mirror is
// best effort.
type AdminHandler struct {
	Gate      *admin.Gate
	Catalog   *catalog.Store
	AdminPath string
}

// GET <admin>/login
func (h *AdminHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "admin_login", fiber.Map{"AdminPath": h.AdminPath})
}

// POST <admin>/login
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	tok, err := h.Gate.Login(c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		applog.Security(c, "admin.login.fail", map[string]any{"username": c.FormValue("username")})
		c.Status(fiber.StatusUnauthorized)
		return render(c, "admin_login", fiber.Map{
			"AdminPath": h.AdminPath,
			"Err":       "اسم المستخدم أو كلمة المرور غير صحيحة",
		})
	}
	c.Cookie(&fiber.Cookie{
		Name:     adminCookie,
		Value:    tok,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	applog.Audit(c, "admin.login.success", nil)
	return c.Redirect(h.AdminPath)
}

// POST <admin>/logout
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	h.Gate.Logout(c.Cookies(adminCookie))
	c.Cookie(&fiber.Cookie{
		Name:     adminCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
	return c.Redirect(h.AdminPath + "/login")
}

// GET <admin>/
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	products := h.Catalog.Products()
	unavailable := 0
	for _, p := range products {
		if p.Stock == 0 {
			unavailable++
		}
	}
	return render(c, "admin_dashboard", fiber.Map{
		"AdminPath":      h.AdminPath,
		"ProductCount":   len(products),
		"CategoryCount":  len(h.Catalog.Categories()),
		"OutOfStock":     unavailable,
		"LatestProducts": h.Catalog.Featured(5),
	})
}

// GET <admin>/products
func (h *AdminHandler) Products(c *fiber.Ctx) error {
	return render(c, "admin_products", fiber.Map{
		"AdminPath": h.AdminPath,
		"Products":  h.Catalog.Products(),
	})
}

// GET <admin>/products/new and <admin>/products/:id/edit
func (h *AdminHandler) ProductForm(c *fiber.Ctx) error {
	data := fiber.Map{
		"AdminPath":  h.AdminPath,
		"Categories": h.Catalog.Categories(),
	}
	if id := c.Params("id"); id != "" {
		p, ok := h.Catalog.ProductByID(id)
		if !ok {
			return notFound(c, "هذا المنتج غير موجود")
		}
		data["P"] = p
	}
	return render(c, "admin_product_form", data)
}

// POST <admin>/products/save
func (h *AdminHandler) SaveProduct(c *fiber.Ctx) error {
	name, okName := validate.Name(c.FormValue("name"))
	price, okPrice := validate.Price(c.FormValue("price"))
	stock, okStock := validate.Stock(c.FormValue("stock"))
	if !okName || !okPrice || !okStock {
		return c.Status(fiber.StatusBadRequest).SendString("invalid product fields")
	}

	id := c.FormValue("id")
	if id == "" {
		// Provisional id; the save adopts the backend-assigned one.
		id = catalog.NewProductID()
	}
	status := domain.StatusAvailable
	if c.FormValue("status") == domain.StatusUnavailable || stock == 0 {
		status = domain.StatusUnavailable
	}
	dateAdded := c.FormValue("dateAdded")
	if dateAdded == "" {
		dateAdded = time.Now().Format("2006-01-02")
	}
	discount, _ := validate.Price(c.FormValue("discountPrice"))

	p := domain.Product{
		ID:            id,
		Name:          name,
		Author:        strings.TrimSpace(c.FormValue("author")),
		Price:         price,
		DiscountPrice: discount,
		Stock:         stock,
		ImageURL:      strings.TrimSpace(c.FormValue("imageUrl")),
		Category:      strings.TrimSpace(c.FormValue("category")),
		Subcategory:   strings.TrimSpace(c.FormValue("subcategory")),
		Description:   strings.TrimSpace(c.FormValue("description")),
		Status:        status,
		DateAdded:     dateAdded,
	}
	saved := h.Catalog.SaveProduct(c.Context(), p)
	applog.Audit(c, "admin.product.save", map[string]any{"id": saved.ID})
	return c.Redirect(h.AdminPath + "/products")
}

// POST <admin>/products/:id/delete — requires the confirm field from the
// delete dialog.
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	if c.FormValue("confirm") != "yes" {
		p, found := h.Catalog.ProductByID(id)
		if !found {
			return notFound(c, "هذا المنتج غير موجود")
		}
		return render(c, "admin_confirm_delete", fiber.Map{
			"AdminPath": h.AdminPath,
			"Kind":      "product",
			"ID":        p.ID,
			"Name":      p.Name,
			"Action":    h.AdminPath + "/products/" + p.ID + "/delete",
		})
	}
	h.Catalog.DeleteProduct(c.Context(), id)
	applog.Audit(c, "admin.product.delete", map[string]any{"id": id})
	return c.Redirect(h.AdminPath + "/products")
}

// GET <admin>/categories
func (h *AdminHandler) Categories(c *fiber.Ctx) error {
	return render(c, "admin_categories", fiber.Map{
		"AdminPath":  h.AdminPath,
		"Categories": h.Catalog.Categories(),
	})
}

// GET <admin>/categories/new and <admin>/categories/:id/edit
func (h *AdminHandler) CategoryForm(c *fiber.Ctx) error {
	data := fiber.Map{"AdminPath": h.AdminPath}
	if id := c.Params("id"); id != "" {
		cat, ok := h.Catalog.CategoryByID(id)
		if !ok {
			return notFound(c, "هذا القسم غير موجود")
		}
		data["Cat"] = cat
		data["Subcategories"] = formatSubcategories(cat.Subcategories)
	}
	return render(c, "admin_category_form", data)
}

// POST <admin>/categories/save
func (h *AdminHandler) SaveCategory(c *fiber.Ctx) error {
	name, okName := validate.Name(c.FormValue("name"))
	if !okName {
		return c.Status(fiber.StatusBadRequest).SendString("invalid category name")
	}
	id := c.FormValue("id")
	if id == "" {
		id = catalog.NewCategoryID()
	}
	cat := domain.Category{
		ID:            id,
		Name:          name,
		Icon:          strings.TrimSpace(c.FormValue("icon")),
		Description:   strings.TrimSpace(c.FormValue("description")),
		ImageURL:      strings.TrimSpace(c.FormValue("imageUrl")),
		Subcategories: parseSubcategories(c.FormValue("subcategories")),
	}
	saved := h.Catalog.SaveCategory(c.Context(), cat)
	applog.Audit(c, "admin.category.save", map[string]any{"id": saved.ID})
	return c.Redirect(h.AdminPath + "/categories")
}

// POST <admin>/categories/:id/delete
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	if c.FormValue("confirm") != "yes" {
		cat, found := h.Catalog.CategoryByID(id)
		if !found {
			return notFound(c, "هذا القسم غير موجود")
		}
		return render(c, "admin_confirm_delete", fiber.Map{
			"AdminPath": h.AdminPath,
			"Kind":      "category",
			"ID":        cat.ID,
			"Name":      cat.Name,
			"Action":    h.AdminPath + "/categories/" + cat.ID + "/delete",
		})
	}
	h.Catalog.DeleteCategory(c.Context(), id)
	applog.Audit(c, "admin.category.delete", map[string]any{"id": id})
	return c.Redirect(h.AdminPath + "/categories")
}

// Subcategories travel through the form as "id|name" lines.
func parseSubcategories(raw string) []domain.Subcategory {
	var out []domain.Subcategory
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		id, name, found := strings.Cut(line, "|")
		if !found {
			name = id
		}
		out = append(out, domain.Subcategory{ID: strings.TrimSpace(id), Name: strings.TrimSpace(name)})
	}
	return out
}

func formatSubcategories(subs []domain.Subcategory) string {
	var b strings.Builder
	for _, s := range subs {
		b.WriteString(s.ID + "|" + s.Name + "\n")
	}
	return b.String()
}
