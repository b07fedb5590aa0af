package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"maktaba/internal/catalog"
)

func TestAdminGateRedirectsAnonymous(t *testing.T) {
	f := newApp(t)
	c := newClient(t, f.app)

	for _, target := range []string{"/admin/", "/admin/products", "/admin/categories"} {
		resp := c.get(target)
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("%s: want redirect, got %d", target, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/admin/login" {
			t.Fatalf("%s: redirected to %q", target, loc)
		}
	}
}

func TestAdminLoginExactPair(t *testing.T) {
	f := newApp(t)
	c := newClient(t, f.app)

	resp := c.post("/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password: want 401, got %d", resp.StatusCode)
	}
	if c.cookies["admin_token"] != "" {
		t.Fatal("failed login set a token")
	}

	resp = c.post("/admin/login", url.Values{"username": {"admin"}, "password": {"secure123"}})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("good login: want redirect, got %d", resp.StatusCode)
	}
	if c.cookies["admin_token"] == "" {
		t.Fatal("login did not set the admin token")
	}

	if resp := c.get("/admin/"); resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard after login: %d", resp.StatusCode)
	}
}

func TestAdminLogoutClosesTheGate(t *testing.T) {
	f := newApp(t)
	c := newClient(t, f.app)

	c.post("/admin/login", url.Values{"username": {"admin"}, "password": {"secure123"}})
	c.post("/admin/logout", nil)
	if resp := c.get("/admin/products"); resp.StatusCode != http.StatusFound {
		t.Fatalf("gate open after logout: %d", resp.StatusCode)
	}
}

func loginAdmin(t *testing.T, c *client) {
	t.Helper()
	resp := c.post("/admin/login", url.Values{"username": {"admin"}, "password": {"secure123"}})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("admin login failed: %d", resp.StatusCode)
	}
}

func TestAdminProductCreateEditDelete(t *testing.T) {
	f := newApp(t)
	c := newClient(t, f.app)
	loginAdmin(t, c)

	before := len(f.cat.Products())
	cats := f.cat.Categories()

	// create: no id -> a provisional one is minted, then the item surfaces first
	resp := c.post("/admin/products/save", url.Values{
		"name":     {"مجموعة أقلام ملونة"},
		"author":   {"ستدلر"},
		"price":    {"75.50"},
		"stock":    {"12"},
		"category": {cats[0].ID},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("create: %d", resp.StatusCode)
	}
	products := f.cat.Products()
	if len(products) != before+1 {
		t.Fatalf("want %d products, got %d", before+1, len(products))
	}
	created := products[0]
	if created.Name != "مجموعة أقلام ملونة" {
		t.Fatalf("new product not first: %+v", created)
	}
	if !strings.HasPrefix(created.ID, catalog.NewProductPrefix) {
		t.Fatalf("created id %q missing the insert prefix", created.ID)
	}
	if created.DateAdded == "" {
		t.Fatal("dateAdded not defaulted")
	}

	// edit: zero stock forces the unavailable status
	resp = c.post("/admin/products/save", url.Values{
		"id":        {created.ID},
		"name":      {created.Name},
		"price":     {"75.50"},
		"stock":     {"0"},
		"status":    {"متوفر"},
		"category":  {cats[0].ID},
		"dateAdded": {created.DateAdded},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("edit: %d", resp.StatusCode)
	}
	got, _ := f.cat.ProductByID(created.ID)
	if got.Status != "غير متوفر" {
		t.Fatalf("zero stock must force unavailable, got %q", got.Status)
	}

	// delete asks for confirmation first
	resp = c.post("/admin/products/"+created.ID+"/delete", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete without confirm: %d", resp.StatusCode)
	}
	if _, ok := f.cat.ProductByID(created.ID); !ok {
		t.Fatal("unconfirmed delete removed the product")
	}

	resp = c.post("/admin/products/"+created.ID+"/delete", url.Values{"confirm": {"yes"}})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("confirmed delete: %d", resp.StatusCode)
	}
	if _, ok := f.cat.ProductByID(created.ID); ok {
		t.Fatal("product survives a confirmed delete")
	}
}

func TestAdminProductValidation(t *testing.T) {
	f := newApp(t)
	c := newClient(t, f.app)
	loginAdmin(t, c)

	resp := c.post("/admin/products/save", url.Values{
		"name":  {""},
		"price": {"10"},
		"stock": {"1"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank name: want 400, got %d", resp.StatusCode)
	}

	resp = c.post("/admin/products/save", url.Values{
		"name":  {"دفتر"},
		"price": {"-5"},
		"stock": {"1"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("negative price: want 400, got %d", resp.StatusCode)
	}
}

func TestAdminCategoryCRUD(t *testing.T) {
	f := newApp(t)
	c := newClient(t, f.app)
	loginAdmin(t, c)

	before := len(f.cat.Categories())
	resp := c.post("/admin/categories/save", url.Values{
		"name":          {"هدايا"},
		"icon":          {"🎁"},
		"subcategories": {"wrap|تغليف\ncards|بطاقات"},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("create category: %d", resp.StatusCode)
	}
	cats := f.cat.Categories()
	if len(cats) != before+1 {
		t.Fatalf("want %d categories, got %d", before+1, len(cats))
	}
	var created string
	for _, cat := range cats {
		if cat.Name == "هدايا" {
			created = cat.ID
			if len(cat.Subcategories) != 2 || cat.Subcategories[1].Name != "بطاقات" {
				t.Fatalf("subcategories not parsed: %+v", cat.Subcategories)
			}
		}
	}
	if created == "" {
		t.Fatal("created category missing")
	}

	resp = c.post("/admin/categories/"+created+"/delete", url.Values{"confirm": {"yes"}})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("delete category: %d", resp.StatusCode)
	}
	if _, ok := f.cat.CategoryByID(created); ok {
		t.Fatal("category survives delete")
	}
}
