package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestHomeServesBundledCatalog(t *testing.T) {
	f := newApp(t)
	c := newClient(t, f.app)

	resp := c.get("/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("home: %d", resp.StatusCode)
	}
	if c.cookies["sid"] == "" {
		t.Fatal("first contact must set the sid cookie")
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "كتب") {
		t.Fatal("home page missing bundled categories")
	}
}

func TestCategoryDrilldownAndUnknown(t *testing.T) {
	f := newApp(t)
	c := newClient(t, f.app)

	cats := f.cat.Categories()
	resp := c.get("/category/" + cats[0].ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("category: %d", resp.StatusCode)
	}
	if !strings.Contains(readBody(t, resp), cats[0].Name) {
		t.Fatal("category page missing its name")
	}

	if resp := c.get("/category/nope"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown category: want 404, got %d", resp.StatusCode)
	}
}

func TestCategorySubcategoryFilter(t *testing.T) {
	f := newApp(t)
	c := newClient(t, f.app)

	resp := c.get("/category/books?sub=poetry")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("filtered category: %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "ديوان الأعمال الكاملة") {
		t.Fatal("poetry product missing from the filtered listing")
	}
	if strings.Contains(body, "رواية أولاد حارتنا") {
		t.Fatal("novel leaked through the poetry filter")
	}

	// a malformed sub is dropped, not fatal
	resp = c.get("/category/books?sub=%01bad")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("malformed sub: want 200 unfiltered, got %d", resp.StatusCode)
	}
	if !strings.Contains(readBody(t, resp), "رواية أولاد حارتنا") {
		t.Fatal("unfiltered listing missing its products")
	}
}

func TestProductDetailAndUnknown(t *testing.T) {
	f := newApp(t)
	c := newClient(t, f.app)

	p := f.cat.Products()[0]
	resp := c.get("/product/" + p.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("product: %d", resp.StatusCode)
	}
	if !strings.Contains(readBody(t, resp), p.Name) {
		t.Fatal("product page missing its name")
	}

	if resp := c.get("/product/nope"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product: want 404, got %d", resp.StatusCode)
	}
}

func TestSuggestAPI(t *testing.T) {
	f := newApp(t)
	c := newClient(t, f.app)

	// below the two-character minimum: empty list, not an error
	resp := c.get("/api/v1/suggest?q=%D8%B1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("short query: %d", resp.StatusCode)
	}
	var out []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("short query must suggest nothing, got %d", len(out))
	}

	// a broad query caps at five
	resp = c.get("/api/v1/suggest?q=" + urlQuery("قل"))
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out) > 5 {
		t.Fatalf("suggestions over the cap: %d", len(out))
	}
	for _, s := range out {
		if s["id"] == "" || s["name"] == "" {
			t.Fatalf("suggestion missing fields: %v", s)
		}
	}
}

func TestSearchScreen(t *testing.T) {
	f := newApp(t)
	c := newClient(t, f.app)

	// empty query renders the empty search screen
	if resp := c.get("/search"); resp.StatusCode != http.StatusOK {
		t.Fatalf("empty search: %d", resp.StatusCode)
	}

	p := f.cat.Products()[0]
	resp := c.get("/search?q=" + urlQuery(p.Name))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search: %d", resp.StatusCode)
	}
	if !strings.Contains(readBody(t, resp), p.Name) {
		t.Fatal("search results missing the match")
	}

	// over-long queries are truncated, not rejected
	long := strings.Repeat("ك", 60)
	if resp := c.get("/search?q=" + urlQuery(long)); resp.StatusCode != http.StatusOK {
		t.Fatalf("over-long query: want truncation, got %d", resp.StatusCode)
	}

	// control characters are rejected outright
	if resp := c.get("/search?q=%01%02"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("control chars: want 400, got %d", resp.StatusCode)
	}
}

func TestAvailabilityAPI(t *testing.T) {
	f := newApp(t)
	c := newClient(t, f.app)

	p := f.cat.Products()[0]
	resp := c.get("/api/v1/availability?productId=" + p.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("availability: %d", resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["status"] == "" {
		t.Fatalf("availability missing status: %v", out)
	}
}
