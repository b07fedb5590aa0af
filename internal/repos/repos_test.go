package repos_test

import (
	"context"
	"testing"

	"maktaba/internal/domain"
	"maktaba/internal/repos"
)

func TestOpenDBSeedsBundledDataset(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	products, err := repos.NewProductRepo(db).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(products) == 0 {
		t.Fatal("no products seeded")
	}
	for i := 1; i < len(products); i++ {
		if products[i-1].DateAdded < products[i].DateAdded {
			t.Fatalf("listing not recency ordered at %d", i)
		}
	}

	categories, err := repos.NewCategoryRepo(db).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != 4 {
		t.Fatalf("want 4 seeded categories, got %d", len(categories))
	}
	for i := 1; i < len(categories); i++ {
		if categories[i-1].Name > categories[i].Name {
			t.Fatalf("categories not name ordered at %d", i)
		}
	}
}

func TestProductUpsertAndDelete(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	r := repos.NewProductRepo(db)

	p := domain.Product{
		ID: "p-new", Name: "مقلمة", Price: 45, Stock: 7,
		Status: domain.StatusAvailable, DateAdded: "2026-08-30",
	}
	if err := r.Upsert(p); err != nil {
		t.Fatal(err)
	}

	p.Stock = 3
	if err := r.Upsert(p); err != nil {
		t.Fatal(err)
	}
	products, err := r.List()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, got := range products {
		if got.ID == "p-new" {
			found = true
			if got.Stock != 3 {
				t.Fatalf("upsert did not update stock: %d", got.Stock)
			}
		}
	}
	if !found {
		t.Fatal("inserted product missing from listing")
	}

	if err := r.Delete("p-new"); err != nil {
		t.Fatal(err)
	}
	products, _ = r.List()
	for _, got := range products {
		if got.ID == "p-new" {
			t.Fatal("product still listed after delete")
		}
	}
}

func TestCategorySubcategoriesRoundTrip(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	r := repos.NewCategoryRepo(db)

	c := domain.Category{
		ID: "c-gifts", Name: "هدايا", Icon: "🎁",
		Subcategories: []domain.Subcategory{{ID: "wrap", Name: "تغليف"}, {ID: "cards", Name: "بطاقات"}},
	}
	if err := r.Upsert(c); err != nil {
		t.Fatal(err)
	}

	categories, err := r.List()
	if err != nil {
		t.Fatal(err)
	}
	for _, got := range categories {
		if got.ID == "c-gifts" {
			if len(got.Subcategories) != 2 || got.Subcategories[0].Name != "تغليف" {
				t.Fatalf("subcategories lost: %+v", got.Subcategories)
			}
			return
		}
	}
	t.Fatal("category missing from listing")
}

func TestUserUpsertProfileIsIdempotent(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	r := repos.NewUserRepo(db)
	ctx := context.Background()

	u := domain.User{ID: "u-1", Name: "أحمد", Email: "a@b.c", AvatarURL: "https://img"}
	if err := r.UpsertProfile(ctx, u, "g-1"); err != nil {
		t.Fatal(err)
	}
	u.Name = "أحمد محمود"
	if err := r.UpsertProfile(ctx, u, "g-1"); err != nil {
		t.Fatal(err)
	}

	got, err := r.ByID("u-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "أحمد محمود" {
		t.Fatalf("second upsert did not update the row: %+v", got)
	}
}
