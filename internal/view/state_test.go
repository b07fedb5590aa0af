package view_test

import (
	"testing"

	"maktaba/internal/view"
)

func TestTransitionsCarryTheirPayload(t *testing.T) {
	s := view.Home()
	if s.Kind != view.KindHome {
		t.Fatalf("initial screen should be home, got %v", s.Kind)
	}

	s = s.SelectCategory("cat-books")
	if s.Kind != view.KindCategory || s.CategoryID != "cat-books" {
		t.Fatalf("category select: got %+v", s)
	}

	s = s.SelectProduct("p-101")
	if s.Kind != view.KindProduct || s.ProductID != "p-101" {
		t.Fatalf("product select: got %+v", s)
	}
	if s.CategoryID != "" {
		t.Fatalf("stale category id carried into product screen: %q", s.CategoryID)
	}

	s = s.OrderConfirmed("ORD-1")
	if s.Kind != view.KindOrderStatus || s.OrderID != "ORD-1" {
		t.Fatalf("order confirmed: got %+v", s)
	}
	s = s.NewOrder()
	if s.Kind != view.KindHome {
		t.Fatalf("new order should land on home, got %v", s.Kind)
	}
}

func TestFilterSubcategoryOnlyOnCategoryScreen(t *testing.T) {
	s := view.Home().SelectCategory("books").FilterSubcategory("poetry")
	if s.Kind != view.KindCategory || s.CategoryID != "books" || s.Subcategory != "poetry" {
		t.Fatalf("subcategory filter: got %+v", s)
	}
	if got := s.FilterSubcategory(""); got.Subcategory != "" {
		t.Fatalf("empty sub must clear the filter, got %+v", got)
	}
	if got := view.Home().FilterSubcategory("poetry"); got != view.Home() {
		t.Fatalf("filter outside category must be a no-op, got %+v", got)
	}
	if got := s.SelectProduct("p-104"); got.Subcategory != "" {
		t.Fatalf("stale filter carried into product screen: %+v", got)
	}
}

func TestSearchEmptyQueryIsNoop(t *testing.T) {
	s := view.Home().SelectCategory("cat-books")
	if got := s.Search(""); got != s {
		t.Fatalf("empty query must not navigate, got %+v", got)
	}
	got := s.Search("قلم")
	if got.Kind != view.KindSearch || got.Query != "قلم" {
		t.Fatalf("search: got %+v", got)
	}
}

func TestBackReturnsHomeAndClearsQuery(t *testing.T) {
	for _, s := range []view.State{
		view.Home().SelectCategory("c"),
		view.Home().SelectProduct("p"),
		view.Home().Search("دفتر"),
	} {
		got := s.Back()
		if got.Kind != view.KindHome {
			t.Fatalf("back from %v should go home, got %v", s.Kind, got.Kind)
		}
		if got.Query != "" {
			t.Fatalf("back must clear the query, got %q", got.Query)
		}
	}

	// back on home stays put
	if got := view.Home().Back(); got.Kind != view.KindHome {
		t.Fatalf("back on home: got %v", got.Kind)
	}
}
