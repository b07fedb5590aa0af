// Package view models the storefront's screen as a tagged variant. Every
// navigation is a transition on this value, and the render dispatch switches
// over the kind exhaustively.
package view

type Kind int

const (
	KindHome Kind = iota
	KindCategory
	KindProduct
	KindSearch
	KindOrderStatus
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindCategory:
		return "category"
	case KindProduct:
		return "product"
	case KindSearch:
		return "search"
	case KindOrderStatus:
		return "orderStatus"
	}
	return "unknown"
}

// State is the active screen plus its payload. Only the field matching the
// kind is meaningful.
type State struct {
	Kind        Kind
	CategoryID  string
	Subcategory string
	ProductID   string
	Query       string
	OrderID     string
}

func Home() State { return State{Kind: KindHome} }

// SelectCategory switches to the category drill-down from any screen.
func (State) SelectCategory(id string) State {
	return State{Kind: KindCategory, CategoryID: id}
}

// FilterSubcategory narrows the category drill-down to one subcategory; an
// empty sub clears the filter. On any other screen it is a no-op.
func (s State) FilterSubcategory(sub string) State {
	if s.Kind != KindCategory {
		return s
	}
	s.Subcategory = sub
	return s
}

// SelectProduct switches to the product detail from any screen.
func (State) SelectProduct(id string) State {
	return State{Kind: KindProduct, ProductID: id}
}

// Search switches to the results screen; an empty query is a no-op.
func (s State) Search(query string) State {
	if query == "" {
		return s
	}
	return State{Kind: KindSearch, Query: query}
}

// Back returns home from category/product drill-downs and clears any active
// search query. Other screens are unaffected.
func (s State) Back() State {
	switch s.Kind {
	case KindCategory, KindProduct, KindSearch:
		return Home()
	}
	return s
}

// OrderConfirmed enters the order-status screen after checkout.
func (State) OrderConfirmed(orderID string) State {
	return State{Kind: KindOrderStatus, OrderID: orderID}
}

// NewOrder leaves the order-status screen back to home, dropping the query.
func (State) NewOrder() State { return Home() }
