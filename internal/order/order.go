// Package order builds orders from the cart and owns their status timeline
// after checkout.
package order

import (
	"fmt"
	"time"

	"maktaba/internal/domain"
)

// pickupLead is how far ahead the suggested pickup time is set.
const pickupLead = 2 * time.Hour

// New snapshots the cart into an immutable order in the pending state.
func New(user domain.User, phone string, items []domain.CartItem, total float64, now time.Time) domain.Order {
	snapshot := make([]domain.CartItem, len(items))
	copy(snapshot, items)
	return domain.Order{
		ID:         fmt.Sprintf("ORD-%d", now.UnixMilli()),
		Items:      snapshot,
		Total:      total,
		Status:     domain.OrderPending,
		PickupTime: now.Add(pickupLead),
		User:       user,
		Phone:      phone,
	}
}
