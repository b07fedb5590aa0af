// Package notify delivers the order-ready notices. Neither path is a real
// send: push goes to the action log in place of a browser notification, and
// the email body is generated then logged as a simulated delivery.
package notify

import (
	"context"
	"fmt"

	"maktaba/internal/domain"
	"maktaba/internal/gentext"
	applog "maktaba/internal/log"
)

type Service struct {
	GenText *gentext.Client
}

func (s *Service) Push(o domain.Order) {
	applog.Info(nil, "notify.push", map[string]any{
		"order_id": o.ID,
		"title":    "طلبك جاهز للاستلام!",
		"body":     fmt.Sprintf("طلبك رقم %s جاهز الآن. يمكنك استلامه من المكتبة.", o.ID),
	})
}

func (s *Service) Email(ctx context.Context, o domain.Order) {
	body := s.GenText.OrderReadyEmail(ctx, o.ID, o.User.Name)
	applog.Info(nil, "notify.email.simulated", map[string]any{
		"order_id": o.ID,
		"to":       o.User.Email,
		"subject":  fmt.Sprintf("طلبك رقم %s جاهز للاستلام!", o.ID),
		"body":     body,
	})
}
