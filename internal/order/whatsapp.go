package order

import (
	"fmt"
	"net/url"
	"strings"

	"maktaba/internal/domain"
)

// WhatsAppLink builds the pre-filled wa.me deep link carrying the order
// summary. The shopper sends it manually; their confirmation in the chat is
// what places the order.
func WhatsAppLink(number string, o domain.Order) string {
	var items strings.Builder
	for _, it := range o.Items {
		fmt.Fprintf(&items, "- %s (x%d)\n", it.Name, it.Quantity)
	}

	message := fmt.Sprintf(`*طلب جديد*
*العميل:* %s
*الهاتف:* %s
*الطلب:*
%s*الإجمالي: %.2f جنيه*
---
*الدفع والاستلام في المكتبة.*
*رقم الطلب للمتابعة:* %s`,
		o.User.Name, o.Phone, items.String(), o.Total, o.ID)

	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}
