package order

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultTemplate is the WhatsApp order request sent to the shop.
const DefaultTemplate = `🎨 *PAINT ORDER REQUEST*

{ORDER_SUMMARY}

👤 *Customer Information:*
Name: {CUSTOMER_NAME}
Phone: {CUSTOMER_PHONE}
Address: {CUSTOMER_ADDRESS}
Note: {CUSTOMER_NOTE}

Total Items: {TOTAL_QUANTITY}
Order Date: {ORDER_DATE}

Thank you! 🎨`

const (
	notProvided = "Not provided"
	noNote      = "None"
)

// CustomerInfo is what the customer typed into the checkout form. Every
// field is optional.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

// OrderMessage fills template with the summary and customer details.
// Missing customer fields are written as explicit placeholders.
func OrderMessage(s Summary, customer *CustomerInfo, template string) string {
	var c CustomerInfo
	if customer != nil {
		c = *customer
	}
	r := strings.NewReplacer(
		"{ORDER_SUMMARY}", s.ItemLines(),
		"{CUSTOMER_NAME}", orDefault(c.Name, notProvided),
		"{CUSTOMER_PHONE}", orDefault(c.Phone, notProvided),
		"{CUSTOMER_ADDRESS}", orDefault(c.Address, notProvided),
		"{CUSTOMER_NOTE}", orDefault(c.Note, noNote),
		"{TOTAL_QUANTITY}", strconv.Itoa(s.TotalQuantity),
		"{ORDER_DATE}", s.TimestampDisplay,
	)
	return r.Replace(template)
}

// WhatsAppLink builds a wa.me deep link carrying message. The phone number
// is used as given.
func WhatsAppLink(message, phone string) string {
	return "https://wa.me/" + phone + "?text=" + queryEscape(message)
}

// queryEscape percent-encodes s for a query value, spaces as %20.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
