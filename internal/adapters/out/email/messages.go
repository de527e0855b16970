// Package email delivers order notifications to customers through an HTTP
// email provider. The message catalog maps a notification tag to a subject
// and body; the client POSTs the rendered message to the provider.
package email

import "fmt"

// message is one catalog entry. Bodies with a %s verb receive the
// notification's extra string (tracking number or cancellation reason).
type message struct {
	subject  string
	body     string
	hasExtra bool
}

// catalog maps notification tags to templates. Lifecycle tags match the wire
// status names; "created" fires on order placement.
var catalog = map[string]message{
	"created": {
		subject:  "Order confirmed",
		body:     "Thank you for your order! Track it any time with %s.",
		hasExtra: true,
	},
	"processing": {
		subject: "Order update",
		body:    "Your order is being prepared.",
	},
	"shipped": {
		subject:  "Order shipped",
		body:     "Your order is on its way. Track it with %s.",
		hasExtra: true,
	},
	"delivered": {
		subject: "Order delivered",
		body:    "Your order has been delivered.",
	},
	"cancelled": {
		subject: "Order cancelled",
		body:    "Your order has been cancelled.",
	},
}

var defaultMessage = message{
	subject: "Order update",
	body:    "There is an update on your order.",
}

// compose renders the subject and body for a notification tag. Unknown tags
// fall back to the generic update message. A cancellation reason is appended
// to the cancelled body rather than interpolated, since users cancel without
// one.
func compose(tag, extra string) (subject, body string) {
	msg, ok := catalog[tag]
	if !ok {
		msg = defaultMessage
	}

	body = msg.body
	if msg.hasExtra {
		body = fmt.Sprintf(msg.body, extra)
	} else if tag == "cancelled" && extra != "" {
		body = fmt.Sprintf("%s Reason: %s.", msg.body, extra)
	}

	return msg.subject, body
}
