// Package notify delivers templated email messages.
package notify

import "context"

// Message is a single outbound email.
type Message struct {
	To      string
	From    string
	Subject string
	HTML    string
}

// Receipt is the provider's answer for one message. StatusCode follows
// HTTP semantics; anything outside 200-299 is a failed delivery.
type Receipt struct {
	StatusCode int
	MessageID  string
	Message    string
}

// Accepted reports whether the provider took the message.
func (r Receipt) Accepted() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Notifier sends messages. A returned error means the provider could not be
// reached at all; a reachable provider that refuses the message answers with
// a non-2xx Receipt instead.
type Notifier interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}
