package mail

import (
	"context"
	"io"
)

// Message is one outgoing email. When both bodies are set they are sent as a
// multipart alternative with the HTML part preferred by capable clients.
type Message struct {
	// From overrides the sender; empty falls back to the configured default.
	From string
	// To lists the recipients, at least one.
	To []string
	// Subject line.
	Subject string
	// TextBody is the plain-text part.
	TextBody string
	// HTMLBody is the optional HTML part.
	HTMLBody string
}

// Mail delivers messages. Implementations own the connection lifecycle and
// release it on Close.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}
