package domain

import "context"

// ImageData is an inline image attached to a completion request.
type ImageData struct {
	MIMEType string
	Data     []byte
}

// LLMClient defines how the application talks to the completion provider.
// context is the textual memory for the turn; when image is non-nil the
// provider receives a single combined text+image request instead of a
// history-seeded conversation.
type LLMClient interface {
	Complete(ctx context.Context, prompt, context string, image *ImageData) (string, error)
}

// ClientStore defines persistence for client records and the single
// current-selection slot.
type ClientStore interface {
	CreateClient(c *Client) error
	// UpdateClient overwrites the stored record. If the client is the
	// current selection, the selection is refreshed too.
	UpdateClient(c *Client) error
	GetClient(id ClientID) (*Client, error)
	// ListClients returns all clients, most recently created first.
	ListClients() ([]*Client, error)
	SetCurrentClient(c *Client) error
	CurrentClient() (*Client, error)
}

// MessageStore defines persistence for per-client conversation logs.
type MessageStore interface {
	AppendMessage(m *Message) error
	// GetMessagesByClient returns the log in append order, or nil (no
	// error) when no log has been materialized for the client.
	GetMessagesByClient(id ClientID) ([]*Message, error)
	// ReplaceMessages overwrites the whole log for a client. Used to
	// materialize an empty log at creation time and to seed audit briefs.
	ReplaceMessages(id ClientID, msgs []*Message) error
}
