// Package model defines domain entities shared by the session, registry and chat layers.
package model

import "time"

// Credentials are the tokens issued at login. An absent AccessToken means
// unauthenticated: no protected request may be attempted. Expiry is terminal
// for the session; there is no refresh flow.
type Credentials struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// Document is a server-owned uploaded document. The client holds a cached
// copy of the list and, separately, a single selected-document projection
// persisted across page loads.
type Document struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry in the in-memory conversation log. IDs increase with
// insertion order and exist only for rendering identity, not durability.
type Message struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	IsError   bool      `json:"is_error,omitempty"`
	Source    string    `json:"source,omitempty"`
}
