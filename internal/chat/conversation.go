// Package chat owns the in-memory conversation log for one session and the
// single-flight state machine that sequences queries.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/docchat/docchat-cli/internal/api"
	"github.com/docchat/docchat-cli/internal/model"
)

// Querier issues one question against the backend.
type Querier interface {
	Query(ctx context.Context, text string, documentID *int64) (api.QueryResult, error)
}

// State of the send machine. Sending is the only transient state; errors
// return the machine to Idle rather than entering a distinct error state.
type State int

const (
	Idle State = iota
	Sending
)

// ErrorReply is the fixed user-facing text appended when a query fails,
// independent of the underlying cause.
const ErrorReply = "Sorry, I encountered an error. Please try again."

// Conversation is an append-only ordered message log scoped to one browser
// session and at most one selected document. Lost on process exit.
type Conversation struct {
	id  uuid.UUID
	doc *int64 // selected document, nil for general queries
	q   Querier
	log *zap.Logger

	mu     sync.Mutex
	state  State
	nextID int64
	msgs   []model.Message
}

// New starts an empty conversation. doc is the selected document's ID, or
// nil when no document is selected.
func New(q Querier, doc *int64, log *zap.Logger) *Conversation {
	id, _ := uuid.NewV4()
	return &Conversation{id: id, doc: doc, q: q, log: log}
}

// ID identifies this conversation for logging only.
func (c *Conversation) ID() uuid.UUID { return c.id }

// State reports whether a query is in flight.
func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Messages returns a copy of the ordered log.
func (c *Conversation) Messages() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Message(nil), c.msgs...)
}

// Len returns the number of messages in the log.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

// Send submits one query. Empty or whitespace-only text, or a call while a
// send is already in flight, is dropped without touching the log; in-flight
// sends are rejected, never queued. An accepted send appends the user
// message immediately, then appends exactly one reply: the server's answer,
// or ErrorReply on failure. The returned error reports the underlying
// failure for banner display and session-expiry handling; it is never fatal
// to the conversation.
func (c *Conversation) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	c.mu.Lock()
	if c.state == Sending {
		c.mu.Unlock()
		return nil
	}
	c.state = Sending
	c.append(text, model.SenderUser, false, "")
	c.mu.Unlock()

	res, err := c.q.Query(ctx, text, c.doc)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle
	if err != nil {
		c.log.Warn("query failed", zap.String("conversation", c.id.String()), zap.Error(err))
		c.append(ErrorReply, model.SenderBot, true, "")
		return err
	}
	c.append(res.Answer(), model.SenderBot, false, res.Source)
	return nil
}

// Clear resets the log to empty. Credentials and the document selection are
// untouched.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = nil
}

// append adds a message to the log. Caller holds c.mu.
func (c *Conversation) append(text string, sender model.Sender, isErr bool, source string) {
	c.nextID++
	c.msgs = append(c.msgs, model.Message{
		ID:        c.nextID,
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now(),
		IsError:   isErr,
		Source:    source,
	})
}
