// Package chat records storefront chat conversations and answers each user
// turn through a Responder.
package chat

import (
	"context"
	"errors"
	"time"
)

const (
	RoleUser = "user"
	RoleBot  = "bot"

	// DefaultReply acknowledges every message when no smarter Responder is wired.
	DefaultReply = "Thanks for reaching out! Our team will get back soon."
)

var ErrValidation = errors.New("sessionId and text are required")

type Message struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type Responder interface {
	Reply(ctx context.Context, sessionID, text string) (string, error)
}

// FixedResponder always answers with the same text.
type FixedResponder string

func (f FixedResponder) Reply(context.Context, string, string) (string, error) {
	if f == "" {
		return DefaultReply, nil
	}
	return string(f), nil
}
