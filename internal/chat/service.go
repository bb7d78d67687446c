package chat

import (
	"context"
	"strings"
)

type Service struct {
	repo      Repository
	responder Responder
}

func NewService(repo Repository, responder Responder) *Service {
	if responder == nil {
		responder = FixedResponder(DefaultReply)
	}
	return &Service{repo: repo, responder: responder}
}

// Send stores the user turn, asks the responder for an answer and stores
// that as the bot turn.
func (s *Service) Send(ctx context.Context, sessionID, text string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" || strings.TrimSpace(text) == "" {
		return "", ErrValidation
	}

	if _, err := s.repo.Append(ctx, Message{SessionID: sessionID, Role: RoleUser, Text: text}); err != nil {
		return "", err
	}

	reply, err := s.responder.Reply(ctx, sessionID, text)
	if err != nil {
		return "", err
	}

	if _, err := s.repo.Append(ctx, Message{SessionID: sessionID, Role: RoleBot, Text: reply}); err != nil {
		return "", err
	}
	return reply, nil
}

func (s *Service) History(ctx context.Context, sessionID string) ([]Message, error) {
	return s.repo.History(ctx, strings.TrimSpace(sessionID))
}
