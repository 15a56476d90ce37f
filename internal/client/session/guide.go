package session

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/rpc"
)

const (
	roleUser  = "user"
	roleModel = "model"
)

func (s *Session) DailyWisdom(ctx context.Context) (string, error) {
	if s.Viewer() == nil {
		return "", ErrNoSession
	}
	return s.remote.DailyWisdom(ctx)
}

func (s *Session) DailyInspiration(ctx context.Context) (string, error) {
	if s.Viewer() == nil {
		return "", ErrNoSession
	}
	return s.remote.DailyInspiration(ctx)
}

// Chat is a conversation with the spiritual guide. Every call sends the
// turns so far; the history only grows on a successful reply.
type Chat struct {
	s       *Session
	history []rpc.ChatTurn
}

// NewChat opens a guide conversation. Only premium members may chat.
func (s *Session) NewChat() (*Chat, error) {
	v := s.Viewer()
	if v == nil {
		return nil, ErrNoSession
	}
	if !v.IsPremium {
		return nil, common.ErrPremiumRequired
	}
	return &Chat{s: s}, nil
}

func (c *Chat) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyContent
	}
	reply, err := c.s.remote.Chat(ctx, message, c.history)
	if err != nil {
		return "", err
	}
	c.history = append(c.history,
		rpc.ChatTurn{Role: roleUser, Text: message},
		rpc.ChatTurn{Role: roleModel, Text: reply},
	)
	return reply, nil
}

// History returns the turns exchanged so far.
func (c *Chat) History() []rpc.ChatTurn {
	return append([]rpc.ChatTurn(nil), c.history...)
}
