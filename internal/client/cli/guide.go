package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/praylink/internal/client/session"
)

func (a *App) Wisdom(ctx context.Context) error {
	s := a.current()
	if s == nil {
		return session.ErrNoSession
	}
	text, err := s.DailyWisdom(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, text)
	return nil
}

func (a *App) Inspiration(ctx context.Context) error {
	s := a.current()
	if s == nil {
		return session.ErrNoSession
	}
	text, err := s.DailyInspiration(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, text)
	return nil
}

// Chat runs a conversation with the guide until an empty line.
func (a *App) Chat(ctx context.Context) error {
	s := a.current()
	if s == nil {
		return session.ErrNoSession
	}
	chat, err := s.NewChat()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "The guide is listening. Send an empty line to finish.")
	for {
		msg, err := a.ask("you")
		if err != nil || msg == "" {
			return nil
		}
		reply, err := chat.Send(ctx, msg)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "guide:", reply)
	}
}

func (a *App) Pulse(ctx context.Context) error {
	if a.pulse == nil {
		fmt.Fprintln(a.out, "The prayer pulse is not running")
		return nil
	}
	fmt.Fprintf(a.out, "%d voices united in prayer\n", a.pulse.Count())
	return nil
}
