package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/praylink/internal/client/session"
	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/feed"
	"github.com/dmitrijs2005/praylink/internal/models"
)

// Feed loads and prints the feed. An optional argument switches between
// "community" and "all".
func (a *App) Feed(ctx context.Context, args []string) error {
	s := a.current()
	if s == nil {
		return session.ErrNoSession
	}
	if len(args) > 0 {
		mode, err := feed.ParseMode(args[0])
		if err != nil {
			return err
		}
		a.mu.Lock()
		a.feedMode = mode
		a.mu.Unlock()
	}

	if _, err := s.LoadFeed(ctx); err != nil {
		return err
	}

	a.mu.Lock()
	mode := a.feedMode
	a.mu.Unlock()
	posts := s.Visible(mode)

	a.mu.Lock()
	a.listed = posts
	a.mu.Unlock()

	if len(posts) == 0 {
		fmt.Fprintln(a.out, "The feed is quiet. Share something with 'post'.")
		return nil
	}
	for i, p := range posts {
		fmt.Fprintln(a.out, renderPost(ctx, s, i+1, p))
	}
	return nil
}

// resolvePost maps a listing number, or a raw id, to a post id.
func (a *App) resolvePost(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: expected a post number", common.ErrorValidation)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if n, err := strconv.Atoi(args[0]); err == nil {
		if n < 1 || n > len(a.listed) {
			return "", fmt.Errorf("%w: no post #%d, run 'feed' first", common.ErrorValidation, n)
		}
		return a.listed[n-1].ID, nil
	}
	return args[0], nil
}

// Post runs the composer: text, miracle flag, then a promotion tier for
// miracle requests.
func (a *App) Post(ctx context.Context) error {
	s := a.current()
	if s == nil {
		return session.ErrNoSession
	}
	text, err := getMultiline(a.reader, "What is on your heart?", a.out)
	if err != nil {
		return err
	}
	s.SetText(text)

	miracle, err := getYesNo(a.reader, "Is this a miracle request?", a.out)
	if err != nil {
		return err
	}
	if miracle != s.Draft().Miracle {
		s.ToggleMiracle()
	}

	p, err := s.Submit(ctx)
	if errors.Is(err, session.ErrChoosePromotion) {
		tiers := []models.PromotionTier{models.TierNone, models.TierSilver, models.TierGold, models.TierPlatinum}
		tier, cerr := askChoice(a, "Promote your request?", tiers, models.TierNone)
		if cerr != nil {
			s.Cancel()
			return cerr
		}
		if err := s.ChooseTier(tier); err != nil {
			s.Cancel()
			return err
		}
		p, err = s.Submit(ctx)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Posted.")
	fmt.Fprintln(a.out, renderPost(ctx, s, 1, p))
	return nil
}

// Interact likes a post, or prays for a miracle request.
func (a *App) Interact(ctx context.Context, args []string) error {
	s := a.current()
	if s == nil {
		return session.ErrNoSession
	}
	id, err := a.resolvePost(args)
	if err != nil {
		return err
	}
	already := s.HasInteracted(id)
	n, err := s.Interact(ctx, id)
	if err != nil {
		return err
	}
	if already {
		fmt.Fprintf(a.out, "Already counted (%d)\n", n)
		return nil
	}
	fmt.Fprintf(a.out, "Thank you (%d)\n", n)
	return nil
}

func (a *App) Comment(ctx context.Context, args []string) error {
	s := a.current()
	if s == nil {
		return session.ErrNoSession
	}
	id, err := a.resolvePost(args)
	if err != nil {
		return err
	}
	text, err := a.ask("Your comment")
	if err != nil {
		return err
	}
	if _, err := s.AddComment(ctx, id, text); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Comment added")
	return nil
}

func (a *App) Answered(ctx context.Context, args []string) error {
	s := a.current()
	if s == nil {
		return session.ErrNoSession
	}
	id, err := a.resolvePost(args)
	if err != nil {
		return err
	}
	if _, err := s.MarkAnswered(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Praise be! Marked as answered.")
	return nil
}

// Circle toggles a member in the viewer's circle. The argument is a user id
// or the number of a post by that member.
func (a *App) Circle(ctx context.Context, args []string) error {
	s := a.current()
	if s == nil {
		return session.ErrNoSession
	}
	if len(args) != 1 {
		printlnFn("Usage: circle <user-id | post number>")
		return nil
	}
	target := args[0]
	if n, err := strconv.Atoi(target); err == nil {
		a.mu.Lock()
		if n >= 1 && n <= len(a.listed) {
			target = a.listed[n-1].UserID
		}
		a.mu.Unlock()
	}

	in, err := s.ToggleCircle(ctx, target)
	if err != nil {
		return err
	}
	if in {
		fmt.Fprintln(a.out, "Added to your circle")
	} else {
		fmt.Fprintln(a.out, "Not in your circle")
	}
	return nil
}
