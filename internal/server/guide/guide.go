package guide

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/logging"
	"github.com/dmitrijs2005/praylink/internal/models"
)

// Canned replies used whenever generation is unavailable or fails.
const (
	FallbackWisdom      = "Find peace in the present moment."
	FallbackInspiration = "Let your light shine today."
	FallbackChat        = "I am having trouble connecting to the spiritual plane right now."
)

// Service wraps a Generator with prompts and fallbacks. A nil generator is
// valid and makes every call return its fallback.
type Service struct {
	gen    Generator
	verses VerseSource
	log    logging.Logger
}

func NewService(gen Generator, verses VerseSource, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{gen: gen, verses: verses, log: log.With("module", "guide")}
}

func (s *Service) generate(ctx context.Context, op string, p Prompt) (string, bool) {
	if s.gen == nil {
		return "", false
	}
	text, err := s.gen.Generate(ctx, p)
	if err != nil {
		s.log.Warn(ctx, "generation failed", "op", op, "error", err)
		return "", false
	}
	return text, true
}

// DailyWisdom returns a short reflection inspired by the religion.
func (s *Service) DailyWisdom(ctx context.Context, religion models.Religion, lang models.Language) string {
	text, ok := s.generate(ctx, "wisdom", Prompt{
		Message: fmt.Sprintf("Give a short, inspiring and universal reflection (at most 30 words) inspired by the %s faith. "+
			"Write it in %s. Do not use quotation marks.", religion, lang),
	})
	if !ok {
		return FallbackWisdom
	}
	return text
}

// DailyInspiration returns a verse or motivating message for today. When the
// model is unavailable the verse feed is tried before the canned reply.
func (s *Service) DailyInspiration(ctx context.Context, religion models.Religion, lang models.Language) string {
	text, ok := s.generate(ctx, "inspiration", Prompt{
		Message: fmt.Sprintf("Give a motivating daily message or verse from the %s tradition for today, in %s. "+
			"Keep it under 50 words. Format: \"Message/Verse\" - Reference.", religion, lang),
	})
	if ok {
		return text
	}

	if s.verses != nil {
		verse, err := s.verses.Verse(ctx)
		if err == nil {
			return verse
		}
		s.log.Warn(ctx, "verse feed failed", "error", err)
	}
	return FallbackInspiration
}

// Translate returns text in the target language, or text unchanged when
// translation is unavailable.
func (s *Service) Translate(ctx context.Context, text string, target models.Language) string {
	out, ok := s.generate(ctx, "translate", Prompt{
		Message: fmt.Sprintf("Translate the following text into %s. Keep the spiritual tone. "+
			"Return ONLY the translated text: %q", target, text),
	})
	if !ok {
		return text
	}
	return out
}

// Chat answers as a spiritual guide of the viewer's tradition. The whole
// transcript is sent on every call. Only premium members may chat.
func (s *Service) Chat(ctx context.Context, viewer *models.User, message string, history []Turn) (string, error) {
	if !viewer.IsPremium {
		return "", common.ErrPremiumRequired
	}
	if message == "" {
		return "", fmt.Errorf("%w: message is empty", common.ErrorValidation)
	}

	text, ok := s.generate(ctx, "chat", Prompt{
		System: fmt.Sprintf("You are a compassionate and wise spiritual guide of the %s tradition. The user speaks %s. "+
			"Offer comfort and philosophical references. Answer in under 100 words. Be supportive and never judge.",
			viewer.Religion, viewer.Language),
		History: history,
		Message: message,
	})
	if !ok {
		return FallbackChat, nil
	}
	return text, nil
}
