package guide

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"
)

// VerseSource supplies a verse of the day from somewhere other than the model.
type VerseSource interface {
	Verse(ctx context.Context) (string, error)
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// RSSVerseSource reads the newest item of a "verse of the day" feed.
type RSSVerseSource struct {
	url    string
	parser *gofeed.Parser
}

func NewRSSVerseSource(feedURL string) *RSSVerseSource {
	return &RSSVerseSource{url: feedURL, parser: gofeed.NewParser()}
}

func (s *RSSVerseSource) Verse(ctx context.Context) (string, error) {
	f, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch verse feed: %w", err)
	}
	if len(f.Items) == 0 {
		return "", fmt.Errorf("verse feed %s has no items", s.url)
	}

	item := f.Items[0]
	text := cleanText(item.Description)
	if text == "" {
		text = cleanText(item.Content)
	}
	if text == "" {
		return "", fmt.Errorf("verse feed %s returned an empty item", s.url)
	}
	if title := cleanText(item.Title); title != "" {
		text = fmt.Sprintf("%s - %s", text, title)
	}
	return text, nil
}

func cleanText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}
