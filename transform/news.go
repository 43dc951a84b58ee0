package transform

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/pulsedata/pulse"
)

// News derives the news dimension and fact projections from the raw article
// catalog. Articles have no natural id, so the surrogate key hashes
// title+source_name (absent fields hash as empty). A record whose
// published_at is missing or unparseable aborts the transform.
func News(articles []pulse.NewsArticle) ([]ArticleRow, []NewsFact, error) {
	dims := make([]ArticleRow, 0, len(articles))
	facts := make([]NewsFact, 0, len(articles))

	for i, a := range articles {
		title := strval(a.Title)
		source := strval(a.SourceName)
		key := pulse.Key(title, source)

		if a.PublishedAt == nil {
			return nil, nil, errors.Errorf("article %d (%q) has no published_at", i, title)
		}
		published, err := time.Parse(time.RFC3339, *a.PublishedAt)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "parsing published_at of article %d (%q)", i, title)
		}

		desc := strval(a.Description)
		dims = append(dims, ArticleRow{
			ArticleKey:  key,
			Title:       title,
			Description: desc,
			SourceName:  source,
			Author:      strval(a.Author),
			Category:    a.Category,
			Country:     a.Country,
			PublishedAt: published,
		})
		facts = append(facts, NewsFact{
			ArticleKey:        key,
			DateKey:           DateKey(published),
			DescriptionLength: int32(utf8.RuneCountInString(desc)),
			SentimentScore:    sentiment(desc),
		})
	}
	return distinct(dims), facts, nil
}

// sentiment is the keyword heuristic the downstream dashboards were built
// against: literal substring matches, "positive" checked first so it wins
// when both appear. It is deliberately crude; do not swap in a real model
// without migrating the consumers.
func sentiment(description string) int32 {
	switch {
	case strings.Contains(description, "positive"):
		return 1
	case strings.Contains(description, "negative"):
		return -1
	default:
		return 0
	}
}

func strval(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
