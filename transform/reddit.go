package transform

import (
	"time"

	"github.com/pulsedata/pulse"
)

// Engagement score weights: upvotes dominate, comments contribute.
const (
	upvoteWeight  = 0.6
	commentWeight = 0.4
)

// Reddit derives the content dimension and engagement fact projections from
// the raw post catalog. The surrogate key hashes the post id; the date key
// comes from the post's creation time interpreted as UTC unix seconds. There
// is one fact row per raw record; dimension rows collapse exact duplicates.
func Reddit(posts []pulse.RedditPost) ([]ContentRow, []EngagementFact) {
	dims := make([]ContentRow, 0, len(posts))
	facts := make([]EngagementFact, 0, len(posts))

	for _, p := range posts {
		key := pulse.Key(p.PostID)
		created := time.Unix(int64(p.CreatedUTC), 0).UTC()

		dims = append(dims, ContentRow{
			ContentKey:  key,
			PostID:      p.PostID,
			Title:       p.Title,
			Subreddit:   p.Subreddit,
			Author:      p.Author,
			ContentType: "reddit_post",
			CreatedAt:   created,
		})
		facts = append(facts, EngagementFact{
			ContentKey:      key,
			DateKey:         DateKey(created),
			Upvotes:         p.Score,
			CommentsCount:   p.NumComments,
			EngagementScore: upvoteWeight*float64(p.Score) + commentWeight*float64(p.NumComments),
			UpvoteRatio:     p.UpvoteRatio,
		})
	}
	return distinct(dims), facts
}
