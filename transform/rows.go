// Package transform reshapes the raw extracted catalogs into a star schema:
// a date dimension, one descriptive dimension per source, and one fact table
// per source, written to object storage as Parquet with full-overwrite
// semantics. All derivations are single-pass, stateless, and row-wise; the
// only cross-row behavior is the dimensions' exact-duplicate collapse.
package transform

import "time"

// DateRow is one day of the date dimension. DateKey is the universal time
// join key: every fact table references it.
type DateRow struct {
	DateKey   int32     `parquet:"date_key"`
	FullDate  time.Time `parquet:"full_date,date"`
	Year      int32     `parquet:"year"`
	Quarter   int32     `parquet:"quarter"`
	Month     int32     `parquet:"month"`
	MonthName string    `parquet:"month_name"`
	DayOfWeek int32     `parquet:"day_of_week"`
	DayName   string    `parquet:"day_name"`
	IsWeekend bool      `parquet:"is_weekend"`
}

// ContentRow is the social-post dimension: the descriptive attributes of one
// post, keyed by the surrogate hash of its post id.
type ContentRow struct {
	ContentKey  uint64    `parquet:"content_key"`
	PostID      string    `parquet:"post_id"`
	Title       string    `parquet:"title"`
	Subreddit   string    `parquet:"subreddit"`
	Author      string    `parquet:"author"`
	ContentType string    `parquet:"content_type"`
	CreatedAt   time.Time `parquet:"created_at,timestamp"`
}

// EngagementFact is one social-post measurement row.
type EngagementFact struct {
	ContentKey      uint64  `parquet:"content_key"`
	DateKey         int32   `parquet:"date_key"`
	Upvotes         int64   `parquet:"upvotes"`
	CommentsCount   int64   `parquet:"comments_count"`
	EngagementScore float64 `parquet:"engagement_score"`
	UpvoteRatio     float64 `parquet:"upvote_ratio"`
}

// ArticleRow is the news dimension, keyed by the surrogate hash of
// title+source since articles carry no natural id.
type ArticleRow struct {
	ArticleKey  uint64    `parquet:"article_key"`
	Title       string    `parquet:"title"`
	Description string    `parquet:"description"`
	SourceName  string    `parquet:"source_name"`
	Author      string    `parquet:"author"`
	Category    string    `parquet:"category"`
	Country     string    `parquet:"country"`
	PublishedAt time.Time `parquet:"published_at,timestamp"`
}

// NewsFact is one article measurement row.
type NewsFact struct {
	ArticleKey        uint64 `parquet:"article_key"`
	DateKey           int32  `parquet:"date_key"`
	DescriptionLength int32  `parquet:"description_length"`
	SentimentScore    int32  `parquet:"sentiment_score"`
}

// CryptoRow is the crypto dimension, keyed by the surrogate hash of coin id.
type CryptoRow struct {
	CryptoKey     uint64 `parquet:"crypto_key"`
	CoinID        string `parquet:"coin_id"`
	Symbol        string `parquet:"symbol"`
	Name          string `parquet:"name"`
	MarketCapRank int64  `parquet:"market_cap_rank"`
}

// CryptoFact is one coin price measurement row.
type CryptoFact struct {
	CryptoKey             uint64  `parquet:"crypto_key"`
	DateKey               int32   `parquet:"date_key"`
	CurrentPrice          float64 `parquet:"current_price"`
	MarketCap             int64   `parquet:"market_cap"`
	TotalVolume           int64   `parquet:"total_volume"`
	PriceChange24h        float64 `parquet:"price_change_24h"`
	PriceChangePercent24h float64 `parquet:"price_change_percentage_24h"`
}

// distinct collapses byte-identical rows, preserving first-occurrence order.
// Dimensions deduplicate exact duplicates only; rows that share a surrogate
// key but differ in any attribute are all kept.
func distinct[T comparable](rows []T) []T {
	seen := make(map[T]struct{}, len(rows))
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row]; ok {
			continue
		}
		seen[row] = struct{}{}
		out = append(out, row)
	}
	return out
}
