// Copyright 2024 Pulse Data Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

package pulse

// RedditPost is one raw record scraped from a subreddit's hot listing. Field
// names match the keys used in the raw JSON snapshots.
type RedditPost struct {
	PostID         string  `json:"post_id"`
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	Subreddit      string  `json:"subreddit"`
	Score          int64   `json:"score"`
	UpvoteRatio    float64 `json:"upvote_ratio"`
	NumComments    int64   `json:"num_comments"`
	CreatedUTC     float64 `json:"created_utc"`
	Selftext       string  `json:"selftext"`
	URL            string  `json:"url"`
	ExtractionDate string  `json:"extraction_date"`
}

// NewsArticle is one raw record from a top-headlines response. The upstream
// API regularly omits text fields, so those are pointers and marshal as JSON
// null when absent rather than as empty strings.
type NewsArticle struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	SourceName     *string `json:"source_name"`
	Author         *string `json:"author"`
	PublishedAt    *string `json:"published_at"`
	URL            *string `json:"url"`
	Category       string  `json:"category"`
	Country        string  `json:"country"`
	ExtractionDate string  `json:"extraction_date"`
}

// CoinSnapshot is one raw record from the coin markets listing. LastUpdated
// is the exchange-side timestamp (RFC 3339 with fractional seconds) used to
// derive the fact table's date key.
type CoinSnapshot struct {
	CoinID                string  `json:"coin_id"`
	Symbol                string  `json:"symbol"`
	Name                  string  `json:"name"`
	CurrentPrice          float64 `json:"current_price"`
	MarketCap             int64   `json:"market_cap"`
	MarketCapRank         int64   `json:"market_cap_rank"`
	PriceChange24h        float64 `json:"price_change_24h"`
	PriceChangePercent24h float64 `json:"price_change_percentage_24h"`
	TotalVolume           int64   `json:"total_volume"`
	LastUpdated           string  `json:"last_updated"`
	ExtractionDate        string  `json:"extraction_date"`
}

// Truncate returns s cut to at most n characters (code points, not bytes).
// Free-text fields like selftext are truncated before landing in a snapshot.
func Truncate(s string, n int) string {
	if n < 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
