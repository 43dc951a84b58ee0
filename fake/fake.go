// Package fake generates plausible raw records for all three sources. It
// backs `pulse gen`, which lands fake snapshots in a local directory (or a
// real bucket) so the transform can be developed and demoed without API
// credentials.
package fake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pulsedata/pulse"
)

// Generator produces random records. Using the same seed gives the same
// series of records on a given version of Go.
type Generator struct {
	r *rand.Rand
}

// NewGenerator initializes a new Generator with the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{r: rand.New(rand.NewSource(seed))}
}

var subredditList = []string{"technology", "datascience", "worldnews", "cryptocurrency"}

var titleWords = []string{"open", "source", "model", "market", "launch", "breaks", "record", "study", "finds", "surge", "quietly", "announced", "future", "report", "update"}

var authorList = []string{"throwaway9000", "data_wrangler", "kernelpanicked", "lurker_prime", "modest_proposal", "quietfan", "stackunderflow"}

var sourceList = []string{"Reuters", "AP", "The Verge", "Bloomberg", "Ars Technica", "BBC News"}

var categoryList = []string{"technology", "business", "science"}

// Sentiment keywords show up in a fraction of descriptions so the fact
// table exercises all three scores.
var sentimentWords = []string{"positive", "negative", ""}

var coinList = []struct {
	id, symbol, name string
	price            float64
}{
	{"bitcoin", "btc", "Bitcoin", 67000},
	{"ethereum", "eth", "Ethereum", 3500},
	{"tether", "usdt", "Tether", 1},
	{"solana", "sol", "Solana", 150},
	{"dogecoin", "doge", "Dogecoin", 0.12},
	{"cardano", "ada", "Cardano", 0.45},
	{"polkadot", "dot", "Polkadot", 6.5},
	{"chainlink", "link", "Chainlink", 14},
}

func (g *Generator) words(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			s += " "
		}
		s += titleWords[g.r.Intn(len(titleWords))]
	}
	return s
}

// Posts generates n fake social posts created within the day before now.
func (g *Generator) Posts(n int, now time.Time) []pulse.RedditPost {
	posts := make([]pulse.RedditPost, n)
	for i := range posts {
		created := now.Add(-time.Duration(g.r.Intn(86400)) * time.Second)
		posts[i] = pulse.RedditPost{
			PostID:         fmt.Sprintf("t3_%08x", g.r.Uint32()),
			Title:          g.words(5),
			Author:         authorList[g.r.Intn(len(authorList))],
			Subreddit:      subredditList[g.r.Intn(len(subredditList))],
			Score:          int64(g.r.Intn(5000)),
			UpvoteRatio:    0.5 + g.r.Float64()/2,
			NumComments:    int64(g.r.Intn(800)),
			CreatedUTC:     float64(created.Unix()),
			Selftext:       g.words(g.r.Intn(40)),
			URL:            fmt.Sprintf("https://reddit.example/%d", i),
			ExtractionDate: now.Format(time.RFC3339),
		}
	}
	return posts
}

// Articles generates n fake news articles published within the day before
// now. Roughly a tenth of them have no author, like the real feed.
func (g *Generator) Articles(n int, now time.Time) []pulse.NewsArticle {
	articles := make([]pulse.NewsArticle, n)
	for i := range articles {
		published := now.Add(-time.Duration(g.r.Intn(86400)) * time.Second)
		title := g.words(6)
		desc := g.words(12)
		if w := sentimentWords[g.r.Intn(len(sentimentWords))]; w != "" {
			desc = desc + " " + w + " " + g.words(3)
		}
		source := sourceList[g.r.Intn(len(sourceList))]
		var author *string
		if g.r.Intn(10) > 0 {
			a := authorList[g.r.Intn(len(authorList))]
			author = &a
		}
		publishedAt := published.UTC().Format(time.RFC3339)
		articles[i] = pulse.NewsArticle{
			Title:          &title,
			Description:    &desc,
			SourceName:     &source,
			Author:         author,
			PublishedAt:    &publishedAt,
			URL:            nil,
			Category:       categoryList[g.r.Intn(len(categoryList))],
			Country:        "us",
			ExtractionDate: now.Format(time.RFC3339),
		}
	}
	return articles
}

// Coins generates up to n fake coin snapshots, one per known coin, priced
// within 10% of each coin's base price.
func (g *Generator) Coins(n int, now time.Time) []pulse.CoinSnapshot {
	if n > len(coinList) {
		n = len(coinList)
	}
	coins := make([]pulse.CoinSnapshot, n)
	for i := 0; i < n; i++ {
		c := coinList[i]
		price := c.price * (0.9 + g.r.Float64()/5)
		coins[i] = pulse.CoinSnapshot{
			CoinID:                c.id,
			Symbol:                c.symbol,
			Name:                  c.name,
			CurrentPrice:          price,
			MarketCap:             int64(price * float64(1+g.r.Intn(20000000))),
			MarketCapRank:         int64(i + 1),
			PriceChange24h:        price * (g.r.Float64() - 0.5) / 10,
			PriceChangePercent24h: (g.r.Float64() - 0.5) * 10,
			TotalVolume:           int64(g.r.Intn(1e9)),
			LastUpdated:           now.UTC().Format(time.RFC3339),
			ExtractionDate:        now.Format(time.RFC3339),
		}
	}
	return coins
}
