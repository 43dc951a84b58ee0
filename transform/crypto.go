package transform

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/pulsedata/pulse"
)

// Crypto derives the crypto dimension and price fact projections from the
// raw coin catalog. The surrogate key hashes the coin id; the date key comes
// from the exchange-side last_updated timestamp. Price columns are rounded
// to two decimals (half away from zero); market cap and volume stay integral.
func Crypto(coins []pulse.CoinSnapshot) ([]CryptoRow, []CryptoFact, error) {
	dims := make([]CryptoRow, 0, len(coins))
	facts := make([]CryptoFact, 0, len(coins))

	for i, c := range coins {
		key := pulse.Key(c.CoinID)

		updated, err := time.Parse(time.RFC3339, c.LastUpdated)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "parsing last_updated of coin %d (%q)", i, c.CoinID)
		}

		dims = append(dims, CryptoRow{
			CryptoKey:     key,
			CoinID:        c.CoinID,
			Symbol:        c.Symbol,
			Name:          c.Name,
			MarketCapRank: c.MarketCapRank,
		})
		facts = append(facts, CryptoFact{
			CryptoKey:             key,
			DateKey:               DateKey(updated),
			CurrentPrice:          round2(c.CurrentPrice),
			MarketCap:             c.MarketCap,
			TotalVolume:           c.TotalVolume,
			PriceChange24h:        round2(c.PriceChange24h),
			PriceChangePercent24h: round2(c.PriceChangePercent24h),
		})
	}
	return distinct(dims), facts, nil
}

// round2 rounds to two decimal places, ties away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
