package transform

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/pulsedata/pulse"
	"github.com/pulsedata/pulse/aws/s3"
	"github.com/pulsedata/pulse/boltdb"
	"github.com/pulsedata/pulse/file"
	"github.com/pulsedata/pulse/json"
	"github.com/pulsedata/pulse/leveldb"
)

// Main holds the options for the transform job.
type Main struct {
	Bucket      string `help:"S3 bucket holding raw-data/ and processed-data/."`
	Region      string `help:"AWS region of the bucket."`
	LocalDir    string `help:"Process data beneath this local directory instead of S3."`
	StartDate   string `help:"First day of the date dimension (YYYY-MM-DD)."`
	EndDate     string `help:"Last day of the date dimension (YYYY-MM-DD)."`
	KeyRegistry string `help:"Path to a surrogate-key registry database which detects hash collisions across runs. Empty disables the check."`
	KeyBackend  string `help:"Key registry backend: bolt or leveldb."`

	stats pulse.Statter
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Region:     "us-east-1",
		StartDate:  DefaultStartDate,
		EndDate:    DefaultEndDate,
		KeyBackend: "bolt",
		stats:      pulse.NopStatter{},
	}
}

// SetStatter sets the stats collector for the run.
func (m *Main) SetStatter(s pulse.Statter) { m.stats = s }

// Run builds the date dimension plus each source's dimension/fact pair, then
// writes all seven tables in a fixed order with overwrite semantics. Any
// failure aborts the remaining steps: tables already written stay written,
// later tables keep their previous contents.
func (m *Main) Run(ctx context.Context) error {
	err := m.run(ctx)
	if err != nil {
		slog.Error("transform job failed", "err", err)
	}
	return err
}

func (m *Main) run(ctx context.Context) error {
	ws, err := m.warehouse()
	if err != nil {
		return errors.Wrap(err, "configuring warehouse")
	}
	reg, err := m.registry()
	if err != nil {
		return errors.Wrap(err, "opening key registry")
	}
	defer reg.Close()

	start, err := time.Parse("2006-01-02", m.StartDate)
	if err != nil {
		return errors.Wrap(err, "parsing start date")
	}
	end, err := time.Parse("2006-01-02", m.EndDate)
	if err != nil {
		return errors.Wrap(err, "parsing end date")
	}
	if end.Before(start) {
		return errors.Errorf("end date %v precedes start date %v", m.EndDate, m.StartDate)
	}

	slog.Info("creating date dimension", "start", m.StartDate, "end", m.EndDate)
	dateDim := DateDimension(start, end)

	slog.Info("processing reddit data")
	posts, err := readRaw[pulse.RedditPost](ctx, ws, "raw-data/reddit/")
	if err != nil {
		return errors.Wrap(err, "reading reddit catalog")
	}
	contentDim, engagementFact := Reddit(posts)
	for _, row := range contentDim {
		if err := reg.Check("dim_content", row.PostID, row.ContentKey); err != nil {
			return err
		}
	}

	slog.Info("processing news data")
	articles, err := readRaw[pulse.NewsArticle](ctx, ws, "raw-data/news/")
	if err != nil {
		return errors.Wrap(err, "reading news catalog")
	}
	newsDim, newsFact, err := News(articles)
	if err != nil {
		return errors.Wrap(err, "transforming news")
	}
	for _, row := range newsDim {
		if err := reg.Check("dim_news", row.Title+row.SourceName, row.ArticleKey); err != nil {
			return err
		}
	}

	slog.Info("processing crypto data")
	coins, err := readRaw[pulse.CoinSnapshot](ctx, ws, "raw-data/crypto/")
	if err != nil {
		return errors.Wrap(err, "reading crypto catalog")
	}
	cryptoDim, cryptoFact, err := Crypto(coins)
	if err != nil {
		return errors.Wrap(err, "transforming crypto")
	}
	for _, row := range cryptoDim {
		if err := reg.Check("dim_crypto", row.CoinID, row.CryptoKey); err != nil {
			return err
		}
	}

	slog.Info("writing tables")
	if err := writeTable(ctx, ws, "dim_date", dateDim, m.stats); err != nil {
		return err
	}
	if err := writeTable(ctx, ws, "dim_content", contentDim, m.stats); err != nil {
		return err
	}
	if err := writeTable(ctx, ws, "dim_news", newsDim, m.stats); err != nil {
		return err
	}
	if err := writeTable(ctx, ws, "dim_crypto", cryptoDim, m.stats); err != nil {
		return err
	}
	if err := writeTable(ctx, ws, "fact_engagement", engagementFact, m.stats); err != nil {
		return err
	}
	if err := writeTable(ctx, ws, "fact_news", newsFact, m.stats); err != nil {
		return err
	}
	if err := writeTable(ctx, ws, "fact_crypto_prices", cryptoFact, m.stats); err != nil {
		return err
	}

	slog.Info("transform job completed")
	return nil
}

func (m *Main) warehouse() (Warehouse, error) {
	if m.LocalDir != "" {
		return file.NewStore(m.LocalDir)
	}
	if m.Bucket == "" {
		return nil, errors.New("bucket must be set (or use a local directory)")
	}
	return s3.NewStore(m.Region, m.Bucket)
}

func (m *Main) registry() (pulse.KeyRegistry, error) {
	if m.KeyRegistry == "" {
		return pulse.NopKeyRegistry{}, nil
	}
	switch m.KeyBackend {
	case "bolt":
		return boltdb.NewRegistry(m.KeyRegistry)
	case "leveldb":
		return leveldb.NewRegistry(m.KeyRegistry)
	default:
		return nil, errors.Errorf("unknown key registry backend '%v'", m.KeyBackend)
	}
}

func readRaw[T any](ctx context.Context, ws Warehouse, prefix string) ([]T, error) {
	rs, err := ws.RawSource(ctx, prefix)
	if err != nil {
		return nil, err
	}
	return json.ReadAllRecords[T](rs)
}
