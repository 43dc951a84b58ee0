package cmd

import (
	"io"
	"log/slog"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"

	"github.com/pulsedata/pulse/extract/news"
	"github.com/pulsedata/pulse/termstat"
)

// NewsMain is wrapped by NewNewsCommand and only exported for testing
// purposes.
var NewsMain *news.Main

// NewNewsCommand returns a new cobra command wrapping NewsMain.
func NewNewsCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var err error
	NewsMain = news.NewMain()
	newsCommand := &cobra.Command{
		Use:   "news",
		Short: "news - snapshot top news headlines to raw storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			stats := termstat.NewCollector(stderr)
			NewsMain.SetStatter(stats)
			res := NewsMain.Run(cmd.Context())
			stats.Flush()
			slog.Info("done", "took", time.Since(start))
			return reportResult(stdout, res)
		},
	}
	flags := newsCommand.Flags()
	err = commandeer.Flags(flags, NewsMain)
	if err != nil {
		panic(err)
	}
	return newsCommand
}

func init() {
	subcommandFns["news"] = NewNewsCommand
}
