package cmd

import (
	"io"
	"log/slog"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"

	"github.com/pulsedata/pulse/extract/reddit"
	"github.com/pulsedata/pulse/termstat"
)

// RedditMain is wrapped by NewRedditCommand and only exported for testing
// purposes.
var RedditMain *reddit.Main

// NewRedditCommand returns a new cobra command wrapping RedditMain.
func NewRedditCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var err error
	RedditMain = reddit.NewMain()
	redditCommand := &cobra.Command{
		Use:   "reddit",
		Short: "reddit - snapshot hot posts from selected subreddits to raw storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			stats := termstat.NewCollector(stderr)
			RedditMain.SetStatter(stats)
			res := RedditMain.Run(cmd.Context())
			stats.Flush()
			slog.Info("done", "took", time.Since(start))
			return reportResult(stdout, res)
		},
	}
	flags := redditCommand.Flags()
	err = commandeer.Flags(flags, RedditMain)
	if err != nil {
		panic(err)
	}
	return redditCommand
}

func init() {
	subcommandFns["reddit"] = NewRedditCommand
}
