package cmd

import (
	"io"
	"log/slog"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"

	"github.com/pulsedata/pulse/extract/crypto"
	"github.com/pulsedata/pulse/termstat"
)

// CryptoMain is wrapped by NewCryptoCommand and only exported for testing
// purposes.
var CryptoMain *crypto.Main

// NewCryptoCommand returns a new cobra command wrapping CryptoMain.
func NewCryptoCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var err error
	CryptoMain = crypto.NewMain()
	cryptoCommand := &cobra.Command{
		Use:   "crypto",
		Short: "crypto - snapshot current crypto market prices to raw storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			stats := termstat.NewCollector(stderr)
			CryptoMain.SetStatter(stats)
			res := CryptoMain.Run(cmd.Context())
			stats.Flush()
			slog.Info("done", "took", time.Since(start))
			return reportResult(stdout, res)
		},
	}
	flags := cryptoCommand.Flags()
	err = commandeer.Flags(flags, CryptoMain)
	if err != nil {
		panic(err)
	}
	return cryptoCommand
}

func init() {
	subcommandFns["crypto"] = NewCryptoCommand
}
