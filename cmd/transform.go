package cmd

import (
	"io"
	"log/slog"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"

	"github.com/pulsedata/pulse/termstat"
	"github.com/pulsedata/pulse/transform"
)

// TransformMain is wrapped by NewTransformCommand and only exported for
// testing purposes.
var TransformMain *transform.Main

// NewTransformCommand returns a new cobra command wrapping TransformMain.
func NewTransformCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var err error
	TransformMain = transform.NewMain()
	transformCommand := &cobra.Command{
		Use:   "transform",
		Short: "transform - rebuild the star schema from the raw catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			stats := termstat.NewCollector(stderr)
			TransformMain.SetStatter(stats)
			err = TransformMain.Run(cmd.Context())
			stats.Flush()
			if err != nil {
				return err
			}
			slog.Info("done", "took", time.Since(start))
			return nil
		},
	}
	flags := transformCommand.Flags()
	err = commandeer.Flags(flags, TransformMain)
	if err != nil {
		panic(err)
	}
	return transformCommand
}

func init() {
	subcommandFns["transform"] = NewTransformCommand
}
