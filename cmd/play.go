package cmd

import (
	"time"

	"github.com/josephlewis42/minish/core/ttylog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var maxSleep time.Duration

// playCmd replays a recorded session
var playCmd = &cobra.Command{
	Use:   "play FILE",
	Short: "Play a recorded interactive session.",
	Long:  `Plays a session recorded with --record back to the current terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := afero.NewOsFs().Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		output := ttylog.NewRealTimePlayback(maxSleep, ttylog.NewClientOutput(cmd.OutOrStdout()))
		return ttylog.Replay(ttylog.NewAsciicastLogSource(fd), output)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().DurationVar(&maxSleep, "max-sleep", 2*time.Second, "longest pause between events, 0 plays instantly")
}
