package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pseudogo",
	Short: "IGCSE Cambridge pseudocode to Python compiler",
	Long: `pseudogo compiles IGCSE Cambridge-style pseudocode source files into
Python 3 source text.

It implements the tokenizer, grammar, static semantic checks, and code
generator described by the project's compiler specification; it does not
itself sandbox or execute untrusted code ("run" shells out to a local
python3 interpreter purely as a development convenience).`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).
			With().Timestamp().Logger()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic logging on stderr")
}
