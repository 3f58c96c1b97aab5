// Package cli implements the cobra commands of the snapcode binary.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aiupstart.com/snapcode/internal/config"
	"aiupstart.com/snapcode/internal/utils"
)

var (
	configPath string
	verbose    bool

	// cfg is loaded once per invocation in the root PersistentPreRunE.
	cfg *config.Config

	logCloser io.Closer
)

// Version is injected from main.
var Version = "dev"

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "snapcode",
		Short: "Generate HTML, CSS and JavaScript from a UI description",
		Long: `snapcode sends a natural-language UI description to a generation service
and splits the returned code into markup (index.html), styling (styles.css)
and script (script.js) for display, copying and saving.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return wrapCLIError(ExitConfig, "loading config", err)
			}
			cfg = loaded

			level := cfg.LogLevel
			if verbose {
				level = "debug"
			}
			closer, err := utils.InitLogger(level, cfg.LogFile)
			if err != nil {
				return wrapCLIError(ExitConfig, "initialising logger", err)
			}
			logCloser = closer
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				_ = logCloser.Close()
				logCloser = nil
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ./snapcode.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewSegmentCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs rootCmd and exits with the mapped exit code on failure.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		os.Exit(int(exitCodeFor(err)))
	}
}
