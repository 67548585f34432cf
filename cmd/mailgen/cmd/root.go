package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nwidger/go-mail/mailconfig"
)

var (
	configFile string
	cfg        *mailconfig.Config

	rootCmd = &cobra.Command{
		Use:   "mailgen",
		Short: "Compose and print RFC 5322/MIME messages from the command line",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configFile != "" {
				cfg, err = mailconfig.LoadFromFile(configFile)
				if err != nil {
					return err
				}
			} else {
				cfg = mailconfig.Load()
			}

			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: cfg.Logging.SlogLevel(),
			})))
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a mailconfig YAML file")
	rootCmd.AddCommand(buildCmd)
}

// Execute runs the mailgen command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cobra.CheckErr(err)
	}
}
