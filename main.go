package main

import (
	"artfolio/internal/di"
	"artfolio/internal/structures"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	flags := &structures.CliFlags{}

	cmd := &cobra.Command{
		Use:           "artfolio",
		Short:         "Local state daemon for the artfolio app",
		Long:          "Serves conversations, the social graph, preferences and identity over a loopback HTTP API.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			color.New(color.FgCyan, color.Bold).Fprintf(os.Stdout, "artfolio %s", version)
			color.New(color.FgHiBlack).Fprintf(os.Stdout, " config=%s\n", flags.ConfigPath)

			_, cleanup, err := di.InitApp(flags)
			if err != nil {
				return err
			}
			cleanup()
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML config file")
	cmd.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to the console")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
		os.Exit(1)
	}
}
