package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
	jsonOutput bool
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "launchpad",
		Short: "Generate complete event packages and promotion kits",
		Long: fmt.Sprintf(`%s

Launchpad turns a topic, a city and a date into a full event: venue,
speakers, schedule, pricing, branding and a hero image. With a backend key
it runs a swarm of generation agents; without one it uses built-in templates.

%s
  launchpad generate --topic AI --city Berlin --date 2026-01-01
  launchpad generate --topic "Climate Tech" --city Lisbon --date 2026-05-02 --days 3 --enhanced
  launchpad promote --topic AI --city Berlin --date 2026-01-01
  launchpad serve --config launchpad.yaml`,
			bold("Launchpad "+Version),
			bold("EXAMPLES:")),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Print raw JSON instead of a summary")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newGenerateCommand(opts))
	rootCmd.AddCommand(newPromoteCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "launchpad %s\n", Version)
		},
	}
}
