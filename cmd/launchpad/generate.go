package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"launchpad/internal/event"
	"launchpad/internal/promo"
	"launchpad/internal/swarm"
)

func addEventFlags(cmd *cobra.Command, in *event.Input) {
	flags := cmd.Flags()
	flags.StringVar(&in.Topic, "topic", "", "Event topic (required)")
	flags.StringVar(&in.City, "city", "", "Host city (required)")
	flags.StringVar(&in.Date, "date", "", "Event date, e.g. 2026-01-01 (required)")
	flags.IntVar(&in.Capacity, "capacity", event.DefaultCapacity, "Expected attendees")
	flags.StringVar(&in.Budget, "budget", event.DefaultBudget, "Budget tier: starter, growth, premium, enterprise")
	flags.StringVar(&in.Vibe, "vibe", event.DefaultVibe, "Event vibe, e.g. professional, builder, visionary")
	flags.StringVar(&in.SpeakersHint, "speakers-hint", "", "Free-form speaker preferences")
	flags.IntVar(&in.Days, "days", 1, "Number of days (1-3)")
	flags.BoolVar(&in.Enhanced, "enhanced", false, "Larger speaker roster and richer copy")
	flags.StringVar(&in.Slug, "slug", "", "Override the generated slug")
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func observerFor(cmd *cobra.Command, opts *rootOptions) swarm.Observer {
	if opts.jsonOutput || !isTTY() {
		return nil
	}
	return progressPrinter(cmd.ErrOrStderr())
}

func newGenerateCommand(opts *rootOptions) *cobra.Command {
	var in event.Input
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one event and print it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := in.Validate(); err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()

			a, err := bootstrap(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			res, err := a.generator.GenerateEventObserved(ctx, in, observerFor(cmd, opts))
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), res)
			}
			printEvent(cmd.OutOrStdout(), res)
			return nil
		},
	}
	addEventFlags(cmd, &in)
	return cmd
}

func newPromoteCommand(opts *rootOptions) *cobra.Command {
	var in event.Input
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Generate an event, then a promotion kit for it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := in.Validate(); err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()

			a, err := bootstrap(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			observer := observerFor(cmd, opts)
			generated, err := a.generator.GenerateEventObserved(ctx, in, observer)
			if err != nil {
				return err
			}
			res, err := a.generator.GeneratePromoObserved(ctx, promo.FromEvent(generated.Event), observer)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), res)
			}
			printEvent(cmd.OutOrStdout(), generated)
			fmt.Fprintln(cmd.OutOrStdout())
			printKit(cmd.OutOrStdout(), res)
			return nil
		},
	}
	addEventFlags(cmd, &in)
	return cmd
}
