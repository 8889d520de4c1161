package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"launchpad/internal/event"
	"launchpad/internal/generator"
	jsonx "launchpad/internal/shared/json"
	"launchpad/internal/swarm"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// isTTY reports whether stdout is an interactive terminal.
func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func errorText(msg string) string {
	return red("error: " + msg)
}

func modeText(mode string) string {
	if mode == event.ModeSwarm {
		return green(mode)
	}
	return yellow(mode)
}

func printJSON(w io.Writer, v any) error {
	data, err := jsonx.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// progressPrinter reports task completion on stderr while a swarm runs.
func progressPrinter(w io.Writer) swarm.Observer {
	return swarm.ObserverFuncs{
		Finished: func(o swarm.Outcome) {
			status := green("ok")
			if o.Failed() {
				status = yellow("fallback")
			}
			fmt.Fprintf(w, "  %s %-12s %s %s\n", gray("•"), o.Name, status, gray(o.Duration.Round(time.Millisecond).String()))
		},
	}
}

func printEvent(w io.Writer, res generator.Result) {
	ev := res.Event
	fmt.Fprintf(w, "%s  %s\n", bold(ev.Name), gray("("+ev.Slug+")"))
	fmt.Fprintf(w, "%s\n\n", ev.Tagline)
	fmt.Fprintf(w, "%s %s, %s · %d day(s) · %d attendees\n", cyan("When/where:"), ev.City, ev.Date, ev.Days, ev.Capacity)
	fmt.Fprintf(w, "%s %s, %s\n", cyan("Venue:"), ev.Venue.Name, ev.Venue.Address)
	fmt.Fprintf(w, "%s %s\n", cyan("Tracks:"), strings.Join(ev.Tracks, ", "))

	names := make([]string, 0, len(ev.Speakers))
	for _, s := range ev.Speakers {
		names = append(names, s.Name)
	}
	fmt.Fprintf(w, "%s %s\n", cyan("Speakers:"), strings.Join(names, ", "))
	fmt.Fprintf(w, "%s early bird %s · regular %s", cyan("Pricing:"), ev.Pricing.EarlyBird, ev.Pricing.Regular)
	if ev.Pricing.VIP != "" {
		fmt.Fprintf(w, " · VIP %s", ev.Pricing.VIP)
	}
	fmt.Fprintf(w, " (%s)\n", ev.Pricing.Currency)
	fmt.Fprintf(w, "%s %d sessions\n", cyan("Schedule:"), len(ev.Schedule))
	fmt.Fprintf(w, "%s %s\n", cyan("Theme:"), ev.Theme.Name)
	fmt.Fprintf(w, "%s %s\n", cyan("Hero:"), ev.HeroImageURL)
	printFooter(w, res.Mode, res.Diagnostics)
}

func printKit(w io.Writer, res generator.PromoResult) {
	kit := res.Kit
	fmt.Fprintf(w, "%s\n", bold("Promotion kit"))
	fmt.Fprintf(w, "%s %d LinkedIn · %d Twitter · %d Instagram\n", cyan("Social:"),
		len(kit.Social.LinkedIn), len(kit.Social.Twitter), len(kit.Social.Instagram))
	fmt.Fprintf(w, "%s %d\n", cyan("Communities:"), len(kit.Communities))
	for _, email := range kit.Emails.Emails {
		fmt.Fprintf(w, "%s day %-3d %s\n", cyan("Email:"), email.SendDay, email.SubjectA)
	}
	fmt.Fprintf(w, "%s %d\n", cyan("Partners:"), len(kit.Partners))
	fmt.Fprintf(w, "%s %s\n", cyan("SEO title:"), kit.SEO.MetaTitle)
	fmt.Fprintf(w, "%s %d Meta · %d Google · %d LinkedIn\n", cyan("Ads:"),
		len(kit.Ads.Meta), len(kit.Ads.Google), len(kit.Ads.LinkedIn))
	printFooter(w, res.Mode, res.Diagnostics)
}

func printFooter(w io.Writer, mode string, diag swarm.Diagnostics) {
	fmt.Fprintf(w, "\n%s %s\n", gray("mode:"), modeText(mode))
	for _, e := range diag.Errors {
		fmt.Fprintf(w, "%s %s\n", yellow("fallback:"), e)
	}
}
