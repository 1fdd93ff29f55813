// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package eventscmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventknowledge/eventknowledge/api/events"
	"github.com/eventknowledge/eventknowledge/internal/cmd/base"
	"github.com/mitchellh/cli"
	"github.com/posener/complete"
)

var (
	_ cli.Command             = (*HotEventsCommand)(nil)
	_ cli.CommandAutocomplete = (*HotEventsCommand)(nil)
)

type HotEventsCommand struct {
	*base.Command
	listFlags

	Func string

	flagDate string
}

func (c *HotEventsCommand) Synopsis() string {
	switch c.Func {
	case "list":
		return "List the events trending on a date"
	}
	return "Query trending events"
}

func (c *HotEventsCommand) Help() string {
	switch c.Func {
	case "list":
		return base.WrapForHelpText([]string{
			"Usage: eventknowledge hot-events list [options]",
			"",
			"  List the events trending on the given date. The date is a calendar day in UTC. Example:",
			"",
			`    $ eventknowledge hot-events list -date 2020-01-01`,
			"",
			"  By default a single page is fetched and, when the service has more, the token for the next page is printed. Use -all to fetch every page.",
			"",
			"",
		}) + c.Flags().Help()
	}
	return base.WrapForHelpText([]string{
		"Usage: eventknowledge hot-events <subcommand> [options] [args]",
		"",
		"  This command allows operations on hot events. Example:",
		"",
		"    List the events trending on a date:",
		"",
		`      $ eventknowledge hot-events list -date 2020-01-01`,
		"",
		"  Please see the subcommand help for detailed usage information.",
	})
}

func (c *HotEventsCommand) Flags() *base.FlagSets {
	if c.Func == "" {
		return base.NewFlagSets(c.UI)
	}

	set := c.FlagSet(base.FlagSetHTTP | base.FlagSetClient | base.FlagSetOutputFormat)
	f := set.NewFlagSet("Command Options")

	f.StringVar(&base.StringVar{
		Name:       "date",
		Target:     &c.flagDate,
		Completion: complete.PredictAnything,
		Usage:      "Calendar date, as YYYY-MM-DD, for which to list trending events. Required unless -continuation-token is given.",
	})
	c.addFlags(f)

	return set
}

func (c *HotEventsCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *HotEventsCommand) AutocompleteFlags() complete.Flags {
	return c.Flags().Completions()
}

func (c *HotEventsCommand) Run(args []string) int {
	if c.Func == "" {
		return cli.RunResultHelp
	}

	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.PrintCliError(err)
		return base.CommandCliError
	}

	if err := c.validate(); err != nil {
		c.PrintCliError(err)
		return base.CommandCliError
	}

	date, err := parseDate(c.flagDate)
	if err != nil {
		c.PrintCliError(err)
		return base.CommandCliError
	}
	if date.IsZero() && !c.hasToken() {
		c.PrintCliError(errors.New("Date must be provided via -date"))
		return base.CommandCliError
	}

	return runList(c.Command, f, &c.listFlags, lister[*events.Event]{
		noun: "hot events",
		all: func(ctx context.Context, client *events.Client, opt ...events.Option) (*events.Iterator[*events.Event], error) {
			return client.ListHotEvents(ctx, date, opt...)
		},
		segment: func(ctx context.Context, client *events.Client, token string, opt ...events.Option) (*events.Segment[*events.Event], error) {
			return client.ListHotEventsSegmented(ctx, date, token, opt...)
		},
		table: func(items []*events.Event) string {
			return fmt.Sprintf("\n%s:\n\n%s", hotEventsTitle(date), printEventTable(items))
		},
	})
}

func hotEventsTitle(date time.Time) string {
	if date.IsZero() {
		return "Hot events"
	}
	return "Hot events for " + date.UTC().Format(time.DateOnly)
}
