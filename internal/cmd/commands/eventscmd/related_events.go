// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package eventscmd

import (
	"context"
	"errors"
	"strings"

	"github.com/eventknowledge/eventknowledge/api/events"
	"github.com/eventknowledge/eventknowledge/internal/cmd/base"
	"github.com/mitchellh/cli"
	"github.com/posener/complete"
)

var (
	_ cli.Command             = (*RelatedEventsCommand)(nil)
	_ cli.CommandAutocomplete = (*RelatedEventsCommand)(nil)
)

type RelatedEventsCommand struct {
	*base.Command
	listFlags

	Func string

	flagWikipediaId string
}

func (c *RelatedEventsCommand) Synopsis() string {
	switch c.Func {
	case "list":
		return "List the events related to a Wikipedia entity"
	}
	return "Query events related to an entity"
}

func (c *RelatedEventsCommand) Help() string {
	switch c.Func {
	case "list":
		return base.WrapForHelpText([]string{
			"Usage: eventknowledge related-events list [options]",
			"",
			"  List the events related to the entity with the given Wikipedia identifier. Example:",
			"",
			`    $ eventknowledge related-events list -wikipedia-id Seattle`,
			"",
			"",
		}) + c.Flags().Help()
	}
	return base.WrapForHelpText([]string{
		"Usage: eventknowledge related-events <subcommand> [options] [args]",
		"",
		"  This command allows operations on events related to an entity. Example:",
		"",
		"    List the events related to an entity:",
		"",
		`      $ eventknowledge related-events list -wikipedia-id Seattle`,
		"",
		"  Please see the subcommand help for detailed usage information.",
	})
}

func (c *RelatedEventsCommand) Flags() *base.FlagSets {
	if c.Func == "" {
		return base.NewFlagSets(c.UI)
	}

	set := c.FlagSet(base.FlagSetHTTP | base.FlagSetClient | base.FlagSetOutputFormat)
	f := set.NewFlagSet("Command Options")

	f.StringVar(&base.StringVar{
		Name:       "wikipedia-id",
		Target:     &c.flagWikipediaId,
		Completion: complete.PredictAnything,
		Usage:      "Wikipedia identifier of the entity whose related events are listed. Required unless -continuation-token is given.",
	})
	c.addFlags(f)

	return set
}

func (c *RelatedEventsCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *RelatedEventsCommand) AutocompleteFlags() complete.Flags {
	return c.Flags().Completions()
}

func (c *RelatedEventsCommand) Run(args []string) int {
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

	wikipediaId := c.flagWikipediaId
	if strings.TrimSpace(wikipediaId) == "" && !c.hasToken() {
		c.PrintCliError(errors.New("Wikipedia ID must be provided via -wikipedia-id"))
		return base.CommandCliError
	}

	return runList(c.Command, f, &c.listFlags, lister[*events.Event]{
		noun: "related events",
		all: func(ctx context.Context, client *events.Client, opt ...events.Option) (*events.Iterator[*events.Event], error) {
			return client.ListRelatedEvents(ctx, wikipediaId, opt...)
		},
		segment: func(ctx context.Context, client *events.Client, token string, opt ...events.Option) (*events.Segment[*events.Event], error) {
			return client.ListRelatedEventsSegmented(ctx, wikipediaId, token, opt...)
		},
		table: func(items []*events.Event) string {
			return "\nRelated events:\n\n" + printEventTable(items)
		},
	})
}
