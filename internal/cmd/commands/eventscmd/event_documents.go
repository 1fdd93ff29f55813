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
	_ cli.Command             = (*EventDocumentsCommand)(nil)
	_ cli.CommandAutocomplete = (*EventDocumentsCommand)(nil)
)

type EventDocumentsCommand struct {
	*base.Command
	listFlags

	Func string

	flagEventId string
}

func (c *EventDocumentsCommand) Synopsis() string {
	switch c.Func {
	case "list":
		return "List the documents attached to an event"
	}
	return "Query the documents of an event"
}

func (c *EventDocumentsCommand) Help() string {
	switch c.Func {
	case "list":
		return base.WrapForHelpText([]string{
			"Usage: eventknowledge event-documents list [options]",
			"",
			"  List the documents attached to the event with the given ID, as printed by the hot-events and related-events commands. Example:",
			"",
			`    $ eventknowledge event-documents list -event-id 4b9fbd1a0a6b4f2d`,
			"",
			"",
		}) + c.Flags().Help()
	}
	return base.WrapForHelpText([]string{
		"Usage: eventknowledge event-documents <subcommand> [options] [args]",
		"",
		"  This command allows operations on the documents of an event. Example:",
		"",
		"    List the documents of an event:",
		"",
		`      $ eventknowledge event-documents list -event-id 4b9fbd1a0a6b4f2d`,
		"",
		"  Please see the subcommand help for detailed usage information.",
	})
}

func (c *EventDocumentsCommand) Flags() *base.FlagSets {
	if c.Func == "" {
		return base.NewFlagSets(c.UI)
	}

	set := c.FlagSet(base.FlagSetHTTP | base.FlagSetClient | base.FlagSetOutputFormat)
	f := set.NewFlagSet("Command Options")

	f.StringVar(&base.StringVar{
		Name:       "event-id",
		Target:     &c.flagEventId,
		Completion: complete.PredictAnything,
		Usage:      "ID of the event whose documents are listed. Required unless -continuation-token is given.",
	})
	c.addFlags(f)

	return set
}

func (c *EventDocumentsCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *EventDocumentsCommand) AutocompleteFlags() complete.Flags {
	return c.Flags().Completions()
}

func (c *EventDocumentsCommand) Run(args []string) int {
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

	eventId := c.flagEventId
	if strings.TrimSpace(eventId) == "" && !c.hasToken() {
		c.PrintCliError(errors.New("Event ID must be provided via -event-id"))
		return base.CommandCliError
	}

	return runList(c.Command, f, &c.listFlags, lister[*events.Document]{
		noun: "event documents",
		all: func(ctx context.Context, client *events.Client, opt ...events.Option) (*events.Iterator[*events.Document], error) {
			return client.ListEventDocuments(ctx, eventId, opt...)
		},
		segment: func(ctx context.Context, client *events.Client, token string, opt ...events.Option) (*events.Segment[*events.Document], error) {
			return client.ListEventDocumentsSegmented(ctx, eventId, token, opt...)
		},
		table: func(items []*events.Document) string {
			return "\nEvent documents:\n\n" + printDocumentTable(items)
		},
	})
}
