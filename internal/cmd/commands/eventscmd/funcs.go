// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package eventscmd holds the hot-events, related-events and
// event-documents commands.
package eventscmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eventknowledge/eventknowledge/api/events"
	"github.com/eventknowledge/eventknowledge/internal/cmd/base"
	"github.com/fatih/color"
	"github.com/posener/complete"
)

const (
	flagNameTop               = "top"
	flagNameSkip              = "skip"
	flagNameContinuationToken = "continuation-token"
	flagNameAll               = "all"

	// maxTitleLength bounds the document title shown in table output.
	maxTitleLength = 60
)

// listFlags are shared by every list command.
type listFlags struct {
	flagTop               uint
	flagSkip              uint
	flagContinuationToken string
	flagAll               bool
}

func (l *listFlags) addFlags(f *base.FlagSet) {
	f.UintVar(&base.UintVar{
		Name:   flagNameTop,
		Target: &l.flagTop,
		Usage:  "Maximum number of items the service returns per page. If unset the service default applies.",
	})
	f.UintVar(&base.UintVar{
		Name:   flagNameSkip,
		Target: &l.flagSkip,
		Usage:  "Number of leading items the service skips.",
	})
	f.StringVar(&base.StringVar{
		Name:       flagNameContinuationToken,
		Target:     &l.flagContinuationToken,
		Completion: complete.PredictAnything,
		Usage:      "Continuation token printed by a previous call. When given, the page it names is fetched and the other query flags are ignored.",
	})
	f.BoolVar(&base.BoolVar{
		Name:   flagNameAll,
		Target: &l.flagAll,
		Usage:  "Follow continuation tokens until every page has been fetched.",
	})
}

// options converts the flags given on the command line into list options.
// Flags left unset are not sent.
func (l *listFlags) options(set *base.FlagSets) []events.Option {
	var opts []events.Option
	if set.IsSet(flagNameTop) {
		opts = append(opts, events.WithTop(l.flagTop))
	}
	if set.IsSet(flagNameSkip) {
		opts = append(opts, events.WithSkip(l.flagSkip))
	}
	return opts
}

func (l *listFlags) validate() error {
	if l.flagAll && strings.TrimSpace(l.flagContinuationToken) != "" {
		return fmt.Errorf("-%s cannot be combined with -%s", flagNameAll, flagNameContinuationToken)
	}
	return nil
}

func (l *listFlags) hasToken() bool {
	return strings.TrimSpace(l.flagContinuationToken) != ""
}

// lister binds a listing's required parameter so runList can stay generic
// over the item type.
type lister[T any] struct {
	// noun names the listed items in messages, e.g. "hot events".
	noun    string
	all     func(ctx context.Context, client *events.Client, opt ...events.Option) (*events.Iterator[T], error)
	segment func(ctx context.Context, client *events.Client, token string, opt ...events.Option) (*events.Segment[T], error)
	table   func(items []T) string
}

// runList executes a list command once its flags are parsed and its required
// parameter validated.
func runList[T any](c *base.Command, set *base.FlagSets, l *listFlags, ls lister[T]) int {
	client, err := c.Client()
	if err != nil {
		c.PrintCliError(fmt.Errorf("Error creating API client: %w", err))
		return base.CommandCliError
	}
	eClient := events.NewClient(client)
	opts := l.options(set)

	var (
		items []T
		token string
		more  bool
	)
	if l.flagAll {
		it, err := ls.all(c.Context, eClient, opts...)
		if err == nil {
			items, err = it.Collect(c.Context)
		}
		if err != nil {
			return c.PrintError(err, fmt.Sprintf("Error listing %s", ls.noun))
		}
	} else {
		result, err := ls.segment(c.Context, eClient, l.flagContinuationToken, opts...)
		if err != nil {
			return c.PrintError(err, fmt.Sprintf("Error listing %s", ls.noun))
		}
		items = result.GetItems()
		token = result.ContinuationToken
		more = result.HasMore()
	}

	switch base.Format(c.UI) {
	case "json":
		if ok := c.PrintJsonItems(items, token); !ok {
			return base.CommandCliError
		}

	default:
		if len(items) == 0 {
			c.UI.Output(fmt.Sprintf("No %s found", ls.noun))
		} else {
			c.UI.Output(ls.table(items))
		}
		if more {
			c.UI.Output(continuationHint(token))
		}
	}

	return base.CommandSuccess
}

func continuationHint(token string) string {
	return base.WrapForHelpText([]string{
		"",
		"More results are available. Fetch the next page with:",
		"",
		fmt.Sprintf("  -%s %s", flagNameContinuationToken, color.New(color.Bold).Sprint(token)),
	})
}

// parseDate reads a -date value. Both a calendar date and an RFC 3339
// timestamp are accepted.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("Date must be given as YYYY-MM-DD")
	}
	return d.UTC(), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.RFC1123)
}

func printEventTable(items []*events.Event) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		var title, source string
		if doc := item.LatestDocument; doc != nil {
			title = base.Truncate(doc.Title, maxTitleLength)
			source = doc.Source
		}
		rows = append(rows, []string{
			item.EventId,
			formatTime(item.From),
			formatTime(item.To),
			source,
			title,
		})
	}
	var b strings.Builder
	base.TableOutput(&b, []string{"Event ID", "From", "To", "Source", "Latest Document"}, rows)
	return strings.TrimRight(b.String(), "\n")
}

func printDocumentTable(items []*events.Document) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		rows = append(rows, []string{
			item.DocumentId,
			formatTime(item.PublishDate),
			item.Source,
			base.Truncate(item.Title, maxTitleLength),
		})
	}
	var b strings.Builder
	base.TableOutput(&b, []string{"Document ID", "Published", "Source", "Title"}, rows)
	return strings.TrimRight(b.String(), "\n")
}
