// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package events

import (
	"context"
	"time"
)

// ListHotEvents returns an Iterator over every event trending on the given
// calendar date. The date is interpreted in UTC. The first page is fetched
// before ListHotEvents returns.
func (c *Client) ListHotEvents(ctx context.Context, date time.Time, opt ...Option) (*Iterator[*Event], error) {
	if date.IsZero() {
		return nil, emptyValueError("date", "ListHotEvents")
	}
	opts, apiOpts := getOpts(opt...)
	q := newQuery(hotEventsResource, formatDate(date), opts)
	return list[*Event](ctx, c, "ListHotEvents", q, apiOpts)
}

// ListHotEventsSegmented returns a single page of hot events. A non-blank
// continuationToken is requested as is and date, top and skip are ignored.
func (c *Client) ListHotEventsSegmented(ctx context.Context, date time.Time, continuationToken string, opt ...Option) (*Segment[*Event], error) {
	opts, apiOpts := getOpts(opt...)
	var q query
	if isBlank(continuationToken) {
		if date.IsZero() {
			return nil, emptyValueError("date", "ListHotEventsSegmented")
		}
		q = newQuery(hotEventsResource, formatDate(date), opts)
	}
	return segment[*Event](ctx, c, "ListHotEventsSegmented", q, continuationToken, apiOpts)
}
