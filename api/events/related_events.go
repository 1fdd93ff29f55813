// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package events

import (
	"context"
)

// ListRelatedEvents returns an Iterator over every event related to the
// entity with the given Wikipedia ID.
func (c *Client) ListRelatedEvents(ctx context.Context, wikipediaId string, opt ...Option) (*Iterator[*Event], error) {
	if isBlank(wikipediaId) {
		return nil, emptyValueError("wikipediaId", "ListRelatedEvents")
	}
	opts, apiOpts := getOpts(opt...)
	q := newQuery(relatedEventsResource, wikipediaId, opts)
	return list[*Event](ctx, c, "ListRelatedEvents", q, apiOpts)
}

// ListRelatedEventsSegmented returns a single page of related events. A
// non-blank continuationToken takes precedence over every other argument.
func (c *Client) ListRelatedEventsSegmented(ctx context.Context, wikipediaId, continuationToken string, opt ...Option) (*Segment[*Event], error) {
	if isBlank(wikipediaId) && isBlank(continuationToken) {
		return nil, emptyValueError("wikipediaId", "ListRelatedEventsSegmented")
	}
	opts, apiOpts := getOpts(opt...)
	q := newQuery(relatedEventsResource, wikipediaId, opts)
	return segment[*Event](ctx, c, "ListRelatedEventsSegmented", q, continuationToken, apiOpts)
}
