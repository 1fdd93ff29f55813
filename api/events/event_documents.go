// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package events

import (
	"context"
)

// ListEventDocuments returns an Iterator over every document attached to the
// event with the given ID.
func (c *Client) ListEventDocuments(ctx context.Context, eventId string, opt ...Option) (*Iterator[*Document], error) {
	if isBlank(eventId) {
		return nil, emptyValueError("eventId", "ListEventDocuments")
	}
	opts, apiOpts := getOpts(opt...)
	q := newQuery(eventDocumentsResource, eventId, opts)
	return list[*Document](ctx, c, "ListEventDocuments", q, apiOpts)
}

// ListEventDocumentsSegmented returns a single page of an event's documents.
// A non-blank continuationToken takes precedence over every other argument.
func (c *Client) ListEventDocumentsSegmented(ctx context.Context, eventId, continuationToken string, opt ...Option) (*Segment[*Document], error) {
	if isBlank(eventId) && isBlank(continuationToken) {
		return nil, emptyValueError("eventId", "ListEventDocumentsSegmented")
	}
	opts, apiOpts := getOpts(opt...)
	q := newQuery(eventDocumentsResource, eventId, opts)
	return segment[*Document](ctx, c, "ListEventDocumentsSegmented", q, continuationToken, apiOpts)
}
