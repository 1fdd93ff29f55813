// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package events

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eventknowledge/eventknowledge/api"
)

// page is the envelope the service wraps every list response in.
type page[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@nextLink,omitempty"`
}

// Segment is one page of results together with the token needed to request
// the page after it.
type Segment[T any] struct {
	Items []T `json:"items"`
	// ContinuationToken is the service-issued location of the next page,
	// passed back unchanged. Empty means there are no more results.
	ContinuationToken string `json:"continuation_token,omitempty"`

	Response *api.Response `json:"-"`
}

// HasMore reports whether another page can be requested with the segment's
// continuation token.
func (s *Segment[T]) HasMore() bool {
	return s != nil && !isBlank(s.ContinuationToken)
}

// GetItems returns the items of the segment.
func (s *Segment[T]) GetItems() []T {
	if s == nil {
		return nil
	}
	return s.Items
}

// GetResponse returns the response the segment was decoded from.
func (s *Segment[T]) GetResponse() *api.Response {
	if s == nil {
		return nil
	}
	return s.Response
}

// fetchPage performs exactly one round trip for requestUri, which is either a
// query built by query.encode or a continuation token, and decodes the page.
func fetchPage[T any](ctx context.Context, client *api.Client, op, requestUri string, apiOpts ...api.Option) (*Segment[T], error) {
	req, err := client.NewRequest(ctx, http.MethodGet, requestUri, nil, apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("error creating %s request: %w", op, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing client request during %s call: %w", op, err)
	}

	target := new(page[T])
	apiErr, err := resp.Decode(target)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s response: %w", op, err)
	}
	if apiErr != nil {
		return nil, apiErr
	}

	client.Logger().Debug("fetched page",
		"op", op,
		"url", req.URL.String(),
		"items", len(target.Value),
		"has_more", !isBlank(target.NextLink))

	items := target.Value
	if items == nil {
		items = []T{}
	}
	return &Segment[T]{
		Items:             items,
		ContinuationToken: target.NextLink,
		Response:          resp,
	}, nil
}
