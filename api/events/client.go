// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package events lists hot events, related events and event documents from
// the event knowledge service. Each listing comes in two forms: an eager form
// returning an Iterator that follows continuation tokens until the result set
// is exhausted, and a segmented form performing a single round trip.
package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventknowledge/eventknowledge/api"
)

// ErrInvalidArgument is returned, wrapped, when a required parameter is blank
// and no continuation token was given. No request is made in that case.
var ErrInvalidArgument = errors.New("invalid argument")

type Client struct {
	client *api.Client
}

func NewClient(c *api.Client) *Client {
	return &Client{client: c}
}

func (c *Client) ApiClient() *api.Client {
	return c.client
}

// list performs the first fetch for q and wraps it in an Iterator.
func list[T any](ctx context.Context, c *Client, op string, q query, apiOpts []api.Option) (*Iterator[T], error) {
	if c.client == nil {
		return nil, fmt.Errorf("nil client")
	}
	first, err := fetchPage[T](ctx, c.client, op, q.encode(), apiOpts...)
	if err != nil {
		return nil, err
	}
	return newIterator(c.client, op, first, apiOpts), nil
}

// segment performs one fetch of either the continuation token, if non-blank,
// or the encoded query.
func segment[T any](ctx context.Context, c *Client, op string, q query, continuationToken string, apiOpts []api.Option) (*Segment[T], error) {
	if c.client == nil {
		return nil, fmt.Errorf("nil client")
	}
	requestUri := continuationToken
	if isBlank(continuationToken) {
		requestUri = q.encode()
	}
	return fetchPage[T](ctx, c.client, op, requestUri, apiOpts...)
}

func emptyValueError(name, op string) error {
	return fmt.Errorf("empty %s value passed into %s request: %w", name, op, ErrInvalidArgument)
}
