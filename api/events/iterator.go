// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package events

import (
	"context"
	"iter"

	"github.com/eventknowledge/eventknowledge/api"
)

// Iterator walks every item of a result set, requesting the next page from
// the service only once the current one has been consumed. It is finite and
// cannot be restarted. An Iterator is not safe for concurrent use.
//
//	it, err := client.ListHotEvents(ctx, date)
//	if err != nil {
//		return err
//	}
//	for it.Next(ctx) {
//		fmt.Println(it.Item().EventId)
//	}
//	if err := it.Err(); err != nil {
//		return err
//	}
type Iterator[T any] struct {
	client  *api.Client
	op      string
	apiOpts []api.Option

	buf   []T
	next  string
	item  T
	err   error
	pages int
}

func newIterator[T any](client *api.Client, op string, first *Segment[T], apiOpts []api.Option) *Iterator[T] {
	return &Iterator[T]{
		client:  client,
		op:      op,
		apiOpts: apiOpts,
		buf:     first.Items,
		next:    first.ContinuationToken,
		pages:   1,
	}
}

// Next advances to the next item, fetching the following page when the
// buffered one is exhausted. It returns false when the result set is
// exhausted or a fetch failed; check Err to tell them apart.
func (it *Iterator[T]) Next(ctx context.Context) bool {
	var zero T
	it.item = zero
	if it.err != nil {
		return false
	}
	// Loop since a page in the middle of a result set may be empty.
	for len(it.buf) == 0 {
		if isBlank(it.next) {
			return false
		}
		seg, err := fetchPage[T](ctx, it.client, it.op, it.next, it.apiOpts...)
		if err != nil {
			it.err = err
			it.buf = nil
			it.next = ""
			return false
		}
		it.pages++
		it.buf = seg.Items
		it.next = seg.ContinuationToken
	}
	it.item = it.buf[0]
	it.buf = it.buf[1:]
	return true
}

// Item returns the item Next advanced to.
func (it *Iterator[T]) Item() T {
	return it.item
}

// Err returns the error that stopped the iteration, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}

// Pages returns how many pages have been fetched so far.
func (it *Iterator[T]) Pages() int {
	return it.pages
}

// All returns the remaining items as a sequence. A failed fetch is yielded
// once as a final (zero, err) pair.
func (it *Iterator[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for it.Next(ctx) {
			if !yield(it.Item(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Collect drains the iterator into a slice. On failure the items gathered so
// far are returned along with the error.
func (it *Iterator[T]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	for it.Next(ctx) {
		out = append(out, it.Item())
	}
	return out, it.Err()
}
