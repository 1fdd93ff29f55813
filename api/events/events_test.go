// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package events_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/eventknowledge/eventknowledge/api"
	"github.com/eventknowledge/eventknowledge/api/events"
	"github.com/eventknowledge/eventknowledge/internal/tests/fakeservice"
	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func testEvents(ids ...string) []*events.Event {
	out := make([]*events.Event, 0, len(ids))
	for _, id := range ids {
		out = append(out, &events.Event{
			EventId:         id,
			RelatedEntities: []string{"Seattle"},
			From:            time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
			To:              time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC),
			LatestDocument: &events.Document{
				DocumentId:  "doc-" + id,
				Source:      "example.com",
				PublishDate: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
				Title:       "Title " + id,
				Url:         "https://example.com/" + id,
				Entities:    []string{"Seattle"},
			},
		})
	}
	return out
}

// scriptHotEvents sets up three pages; the second link is absolute and the
// third is relative to the service address.
func scriptHotEvents(ts *fakeservice.TestService) []*events.Event {
	ts.AddPage("/hotevents?date=2024-03-01&$top=5&$skip=2", testEvents("E1", "E2"), ts.Link("/hotevents?page=2"))
	ts.AddPage("/hotevents?page=2", testEvents("E3"), api.ApiPath+"/hotevents?page=3")
	ts.AddPage("/hotevents?page=3", testEvents("E4", "E5"), "")
	return testEvents("E1", "E2", "E3", "E4", "E5")
}

func TestListHotEvents_AllPages(t *testing.T) {
	require, assert := require.New(t), assert.New(t)
	ctx := context.Background()
	ts := fakeservice.NewTestService(t)
	want := scriptHotEvents(ts)

	client := events.NewClient(ts.Client())
	it, err := client.ListHotEvents(ctx, testDate, events.WithTop(5), events.WithSkip(2))
	require.NoError(err)

	got, err := it.Collect(ctx)
	require.NoError(err)
	assert.Empty(cmp.Diff(want, got))
	assert.Equal(3, it.Pages())
	assert.Equal([]string{
		"/hotevents?date=2024-03-01&$top=5&$skip=2",
		"/hotevents?page=2",
		"/hotevents?page=3",
	}, ts.Requests())

	assert.False(it.Next(ctx))
	assert.Equal(3, ts.Calls())
}

func TestListHotEvents_FetchesLazily(t *testing.T) {
	require, assert := require.New(t), assert.New(t)
	ctx := context.Background()
	ts := fakeservice.NewTestService(t)
	scriptHotEvents(ts)

	it, err := events.NewClient(ts.Client()).ListHotEvents(ctx, testDate, events.WithTop(5), events.WithSkip(2))
	require.NoError(err)
	assert.Equal(1, ts.Calls())

	require.True(it.Next(ctx))
	assert.Equal("E1", it.Item().EventId)
	require.True(it.Next(ctx))
	assert.Equal("E2", it.Item().EventId)
	assert.Equal(1, ts.Calls())

	require.True(it.Next(ctx))
	assert.Equal("E3", it.Item().EventId)
	assert.Equal(2, ts.Calls())
}

func TestSegmentedMatchesEager(t *testing.T) {
	require, assert := require.New(t), assert.New(t)
	ctx := context.Background()
	ts := fakeservice.NewTestService(t)
	want := scriptHotEvents(ts)
	client := events.NewClient(ts.Client())

	var got []*events.Event
	var token string
	for {
		seg, err := client.ListHotEventsSegmented(ctx, testDate, token, events.WithTop(5), events.WithSkip(2))
		require.NoError(err)
		require.NotNil(seg.Response)
		got = append(got, seg.Items...)
		if !seg.HasMore() {
			break
		}
		token = seg.ContinuationToken
	}
	assert.Empty(cmp.Diff(want, got))

	it, err := client.ListHotEvents(ctx, testDate, events.WithTop(5), events.WithSkip(2))
	require.NoError(err)
	var eager []*events.Event
	for e, err := range it.All(ctx) {
		require.NoError(err)
		eager = append(eager, e)
	}
	assert.Empty(cmp.Diff(got, eager))
}

func TestSegmented_TokenTakesPrecedence(t *testing.T) {
	ctx := context.Background()
	ts := fakeservice.NewTestService(t)
	client := events.NewClient(ts.Client())
	ts.AddPage("/relatedevents?token=abc", testEvents("R9"), "")
	ts.AddPage("/events/E7/documents?token=def", []*events.Document{{DocumentId: "D9"}}, "")
	ts.AddPage("/hotevents?token=ghi", testEvents("H9"), "")

	t.Run("related events", func(t *testing.T) {
		seg, err := client.ListRelatedEventsSegmented(ctx, "Ignored", ts.Link("/relatedevents?token=abc"), events.WithTop(9), events.WithSkip(9))
		require.NoError(t, err)
		require.Len(t, seg.Items, 1)
		assert.Equal(t, "R9", seg.Items[0].EventId)
		assert.False(t, seg.HasMore())
	})
	t.Run("event documents with blank id", func(t *testing.T) {
		seg, err := client.ListEventDocumentsSegmented(ctx, "", ts.Link("/events/E7/documents?token=def"), events.WithTop(9))
		require.NoError(t, err)
		require.Len(t, seg.Items, 1)
		assert.Equal(t, "D9", seg.Items[0].DocumentId)
	})
	t.Run("hot events with zero date", func(t *testing.T) {
		seg, err := client.ListHotEventsSegmented(ctx, time.Time{}, ts.Link("/hotevents?token=ghi"), events.WithSkip(3))
		require.NoError(t, err)
		require.Len(t, seg.Items, 1)
		assert.Equal(t, "H9", seg.Items[0].EventId)
	})

	assert.Equal(t, []string{
		"/relatedevents?token=abc",
		"/events/E7/documents?token=def",
		"/hotevents?token=ghi",
	}, ts.Requests())
}

func TestInvalidArgument(t *testing.T) {
	ctx := context.Background()
	ts := fakeservice.NewTestService(t)
	client := events.NewClient(ts.Client())

	calls := []struct {
		name string
		call func() error
	}{
		{"ListHotEvents", func() error { _, err := client.ListHotEvents(ctx, time.Time{}); return err }},
		{"ListRelatedEvents", func() error { _, err := client.ListRelatedEvents(ctx, "  "); return err }},
		{"ListEventDocuments", func() error { _, err := client.ListEventDocuments(ctx, ""); return err }},
		{"ListHotEventsSegmented", func() error { _, err := client.ListHotEventsSegmented(ctx, time.Time{}, ""); return err }},
		{"ListRelatedEventsSegmented", func() error { _, err := client.ListRelatedEventsSegmented(ctx, "", " "); return err }},
		{"ListEventDocumentsSegmented", func() error { _, err := client.ListEventDocumentsSegmented(ctx, "\t", ""); return err }},
	}
	for _, tt := range calls {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, errors.Is(err, events.ErrInvalidArgument))
			assert.Contains(t, err.Error(), tt.name)
		})
	}
	assert.Equal(t, 0, ts.Calls())
}

func TestListEventDocuments_PathIdentifier(t *testing.T) {
	require, assert := require.New(t), assert.New(t)
	ctx := context.Background()
	ts := fakeservice.NewTestService(t)
	docs := []*events.Document{
		{DocumentId: "D1", Title: "one", PublishDate: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		{DocumentId: "D2", Title: "two", Entities: []string{"a", "b"}},
	}
	ts.AddPage("/events/E1/documents?$top=5", docs, "")
	ts.AddPage("/events/E%201%2F2/documents", docs[:1], "")

	client := events.NewClient(ts.Client())
	it, err := client.ListEventDocuments(ctx, "E1", events.WithTop(5))
	require.NoError(err)
	got, err := it.Collect(ctx)
	require.NoError(err)
	assert.Empty(cmp.Diff(docs, got))

	seg, err := client.ListEventDocumentsSegmented(ctx, "E 1/2", "")
	require.NoError(err)
	assert.Empty(cmp.Diff(docs[:1], seg.Items))

	assert.Equal([]string{
		"/events/E1/documents?$top=5",
		"/events/E%201%2F2/documents",
	}, ts.Requests())
}

func TestEmptyTerminalPage(t *testing.T) {
	require, assert := require.New(t), assert.New(t)
	ctx := context.Background()
	ts := fakeservice.NewTestService(t)
	ts.AddPage("/relatedevents?wikipediaid=Nobody", []*events.Event{}, "")
	client := events.NewClient(ts.Client())

	it, err := client.ListRelatedEvents(ctx, "Nobody")
	require.NoError(err)
	assert.False(it.Next(ctx))
	assert.NoError(it.Err())

	seg, err := client.ListRelatedEventsSegmented(ctx, "Nobody", "")
	require.NoError(err)
	assert.NotNil(seg.Items)
	assert.Empty(seg.Items)
	assert.False(seg.HasMore())
	assert.Equal(2, ts.Calls())
}

func TestEmptyMiddlePage(t *testing.T) {
	ctx := context.Background()
	ts := fakeservice.NewTestService(t)
	ts.AddPage("/relatedevents?wikipediaid=Seattle", testEvents("E1"), ts.Link("/relatedevents?page=2"))
	ts.AddRaw("/relatedevents?page=2", http.StatusOK, `{"value": null, "@nextLink": "`+ts.Link("/relatedevents?page=3")+`"}`)
	ts.AddPage("/relatedevents?page=3", testEvents("E2"), "   ")

	it, err := events.NewClient(ts.Client()).ListRelatedEvents(ctx, "Seattle")
	require.NoError(t, err)
	got, err := it.Collect(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(testEvents("E1", "E2"), got))
	assert.Equal(t, 3, ts.Calls())
}

func TestSecondPageFailure(t *testing.T) {
	require, assert := require.New(t), assert.New(t)
	ctx := context.Background()
	ts := fakeservice.NewTestService(t)
	ts.AddPage("/hotevents?date=2024-03-01", testEvents("E1", "E2"), ts.Link("/hotevents?page=2"))
	ts.AddError("/hotevents?page=2", http.StatusServiceUnavailable, "ServiceUnavailable", "try later")

	it, err := events.NewClient(ts.Client()).ListHotEvents(ctx, testDate)
	require.NoError(err)

	var got []*events.Event
	var lastErr error
	for e, err := range it.All(ctx) {
		if err != nil {
			lastErr = err
			break
		}
		got = append(got, e)
	}
	assert.Empty(cmp.Diff(testEvents("E1", "E2"), got))
	require.Error(lastErr)
	apiErr := api.AsServerError(lastErr)
	require.NotNil(apiErr)
	assert.Equal(http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal("try later", apiErr.Message)
	assert.Equal(lastErr, it.Err())

	// No retry and no further fetches once stopped.
	assert.False(it.Next(ctx))
	assert.Equal(2, ts.Calls())
}

func TestFirstPageFailure(t *testing.T) {
	ctx := context.Background()
	ts := fakeservice.NewTestService(t)
	client := events.NewClient(ts.Client())

	_, err := client.ListRelatedEvents(ctx, "Unscripted")
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrNotFound))

	ts.Client().SetSubscriptionKey("wrong")
	_, err = client.ListHotEventsSegmented(ctx, testDate, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrUnauthorized))
}

func TestMalformedPage(t *testing.T) {
	ctx := context.Background()
	ts := fakeservice.NewTestService(t)
	ts.AddRaw("/hotevents?date=2024-03-01", http.StatusOK, `{"value": [{"eventId": 5}]}`)

	_, err := events.NewClient(ts.Client()).ListHotEvents(ctx, testDate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding ListHotEvents response")
	assert.Nil(t, api.AsServerError(err))
}

func TestFetchLogging(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Debug})
	ts := fakeservice.NewTestService(t, fakeservice.WithLogger(logger))
	ts.AddPage("/hotevents?date=2024-03-01", testEvents("E1"), "")

	_, err := events.NewClient(ts.Client()).ListHotEventsSegmented(ctx, testDate, "")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "fetched page")
	assert.Contains(t, buf.String(), "op=ListHotEventsSegmented")
	assert.Contains(t, buf.String(), "has_more=false")
}

func TestSegment_NilSafe(t *testing.T) {
	var seg *events.Segment[*events.Event]
	assert.False(t, seg.HasMore())
	assert.Nil(t, seg.GetItems())
	assert.Nil(t, seg.GetResponse())
}
