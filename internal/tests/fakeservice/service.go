// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package fakeservice provides an in-process stand-in for the event knowledge
// service. Routes are scripted per request URI and every request received is
// recorded so tests can assert on the exact wire form.
package fakeservice

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/eventknowledge/eventknowledge/api"
	"github.com/hashicorp/go-hclog"
)

// DefaultTestSubscriptionKey is the key the service accepts unless another
// one is set with WithSubscriptionKey.
const DefaultTestSubscriptionKey = "test-subscription-key"

type response struct {
	status int
	body   []byte
}

// TestService is a scripted HTTP server speaking the service's list protocol.
type TestService struct {
	t   testing.TB
	srv *httptest.Server
	key string

	mu       sync.Mutex
	routes   map[string]response
	requests []string
	client   *api.Client
}

type options struct {
	withSubscriptionKey string
	withLogger          hclog.Logger
}

// Option configures a TestService.
type Option func(*options)

// WithSubscriptionKey sets the key the service requires. An empty key turns
// the check off.
func WithSubscriptionKey(key string) Option {
	return func(o *options) {
		o.withSubscriptionKey = key
	}
}

// WithLogger sets the logger on the client returned by Client.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		o.withLogger = logger
	}
}

// NewTestService starts a TestService that is shut down when the test ends.
func NewTestService(t testing.TB, opt ...Option) *TestService {
	t.Helper()
	opts := options{withSubscriptionKey: DefaultTestSubscriptionKey}
	for _, o := range opt {
		o(&opts)
	}

	ts := &TestService{
		t:      t,
		key:    opts.withSubscriptionKey,
		routes: make(map[string]response),
	}
	ts.srv = httptest.NewServer(http.HandlerFunc(ts.serveHTTP))
	t.Cleanup(ts.srv.Close)

	client, err := api.NewClient(&api.Config{
		Addr:            ts.srv.URL,
		SubscriptionKey: opts.withSubscriptionKey,
		Logger:          opts.withLogger,
	})
	if err != nil {
		t.Fatal(fmt.Errorf("error creating client: %w", err))
	}
	ts.client = client
	return ts
}

// Addr returns the address of the service, without the API path.
func (ts *TestService) Addr() string {
	return ts.srv.URL
}

// ApiRoot returns the address joined with the API path.
func (ts *TestService) ApiRoot() string {
	return ts.srv.URL + api.ApiPath
}

// Client returns a client configured for the service.
func (ts *TestService) Client() *api.Client {
	return ts.client
}

// Link returns the absolute URL of a request URI relative to the API root, in
// the form the service hands out as @nextLink.
func (ts *TestService) Link(requestUri string) string {
	return ts.ApiRoot() + normalize(requestUri)
}

// AddPage scripts the page returned for requestUri, relative to the API root.
// An empty nextLink marks the last page.
func (ts *TestService) AddPage(requestUri string, items any, nextLink string) {
	ts.t.Helper()
	body := map[string]any{"value": items}
	if nextLink != "" {
		body["@nextLink"] = nextLink
	}
	b, err := json.Marshal(body)
	if err != nil {
		ts.t.Fatal(err)
	}
	ts.AddRaw(requestUri, http.StatusOK, string(b))
}

// AddError scripts an error response in the service's error envelope.
func (ts *TestService) AddError(requestUri string, status int, code, message string) {
	ts.t.Helper()
	b, err := json.Marshal(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
	if err != nil {
		ts.t.Fatal(err)
	}
	ts.AddRaw(requestUri, status, string(b))
}

// AddRaw scripts a response body verbatim.
func (ts *TestService) AddRaw(requestUri string, status int, body string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.routes[api.ApiPath+normalize(requestUri)] = response{status: status, body: []byte(body)}
}

// Requests returns the request URIs received so far, relative to the API
// root, in arrival order.
func (ts *TestService) Requests() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := make([]string, 0, len(ts.requests))
	for _, r := range ts.requests {
		out = append(out, strings.TrimPrefix(r, api.ApiPath))
	}
	return out
}

// Calls returns how many requests the service has received.
func (ts *TestService) Calls() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.requests)
}

func (ts *TestService) serveHTTP(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	ts.requests = append(ts.requests, r.RequestURI)
	resp, ok := ts.routes[r.RequestURI]
	ts.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if ts.key != "" && r.Header.Get(api.SubscriptionKeyHeader) != ts.key {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"statusCode": 401, "message": "Access denied due to invalid subscription key."}`))
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprintf(w, `{"error":{"code":"NotFound","message":"no route for %s"}}`, r.RequestURI)
		return
	}
	w.WriteHeader(resp.status)
	_, _ = w.Write(resp.body)
}

func normalize(requestUri string) string {
	return "/" + strings.TrimPrefix(requestUri, "/")
}
