// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package api

import "net/http"

// skipCurlOutputHeader marks a request that should be sent even when the
// client is configured to output cURL strings. It never leaves the process.
const skipCurlOutputHeader = "x-eventknowledge-skip-curl-output"

// Option is a func that sets optional attributes for a call. This does not need
// to be used directly, but instead option arguments are built from the
// functions in this package.
type Option func(*options)

type options struct {
	withSkipCurlOutput bool
	withHeaders        http.Header
}

func getDefaultOptions() options {
	return options{
		withHeaders: make(http.Header),
	}
}

func getOpts(opt ...Option) options {
	opts := getDefaultOptions()
	for _, o := range opt {
		if o != nil {
			o(&opts)
		}
	}
	return opts
}

// WithSkipCurlOutput tells the API to not use the current call for cURL output.
func WithSkipCurlOutput(skip bool) Option {
	return func(o *options) {
		o.withSkipCurlOutput = skip
	}
}

// WithHeader adds a header to a single request, in addition to the headers
// configured on the client.
func WithHeader(key, value string) Option {
	return func(o *options) {
		o.withHeaders.Add(key, value)
	}
}
