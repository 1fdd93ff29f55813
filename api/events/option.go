// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package events

import (
	"github.com/eventknowledge/eventknowledge/api"
)

// Option is a func that sets optional attributes for a call. This does not need
// to be used directly, but instead option arguments are built from the
// functions in this package. When an API call is made options are processed in
// the order they appear in the function call, so for a given argument X, a
// succession of WithX calls will result in the last call taking effect.
type Option func(*options)

type options struct {
	withTop            *uint
	withSkip           *uint
	withSkipCurlOutput bool
}

func getDefaultOptions() options {
	return options{}
}

func getOpts(opt ...Option) (options, []api.Option) {
	opts := getDefaultOptions()
	for _, o := range opt {
		if o != nil {
			o(&opts)
		}
	}
	var apiOpts []api.Option
	if opts.withSkipCurlOutput {
		apiOpts = append(apiOpts, api.WithSkipCurlOutput(true))
	}
	return opts, apiOpts
}

// WithTop limits the number of items the service returns. Zero is sent as
// "$top=0"; to leave the bound off, do not pass the option.
func WithTop(top uint) Option {
	return func(o *options) {
		o.withTop = &top
	}
}

// WithSkip tells the service how many leading items to skip.
func WithSkip(skip uint) Option {
	return func(o *options) {
		o.withSkip = &skip
	}
}

// WithSkipCurlOutput tells the API to not use the current call for cURL output.
func WithSkipCurlOutput(skip bool) Option {
	return func(o *options) {
		o.withSkipCurlOutput = skip
	}
}
