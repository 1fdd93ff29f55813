// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package events_test

import "github.com/kelseyhightower/envconfig"

type config struct {
	SubscriptionKey string `envconfig:"E2E_EVENTKNOWLEDGE_SUBSCRIPTION_KEY" required:"true"`
	Addr            string `envconfig:"E2E_EVENTKNOWLEDGE_ADDR" default:"https://api.labs.cognitive.microsoft.com"`
	Date            string `envconfig:"E2E_HOT_EVENTS_DATE" default:"2020-01-01"` // e.g. 2020-01-01
	WikipediaId     string `envconfig:"E2E_WIKIPEDIA_ID" default:"Seattle"`
	// Binary is the CLI under test, as found on PATH unless a path is given.
	Binary string `envconfig:"E2E_EVENTKNOWLEDGE_BINARY" default:"eventknowledge"`
}

func loadTestConfig() (*config, error) {
	var c config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}

	return &c, nil
}
