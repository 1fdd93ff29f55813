// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package api

import (
	"fmt"
	"sort"
	"strings"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
)

// maskedSubscriptionKey replaces the subscription key in rendered cURL
// commands so they can be shared without leaking it.
const maskedSubscriptionKey = "$(eventknowledge config get-key)"

// ErrOutputStringRequest is the message of an OutputStringError whose request
// rendered successfully.
const ErrOutputStringRequest = "output a string, please see the returned string"

// LastOutputStringError holds the most recent request captured while the
// client was configured to output cURL strings.
var LastOutputStringError *OutputStringError

// OutputStringError is returned by Do instead of performing the request when
// OutputCurlString is set on the client.
type OutputStringError struct {
	*retryablehttp.Request
	parsingError     error
	parsedCurlString string
}

func (d *OutputStringError) Error() string {
	if d.parsedCurlString == "" {
		d.parseRequest()
		if d.parsingError != nil {
			return d.parsingError.Error()
		}
	}

	return ErrOutputStringRequest
}

func (d *OutputStringError) parseRequest() {
	d.parsedCurlString = "curl "
	if d.Request.Method != "GET" {
		d.parsedCurlString = fmt.Sprintf("%s-X %s ", d.parsedCurlString, d.Request.Method)
	}

	keys := make([]string, 0, len(d.Request.Header))
	for k := range d.Request.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, h := range d.Request.Header[k] {
			if strings.EqualFold(k, SubscriptionKeyHeader) {
				h = maskedSubscriptionKey
			}
			d.parsedCurlString = fmt.Sprintf("%s-H \"%s: %s\" ", d.parsedCurlString, k, h)
		}
	}

	// Bodies are JSON, so they are wrapped in single quotes with any embedded
	// single quote escaped for the shell.
	body, err := d.Request.BodyBytes()
	if err != nil {
		d.parsingError = err
		return
	}
	if len(body) > 0 {
		escaped := strings.ReplaceAll(string(body), "'", "'\"'\"'")
		d.parsedCurlString = fmt.Sprintf("%s-d '%s' ", d.parsedCurlString, escaped)
	}

	d.parsedCurlString = fmt.Sprintf("%s'%s'", d.parsedCurlString, d.Request.URL.String())
}

// CurlString returns the request rendered as a cURL command.
func (d *OutputStringError) CurlString() string {
	if d.parsedCurlString == "" {
		d.parseRequest()
	}
	return d.parsedCurlString
}
