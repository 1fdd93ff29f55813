// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package events

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// dateLayout is the calendar date form the service expects for dates.
const dateLayout = "2006-01-02"

// resource describes one listable collection of the service.
type resource struct {
	// path is relative to the API root. When parameterInPath is set it holds
	// a single %s verb for the escaped identifier.
	path  string
	param string
	// parameterInPath marks resources that take their identifier as a path
	// segment rather than as a query parameter.
	parameterInPath bool
}

var (
	hotEventsResource      = resource{path: "hotevents", param: "date"}
	relatedEventsResource  = resource{path: "relatedevents", param: "wikipediaid"}
	eventDocumentsResource = resource{path: "events/%s/documents", param: "eventid", parameterInPath: true}
)

// query is a single logical request against a resource. It is built once per
// call and never modified.
type query struct {
	resource resource
	value    string
	top      *uint
	skip     *uint
}

func newQuery(r resource, value string, opts options) query {
	return query{
		resource: r,
		value:    value,
		top:      opts.withTop,
		skip:     opts.withSkip,
	}
}

// encode renders the request path and query string, relative to the API root.
//
//	hotevents, 2024-03-01, top 5, skip 2  => /hotevents?date=2024-03-01&$top=5&$skip=2
//	events/%s/documents, E1, top 5        => /events/E1/documents?$top=5
func (q query) encode() string {
	var sb strings.Builder
	bounded := q.top != nil || q.skip != nil

	sb.WriteByte('/')
	if q.resource.parameterInPath {
		sb.WriteString(fmt.Sprintf(q.resource.path, escapeDataString(q.value)))
		if bounded {
			sb.WriteByte('?')
		}
	} else {
		sb.WriteString(q.resource.path)
		sb.WriteByte('?')
		sb.WriteString(q.resource.param)
		sb.WriteByte('=')
		sb.WriteString(escapeDataString(q.value))
		if bounded {
			sb.WriteByte('&')
		}
	}

	switch {
	case q.top != nil && q.skip != nil:
		fmt.Fprintf(&sb, "$top=%d&$skip=%d", *q.top, *q.skip)
	case q.top != nil:
		fmt.Fprintf(&sb, "$top=%d", *q.top)
	case q.skip != nil:
		fmt.Fprintf(&sb, "$skip=%d", *q.skip)
	}

	return sb.String()
}

// escapeDataString escapes s so that only RFC 3986 unreserved characters are
// left as is. Spaces become %20 rather than +.
func escapeDataString(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func formatDate(date time.Time) string {
	return date.UTC().Format(dateLayout)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
