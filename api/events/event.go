// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package events

import (
	"time"
)

// Event is a real-world happening as reported by the service, together with
// the most recent document covering it.
type Event struct {
	EventId         string    `json:"eventId,omitempty"`
	RelatedEntities []string  `json:"relatedEntities,omitempty"`
	From            time.Time `json:"from,omitzero"`
	To              time.Time `json:"to,omitzero"`
	LatestDocument  *Document `json:"latestDocument,omitempty"`
}

// Document is a news article or other publication attached to an event.
type Document struct {
	DocumentId  string    `json:"documentId,omitempty"`
	Source      string    `json:"source,omitempty"`
	PublishDate time.Time `json:"publishDate,omitzero"`
	Title       string    `json:"title,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Url         string    `json:"url,omitempty"`
	Entities    []string  `json:"entities,omitempty"`
}
