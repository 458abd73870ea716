// Package lead builds and delivers completed order submissions to operators.
package lead

import (
	"strings"

	"github.com/google/uuid"
)

// Source identifies the channel a lead arrived through. The formatted
// notification carries a per-channel header so operators can tell them apart.
type Source string

const (
	// SourceContact marks leads completed by sharing a Telegram contact.
	SourceContact Source = "contact"
	// SourceWebApp marks leads submitted through the mini app's native channel.
	SourceWebApp Source = "webapp"
	// SourceHTTP marks leads submitted through the fallback REST endpoint.
	SourceHTTP Source = "http"
)

// Lead is a completed user submission ready for operator hand-off. It is
// never persisted: formatted, dispatched and discarded.
type Lead struct {
	ID       string
	Source   Source
	Country  string
	Bank     string
	Name     string
	Phone    string
	Username string
	Comment  string
}

// New creates a Lead with a fresh id for log correlation.
func New(source Source) Lead {
	return Lead{
		ID:     uuid.NewString(),
		Source: source,
	}
}

// Payload is the JSON shape shared by the mini app channel and the HTTP
// endpoint. All fields are optional.
type Payload struct {
	Country  string `json:"country"`
	Bank     string `json:"bank"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
	Comment  string `json:"comment"`
}

// ToLead converts the payload into a Lead for the given source.
func (p Payload) ToLead(source Source) Lead {
	l := New(source)
	l.Country = strings.TrimSpace(p.Country)
	l.Bank = strings.TrimSpace(p.Bank)
	l.Name = strings.TrimSpace(p.Name)
	l.Phone = strings.TrimSpace(p.Phone)
	l.Username = strings.TrimSpace(strings.TrimPrefix(p.Username, "@"))
	l.Comment = strings.TrimSpace(p.Comment)
	return l
}
