package core

import (
	"context"
	"time"
)

// DefaultMaxRecords is the retention cap applied when a store is built without one.
const DefaultMaxRecords = 1000

// MaxUserAgentLength bounds the stored user agent, in characters.
const MaxUserAgentLength = 500

// UnknownIP is recorded when the request's source address cannot be determined.
const UnknownIP = "unknown"

// TimeFormat is the ISO-8601 layout used for server-generated timestamps.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Record is a single stored PIN submission. Records are immutable once built.
type Record struct {
	PIN       string `json:"pin"`
	Timestamp string `json:"ts"`
	UserAgent string `json:"ua"`
	IP        string `json:"ip"`
	CreatedAt string `json:"createdAt"`
}

// RecordStore owns the ordered, bounded sequence of records.
//
// Append adds to the tail and evicts from the head once the cap is exceeded.
// All returns a copy in insertion order. Backing failures are reported as
// *PersistenceError and leave the store unchanged.
type RecordStore interface {
	Append(ctx context.Context, rec Record) error
	All(ctx context.Context) ([]Record, error)

	// Mode names the backing ("memory", "file", "postgres").
	Mode() string
	// Durable reports whether records survive a process restart.
	Durable() bool
}

// KeepTail returns records trimmed to the most recent max entries, preserving
// order. The returned slice never aliases records when trimming occurs.
func KeepTail(records []Record, max int) []Record {
	if max <= 0 || len(records) <= max {
		return records
	}
	out := make([]Record, max)
	copy(out, records[len(records)-max:])
	return out
}

// FormatTime renders t in the server timestamp layout, in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}
