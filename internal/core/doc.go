// Package core holds the PIN submission domain: validation, the record model,
// the RecordStore contract, CSV export and the Service that ties them together.
//
// It has no knowledge of HTTP or of any particular backing store. Store
// implementations live in internal/store and are chosen at startup.
package core
