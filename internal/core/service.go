package core

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Service orchestrates PIN submission and record queries over a RecordStore.
type Service struct {
	store RecordStore
	now   func() time.Time
}

// NewService creates a Service backed by store.
func NewService(store RecordStore) (*Service, error) {
	if store == nil {
		return nil, errors.New("record store is required")
	}
	return &Service{store: store, now: time.Now}, nil
}

// SubmitInput carries the raw, unvalidated fields of one submission.
type SubmitInput struct {
	// PIN is nil when the field was missing or not a string.
	PIN        *string
	Timestamp  string
	UserAgent  string
	SourceAddr string
}

// Submit validates the PIN, builds a record and appends it to the store.
// A validation failure leaves the store untouched.
func (s *Service) Submit(ctx context.Context, in SubmitInput) error {
	pin, err := ValidatePIN(in.PIN)
	if err != nil {
		return err
	}

	now := FormatTime(s.now())

	rec := Record{
		PIN:       pin,
		Timestamp: in.Timestamp,
		UserAgent: truncateRunes(in.UserAgent, MaxUserAgentLength),
		IP:        in.SourceAddr,
		CreatedAt: now,
	}
	if rec.Timestamp == "" {
		rec.Timestamp = now
	}
	if rec.IP == "" {
		rec.IP = UnknownIP
	}

	if err := s.store.Append(ctx, rec); err != nil {
		return err
	}

	slog.Debug("submission stored", "ip", rec.IP, "store", s.store.Mode())
	return nil
}

// ListAll returns every retained record in insertion order.
func (s *Service) ListAll(ctx context.Context) ([]Record, error) {
	return s.store.All(ctx)
}

// ExportCSV returns every retained record rendered as CSV.
func (s *Service) ExportCSV(ctx context.Context) (string, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return "", err
	}
	return ExportCSV(records), nil
}

// StorageInfo describes the configured backing for health reporting.
type StorageInfo struct {
	Mode    string `json:"mode"`
	Durable bool   `json:"durable"`
}

// Storage reports the mode and durability of the underlying store.
func (s *Service) Storage() StorageInfo {
	return StorageInfo{Mode: s.store.Mode(), Durable: s.store.Durable()}
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
