// Package store is the local record store for user-authored job posts.
//
// The whole collection lives under one key of a Backend as a JSON array.
// Every mutation loads the full list, applies one change and flushes the
// full list back; the last writer wins. A mutex serialises callers inside
// one process, which is the only writer the store is designed for.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/glageb/cur-vintage-jobs/internal/model"
)

// DefaultKey is the storage key the web client uses for user job posts.
const DefaultKey = "wanted-job-posts-user"

// ErrNotFound is returned by Get when no record has the requested id.
var ErrNotFound = errors.New("job post not found")

// ParseError reports persisted data that could not be decoded. The store
// recovers from it by starting from an empty list.
type ParseError struct{ Err error }

func (e *ParseError) Error() string { return "parse stored job posts: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// Store owns the in-memory copy of the collection.
type Store struct {
	backend Backend
	key     string
	log     *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	records []model.UserJobRecord
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the time source used for updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a Store persisting under key in backend.
func New(backend Backend, key string, log *zap.Logger, opts ...Option) *Store {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{backend: backend, key: key, log: log, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ─── Load / Flush ────────────────────────────────────────────────────────────

// Load replaces the in-memory collection with the persisted one. Missing or
// unparsable data yields an empty collection; only backend I/O failures
// are returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Flush writes the in-memory collection to the backend.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush(ctx)
}

func (s *Store) load(ctx context.Context) error {
	raw, err := s.backend.Get(ctx, s.key)
	var pe *ParseError
	switch {
	case errors.Is(err, ErrKeyNotFound):
		s.records = nil
		return nil
	case errors.As(err, &pe):
		s.log.Warn("[store] stored job posts unreadable, starting empty", zap.Error(err))
		s.records = nil
		return nil
	case err != nil:
		return fmt.Errorf("load job posts: %w", err)
	}

	records, err := decode(raw)
	if err != nil {
		s.log.Warn("[store] stored job posts unreadable, starting empty", zap.Error(err))
		records = nil
	}
	s.records = records
	return nil
}

func (s *Store) flush(ctx context.Context) error {
	records := s.records
	if records == nil {
		records = []model.UserJobRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode job posts: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("flush job posts: %w", err)
	}
	return nil
}

func decode(raw []byte) ([]model.UserJobRecord, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var records []model.UserJobRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &ParseError{Err: err}
	}
	return records, nil
}

// ─── Queries ─────────────────────────────────────────────────────────────────

// List returns every record (draft, published, unpublished) in stored order.
func (s *Store) List(ctx context.Context) ([]model.UserJobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	out := make([]model.UserJobRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, cloneRecord(r))
	}
	return out, nil
}

// Published returns the published records as plain cards, in stored order.
func (s *Store) Published(ctx context.Context) ([]model.JobCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	out := make([]model.JobCard, 0)
	for _, r := range s.records {
		if model.IsPublished(r.Status) {
			out = append(out, cloneRecord(r).JobCard)
		}
	}
	return out, nil
}

// Get returns the record with id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*model.UserJobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	if i := s.indexOf(id); i >= 0 {
		r := cloneRecord(s.records[i])
		return &r, nil
	}
	return nil, ErrNotFound
}

// ─── Mutations ───────────────────────────────────────────────────────────────

// Save upserts rec by id: an existing record is replaced in place, a new one
// is appended. UpdatedAt is stamped when empty.
func (s *Store) Save(ctx context.Context, rec model.UserJobRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return err
	}

	rec = cloneRecord(rec)
	if rec.UpdatedAt == "" {
		rec.UpdatedAt = s.timestamp()
	}
	if i := s.indexOf(rec.ID); i >= 0 {
		s.records[i] = rec
	} else {
		s.records = append(s.records, rec)
	}
	return s.flush(ctx)
}

// Delete removes every record with id. Unknown ids are a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return err
	}
	kept := make([]model.UserJobRecord, 0, len(s.records))
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(s.records) {
		return nil
	}
	s.records = kept
	return s.flush(ctx)
}

// SetStatus sets the status of the record with id and refreshes its
// timestamp. Unknown ids are a no-op. Lifecycle rules are the caller's
// concern (see model.IsTransitionAllowed).
func (s *Store) SetStatus(ctx context.Context, id string, status model.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return err
	}
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.records[i].Status = status
	s.records[i].UpdatedAt = s.timestamp()
	return s.flush(ctx)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (s *Store) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(model.TimestampLayout)
}

// cloneRecord copies the slice and pointer fields so callers never share
// memory with the store's collection.
func cloneRecord(r model.UserJobRecord) model.UserJobRecord {
	out := r
	out.Skills = append([]string{}, r.Skills...)
	if r.WordCount != nil {
		wc := *r.WordCount
		out.WordCount = &wc
	}
	return out
}
