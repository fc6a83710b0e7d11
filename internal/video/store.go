// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package video

import (
	"sync"
	"time"
)

// DefaultPublicationOffset is the default distance between createdAt and publicationDate.
const DefaultPublicationOffset = 24 * time.Hour

// Store is the in-memory, insertion-ordered record collection plus the id generator.
// All exported methods are safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	videos []Video
	lastID int64

	now               func() time.Time
	publicationOffset time.Duration
	resetIDs          bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPublicationOffset overrides the default createdAt → publicationDate offset.
func WithPublicationOffset(d time.Duration) StoreOption {
	return func(s *Store) {
		s.publicationOffset = d
	}
}

// WithResetIDs makes Clear rewind the id generator as well.
func WithResetIDs(reset bool) StoreOption {
	return func(s *Store) {
		s.resetIDs = reset
	}
}

// NewStore creates an empty store whose first id is 1.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		videos:            make([]Video, 0),
		now:               time.Now,
		publicationOffset: DefaultPublicationOffset,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert assigns the next id, stamps the timestamps and appends the record.
func (s *Store) Insert(d Draft) Video {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := NewTimestamp(s.now())
	publication := NewTimestamp(created.Add(s.publicationOffset))
	if d.PublicationDate.Set {
		publication = d.PublicationDate.Value
	}

	s.lastID++
	v := Video{
		ID:                   s.lastID,
		Title:                d.Title,
		Author:               d.Author,
		CanBeDownloaded:      d.CanBeDownloaded,
		MinAgeRestriction:    d.MinAgeRestriction,
		CreatedAt:            created,
		PublicationDate:      publication,
		AvailableResolutions: d.AvailableResolutions,
	}
	v = v.clone()
	s.videos = append(s.videos, v)
	return v.clone()
}

func (s *Store) indexOf(id int64) int {
	for i := range s.videos {
		if s.videos[i].ID == id {
			return i
		}
	}
	return -1
}

// FindByID returns a copy of the record or ErrNotFound.
func (s *Store) FindByID(id int64) (Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Video{}, ErrNotFound
	}
	return s.videos[i].clone(), nil
}

// UpdateByID applies the set fields of p in canonical order.
// It does not re-validate; callers must validate before calling.
func (s *Store) UpdateByID(id int64, p Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	v := &s.videos[i]
	if p.Title.Set {
		v.Title = p.Title.Value
	}
	if p.Author.Set {
		v.Author = p.Author.Value
	}
	if p.AvailableResolutions.Set {
		v.AvailableResolutions = append([]Resolution(nil), p.AvailableResolutions.Value...)
	}
	if p.CanBeDownloaded.Set {
		v.CanBeDownloaded = p.CanBeDownloaded.Value
	}
	if p.MinAgeRestriction.Set {
		v.MinAgeRestriction = nil
		if p.MinAgeRestriction.Value != nil {
			age := *p.MinAgeRestriction.Value
			v.MinAgeRestriction = &age
		}
	}
	if p.PublicationDate.Set {
		v.PublicationDate = p.PublicationDate.Value
	}
	return nil
}

// DeleteByID removes the record or returns ErrNotFound.
func (s *Store) DeleteByID(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.videos = append(s.videos[:i], s.videos[i+1:]...)
	return nil
}

// List returns a snapshot of every record in insertion order. Never nil.
func (s *Store) List() []Video {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Video, 0, len(s.videos))
	for _, v := range s.videos {
		out = append(out, v.clone())
	}
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.videos)
}

// Clear empties the collection and returns how many records were dropped.
// The id generator keeps counting unless the store was built WithResetIDs(true).
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.videos)
	s.videos = make([]Video, 0)
	if s.resetIDs {
		s.lastID = 0
	}
	return n
}
