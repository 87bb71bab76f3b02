// Package memory provides an in-memory twin of the Postgres store. It backs
// the handler tests and keeps the same contract: sentinel errors, owner
// scoping, and newest-first natural order.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kaiwenlim/fintrack-be/internal/models"
	"github.com/kaiwenlim/fintrack-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps users and records in maps guarded by a single mutex.
type Store struct {
	mu         sync.Mutex
	nextUserID int64
	users      map[int64]models.User
	records    map[string]models.Record
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:   make(map[int64]models.User),
		records: make(map[string]models.Record),
	}
}

// CreateUser assigns the next id and stores the user. Duplicate emails are
// rejected with storage.ErrAlreadyExists, matching the unique index in
// Postgres.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = user
	return user, nil
}

// FindUserByEmail fetches a user by email address.
func (s *Store) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// FindUserByID fetches a user by id.
func (s *Store) FindUserByID(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// CreateRecord stores a record, assigning a fresh id when none is set.
func (s *Store) CreateRecord(_ context.Context, rec models.Record) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.records[rec.ID] = rec
	return rec, nil
}

// ListRecordsByOwner returns the owner's records, newest date first with
// creation time as tiebreak.
func (s *Store) ListRecordsByOwner(_ context.Context, ownerID int64) ([]models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Record, 0)
	for _, rec := range s.records {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetRecord fetches one record by id, scoped to its owner.
func (s *Store) GetRecord(_ context.Context, ownerID int64, id string) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.OwnerID != ownerID {
		return models.Record{}, storage.ErrNotFound
	}
	return rec, nil
}

// UpdateRecord replaces all mutable fields of a record by id.
func (s *Store) UpdateRecord(_ context.Context, rec models.Record) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[rec.ID]
	if !ok || existing.OwnerID != rec.OwnerID {
		return models.Record{}, storage.ErrNotFound
	}
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = time.Now().UTC()
	s.records[rec.ID] = rec
	return rec, nil
}

// DeleteRecord removes a record by id, scoped to its owner.
func (s *Store) DeleteRecord(_ context.Context, ownerID int64, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.OwnerID != ownerID {
		return storage.ErrNotFound
	}
	delete(s.records, id)
	return nil
}
