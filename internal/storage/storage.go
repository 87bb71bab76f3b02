package storage

import (
	"context"
	"errors"

	"github.com/kaiwenlim/fintrack-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures user persistence operations needed by the auth surface.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
}

// RecordStore captures expense/income record persistence. Every operation is
// owner-scoped: a record id belonging to another owner behaves as not found.
type RecordStore interface {
	CreateRecord(ctx context.Context, rec models.Record) (models.Record, error)
	ListRecordsByOwner(ctx context.Context, ownerID int64) ([]models.Record, error)
	GetRecord(ctx context.Context, ownerID int64, id string) (models.Record, error)
	UpdateRecord(ctx context.Context, rec models.Record) (models.Record, error)
	DeleteRecord(ctx context.Context, ownerID int64, id string) error
}

// Store is the full persistence surface the server wires up.
type Store interface {
	UserStore
	RecordStore
}
