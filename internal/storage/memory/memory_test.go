package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kaiwenlim/fintrack-be/internal/models"
	"github.com/kaiwenlim/fintrack-be/internal/storage"
)

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.CreateUser(ctx, models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byEmail, err := store.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	byID, err := store.FindUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", byID.Name)

	_, err = store.CreateUser(ctx, models.User{Name: "Other", Email: "alice@example.com", PasswordHash: "hash"})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = store.FindUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRecordCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	rec, err := store.CreateRecord(ctx, models.Record{
		OwnerID:     1,
		Type:        models.TypeExpense,
		Amount:      decimal.RequireFromString("19.99"),
		Category:    "Groceries",
		Date:        time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Description: "weekly shop",
	})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)

	got, err := store.GetRecord(ctx, 1, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "Groceries", got.Category)
	require.True(t, got.Amount.Equal(rec.Amount))

	rec.Description = "monthly shop"
	updated, err := store.UpdateRecord(ctx, rec)
	require.NoError(t, err)
	require.Equal(t, "monthly shop", updated.Description)
	require.Equal(t, rec.CreatedAt, updated.CreatedAt)

	require.NoError(t, store.DeleteRecord(ctx, 1, rec.ID))
	require.ErrorIs(t, store.DeleteRecord(ctx, 1, rec.ID), storage.ErrNotFound)
}

func TestRecordOwnerScoping(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	rec, err := store.CreateRecord(ctx, models.Record{OwnerID: 1, Type: models.TypeIncome})
	require.NoError(t, err)

	// Another owner cannot see, update, or delete the record.
	_, err = store.GetRecord(ctx, 2, rec.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	rec.OwnerID = 2
	_, err = store.UpdateRecord(ctx, rec)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.ErrorIs(t, store.DeleteRecord(ctx, 2, rec.ID), storage.ErrNotFound)

	list, err := store.ListRecordsByOwner(ctx, 2)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestListNaturalOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	older := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	first, err := store.CreateRecord(ctx, models.Record{OwnerID: 1, Type: models.TypeExpense, Date: older})
	require.NoError(t, err)
	second, err := store.CreateRecord(ctx, models.Record{OwnerID: 1, Type: models.TypeExpense, Date: newer})
	require.NoError(t, err)

	list, err := store.ListRecordsByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)
}
