package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cutiepie25/FinSight/factory"
	"github.com/cutiepie25/FinSight/store/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleLoan(id, name string) sqlite.SavedLoan {
	return sqlite.SavedLoan{
		ID:   id,
		Name: name,
		Loan: factory.LoanJSON{
			Principal:        100000,
			Rate:             12,
			RateBasis:        "nominal",
			RateTiming:       "due",
			RateFrequency:    "monthly",
			TermMonths:       12,
			PaymentFrequency: "monthly",
			StartDate:        "2025-01-15",
		},
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLoan(ctx, sampleLoan("loan-1", "First mortgage")))

	got, err := store.GetLoan(ctx, "loan-1")
	require.NoError(t, err)
	assert.Equal(t, "First mortgage", got.Name)
	assert.Equal(t, 100000.0, got.Loan.Principal)
	assert.Equal(t, "nominal", got.Loan.RateBasis)
	assert.Equal(t, "2025-01-15", got.Loan.StartDate)
	assert.False(t, got.CreatedAt.IsZero())

	// The stored definition parses straight back into engine inputs.
	loan, err := factory.ParseLoan(got.Loan)
	require.NoError(t, err)
	assert.Equal(t, 12, loan.Terms.Periods)
}

func TestStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetLoan(context.Background(), "nope")
	assert.True(t, errors.Is(err, sqlite.ErrLoanNotFound))
}

func TestStore_ListAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLoan(ctx, sampleLoan("loan-1", "A")))
	require.NoError(t, store.SaveLoan(ctx, sampleLoan("loan-2", "B")))

	loans, err := store.ListLoans(ctx)
	require.NoError(t, err)
	assert.Len(t, loans, 2)

	require.NoError(t, store.DeleteLoan(ctx, "loan-1"))
	loans, err = store.ListLoans(ctx)
	require.NoError(t, err)
	assert.Len(t, loans, 1)
	assert.Equal(t, "loan-2", loans[0].ID)

	err = store.DeleteLoan(ctx, "loan-1")
	assert.True(t, errors.Is(err, sqlite.ErrLoanNotFound))
}

func TestStore_Reset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLoan(ctx, sampleLoan("loan-1", "A")))
	require.NoError(t, store.Reset(ctx))

	loans, err := store.ListLoans(ctx)
	require.NoError(t, err)
	assert.Empty(t, loans)
}
