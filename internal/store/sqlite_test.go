package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_GetRating_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	r, err := st.GetRating(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestSQLite_UpsertRating_Create(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	r, err := st.UpsertRating(ctx, "b1", "Cafe X", 4, "Great")
	require.NoError(t, err)
	require.NotNil(t, r)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "b1", r.BusinessID)
	assert.Equal(t, "Cafe X", r.BusinessName)
	assert.Equal(t, 4, r.UserRating)
	assert.Equal(t, "Great", r.UserReview)
	assert.False(t, r.VisitedDate.IsZero())
	assert.True(t, r.UpdatedAt.Equal(r.VisitedDate))
}

func TestSQLite_UpsertRating_UpdateInPlace(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	first, err := st.UpsertRating(ctx, "b1", "Cafe X", 4, "Great")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second, err := st.UpsertRating(ctx, "b1", "Cafe X", 2, "")
	require.NoError(t, err)

	// Same row, updated fields, original visited date.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.UserRating)
	assert.Equal(t, "", second.UserReview)
	assert.True(t, second.VisitedDate.Equal(first.VisitedDate))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	// The store still holds exactly one record for the business.
	ratings, err := st.ListRatings(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 2, ratings[0].UserRating)
}

func TestSQLite_UpsertRating_Validation(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	tests := []struct {
		name         string
		businessID   string
		businessName string
		rating       int
	}{
		{"missing id", "", "Cafe X", 3},
		{"missing name", "b1", "", 3},
		{"rating too low", "b1", "Cafe X", 0},
		{"rating too high", "b1", "Cafe X", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := st.UpsertRating(ctx, tt.businessID, tt.businessName, tt.rating, "")
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}

	// Nothing was written.
	ratings, err := st.ListRatings(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, ratings)
}

func TestSQLite_UpsertRating_ConcurrentSameBusiness(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := st.UpsertRating(ctx, "contended", "Cafe X", n%5+1, "")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	ratings, err := st.ListRatings(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, "contended", ratings[0].BusinessID)
}

func TestSQLite_ListRatings_OrderedByVisitedDateDesc(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertRating(ctx, "older", "First Place", 3, "")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = st.UpsertRating(ctx, "newer", "Second Place", 5, "")
	require.NoError(t, err)

	ratings, err := st.ListRatings(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, "newer", ratings[0].BusinessID)
	assert.Equal(t, "older", ratings[1].BusinessID)
}

func TestSQLite_ListRatings_UpdateDoesNotReorder(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertRating(ctx, "older", "First Place", 3, "")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = st.UpsertRating(ctx, "newer", "Second Place", 5, "")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	// Updating the older rating must not move it to the top: ordering is by
	// creation time, not updated_at.
	_, err = st.UpsertRating(ctx, "older", "First Place", 1, "changed my mind")
	require.NoError(t, err)

	ratings, err := st.ListRatings(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, "newer", ratings[0].BusinessID)
	assert.Equal(t, "older", ratings[1].BusinessID)
	assert.Equal(t, 1, ratings[1].UserRating)
}

func TestSQLite_ListRatings_LimitOffset(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := st.UpsertRating(ctx, fmt.Sprintf("b%d", i), fmt.Sprintf("Place %d", i), 3, "")
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	top, err := st.ListRatings(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "b2", top[0].BusinessID)

	next, err := st.ListRatings(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, "b1", next[0].BusinessID)
}

func TestSQLite_ListRatings_NegativeArgsRejected(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.ListRatings(ctx, -1, 0)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = st.ListRatings(ctx, 0, -1)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
