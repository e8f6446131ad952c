package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdviceRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteAdviceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	entry := testutil.NewTestAdviceEntry(
		testutil.WithRole(domain.RoleCarerQuestion),
		testutil.WithQuestion("Can she drive?"),
	)
	require.NoError(t, repo.Create(ctx, entry))

	fetched, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, fetched.ID)
	assert.Equal(t, domain.RoleCarerQuestion, fetched.Role)
	assert.Equal(t, "Can she drive?", fetched.Question)
	assert.Equal(t, entry.Prompt, fetched.Prompt)
	assert.Equal(t, entry.Response, fetched.Response)
	assert.Equal(t, "gpt-4", fetched.Model)
	assert.Equal(t, int64(1200), fetched.LatencyMs)
	assert.Equal(t, entry.Timeline, fetched.Timeline)
	assert.Equal(t, "Breast cancer", fetched.Record.Diagnosis)
	require.NotNil(t, fetched.Record.Age)
	assert.Equal(t, 68, *fetched.Record.Age)
	assert.True(t, entry.CreatedAt.Equal(fetched.CreatedAt))
}

func TestAdviceRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteAdviceRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdviceRepo_ListRecentNewestFirst(t *testing.T) {
	repo := NewSQLiteAdviceRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 4; i++ {
		e := testutil.NewTestAdviceEntry(testutil.WithCreatedAt(base.Add(time.Duration(i) * time.Hour)))
		require.NoError(t, repo.Create(ctx, e))
		ids = append(ids, e.ID)
	}

	entries, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, ids[3], entries[0].ID)
	assert.Equal(t, ids[2], entries[1].ID)
	assert.Equal(t, ids[1], entries[2].ID)

	all, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestAdviceRepo_ListRecentOrdersWithinOneSecond(t *testing.T) {
	repo := NewSQLiteAdviceRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	// .1s and .12s render as "00.1Z" and "00.12Z" in RFC3339Nano, which sort backwards.
	earlier := testutil.NewTestAdviceEntry(testutil.WithCreatedAt(base.Add(100 * time.Millisecond)))
	later := testutil.NewTestAdviceEntry(testutil.WithCreatedAt(base.Add(120 * time.Millisecond)))
	whole := testutil.NewTestAdviceEntry(testutil.WithCreatedAt(base))
	require.NoError(t, repo.Create(ctx, earlier))
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, whole))

	entries, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, later.ID, entries[0].ID)
	assert.Equal(t, earlier.ID, entries[1].ID)
	assert.Equal(t, whole.ID, entries[2].ID)
	assert.True(t, later.CreatedAt.Equal(entries[0].CreatedAt))
}

func TestFormatTime_FixedWidth(t *testing.T) {
	a := formatTime(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	b := formatTime(time.Date(2025, 6, 1, 8, 0, 0, 120_000_000, time.UTC))
	assert.Len(t, b, len(a))
	assert.Less(t, a, b)

	parsed, err := parseTime(b)
	require.NoError(t, err)
	assert.Equal(t, 120_000_000, parsed.Nanosecond())
}

func TestAdviceRepo_ListRecentEmpty(t *testing.T) {
	repo := NewSQLiteAdviceRepo(testutil.NewTestDB(t))

	entries, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAdviceRepo_ListByRole(t *testing.T) {
	repo := NewSQLiteAdviceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestAdviceEntry(testutil.WithRole(domain.RolePatientAdvice))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAdviceEntry(testutil.WithRole(domain.RoleCarerAdvice))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAdviceEntry(testutil.WithRole(domain.RolePatientAdvice))))

	entries, err := repo.ListByRole(ctx, domain.RolePatientAdvice, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, domain.RolePatientAdvice, e.Role)
	}
}

func TestAdviceRepo_Delete(t *testing.T) {
	repo := NewSQLiteAdviceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := testutil.NewTestAdviceEntry()
	require.NoError(t, repo.Create(ctx, e))
	require.NoError(t, repo.Delete(ctx, e.ID))

	_, err := repo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, e.ID), ErrNotFound)
}

func TestAdviceRepo_PreservesUnicodeResponse(t *testing.T) {
	repo := NewSQLiteAdviceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := testutil.NewTestAdviceEntry(testutil.WithResponse("✅ Keep the dressing dry — change daily.\n\n**Note**: <none>"))
	require.NoError(t, repo.Create(ctx, e))

	fetched, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Response, fetched.Response)
}
