package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
	"github.com/pkordes/travel-planner/backend/testutil"
)

// newTestCalendarRepos returns both calendar repos backed by the same
// rolled-back transaction.
func newTestCalendarRepos(t *testing.T) (repo.HolidayCalendarRepo, repo.CustomDayRepo) {
	t.Helper()
	tx := testutil.NewTx(t)
	return repo.NewHolidayCalendarRepo(tx), repo.NewCustomDayRepo(tx)
}

// ---- HolidayCalendarRepo ---------------------------------------------------

func TestHolidayCalendarRepo_Enable_Duplicate(t *testing.T) {
	cals, _ := newTestCalendarRepos(t)
	ctx := context.Background()
	user := uuid.New()

	first, err := cals.Enable(ctx, user, "US", 2026)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Equal(t, "US", first.CountryCode)
	assert.Equal(t, 2026, first.Year)

	_, err = cals.Enable(ctx, user, "US", 2026)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = cals.Enable(ctx, user, "US", 2027)
	assert.NoError(t, err, "another year is a separate row")
}

func TestHolidayCalendarRepo_List_ByYear(t *testing.T) {
	cals, _ := newTestCalendarRepos(t)
	ctx := context.Background()
	user := uuid.New()

	for _, code := range []string{"GB", "DE"} {
		_, err := cals.Enable(ctx, user, code, 2026)
		require.NoError(t, err)
	}
	_, err := cals.Enable(ctx, user, "FR", 2027)
	require.NoError(t, err)
	_, err = cals.Enable(ctx, uuid.New(), "US", 2026)
	require.NoError(t, err)

	got, err := cals.List(ctx, user, 2026)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "DE", got[0].CountryCode)
	assert.Equal(t, "GB", got[1].CountryCode)
}

func TestHolidayCalendarRepo_Disable(t *testing.T) {
	cals, _ := newTestCalendarRepos(t)
	ctx := context.Background()
	user := uuid.New()

	_, err := cals.Enable(ctx, user, "US", 2026)
	require.NoError(t, err)

	require.NoError(t, cals.Disable(ctx, user, "US", 2026))

	got, err := cals.List(ctx, user, 2026)
	require.NoError(t, err)
	assert.Empty(t, got)

	err = cals.Disable(ctx, user, "US", 2026)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- CustomDayRepo ---------------------------------------------------------

func TestCustomDayRepo_Create(t *testing.T) {
	_, days := newTestCalendarRepos(t)
	user := uuid.New()

	got, err := days.Create(context.Background(), domain.CustomDay{
		UserID:    user,
		Name:      "Anniversary",
		Date:      time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		Recurring: true,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, user, got.UserID)
	assert.Equal(t, "Anniversary", got.Name)
	assert.True(t, got.Recurring)
	assert.Equal(t, time.September, got.Date.Month())
	assert.Equal(t, 12, got.Date.Day())
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCustomDayRepo_ListForYear(t *testing.T) {
	_, days := newTestCalendarRepos(t)
	ctx := context.Background()
	user := uuid.New()

	fixtures := []domain.CustomDay{
		{UserID: user, Name: "Birthday", Date: time.Date(2019, 11, 2, 0, 0, 0, 0, time.UTC), Recurring: true},
		{UserID: user, Name: "Offsite", Date: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)},
		{UserID: user, Name: "Last year", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{UserID: uuid.New(), Name: "Someone else", Date: time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, d := range fixtures {
		_, err := days.Create(ctx, d)
		require.NoError(t, err)
	}

	got, err := days.ListForYear(ctx, user, 2026)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Offsite", got[0].Name, "ordered by month and day")
	assert.Equal(t, "Birthday", got[1].Name)
}

func TestCustomDayRepo_Delete_ScopedToUser(t *testing.T) {
	_, days := newTestCalendarRepos(t)
	ctx := context.Background()
	user := uuid.New()

	created, err := days.Create(ctx, domain.CustomDay{
		UserID: user, Name: "Offsite", Date: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	err = days.Delete(ctx, uuid.New(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "other users cannot delete")

	require.NoError(t, days.Delete(ctx, user, created.ID))

	err = days.Delete(ctx, user, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
