package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/arya/athlete-insights/internal/domain"
	"github.com/arya/athlete-insights/internal/repository/postgres"
	"github.com/arya/athlete-insights/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformanceRepository_GetByUserID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	users := postgres.NewUserRepository(testDB.DB)
	repo := postgres.NewPerformanceRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, users)
	other, _ := testutil.NewUserBuilder().Build(t, users)

	base := time.Now().Add(-time.Hour)
	for i, speed := range []float64{5, 6, 7} {
		err := repo.Create(ctx, &domain.Performance{
			ID:        uuid.New(),
			UserID:    user.ID,
			Height:    170,
			Weight:    65,
			Speed:     speed,
			Stamina:   6,
			Accuracy:  8,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	err := repo.Create(ctx, &domain.Performance{
		ID:        uuid.New(),
		UserID:    other.ID,
		Speed:     9,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	t.Run("newest first, scoped to the user", func(t *testing.T) {
		got, err := repo.GetByUserID(ctx, user.ID, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, float64(7), got[0].Speed)
		assert.Equal(t, float64(5), got[2].Speed)
	})

	t.Run("limit caps the listing", func(t *testing.T) {
		got, err := repo.GetByUserID(ctx, user.ID, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, float64(7), got[0].Speed)
	})

	t.Run("count per user", func(t *testing.T) {
		count, err := repo.CountByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)

		count, err = repo.CountByUserID(ctx, other.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}

func TestPerformanceRepository_Leaderboard(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	users := postgres.NewUserRepository(testDB.DB)
	repo := postgres.NewPerformanceRepository(testDB.DB)
	ctx := context.Background()

	fast, _ := testutil.NewUserBuilder().
		WithFullName("Fast Athlete").
		Build(t, users)
	steady, _ := testutil.NewUserBuilder().
		WithFullName("Steady Athlete").
		Build(t, users)
	coach, _ := testutil.NewUserBuilder().
		WithFullName("Some Coach").
		WithRole(domain.RoleCoach).
		Build(t, users)

	record := func(userID uuid.UUID, speed, stamina, accuracy float64) {
		err := repo.Create(ctx, &domain.Performance{
			ID:        uuid.New(),
			UserID:    userID,
			Speed:     speed,
			Stamina:   stamina,
			Accuracy:  accuracy,
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	// fast averages (9+9+9)/3 = 9, steady averages across two rows:
	// ((6+6+6)/3 + (4+4+4)/3) / 2 = 5.
	record(fast.ID, 9, 9, 9)
	record(steady.ID, 6, 6, 6)
	record(steady.ID, 4, 4, 4)
	record(coach.ID, 10, 10, 10)

	entries, err := repo.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2, "coaches must not rank")

	assert.Equal(t, fast.ID, entries[0].UserID)
	assert.Equal(t, "Fast Athlete", entries[0].FullName)
	assert.InDelta(t, 9.0, entries[0].Score, 0.0001)

	assert.Equal(t, steady.ID, entries[1].UserID)
	assert.InDelta(t, 5.0, entries[1].Score, 0.0001)

	t.Run("limit truncates the board", func(t *testing.T) {
		top, err := repo.Leaderboard(ctx, 1)
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, fast.ID, top[0].UserID)
	})
}
