package repository

import (
	"context"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T, entityType domain.EntityType, owner, name string) *domain.Entity {
	t.Helper()
	e, err := domain.NewEntity(domain.NewEntityParams{
		Type:          entityType,
		Name:          name,
		OwnerID:       owner,
		Frequency:     3,
		RequiredValue: 2,
	}, time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	return e
}

// testEntityStore runs the behaviour every EntityStore backend must share.
func testEntityStore(t *testing.T, store domain.EntityStore) {
	ctx := context.Background()

	t.Run("Empty collection", func(t *testing.T) {
		list, err := store.ReadAll(ctx, domain.EntityTypeSkill)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("Write then read round trips the grid", func(t *testing.T) {
		e := newFixture(t, domain.EntityTypeHabit, "u1", "Stretch")
		require.NoError(t, e.Grid.ApplyCheckIn(0, 1, domain.CellStatusCompleted, 2))
		e.Grid[2][2].TargetValue = domain.Unbounded()

		require.NoError(t, store.WriteAll(ctx, domain.EntityTypeHabit, []*domain.Entity{e}))

		list, err := store.ReadAll(ctx, domain.EntityTypeHabit)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, e.ID, list[0].ID)
		assert.Equal(t, e.StartTime, list[0].StartTime)
		assert.Equal(t, domain.CellStatusCompleted, list[0].Grid[0][1].Status)
		assert.True(t, list[0].Grid[2][2].TargetValue.IsUnbounded())
		assert.Equal(t, e.Grid, list[0].Grid)
	})

	t.Run("Write replaces the whole collection", func(t *testing.T) {
		a := newFixture(t, domain.EntityTypeHabit, "u1", "A")
		b := newFixture(t, domain.EntityTypeHabit, "u2", "B")
		require.NoError(t, store.WriteAll(ctx, domain.EntityTypeHabit, []*domain.Entity{a, b}))
		require.NoError(t, store.WriteAll(ctx, domain.EntityTypeHabit, []*domain.Entity{b}))

		list, err := store.ReadAll(ctx, domain.EntityTypeHabit)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "B", list[0].Name)
	})

	t.Run("Collections are independent per type", func(t *testing.T) {
		s := newFixture(t, domain.EntityTypeSkill, "u1", "Piano")
		require.NoError(t, store.WriteAll(ctx, domain.EntityTypeSkill, []*domain.Entity{s}))

		habits, err := store.ReadAll(ctx, domain.EntityTypeHabit)
		require.NoError(t, err)
		for _, h := range habits {
			assert.NotEqual(t, "Piano", h.Name)
		}
	})

	t.Run("Readers get their own copy", func(t *testing.T) {
		first, err := store.ReadAll(ctx, domain.EntityTypeSkill)
		require.NoError(t, err)
		require.NotEmpty(t, first)
		first[0].Grid[0][0].CurrentValue = 99

		second, err := store.ReadAll(ctx, domain.EntityTypeSkill)
		require.NoError(t, err)
		assert.Zero(t, second[0].Grid[0][0].CurrentValue)
	})

	t.Run("Nil write stores an empty collection", func(t *testing.T) {
		require.NoError(t, store.WriteAll(ctx, domain.EntityTypeSkill, nil))

		list, err := store.ReadAll(ctx, domain.EntityTypeSkill)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestInMemoryEntityStore(t *testing.T) {
	testEntityStore(t, NewInMemoryEntityStore())
}

func TestSQLiteEntityStore(t *testing.T) {
	path := t.TempDir() + "/nested/heatmap.db"

	store, err := OpenSQLiteEntityStore(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Ping(context.Background()))
	testEntityStore(t, store)

	t.Run("Data survives reopening", func(t *testing.T) {
		e := newFixture(t, domain.EntityTypeHabit, "u1", "Persisted")
		require.NoError(t, store.WriteAll(context.Background(), domain.EntityTypeHabit, []*domain.Entity{e}))
		require.NoError(t, store.Close())

		reopened, err := OpenSQLiteEntityStore(path)
		require.NoError(t, err)
		defer reopened.Close()

		list, err := reopened.ReadAll(context.Background(), domain.EntityTypeHabit)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Persisted", list[0].Name)
	})
}

func TestDecodeEntities_Corrupted(t *testing.T) {
	_, err := decodeEntities([]byte("{not json"))
	assert.Error(t, err)

	list, err := decodeEntities([]byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, list)
}
