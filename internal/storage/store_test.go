package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

func backends(t *testing.T) map[string]domain.StateStore {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)

	sqlite, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "state.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]domain.StateStore{
		"memory": NewMemoryStore(log),
		"sqlite": sqlite,
	}
}

func TestStoreCRUD(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			state := domain.WizardState{
				BrewMethod:  domain.MethodAeroPress,
				RoastLevel:  domain.RoastMedium,
				CurrentStep: domain.StepGrinder,
			}

			// Save.
			require.NoError(t, store.Save(ctx, "s1", state))

			// Load.
			loaded, err := store.Load(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, state, loaded)

			// Overwrite.
			g := domain.Grinder{ID: "1zpresso-jx", Name: "JX", Brand: "1Zpresso", Type: domain.GrinderManual}
			state.Grinder = &g
			state.CurrentStep = domain.StepResults
			require.NoError(t, store.Save(ctx, "s1", state))
			loaded, err = store.Load(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, state, loaded)

			// Load nonexistent.
			_, err = store.Load(ctx, "nonexistent")
			assert.True(t, errors.Is(err, domain.ErrNotFound))

			// Delete.
			require.NoError(t, store.Delete(ctx, "s1"))
			_, err = store.Load(ctx, "s1")
			assert.True(t, errors.Is(err, domain.ErrNotFound))

			// Delete nonexistent.
			assert.True(t, errors.Is(store.Delete(ctx, "s1"), domain.ErrNotFound))
		})
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	log := logger.New(logger.LevelOff, nil)
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := OpenSQLite(ctx, path, log)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, "keep", domain.WizardState{BrewMethod: domain.MethodMoka, CurrentStep: domain.StepRoast}))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(ctx, path, log)
	require.NoError(t, err)
	defer second.Close()

	state, err := second.Load(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, domain.MethodMoka, state.BrewMethod)
	assert.Equal(t, domain.StepRoast, state.CurrentStep)
}
