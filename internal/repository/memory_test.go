package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

func newSnapshot(t *testing.T, cells ...int) tictactoe.Snapshot {
	t.Helper()

	engine := tictactoe.New()
	for _, cell := range cells {
		require.True(t, engine.ApplyMove(cell))
	}

	return engine.Snapshot()
}

func TestMemorySessionRepository_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and returns a session", func(t *testing.T) {
		// Given: a memory repository and a snapshot
		repo := NewMemorySessionRepository()
		snapshot := newSnapshot(t, 0, 4)

		// When: the snapshot is saved and read back
		require.NoError(t, repo.Save(ctx, "abc", snapshot))
		stored, err := repo.GetByID(ctx, "abc")

		// Then: the same snapshot should be returned
		require.NoError(t, err)
		assert.Equal(t, snapshot, stored)
	})

	t.Run("Stored snapshot is isolated from the caller", func(t *testing.T) {
		// Given: a saved snapshot
		repo := NewMemorySessionRepository()
		snapshot := newSnapshot(t, 0)
		require.NoError(t, repo.Save(ctx, "abc", snapshot))

		// When: the caller modifies both its copy and a read copy
		snapshot.History[1][0] = entity.MarkO
		read, err := repo.GetByID(ctx, "abc")
		require.NoError(t, err)
		read.History[1][1] = entity.MarkO

		// Then: the stored session is unchanged
		stored, err := repo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, entity.Board{entity.MarkX}, stored.History[1])
	})
}

func TestMemorySessionRepository_GetByID(t *testing.T) {
	// Given: an empty repository
	repo := NewMemorySessionRepository()

	// When: reading an unknown session
	_, err := repo.GetByID(context.Background(), "missing")

	// Then: ErrSessionNotFound should be returned
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestMemorySessionRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes a session", func(t *testing.T) {
		// Given: a stored session
		repo := NewMemorySessionRepository()
		require.NoError(t, repo.Save(ctx, "abc", newSnapshot(t)))

		// When: the session is deleted
		err := repo.DeleteByID(ctx, "abc")

		// Then: it can no longer be read
		require.NoError(t, err)
		_, err = repo.GetByID(ctx, "abc")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Unknown session returns ErrSessionNotFound", func(t *testing.T) {
		// Given: an empty repository
		repo := NewMemorySessionRepository()

		// When: deleting an unknown session
		err := repo.DeleteByID(ctx, "missing")

		// Then: ErrSessionNotFound should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
