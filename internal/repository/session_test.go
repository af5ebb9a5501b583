package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-web/testing/suite"
)

func TestSessionRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, time.Minute)

	// Given: a session with a finished game
	snapshot := newSnapshot(t, 0, 3, 1, 4, 2)

	// When: Save is called
	err := sessionRepo.Save(ctx, "123", snapshot)

	// Then: no error should be returned, and the key expires
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "session:123").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// Given: a stored session
		snapshot := newSnapshot(t, 0, 3, 1, 4, 2)
		require.NoError(t, sessionRepo.Save(ctx, "123", snapshot))

		// When: GetByID is called with existing ID
		stored, err := sessionRepo.GetByID(ctx, "123")

		// Then: the stored session restores to the same game
		require.NoError(t, err)
		assert.Equal(t, snapshot.History, stored.History)
		assert.Equal(t, snapshot.Step, stored.Step)
		assert.Equal(t, snapshot.Tally, stored.Tally)

		restored, err := tictactoe.Restore(stored)
		require.NoError(t, err)
		assert.Equal(t, "Winner: X", restored.StatusText())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// When: GetByID is called with non-existent ID
		_, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// Given: a stored session
		require.NoError(t, sessionRepo.Save(ctx, "123", newSnapshot(t)))

		// When: DeleteByID is called with existing ID
		err := sessionRepo.DeleteByID(ctx, "123")

		// Then: no error should be returned and the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// When: DeleteByID is called with non-existent ID
		err := sessionRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
