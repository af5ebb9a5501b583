package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

type memorySession struct {
	mu       sync.RWMutex
	sessions map[string]tictactoe.Snapshot
}

// NewMemorySessionRepository keeps sessions in process memory.
func NewMemorySessionRepository() SessionRepository {
	return &memorySession{
		sessions: make(map[string]tictactoe.Snapshot),
	}
}

func (that *memorySession) Save(_ context.Context, id string, snapshot tictactoe.Snapshot) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[id] = cloneSnapshot(snapshot)

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (tictactoe.Snapshot, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	snapshot, ok := that.sessions[id]
	if !ok {
		return tictactoe.Snapshot{}, apperror.ErrSessionNotFound
	}

	return cloneSnapshot(snapshot), nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

func cloneSnapshot(snapshot tictactoe.Snapshot) tictactoe.Snapshot {
	clone := snapshot
	clone.History = slices.Clone(snapshot.History)
	clone.Tally = slices.Clone(snapshot.Tally)

	return clone
}
