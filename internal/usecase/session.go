package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

type SessionUseCase interface {
	Open(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Close(ctx context.Context, id string) error

	Move(ctx context.Context, id string, cell int) (tictactoe.View, error)
	Jump(ctx context.Context, id string, step int) (tictactoe.View, error)
	Rename(ctx context.Context, id string, mark entity.Mark, name string) (tictactoe.View, error)
}

type sessionRepoDep interface {
	Save(ctx context.Context, id string, snapshot tictactoe.Snapshot) error
	GetByID(ctx context.Context, id string) (tictactoe.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

// Session is the game state of one page load.
type Session struct {
	ID     string
	Engine *tictactoe.Engine
}

// Names used for the players of new sessions.
type Names struct {
	X string
	O string
}

type sessionUseCase struct {
	logger *slog.Logger

	sessionRepo sessionRepoDep
	names       Names
}

func NewSessionUseCase(logger *slog.Logger, sessionRepo sessionRepoDep, names Names) SessionUseCase {
	return &sessionUseCase{
		logger:      logger.With("component", "session"),
		sessionRepo: sessionRepo,
		names:       names,
	}
}

func (that *sessionUseCase) Open(ctx context.Context) (*Session, error) {
	session := &Session{
		ID:     uuid.NewString(),
		Engine: tictactoe.New(tictactoe.WithPlayerNames(that.names.X, that.names.O)),
	}

	if err := that.sessionRepo.Save(ctx, session.ID, session.Engine.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to save new session: %w", err)
	}

	that.logger.Debug("session opened", "sessionID", session.ID)

	return session, nil
}

func (that *sessionUseCase) Get(ctx context.Context, id string) (*Session, error) {
	snapshot, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	engine, err := tictactoe.Restore(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", id, err)
	}

	return &Session{ID: id, Engine: engine}, nil
}

func (that *sessionUseCase) Close(ctx context.Context, id string) error {
	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Debug("session closed", "sessionID", id)

	return nil
}

func (that *sessionUseCase) Move(ctx context.Context, id string, cell int) (tictactoe.View, error) {
	if !entity.IsValidCell(cell) {
		return tictactoe.View{}, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	return that.update(ctx, id, "move", func(engine *tictactoe.Engine) (string, error) {
		switch {
		case engine.Winner() != entity.MarkEmpty:
			return "game already won", nil
		case !engine.ApplyMove(cell):
			return "cell occupied", nil
		}

		return "", nil
	})
}

func (that *sessionUseCase) Jump(ctx context.Context, id string, step int) (tictactoe.View, error) {
	return that.update(ctx, id, "jump", func(engine *tictactoe.Engine) (string, error) {
		if !engine.JumpTo(step) {
			return "", fmt.Errorf("%w: step %d of %d", apperror.ErrInvalidStep, step, engine.HistoryLen())
		}

		return "", nil
	})
}

func (that *sessionUseCase) Rename(ctx context.Context, id string, mark entity.Mark, name string) (tictactoe.View, error) {
	if !mark.IsPlayer() {
		return tictactoe.View{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	return that.update(ctx, id, "rename", func(engine *tictactoe.Engine) (string, error) {
		engine.SetPlayerName(mark, name)
		return "", nil
	})
}

// update loads the session, applies action and stores the result. An action
// the engine ignored reports why instead; it is logged and the unchanged view
// is returned.
func (that *sessionUseCase) update(
	ctx context.Context,
	id, method string,
	action func(engine *tictactoe.Engine) (ignored string, err error),
) (tictactoe.View, error) {
	log := that.logger.With("method", method, "sessionID", id)

	session, err := that.Get(ctx, id)
	if err != nil {
		return tictactoe.View{}, err
	}

	ignored, err := action(session.Engine)
	if err != nil {
		return tictactoe.View{}, err
	}

	if ignored != "" {
		log.Debug("action ignored", "reason", ignored, "step", session.Engine.Step())
		return session.Engine.View(), nil
	}

	if err = that.sessionRepo.Save(ctx, id, session.Engine.Snapshot()); err != nil {
		return tictactoe.View{}, fmt.Errorf("failed to save session: %w", err)
	}

	log.Debug("action applied", "step", session.Engine.Step())

	return session.Engine.View(), nil
}
