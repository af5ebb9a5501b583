package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

const (
	maxMessageSize  = 4096
	shutdownTimeout = 5 * time.Second
)

var errUnsupportedMessage = errors.New("unsupported message")

type sessionUseCase interface {
	Open(ctx context.Context) (*usecase.Session, error)
	Get(ctx context.Context, id string) (*usecase.Session, error)
	Close(ctx context.Context, id string) error

	Move(ctx context.Context, id string, cell int) (tictactoe.View, error)
	Jump(ctx context.Context, id string, step int) (tictactoe.View, error)
	Rename(ctx context.Context, id string, mark entity.Mark, name string) (tictactoe.View, error)
}

type handlerFunc func(ctx context.Context, client *client, msg *Message) error

// client is one browser page. Its session lives as long as the connection.
type client struct {
	conn      *websocket.Conn
	sessionID string
}

type Server struct {
	logger   *slog.Logger
	sessions sessionUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, sessions sessionUseCase) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the page is served from the HTTP port, so origins never match
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handlerFunc{
		ActionConnect: server.handleConnect,
		ActionMove:    server.handleMove,
		ActionJump:    server.handleJump,
		ActionName:    server.handleName,
	}

	return server
}

// Handler returns the HTTP handler serving the /ws endpoint.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and opens a session for it.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	ctx := req.Context()

	// hijacked connections outlive srv.Shutdown
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	session, err := that.sessions.Open(ctx)
	if err != nil {
		log.Error("failed to open session", "error", err)
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "failed to open session"))
		return
	}

	log = log.With("sessionID", session.ID)
	log.Info("WebSocket connection established")

	defer func() {
		// the page is gone, so is its game
		if err := that.sessions.Close(context.WithoutCancel(ctx), session.ID); err != nil {
			log.Error("failed to close session", "error", err)
		}

		log.Info("WebSocket connection closed")
	}()

	c := &client{conn: conn, sessionID: session.ID}

	if err = that.handleMessages(ctx, c); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages", "sessionID", c.sessionID)

	for {
		message, err := c.readMessage()
		if errors.Is(err, errUnsupportedMessage) {
			log.Warn("skipping message", "error", err)
			continue
		}

		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err = c.sendErrorResponse(message.Action, "unknown action"); err != nil {
				return err
			}

			continue
		}

		if err = handler(ctx, c, message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}
