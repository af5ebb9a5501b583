package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

func (that *Server) handleConnect(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleConnect", "sessionID", c.sessionID)

	session, err := that.sessions.Get(ctx, c.sessionID)
	if err != nil {
		log.Error("failed to get session", "error", err)
		return c.sendErrorResponse(msg.Action, "failed to get the session")
	}

	view := session.Engine.View()

	payload := ResponsePayload{
		SessionID: session.ID,
		View:      &view,
	}

	if err = c.sendMessage(msg.Action, payload); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected session")

	return nil
}

func (that *Server) handleMove(ctx context.Context, c *client, msg *Message) error {
	var payloadReq MovePayload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return c.sendErrorResponse(msg.Action, "invalid payload")
	}

	if payloadReq.Cell == nil {
		return c.sendErrorResponse(msg.Action, "cell is required")
	}

	view, err := that.sessions.Move(ctx, c.sessionID, *payloadReq.Cell)

	return that.respond(c, msg.Action, view, err)
}

func (that *Server) handleJump(ctx context.Context, c *client, msg *Message) error {
	var payloadReq JumpPayload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return c.sendErrorResponse(msg.Action, "invalid payload")
	}

	if payloadReq.Step == nil {
		return c.sendErrorResponse(msg.Action, "step is required")
	}

	view, err := that.sessions.Jump(ctx, c.sessionID, *payloadReq.Step)

	return that.respond(c, msg.Action, view, err)
}

func (that *Server) handleName(ctx context.Context, c *client, msg *Message) error {
	var payloadReq NamePayload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return c.sendErrorResponse(msg.Action, "invalid payload")
	}

	if payloadReq.Name == nil {
		return c.sendErrorResponse(msg.Action, "name is required")
	}

	view, err := that.sessions.Rename(ctx, c.sessionID, payloadReq.Mark, *payloadReq.Name)

	return that.respond(c, msg.Action, view, err)
}

// respond sends the view, or the error when the action failed. Validation
// errors are shown to the client, anything else is logged.
func (that *Server) respond(c *client, action string, view tictactoe.View, err error) error {
	switch {
	case err == nil:
		return c.sendView(action, view)
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidStep),
		errors.Is(err, apperror.ErrInvalidMark):
		return c.sendErrorResponse(action, err.Error())
	case errors.Is(err, apperror.ErrSessionNotFound):
		return c.sendErrorResponse(action, "session expired, reload the page")
	default:
		that.logger.Error("action failed", "action", action, "sessionID", c.sessionID, "error", err)
		return c.sendErrorResponse(action, "internal error")
	}
}
