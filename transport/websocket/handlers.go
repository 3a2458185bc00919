package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

var errNoActiveGame = errors.New("no active game")

func (that *Server) handleNewGame(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return sess.sendErrorResponse(msg.Action, err.Error())
	}

	mark, starter, err := that.gameOptions(payloadReq)
	if err != nil {
		return sess.sendErrorResponse(msg.Action, err.Error())
	}

	// a new game replaces the current one
	if sess.gameID != "" {
		if err = that.gameUseCase.EndGame(ctx, sess.gameID); err != nil {
			log.Warn("failed to end previous game", "gameID", sess.gameID, "error", err)
		}
		sess.gameID = ""
	}

	game, err := that.gameUseCase.StartGame(ctx, mark, starter)
	if err != nil {
		log.Error("failed to start game", "error", err)
		return sess.sendErrorResponse(msg.Action, "failed to create a new game")
	}

	sess.gameID = game.ID
	log = log.With("gameID", game.ID)

	if err = sess.sendGame(msg.Action, game); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("game started", "player", game.Marks.Human, "starter", game.Turn)

	if game.IsBotTurn() {
		return that.playBot(ctx, sess, that.conf.BotOpeningDelay)
	}

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn", "gameID", sess.gameID)

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return sess.sendErrorResponse(msg.Action, err.Error())
	}

	if payloadReq.Cell == nil {
		return sess.sendErrorResponse(msg.Action, "cell is required")
	}

	if sess.gameID == "" {
		return sess.sendErrorResponse(msg.Action, errNoActiveGame.Error())
	}

	game, err := that.gameUseCase.MakeTurn(ctx, sess.gameID, *payloadReq.Cell)
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		return sess.sendMessage(msg.Action, ResponsePayload{Game: game, Result: game.ResultText(), Error: err.Error()})
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, entity.ErrInvalidCell):
		return sess.sendErrorResponse(msg.Action, err.Error())
	case err != nil:
		log.Error("failed to make turn", "error", err)
		return sess.sendErrorResponse(msg.Action, "failed to make turn")
	}

	if err = sess.sendGame(msg.Action, game); err != nil {
		return fmt.Errorf("failed to send game update: %w", err)
	}

	if game.IsBotTurn() {
		return that.playBot(ctx, sess, that.conf.BotDelay)
	}

	return nil
}

func (that *Server) handleGameState(ctx context.Context, sess *session, msg *Message) error {
	if sess.gameID == "" {
		return sess.sendErrorResponse(msg.Action, errNoActiveGame.Error())
	}

	game, err := that.gameUseCase.GetGame(ctx, sess.gameID)
	if err != nil {
		that.logger.Error("failed to get game", "gameID", sess.gameID, "error", err)
		return sess.sendErrorResponse(msg.Action, "game doesn't exist")
	}

	return sess.sendGame(msg.Action, game)
}

func (that *Server) handleGameLeave(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleGameLeave", "gameID", sess.gameID)

	if sess.gameID == "" {
		return sess.sendErrorResponse(msg.Action, errNoActiveGame.Error())
	}

	game, err := that.gameUseCase.GetGame(ctx, sess.gameID)
	if err != nil {
		log.Error("failed to find game", "error", err)
		return sess.sendErrorResponse(msg.Action, "game doesn't exist")
	}

	if err = that.gameUseCase.EndGame(ctx, sess.gameID); err != nil {
		log.Error("failed to end game", "error", err)
		return sess.sendErrorResponse(msg.Action, "game doesn't exist")
	}

	sess.gameID = ""
	game.Status = gameStatusLeave

	log.Info("Player leaving")

	return sess.sendMessage(msg.Action, ResponsePayload{Game: game})
}

// playBot waits delay, applies the bot move and pushes the result as a game:turn update.
func (that *Server) playBot(ctx context.Context, sess *session, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	game, err := that.gameUseCase.BotTurn(ctx, sess.gameID)
	if err != nil {
		that.logger.Error("bot failed to make turn", "gameID", sess.gameID, "error", err)
		return sess.sendErrorResponse(actionGameTurn, "bot failed to make turn")
	}

	return sess.sendGame(actionGameTurn, game)
}

// gameOptions resolves the requested mark and starter, falling back to the configured defaults.
func (that *Server) gameOptions(payload RequestPayload) (entity.Mark, string, error) {
	markValue := payload.Mark
	if markValue == "" {
		markValue = that.conf.PlayerMark
	}

	mark, err := entity.ParseMark(markValue)
	if err != nil {
		return "", "", err
	}

	starterValue := payload.Starter
	if starterValue == "" {
		starterValue = that.conf.Starter
	}

	starter, err := entity.ParseStarter(starterValue)
	if err != nil {
		return "", "", err
	}

	return mark, starter, nil
}

func decodePayload(msg *Message) (RequestPayload, error) {
	var payloadReq RequestPayload
	if len(msg.Payload) == 0 {
		return payloadReq, nil
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return payloadReq, fmt.Errorf("invalid payload: %w", err)
	}

	return payloadReq, nil
}
