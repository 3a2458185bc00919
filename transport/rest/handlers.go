package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/minimax"
)

const maxBodySize = 4 << 10

var ErrInvalidBoard = errors.New("board must have 9 cells")

type moveRequest struct {
	Board   []string `json:"board"`
	Player  string   `json:"player"`
	Bot     string   `json:"bot,omitempty"`
	Verbose bool     `json:"verbose,omitempty"`
}

type moveResponse struct {
	Status  string         `json:"status"`
	Index   *int           `json:"index,omitempty"`
	Score   *int           `json:"score,omitempty"`
	Moves   []minimax.Move `json:"moves,omitempty"`
	Winner  entity.Mark    `json:"winner,omitempty"`
	WinLine []int          `json:"win_line,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger *slog.Logger
}

func newHandlers(logger *slog.Logger) *handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
	}
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

// move answers with the bot's best move for the posted board, or with the result of a finished board.
func (that *handlers) move(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "move", "requestID", middleware.GetReqID(r.Context()))

	var req moveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	board, marks, err := req.parse()
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	if result := board.Result(); result != entity.EmptyCell {
		that.writeJSON(w, http.StatusOK, moveResponse{
			Status:  entity.StatusFinished,
			Winner:  result,
			WinLine: finishedLine(&board, result),
		})
		return
	}

	best := minimax.Search(&board, marks)
	resp := moveResponse{
		Status: entity.StatusOngoing,
		Index:  &best.Index,
		Score:  &best.Score,
	}

	if req.Verbose {
		resp.Moves = minimax.ScoreMoves(&board, marks)
	}

	log.Debug("move selected", "cell", best.Index, "score", best.Score)

	that.writeJSON(w, http.StatusOK, resp)
}

func (that *moveRequest) parse() (entity.Board, entity.Marks, error) {
	var board entity.Board

	if len(that.Board) != entity.BoardSize {
		return board, entity.Marks{}, fmt.Errorf("%w: got %d", ErrInvalidBoard, len(that.Board))
	}

	for i, value := range that.Board {
		cell, err := entity.ParseCell(value)
		if err != nil {
			return board, entity.Marks{}, fmt.Errorf("cell %d: %w", i, err)
		}
		board[i] = cell
	}

	human, err := entity.ParseMark(that.Player)
	if err != nil {
		return board, entity.Marks{}, fmt.Errorf("player: %w", err)
	}

	marks := entity.Marks{Human: human, Bot: entity.Opponent(human)}
	if that.Bot != "" {
		if marks.Bot, err = entity.ParseMark(that.Bot); err != nil {
			return board, entity.Marks{}, fmt.Errorf("bot: %w", err)
		}
	}

	if err = marks.Validate(); err != nil {
		return board, entity.Marks{}, err
	}

	return board, marks, nil
}

func finishedLine(board *entity.Board, result entity.Mark) []int {
	if result == entity.PlayerTie {
		return nil
	}

	game := &entity.Game{Board: *board}
	game.UpdateGameState()

	return game.WinLine
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, status int, err error) {
	that.logger.Debug("bad request", "error", err)
	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}
