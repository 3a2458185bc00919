// Package minimax picks the bot's move by exhaustive game-tree search.
//
// Scores are not decayed by depth and ties go to the lowest index, so the
// chosen move for a given board is fully deterministic.
package minimax

import "github.com/rocketscienceinc/tictactoe-bot/internal/entity"

// NoMove is the index returned for a board that is already terminal.
const NoMove = -1

const (
	WinScore  = 10
	LossScore = -10
	DrawScore = 0
)

// Move is a board index with the score minimax assigned to it.
type Move struct {
	Index int `json:"index"`
	Score int `json:"score"`
}

// SelectBestMove returns the index of the bot's best move, or NoMove when the board is terminal.
func SelectBestMove(board *entity.Board, marks entity.Marks) int {
	return Search(board, marks).Index
}

// Search returns the bot's best move together with its score.
// The board is mutated during the search and restored before returning.
func Search(board *entity.Board, marks entity.Marks) Move {
	return search(board, marks, marks.Bot)
}

// ScoreMoves scores every legal move of the bot in ascending index order.
func ScoreMoves(board *entity.Board, marks entity.Marks) []Move {
	if _, ok := terminalScore(board, marks); ok {
		return nil
	}

	moves := board.LegalMoves()
	scored := make([]Move, 0, len(moves))
	for _, index := range moves {
		scored = append(scored, Move{Index: index, Score: scoreAfter(board, marks, index, marks.Bot)})
	}

	return scored
}

func search(board *entity.Board, marks entity.Marks, acting entity.Mark) Move {
	if score, ok := terminalScore(board, marks); ok {
		return Move{Index: NoMove, Score: score}
	}

	var best Move
	found := false
	for _, index := range board.LegalMoves() {
		score := scoreAfter(board, marks, index, acting)

		if !found || improves(score, best.Score, acting == marks.Bot) {
			best = Move{Index: index, Score: score}
			found = true
		}
	}

	return best
}

// scoreAfter places acting on index, scores the position with the opponent to move and undoes the placement.
func scoreAfter(board *entity.Board, marks entity.Marks, index int, acting entity.Mark) int {
	board[index] = acting
	score := search(board, marks, opponentOf(marks, acting)).Score
	board[index] = entity.EmptyCell

	return score
}

// terminalScore checks the human win first, then the bot win, then a full board.
func terminalScore(board *entity.Board, marks entity.Marks) (int, bool) {
	switch {
	case board.HasWin(marks.Human):
		return LossScore, true
	case board.HasWin(marks.Bot):
		return WinScore, true
	case board.IsFull():
		return DrawScore, true
	default:
		return 0, false
	}
}

func improves(score, best int, maximizing bool) bool {
	if maximizing {
		return score > best
	}

	return score < best
}

func opponentOf(marks entity.Marks, acting entity.Mark) entity.Mark {
	if acting == marks.Bot {
		return marks.Human
	}

	return marks.Bot
}
