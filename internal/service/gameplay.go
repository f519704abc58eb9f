package service

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactelnet-backend/internal/entity"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/metrics"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/terminal"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/tictactoe"
)

type roomRemover interface {
	Remove(code string)
}

// GameplayService drives one started room from its first turn to a terminal
// verdict and tears the room down afterwards.
type GameplayService struct {
	logger *slog.Logger
	rooms  roomRemover
}

func NewGameplayService(logger *slog.Logger, rooms roomRemover) *GameplayService {
	return &GameplayService{
		logger: logger.With("component", "gameplay"),
		rooms:  rooms,
	}
}

// Run loops until the room finishes. Exactly one goroutine runs a room, and
// only the active participant's stream is read during a turn, so every state
// transition is serialized.
func (that *GameplayService) Run(room *entity.Room) {
	log := that.logger.With("code", room.Code)
	log.Info("game started", "creator", room.Creator.ID, "joiner", room.Joiner.ID)

	for room.IsOngoing() {
		active := room.ParticipantByMark(room.Turn)
		waiting := that.opponentOf(room, active)

		if err := active.Conn.WriteString(that.activeView(room)); err != nil {
			that.finishForfeit(log, room, waiting, active)
			return
		}

		if err := waiting.Conn.WriteString(that.waitingView(room, waiting.Mark)); err != nil {
			that.finishForfeit(log, room, active, waiting)
			return
		}

		token, err := active.Conn.ReadLine()
		if err != nil {
			that.finishForfeit(log, room, waiting, active)
			return
		}

		cell, err := tictactoe.ParseMove(token)
		if err != nil {
			log.Debug("move token rejected", "player", active.ID, "token", token)
			continue
		}

		if err := tictactoe.MakeTurn(room, active.Mark, cell); err != nil {
			log.Debug("move rejected", "player", active.ID, "cell", cell, "error", err)
			continue
		}
	}

	that.finishPlayed(log, room)
}

// finishPlayed announces the verdict to both participants and tears the room down.
func (that *GameplayService) finishPlayed(log *slog.Logger, room *entity.Room) {
	board := tictactoe.FormatBoard(room.Board)

	if room.Winner == entity.MarkTie {
		msg := terminal.ClearScreen +
			terminal.Yellow + "it was a tie!!!!!" + terminal.Reset + "\r\n\r\n" +
			board + "\r\n\r\ngoodbye!\r\n"
		_ = room.Creator.Conn.WriteString(msg)
		_ = room.Joiner.Conn.WriteString(msg)

		that.teardown(room, "tie")
		log.Info("game finished", "verdict", "tie")
		return
	}

	winner := room.ParticipantByMark(room.Winner)
	loser := that.opponentOf(room, winner)

	_ = winner.Conn.WriteString(terminal.ClearScreen +
		terminal.Green + "you win!!!!!" + terminal.Reset + "\r\n\r\n" +
		board + "\r\n\r\ngoodbye!\r\n")
	_ = loser.Conn.WriteString(terminal.ClearScreen +
		terminal.Red + "you lose!!!!!" + terminal.Reset + "\r\n\r\n" +
		board + "\r\n\r\ngoodbye!\r\n")

	that.teardown(room, room.Winner)
	log.Info("game finished", "verdict", room.Winner)
}

// finishForfeit ends the game when one stream breaks mid-game: the survivor
// wins and the room is torn down like any finished game.
func (that *GameplayService) finishForfeit(log *slog.Logger, room *entity.Room, survivor, gone *entity.Participant) {
	room.Winner = survivor.Mark
	room.Status = entity.StatusFinished

	_ = survivor.Conn.WriteString(terminal.ClearScreen +
		terminal.Green + "your opponent disconnected, you win!!!!!" + terminal.Reset +
		"\r\n\r\ngoodbye!\r\n")

	that.teardown(room, "forfeit")
	log.Info("game finished", "verdict", "forfeit", "winner", survivor.ID, "disconnected", gone.ID)
}

func (that *GameplayService) teardown(room *entity.Room, verdict string) {
	_ = room.Creator.Conn.Close()
	_ = room.Joiner.Conn.Close()

	that.rooms.Remove(room.Code)
	metrics.GamesFinished.WithLabelValues(verdict).Inc()
}

func (that *GameplayService) opponentOf(room *entity.Room, participant *entity.Participant) *entity.Participant {
	if participant == room.Creator {
		return room.Joiner
	}
	return room.Creator
}

func (that *GameplayService) activeView(room *entity.Room) string {
	return terminal.ClearScreen +
		"it is your turn\r\n" +
		fmt.Sprintf("you are %s%s%s\r\n\r\n", terminal.Bold, room.Turn, terminal.Reset) +
		tictactoe.FormatBoard(room.Board) +
		fmt.Sprintf("\r\n\r\nmake your move (enter the number or row+number of your %s%s%s)\r\n> ",
			terminal.Bold, room.Turn, terminal.Reset)
}

func (that *GameplayService) waitingView(room *entity.Room, mark string) string {
	return terminal.ClearScreen +
		"it is their turn\r\n" +
		fmt.Sprintf("you are %s%s%s\r\n\r\n", terminal.Bold, mark, terminal.Reset) +
		tictactoe.FormatBoard(room.Board) +
		"\r\n\r\nwaiting for opponent..."
}
