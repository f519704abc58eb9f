package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactelnet-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/entity"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/terminal"
)

type roomRegistry interface {
	Create(creator *entity.Participant) (*entity.Room, error)
	Join(code string, joiner *entity.Participant) (*entity.Room, error)
	Abandon(code string) bool
}

type gameRunner interface {
	Run(room *entity.Room)
}

// MatchmakerService owns a connection from the menu until matchmaking
// completes: creators wait for an opponent or time out, joiners attach by
// room code. Once a room starts, the creator's goroutine runs the game and
// the room owns both streams.
type MatchmakerService struct {
	logger       *slog.Logger
	rooms        roomRegistry
	gameplay     gameRunner
	banner       string
	opponentWait time.Duration
}

func NewMatchmakerService(logger *slog.Logger, rooms roomRegistry, gameplay gameRunner, banner string, opponentWait time.Duration) *MatchmakerService {
	return &MatchmakerService{
		logger:       logger.With("component", "matchmaker"),
		rooms:        rooms,
		gameplay:     gameplay,
		banner:       banner,
		opponentWait: opponentWait,
	}
}

// HandleSession runs the menu state machine for one fresh connection.
func (that *MatchmakerService) HandleSession(ctx context.Context, conn entity.Conn) {
	greeting := terminal.ClearScreen + that.banner +
		"\r\ntype 1 to join a room\r\ntype 2 to create a room\r\n> "
	if err := conn.WriteString(greeting); err != nil {
		_ = conn.Close()
		return
	}

	choice, err := conn.ReadLine()
	if err != nil {
		_ = conn.Close()
		return
	}

	switch choice {
	case "1":
		that.joinRoom(conn)
	case "2":
		that.createRoom(ctx, conn)
	default:
		_ = conn.WriteString("invalid answer, goodbye!\r\n")
		_ = conn.Close()
	}
}

func (that *MatchmakerService) createRoom(ctx context.Context, conn entity.Conn) {
	creator := &entity.Participant{ID: uuid.NewString(), Mark: entity.MarkX, Conn: conn}

	room, err := that.rooms.Create(creator)
	if err != nil {
		that.logger.Warn("room creation rejected", "error", err)
		_ = conn.WriteString(terminal.ClearScreen +
			"your room code collided with another active room, goodbye!\r\n")
		_ = conn.Close()
		return
	}

	msg := terminal.ClearScreen +
		fmt.Sprintf("your room code is: %s%s%s\r\n", terminal.Bold, room.Code, terminal.Reset) +
		"share this with the person you want to play with\r\n" +
		"waiting for opponent..."
	if err = conn.WriteString(msg); err != nil {
		if that.rooms.Abandon(room.Code) {
			_ = conn.Close()
			return
		}
		// a joiner already attached; let the game surface the dead stream
	}

	timer := time.NewTimer(that.opponentWait)
	defer timer.Stop()

	select {
	case <-room.Joined():
		that.gameplay.Run(room)
	case <-timer.C:
		if !that.rooms.Abandon(room.Code) {
			// the join won the race against the timer
			<-room.Joined()
			that.gameplay.Run(room)
			return
		}
		_ = conn.WriteString(terminal.ClearScreen +
			fmt.Sprintf("nobody joined your room in %s, goodbye!\r\n", that.opponentWait))
		_ = conn.Close()
	case <-ctx.Done():
		if !that.rooms.Abandon(room.Code) {
			<-room.Joined()
			that.gameplay.Run(room)
			return
		}
		_ = conn.WriteString("\r\nserver is shutting down, goodbye!\r\n")
		_ = conn.Close()
	}
}

func (that *MatchmakerService) joinRoom(conn entity.Conn) {
	if err := conn.WriteString(terminal.ClearScreen + "enter the room code\r\n> "); err != nil {
		_ = conn.Close()
		return
	}

	code, err := conn.ReadLine()
	if err != nil {
		_ = conn.Close()
		return
	}

	if code == "" {
		_ = conn.WriteString("invalid room code, goodbye!\r\n")
		_ = conn.Close()
		return
	}

	joiner := &entity.Participant{ID: uuid.NewString(), Mark: entity.MarkO, Conn: conn}

	_, err = that.rooms.Join(code, joiner)
	switch {
	case errors.Is(err, apperror.ErrRoomNotFound):
		_ = conn.WriteString("room does not exist, goodbye!\r\n")
		_ = conn.Close()
	case errors.Is(err, apperror.ErrRoomAlreadyStarted):
		_ = conn.WriteString("that room is already started, goodbye!\r\n")
		_ = conn.Close()
	case err != nil:
		that.logger.Error("failed to join room", "code", code, "error", err)
		_ = conn.Close()
	default:
		// the stream now belongs to the room; the creator's goroutine
		// drives the game from here
	}
}
