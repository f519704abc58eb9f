package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactelnet-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/entity"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/registry"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/terminal"
)

const testBanner = "welcome\r\n"

func newMatchmaker(reg *registry.Registry, opponentWait time.Duration) *MatchmakerService {
	logger := newTestLogger()
	gameplay := NewGameplayService(logger, reg)

	return NewMatchmakerService(logger, reg, gameplay, testBanner, opponentWait)
}

func TestMatchmakerService_Menu(t *testing.T) {
	t.Run("Anything but 1 or 2 closes the connection", func(t *testing.T) {
		reg := newTestRegistry(t)
		mm := newMatchmaker(reg, time.Minute)

		conn := newFakeConn("9")

		mm.HandleSession(context.Background(), conn)

		assert.Contains(t, conn.output(), "invalid answer, goodbye!")
		assert.True(t, conn.isClosed())
	})

	t.Run("Dropped connection at the menu just closes", func(t *testing.T) {
		reg := newTestRegistry(t)
		mm := newMatchmaker(reg, time.Minute)

		conn := newFakeConn()
		conn.drop()

		mm.HandleSession(context.Background(), conn)

		assert.True(t, conn.isClosed())
	})
}

func TestMatchmakerService_Join(t *testing.T) {
	t.Run("Empty code is rejected", func(t *testing.T) {
		reg := newTestRegistry(t)
		mm := newMatchmaker(reg, time.Minute)

		conn := newFakeConn("1", "")

		mm.HandleSession(context.Background(), conn)

		assert.Contains(t, conn.output(), "invalid room code, goodbye!")
		assert.True(t, conn.isClosed())
	})

	t.Run("Unknown code is rejected", func(t *testing.T) {
		reg := newTestRegistry(t)
		mm := newMatchmaker(reg, time.Minute)

		conn := newFakeConn("1", "owl7")

		mm.HandleSession(context.Background(), conn)

		assert.Contains(t, conn.output(), "room does not exist, goodbye!")
		assert.True(t, conn.isClosed())
	})

	t.Run("Started room is rejected", func(t *testing.T) {
		// Given: a room that already has both participants
		reg := newTestRegistry(t)
		mm := newMatchmaker(reg, time.Minute)

		room, err := reg.Create(&entity.Participant{ID: "p1", Mark: entity.MarkX, Conn: newFakeConn()})
		require.NoError(t, err)
		_, err = reg.Join(room.Code, &entity.Participant{ID: "p2", Mark: entity.MarkO, Conn: newFakeConn()})
		require.NoError(t, err)

		// When: a third connection tries the same code
		conn := newFakeConn("1", room.Code)

		mm.HandleSession(context.Background(), conn)

		// Then: it is turned away
		assert.Contains(t, conn.output(), "that room is already started, goodbye!")
		assert.True(t, conn.isClosed())
	})
}

func TestMatchmakerService_Create(t *testing.T) {
	t.Run("Opponent-wait timeout removes the room", func(t *testing.T) {
		reg := newTestRegistry(t)
		mm := newMatchmaker(reg, 30*time.Millisecond)

		conn := newFakeConn("2")

		// When: nobody joins before the wait elapses
		mm.HandleSession(context.Background(), conn)

		// Then: the creator is told and the room is gone
		assert.Contains(t, conn.output(), "nobody joined your room")
		assert.True(t, conn.isClosed())

		code := extractCode(t, conn.output())
		_, err := reg.Lookup(code)
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("Context cancellation abandons a waiting room", func(t *testing.T) {
		reg := newTestRegistry(t)
		mm := newMatchmaker(reg, time.Minute)

		ctx, cancel := context.WithCancel(context.Background())
		conn := newFakeConn("2")

		done := make(chan struct{})
		go func() {
			mm.HandleSession(ctx, conn)
			close(done)
		}()

		require.Eventually(t, func() bool {
			return len(conn.output()) > 0 && extractCodeOK(conn.output())
		}, time.Second, 10*time.Millisecond)

		cancel()
		<-done

		assert.True(t, conn.isClosed())
	})

	t.Run("Create, join and play a full game", func(t *testing.T) {
		reg := newTestRegistry(t)
		mm := newMatchmaker(reg, time.Minute)
		ctx := context.Background()

		// Given: a creator waiting with their moves queued
		creatorConn := newFakeConn("2", "1", "2", "3")
		go mm.HandleSession(ctx, creatorConn)

		require.Eventually(t, func() bool {
			return extractCodeOK(creatorConn.output())
		}, time.Second, 10*time.Millisecond)
		code := extractCode(t, creatorConn.output())

		// When: a joiner attaches with the shared code
		joinerConn := newFakeConn("1", code, "4", "5")
		go mm.HandleSession(ctx, joinerConn)

		// Then: the game plays out on the creator's goroutine to an x win
		require.Eventually(t, func() bool {
			return creatorConn.isClosed() && joinerConn.isClosed()
		}, time.Second, 10*time.Millisecond)

		assert.Contains(t, creatorConn.output(), "you win!!!!!")
		assert.Contains(t, joinerConn.output(), "you lose!!!!!")

		_, err := reg.Lookup(code)
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

// extractCodeOK reports whether a bold room code is present yet.
func extractCodeOK(output string) bool {
	start := strings.Index(output, terminal.Bold)
	if start < 0 {
		return false
	}

	return strings.Contains(output[start+len(terminal.Bold):], terminal.Reset)
}
