package registry

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/tictactelnet-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/entity"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/metrics"
)

// Registry owns the process-wide mapping of room codes to live rooms.
// All room creation, joining and removal goes through it so that a racing
// join and expiry resolve to exactly one outcome under the lock.
type Registry struct {
	logger *slog.Logger

	mu    sync.Mutex
	rooms map[string]*entity.Room
	words []string
}

func New(logger *slog.Logger, words []string) (*Registry, error) {
	if len(words) == 0 {
		return nil, apperror.ErrEmptyWordPool
	}

	return &Registry{
		logger: logger.With("component", "registry"),
		rooms:  make(map[string]*entity.Room),
		words:  words,
	}, nil
}

// Create draws a code from the word pool plus a single digit and inserts a
// waiting room for the creator. A code colliding with a live room rejects
// the attempt outright; with a pool of thousands of words the odds are not
// worth a retry loop.
func (that *Registry) Create(creator *entity.Participant) (*entity.Room, error) {
	code := that.newCode()

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[code]; ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrCodeCollision, code)
	}

	room := entity.NewRoom(code, creator)
	that.rooms[code] = room

	metrics.RoomsCreated.Inc()
	metrics.ActiveRooms.Inc()
	that.logger.Info("room created", "code", code, "creator", creator.ID)

	return room, nil
}

// Lookup returns the live room for a code.
func (that *Registry) Lookup(code string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, code)
	}

	return room, nil
}

// Join atomically binds the joiner to a waiting room and flips it to
// ongoing. A room that already started, or whose code is not live, rejects
// the attempt.
func (that *Registry) Join(code string, joiner *entity.Participant) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, code)
	}

	if !room.IsWaiting() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomAlreadyStarted, code)
	}

	room.Attach(joiner)
	that.logger.Info("joiner attached", "code", code, "joiner", joiner.ID)

	return room, nil
}

// Remove evicts a room; removing an absent code is a no-op.
func (that *Registry) Remove(code string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[code]; !ok {
		return
	}

	delete(that.rooms, code)
	metrics.ActiveRooms.Dec()
	that.logger.Info("room removed", "code", code)
}

// Abandon removes a room only while it is still waiting for an opponent.
// It reports whether it removed the room; false means a join already won
// the race and the caller should hand the room over to the game.
func (that *Registry) Abandon(code string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[code]
	if !ok || !room.IsWaiting() {
		return false
	}

	delete(that.rooms, code)
	metrics.RoomsExpired.Inc()
	metrics.ActiveRooms.Dec()
	that.logger.Info("room expired", "code", code)

	return true
}

func (that *Registry) newCode() string {
	word := that.words[rand.Intn(len(that.words))] //nolint:gosec // room codes are not secrets
	digit := rand.Intn(10)                         //nolint:gosec // room codes are not secrets

	return fmt.Sprintf("%s%d", word, digit)
}
