package service

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactelnet-backend/internal/registry"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/terminal"
)

// fakeConn is a scripted entity.Conn: reads pop queued lines, writes are
// recorded, and drop simulates a peer disconnect.
type fakeConn struct {
	in chan string

	mu         sync.Mutex
	out        strings.Builder
	closed     bool
	failWrites bool
}

func newFakeConn(lines ...string) *fakeConn {
	conn := &fakeConn{in: make(chan string, len(lines)+16)}
	for _, line := range lines {
		conn.in <- line
	}

	return conn
}

func (that *fakeConn) ReadLine() (string, error) {
	line, ok := <-that.in
	if !ok {
		return "", io.EOF
	}

	return line, nil
}

func (that *fakeConn) WriteString(s string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.failWrites {
		return io.ErrClosedPipe
	}

	that.out.WriteString(s)

	return nil
}

func (that *fakeConn) Close() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true

	return nil
}

// drop closes the input side, so the next read fails like a dead peer.
func (that *fakeConn) drop() {
	close(that.in)
}

func (that *fakeConn) output() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.out.String()
}

func (that *fakeConn) isClosed() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.closed
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg, err := registry.New(newTestLogger(), []string{"cat", "dog", "fox"})
	require.NoError(t, err)

	return reg
}

// extractCode pulls the generated room code out of the creator's output,
// where it is the only bold fragment.
func extractCode(t *testing.T, output string) string {
	t.Helper()

	start := strings.Index(output, terminal.Bold)
	require.GreaterOrEqual(t, start, 0, "no bold fragment in output")

	rest := output[start+len(terminal.Bold):]
	end := strings.Index(rest, terminal.Reset)
	require.GreaterOrEqual(t, end, 0, "unterminated bold fragment")

	return rest[:end]
}
