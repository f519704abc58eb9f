package telnet

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/rocketscienceinc/tictactelnet-backend/internal/entity"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/metrics"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/terminal"
)

type matchmaker interface {
	HandleSession(ctx context.Context, conn entity.Conn)
}

// Server accepts raw TCP connections and hands each one to the matchmaker
// on its own goroutine. Connection closing is owned by the session and game
// controllers, not by the accept loop.
type Server struct {
	logger     *slog.Logger
	matchmaker matchmaker
}

func New(logger *slog.Logger, matchmaker matchmaker) *Server {
	return &Server{
		logger:     logger.With("component", "telnet"),
		matchmaker: matchmaker,
	}
}

// Start - starts the telnet server and blocks until the listener fails or
// the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", port, err)
	}

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			that.logger.Error("failed to accept connection", "error", err)
			continue
		}

		metrics.ConnectionsAccepted.Inc()
		that.logger.Info("connection accepted", "remote", conn.RemoteAddr().String())

		go that.handleConn(ctx, conn)
	}
}

func (that *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer func() {
		if r := recover(); r != nil {
			that.logger.Error("session panicked", "remote", conn.RemoteAddr().String(), "panic", r)
			_ = conn.Close()
		}
	}()

	that.matchmaker.HandleSession(ctx, terminal.New(conn))
}
