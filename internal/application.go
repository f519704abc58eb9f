package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rocketscienceinc/tictactelnet-backend/internal/config"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/registry"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/service"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/transport/rest"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/transport/telnet"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	banner, err := loadBanner(conf.Assets.Banner)
	if err != nil {
		return fmt.Errorf("could not load banner: %w", err)
	}

	words, err := loadWords(conf.Assets.Words)
	if err != nil {
		return fmt.Errorf("could not load word pool: %w", err)
	}

	rooms, err := registry.New(logger, words)
	if err != nil {
		return fmt.Errorf("could not build registry: %w", err)
	}

	gameplay := service.NewGameplayService(logger, rooms)
	matchmaker := service.NewMatchmakerService(logger, rooms, gameplay, banner, conf.Game.OpponentWait)

	// run HTTP sidecar
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run telnet server
	telnetErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting telnet server", "port", conf.TelnetPort)
		telnetServer := telnet.New(logger, matchmaker)
		if telnetErr := telnetServer.Start(ctx, conf.TelnetPort); telnetErr != nil {
			log.Error("telnet server error", "error", telnetErr)
			telnetErrCh <- telnetErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-telnetErrCh:
		return fmt.Errorf("telnet server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func loadBanner(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	// normalize to the telnet line convention
	banner := strings.ReplaceAll(string(raw), "\r\n", "\n")

	return strings.ReplaceAll(banner, "\n", "\r\n"), nil
}

func loadWords(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var words []string
	for _, line := range strings.Split(string(raw), "\n") {
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}
		words = append(words, word)
	}

	return words, nil
}
