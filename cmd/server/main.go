package main

import (
	"context"
	"fmt"
	"line-chat/domain"
	"line-chat/moderation"
	"line-chat/observability"
	"line-chat/runtime"
	"line-chat/runtime/workers"
	"line-chat/sink"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the server and blocks until SIGINT/SIGTERM.
// Only configuration and bind failures are returned.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Core
	registry := runtime.NewRegistry()
	monitor := observability.NewMonitor()
	statusCh := make(chan domain.StatusEvent, config.StatusBufferSize)
	broadcaster := runtime.NewBroadcaster(log, registry, monitor, statusCh)
	if config.CensoredDir != "" {
		moderator, err := prepareModeration(log, config)
		if err != nil {
			return err
		}
		broadcaster = broadcaster.WithModerator(moderator)
	}

	// 3. Status pipeline, drained until statusCh is closed
	board := sink.NewStatusBoard()
	fanout := workers.NewStatusFanout(log, statusCh, sink.NewLogSink(log), board)
	fanoutDone := make(chan struct{})
	go func() {
		defer close(fanoutDone)
		_ = fanout.Run(context.Background())
	}()
	defer func() {
		close(statusCh)
		<-fanoutDone
		board.Render(os.Stdout)
	}()

	// 4. Bind once, a failure here is fatal
	listener := runtime.NewListener(log, registry, broadcaster, monitor, statusCh, config.WriteTimeout)
	if err := listener.Listen(config.Host, config.Port); err != nil {
		return err
	}

	// 5. Serve until signaled
	sup := workers.NewSupervisor(log)
	health := workers.NewHealthMonitor(log, registry, monitor, config.MetricInterval).
		WithChannels(workers.NamedChannel{Name: "status", Channel: statusCh})
	sup.Add(listener, health)
	sup.Run(ctx)

	stats := monitor.Snapshot(registry.Len())
	log.Info("Server stopped cleanly",
		"accepted", stats.ClientsAccepted,
		"messages", stats.MessagesReceived,
		"deliveries", stats.Deliveries)
	return nil
}

// prepareModeration loads the word lists of CENSORED_DIR and builds the moderator.
func prepareModeration(log *slog.Logger, config Config) (*moderation.Moderator, error) {
	censoredChar, err := config.CharacterRune()
	if err != nil {
		return nil, err
	}
	data, err := runtime.NewCensoredLoader(os.DirFS(config.CensoredDir)).LoadAll(".")
	if err != nil {
		return nil, fmt.Errorf("loading censored words from %s: %w", config.CensoredDir, err)
	}
	log.Info(fmt.Sprintf("%d censored files loaded [%s]", len(data.Languages), strings.Join(data.Languages, ",")))
	log.Info(fmt.Sprintf("%d unique censored words loaded", len(data.Words)))
	return moderation.NewModerator(data.Words, censoredChar, log)
}
