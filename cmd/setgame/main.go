// Command setgame runs the Set game concurrency engine standalone: it
// loads configuration, wires a default oracle and UI sink, starts the
// read-only status API, and plays one game to completion.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cbodonnell/setgame/pkg/config"
	"github.com/cbodonnell/setgame/pkg/game"
	"github.com/cbodonnell/setgame/pkg/input/stdin"
	"github.com/cbodonnell/setgame/pkg/log"
	"github.com/cbodonnell/setgame/pkg/oracle/setoracle"
	"github.com/cbodonnell/setgame/pkg/statusapi"
	"github.com/cbodonnell/setgame/pkg/ui/logsink"
)

const statusShutdownTimeout = 5 * time.Second

func main() {
	// log-level and status-port live outside pkg/config's flag set (it
	// owns the game tunables); read from the environment instead so the
	// command line stays entirely config.Load's -deck-size/-players/...
	// flags without a second, conflicting flag.FlagSet.
	logLevel := envString("SETGAME_LOG_LEVEL", "info")
	statusPort := envInt("SETGAME_STATUS_PORT", 8080)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	parsedLevel, err := log.ParseLogLevel(logLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to parse log level: %v", err))
	}
	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLevel)
	log.SetDefaultLogger(logger)

	sink := logsink.New(logger)
	o := setoracle.New(cfg.DeckSize)

	g := game.New(cfg, o, sink)
	log.Info("setgame: session %s starting (%d players, %d human)", g.SessionID(), cfg.Players, cfg.HumanPlayers)

	status := statusapi.NewServer(statusapi.NewServerOptions{
		Port:        statusPort,
		Snapshotter: g,
	})
	go status.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("setgame: shutdown signal received")
		cancel()
	}()

	targets := make(map[int]stdin.KeyPresser)
	for id := 0; id < cfg.HumanPlayers; id++ {
		targets[id] = g.PlayerByID(id)
	}
	if len(targets) > 0 {
		reader := stdin.New(os.Stdin, targets, logger)
		go reader.Run(ctx)
	}

	winners := g.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), statusShutdownTimeout)
	defer shutdownCancel()
	if err := status.Stop(shutdownCtx); err != nil {
		log.Warn("setgame: status API shutdown error: %v", err)
	}

	fmt.Printf("winners: %v\n", winners)
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
