package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/arsenal/arena"
	"github.com/lixenwraith/arsenal/audio"
	"github.com/lixenwraith/arsenal/config"
	"github.com/lixenwraith/arsenal/logging"
	"github.com/lixenwraith/arsenal/service"
	"github.com/lixenwraith/arsenal/status"
	"github.com/lixenwraith/arsenal/telemetry"
)

const logDir = "logs"

var (
	configFlag = flag.String("config", "", "Catalog file or directory merged over the embedded defaults")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logDir+"/arena.log")
	levelFlag  = flag.String("log-level", "", "Log level override: trace, debug, info, warn, error")
	seedFlag   = flag.Uint64("seed", 0, "Scatter seed; 0 picks one from the clock")
	muteFlag   = flag.Bool("mute", false, "Start with audio muted")
	watchFlag  = flag.String("watch", "", "Comma-separated event names logged at debug level, e.g. EventDamageDealt,EventExploded")
)

func main() {
	flag.Parse()

	store := config.NewStore()
	cat, err := store.Catalog(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}
	defer cat.Release()

	level := cat.Value().Engine.LogLevel
	if *levelFlag != "" {
		level = *levelFlag
	}
	logger, logFile := setupLogging(*debugFlag, level)
	if logFile != nil {
		defer logFile.Close()
	}

	reg := status.NewRegistry()
	hub := service.NewHub()
	player := audio.NewPlayer(audioConfig(cat.Value().Audio), reg, logging.Component(logger, "audio"))
	for _, svc := range []service.Service{telemetry.NewService(reg, nil), player} {
		if err := hub.Register(svc); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to register %s: %v\n", svc.Name(), err)
			os.Exit(1)
		}
	}
	var initArgs []any
	if *muteFlag {
		initArgs = append(initArgs, true)
	}
	if err := hub.InitAll(initArgs...); err != nil {
		logger.Warn().Err(err).Msg("service init failed")
	}
	if err := hub.StartAll(); err != nil {
		logger.Warn().Err(err).Msg("services unavailable, continuing without sound or metrics")
	}
	defer func() {
		if err := hub.StopAll(); err != nil {
			logger.Warn().Err(err).Msg("service shutdown")
		}
	}()

	a, err := arena.New(arena.Options{
		Catalog:  cat.Value(),
		Sound:    player,
		Registry: reg,
		Logger:   logger,
		Seed:     *seedFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build arena: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before printing a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			logger.Error().Interface("panic", r).Msg("sandbox crashed")
			fmt.Fprintf(os.Stderr, "\nARENA CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	sb, err := newSandbox(screen, a, player, logger)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to populate arena: %v\n", err)
		os.Exit(1)
	}
	if *watchFlag != "" {
		if err := sb.watch(strings.Split(*watchFlag, ",")); err != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "Invalid -watch: %v\n", err)
			os.Exit(1)
		}
	}
	sb.run()
}

// setupLogging writes console-format logs to a file when debug is set; otherwise logging is off
func setupLogging(debug bool, level string) (zerolog.Logger, *os.File) {
	if !debug {
		return zerolog.Nop(), nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return zerolog.Nop(), nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, "arena.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil
	}
	logger := logging.Setup(f, level)
	logger.Info().Str("level", level).Msg("arena sandbox starting")
	return logger, f
}

func audioConfig(c config.Audio) *audio.Config {
	return &audio.Config{
		Enabled:       c.Enabled,
		MasterVolume:  c.MasterVolume,
		SampleRate:    c.SampleRate,
		MaxDistance:   c.MaxDistance,
		EffectVolumes: c.Volumes,
	}
}
