package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"rofl-backend/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.RWMutex
	writer io.Writer = os.Stdout
)

// Init configures the global zerolog logger from cfg.
func Init(cfg config.LogConfig) {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	out := newOutput(cfg)
	mu.Lock()
	writer = out
	mu.Unlock()

	var logOut io.Writer = out
	if cfg.Pretty && cfg.File == "" {
		logOut = zerolog.ConsoleWriter{Out: out}
	}

	zerolog.SetGlobalLevel(level)
	ctx := zerolog.New(logOut).With().Timestamp()
	if svc := strings.TrimSpace(cfg.Service); svc != "" {
		ctx = ctx.Str("service", svc)
	}
	logger := ctx.Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger
}

// Writer returns the raw output used by the global logger.
func Writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return writer
}

func newOutput(cfg config.LogConfig) io.Writer {
	path := strings.TrimSpace(cfg.File)
	if path == "" {
		return os.Stdout
	}
	maxMB := cfg.MaxMB
	if maxMB <= 0 {
		maxMB = 10
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}
