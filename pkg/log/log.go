// Package log 提供基于 zerolog 的日志工具，支持 stderr 和文件输出（lumberjack 轮转）.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yeisme/filevault/pkg/configs"
)

var (
	logger   zerolog.Logger
	initOnce sync.Once
	mu       sync.RWMutex
)

// Init 使用全局配置初始化 logger.
func Init() {
	initOnce.Do(func() {
		cfg := configs.GetConfig()
		Configure(cfg.Log, cfg.Server.Debug)
	})
}

// Configure 按给定配置重建全局 logger，可重复调用（配置热更新、子命令）.
func Configure(logCfg configs.LogConfig, debug bool) {
	// level
	lvl := zerolog.InfoLevel
	if logCfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(logCfg.Level))
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid log level %q, defaulting to info\n", logCfg.Level)
		} else {
			lvl = parsed
		}
	}

	zerolog.SetGlobalLevel(lvl)

	// outputs
	var writers []io.Writer

	console := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.TimeFormat = time.Kitchen
	})
	writers = append(writers, console)

	if logCfg.EnableFile && logCfg.FilePath != "" {
		lj := &lumberjack.Logger{
			Filename:   logCfg.FilePath,
			MaxSize:    logCfg.MaxSize,
			MaxBackups: logCfg.MaxBackups,
			MaxAge:     logCfg.MaxAge,
			Compress:   logCfg.Compress,
		}
		writers = append(writers, lj)
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With()
	if debug {
		ctx = ctx.Caller().Stack()

		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	mu.Lock()
	logger = ctx.Timestamp().Logger()
	log.Logger = logger
	mu.Unlock()
}

// Logger 返回全局 logger.
func Logger() *zerolog.Logger {
	// ensure logger is initialized on first use
	Init()

	mu.RLock()
	defer mu.RUnlock()

	l := logger

	return &l
}

// Component 返回带 component 字段的子 logger.
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}

// GinWriter 把 Gin 文本行转发为 zerolog 事件.
type GinWriter struct {
	logger *zerolog.Logger
	level  zerolog.Level
}

func NewGinWriter(logger *zerolog.Logger, level zerolog.Level) *GinWriter {
	return &GinWriter{logger: logger, level: level}
}

func (w *GinWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	if msg == "" {
		return len(p), nil
	}

	switch w.level {
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		w.logger.Error().Msg(msg)
	case zerolog.WarnLevel:
		w.logger.Warn().Msg(msg)
	default:
		w.logger.Info().Msg(msg)
	}

	return len(p), nil
}
