package utils

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
)

// Logger is the logging surface shared by handlers and middleware.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	With(args ...any) Logger

	// LogRequest picks the level from the status code.
	LogRequest(method, path string, statusCode int, duration string, args ...any)
	LogError(err error, msg string, args ...any)
}

// SlogLogger implements Logger on top of slog
type SlogLogger struct {
	logger *slog.Logger
}

func NewSlogLogger(logger *slog.Logger) Logger {
	return &SlogLogger{
		logger: logger,
	}
}

// NewLogger returns a JSON logger at info level for production and a text
// logger at debug level otherwise.
func NewLogger(environment string) Logger {
	return newLogger(os.Stdout, environment)
}

func newLogger(w io.Writer, environment string) Logger {
	if environment == "production" {
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})))
	}
	return NewSlogLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{
		logger: l.logger.With(args...),
	}
}

func (l *SlogLogger) LogRequest(method, path string, statusCode int, duration string, args ...any) {
	level := slog.LevelInfo
	if statusCode >= 400 {
		level = slog.LevelWarn
	}
	if statusCode >= 500 {
		level = slog.LevelError
	}

	allArgs := append([]any{
		"method", method,
		"path", path,
		"status_code", statusCode,
		"duration", duration,
	}, args...)
	l.logger.Log(context.Background(), level, "HTTP Request", allArgs...)
}

func (l *SlogLogger) LogError(err error, msg string, args ...any) {
	allArgs := append([]any{"error", err}, args...)
	l.logger.Error(msg, allArgs...)
}

// Slog returns the underlying slog.Logger for services and watermill.
func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

// ToSlogLogger unwraps a SlogLogger, falling back to slog.Default.
func ToSlogLogger(logger Logger) *slog.Logger {
	if slogLogger, ok := logger.(*SlogLogger); ok {
		return slogLogger.Slog()
	}
	return slog.Default()
}

// LoggerMiddleware logs one line per request, tagged with the request and
// user ids set by earlier middleware.
func LoggerMiddleware(logger Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		args := []any{
			"client_ip", param.ClientIP,
			"user_agent", param.Request.UserAgent(),
		}
		for _, key := range []string{"request_id", "user_id"} {
			if v, ok := param.Keys[key]; ok {
				args = append(args, key, v)
			}
		}
		if param.ErrorMessage != "" {
			args = append(args, "error", param.ErrorMessage)
		}

		logger.LogRequest(param.Method, param.Path, param.StatusCode, param.Latency.String(), args...)
		return ""
	})
}
