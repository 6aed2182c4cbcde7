package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

// Logger wraps zap.SugaredLogger to provide logging functionality
type Logger struct {
	*zap.SugaredLogger
}

// Global logger for scripts and start-up code. Everything else receives a logger by injection.
var L *Logger

// NewLogger creates a production logger, or a development logger for level "debug".
func NewLogger(level string) (*Logger, error) {
	config := zap.NewProductionConfig()
	if level == "debug" {
		config = zap.NewDevelopmentConfig()
	} else if lvl, err := zapcore.ParseLevel(level); err == nil {
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func init() {
	L, _ = NewLogger("info")
}

func GetLogger() *Logger {
	if L == nil {
		L, _ = NewLogger("info")
	}
	return L
}

// WithRequestID stores the request id for WithContext.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithContext tags every entry with the request id carried by ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		return l
	}
	return &Logger{SugaredLogger: l.SugaredLogger.With("request_id", requestID)}
}

// ginLogger adapts our Logger to gin's logging interface
type ginLogger struct {
	logger *Logger
}

// GetGinLogger returns a gin-compatible writer
func (l *Logger) GetGinLogger() *ginLogger {
	return &ginLogger{logger: l}
}

func (g *ginLogger) Write(p []byte) (n int, err error) {
	g.logger.Info(string(p))
	return len(p), nil
}

// gormWriter adapts our Logger to gorm's logger.Writer
type gormWriter struct {
	logger *Logger
}

// GetGormWriter returns a writer for gorm's logger.New
func (l *Logger) GetGormWriter() *gormWriter {
	return &gormWriter{logger: l}
}

func (g *gormWriter) Printf(format string, args ...interface{}) {
	g.logger.Warnf(format, args...)
}
