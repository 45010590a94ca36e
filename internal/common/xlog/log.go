// Package xlog is the service logger. It wraps zap so that every entry carries the
// service name and the correlation id stored on the context.
package xlog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Field = zap.Field

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

type options struct {
	level      zapcore.Level
	env        string
	callerSkip int
	withCaller bool
	stderr     bool
}

type Option func(*options)

func WithLevel(level string) Option {
	return func(o *options) {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err == nil {
			o.level = lvl
		}
	}
}

func DebugLevel() Option { return func(o *options) { o.level = zapcore.DebugLevel } }

func InfoLevel() Option { return func(o *options) { o.level = zapcore.InfoLevel } }

func WithEnv(env string) Option {
	return func(o *options) { o.env = env }
}

func WithCaller(enabled bool) Option {
	return func(o *options) { o.withCaller = enabled }
}

// ToStderr keeps stdout free for commands that write their own output there.
func ToStderr() Option {
	return func(o *options) { o.stderr = true }
}

func AddCallerSkip(skip int) Option {
	return func(o *options) { o.callerSkip = skip }
}

// Init replaces the package logger. Local environments get a console encoder,
// everything else gets JSON.
func Init(serviceName string, opts ...Option) {
	o := &options{level: zapcore.InfoLevel}
	for _, opt := range opts {
		opt(o)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	encoder := zapcore.NewJSONEncoder(encCfg)
	if o.env == "local" {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	out := os.Stdout
	if o.stderr {
		out = os.Stderr
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(out), o.level)

	zapOpts := []zap.Option{zap.Fields(zap.String("service", serviceName))}
	if o.withCaller {
		zapOpts = append(zapOpts, zap.AddCaller(), zap.AddCallerSkip(o.callerSkip))
	}

	set(zap.New(core, zapOpts...))
}

// InitForTest installs a development logger that writes to stderr.
func InitForTest() {
	l, err := zap.NewDevelopment()
	if err != nil {
		l = zap.NewNop()
	}
	set(l)
}

func Sync() {
	_ = get().Sync()
}

// Logger exposes the underlying zap logger for integrations that need one.
func Logger() *zap.Logger {
	return get()
}

func set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

func get() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func withContext(ctx context.Context, fields []Field) []Field {
	if id := CorrelationID(ctx); id != "" {
		fields = append(fields, zap.String("correlation-id", id))
	}
	return fields
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	get().Debug(msg, withContext(ctx, fields)...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	get().Info(msg, withContext(ctx, fields)...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	get().Warn(msg, withContext(ctx, fields)...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	get().Error(msg, withContext(ctx, fields)...)
}

func Debugf(ctx context.Context, format string, args ...any) {
	Debug(ctx, fmt.Sprintf(format, args...))
}

func Infof(ctx context.Context, format string, args ...any) {
	Info(ctx, fmt.Sprintf(format, args...))
}

func Warnf(ctx context.Context, format string, args ...any) {
	Warn(ctx, fmt.Sprintf(format, args...))
}

func Errorf(ctx context.Context, format string, args ...any) {
	Error(ctx, fmt.Sprintf(format, args...))
}

func Fatalf(ctx context.Context, format string, args ...any) {
	get().Fatal(fmt.Sprintf(format, args...), withContext(ctx, nil)...)
}
