package segtrie

import (
	"fmt"

	"go.uber.org/zap"
)

// LoggerEnabled turns on output for the default logger.
var LoggerEnabled = false

// Logger is the logging surface used by the tree and its adapters.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

type defaultLogger struct {
}

func (d *defaultLogger) Debug(format string, args ...any) {
	if LoggerEnabled {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

func (d *defaultLogger) Info(format string, args ...any) {
	if LoggerEnabled {
		fmt.Printf("[INFO] "+format+"\n", args...)
	}
}

func (d *defaultLogger) Error(format string, args ...any) {
	if LoggerEnabled {
		if len(args) > 0 {
			if t, ok := args[0].(map[string]any); ok {
				fmt.Printf("[ERROR] %s %+v\n", format, t)
				return
			}
		}
		fmt.Printf("[ERROR] "+format+"\n", args...)
	}
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger adapts a zap logger. A nil logger yields a no-op one.
func NewZapLogger(l *zap.Logger) Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &zapLogger{sugar: l.Sugar()}
}

func (z *zapLogger) Debug(format string, args ...any) {
	z.sugar.Debugf(format, args...)
}

func (z *zapLogger) Info(format string, args ...any) {
	z.sugar.Infof(format, args...)
}

func (z *zapLogger) Error(format string, args ...any) {
	if len(args) == 1 {
		if fields, ok := args[0].(map[string]any); ok {
			kv := make([]any, 0, len(fields)*2)
			for k, v := range fields {
				kv = append(kv, k, v)
			}
			z.sugar.Errorw(format, kv...)
			return
		}
	}
	z.sugar.Errorf(format, args...)
}
