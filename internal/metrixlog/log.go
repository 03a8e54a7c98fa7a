// Package metrixlog provides the small, zap-backed logger used internally
// by metrix. Application code never has to touch this package: the library
// is silent on its hot path and only ever logs a handful of warnings about
// its own background thread (dropped observations, snapshot requests
// abandoned by a cancelled context). See ReplaceLogger if a host application wants those lines
// routed into its own sink.
package metrixlog

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.SugaredLogger]

func init() {
	current.Store(newDefaultLogger())
}

// ReplaceLogger swaps the logger used for metrix's own diagnostic output.
// Intended to be called once at application startup.
func ReplaceLogger(l *zap.SugaredLogger) {
	current.Store(l)
}

func Warnf(format string, args ...any) {
	current.Load().Warnf(format, args...)
}

func Infof(format string, args ...any) {
	current.Load().Infof(format, args...)
}

func Errorf(format string, args ...any) {
	current.Load().Errorf(format, args...)
}

func newDefaultLogger() *zap.SugaredLogger {
	pe := zap.NewProductionEncoderConfig()
	pe.EncodeTime = zapcore.ISO8601TimeEncoder
	pe.ConsoleSeparator = " "
	pe.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(pe)
	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zapcore.WarnLevel)
	return zap.New(core, zap.AddCaller()).Named("metrix").Sugar()
}
