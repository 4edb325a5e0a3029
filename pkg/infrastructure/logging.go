// Package infrastructure provides reusable infrastructure components for Go applications.
package infrastructure

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FxLoggerAdapter routes Fx lifecycle events and printer output through zap.
// Routine wiring events are logged at debug level so they stay out of
// production logs; failures are always logged at error level.
type FxLoggerAdapter struct {
	logger *zap.Logger
}

// NewFxLoggerAdapter creates a new Fx logger adapter that implements fxevent.Logger.
func NewFxLoggerAdapter(logger *zap.Logger) fxevent.Logger {
	return &FxLoggerAdapter{logger: logger.Named("fx")}
}

// NewFxPrinter creates a new Fx printer adapter that implements fx.Printer.
func NewFxPrinter(logger *zap.Logger) fx.Printer {
	return &FxLoggerAdapter{logger: logger.Named("fx")}
}

// LogEvent implements fxevent.Logger.
func (p *FxLoggerAdapter) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		p.logger.Debug("OnStart hook executing", zap.String("caller", e.CallerName), zap.String("callee", e.FunctionName))
	case *fxevent.OnStartExecuted:
		p.outcome("OnStart hook", e.Err, zap.String("caller", e.CallerName), zap.String("callee", e.FunctionName), zap.Duration("runtime", e.Runtime))
	case *fxevent.OnStopExecuting:
		p.logger.Debug("OnStop hook executing", zap.String("caller", e.CallerName), zap.String("callee", e.FunctionName))
	case *fxevent.OnStopExecuted:
		p.outcome("OnStop hook", e.Err, zap.String("caller", e.CallerName), zap.String("callee", e.FunctionName), zap.Duration("runtime", e.Runtime))
	case *fxevent.Supplied:
		p.outcome("supplied", e.Err, zap.String("type", e.TypeName), zap.String("module", e.ModuleName))
	case *fxevent.Provided:
		p.outcome("provided", e.Err, zap.String("constructor", e.ConstructorName), zap.Strings("types", e.OutputTypeNames), zap.String("module", e.ModuleName))
	case *fxevent.Invoking:
		p.logger.Debug("invoking", zap.String("function", e.FunctionName), zap.String("module", e.ModuleName))
	case *fxevent.Invoked:
		p.outcome("invoked", e.Err, zap.String("function", e.FunctionName), zap.String("module", e.ModuleName))
	case *fxevent.Stopping:
		p.logger.Info("received signal", zap.String("signal", e.Signal.String()))
	case *fxevent.Stopped:
		p.lifecycle("stopped", e.Err)
	case *fxevent.RollingBack:
		p.logger.Error("start failed, rolling back", zap.Error(e.StartErr))
	case *fxevent.RolledBack:
		p.lifecycle("rolled back", e.Err)
	case *fxevent.Started:
		p.lifecycle("started", e.Err)
	case *fxevent.LoggerInitialized:
		p.outcome("logger initialized", e.Err, zap.String("constructor", e.ConstructorName))
	default:
		p.logger.Debug("unhandled fx event", zap.String("type", fmt.Sprintf("%T", event)))
	}
}

// Printf implements fx.Printer.
func (p *FxLoggerAdapter) Printf(format string, args ...any) {
	p.logger.Sugar().Infof(format, args...)
}

// outcome logs debug-level success or error-level failure for a wiring step.
func (p *FxLoggerAdapter) outcome(msg string, err error, fields ...zap.Field) {
	if err != nil {
		p.logger.Error(msg+" failed", append(fields, zap.Error(err))...)

		return
	}
	p.logger.Debug(msg, fields...)
}

// lifecycle logs application-level transitions at info level.
func (p *FxLoggerAdapter) lifecycle(msg string, err error) {
	level := zapcore.InfoLevel
	fields := []zap.Field{}
	if err != nil {
		level = zapcore.ErrorLevel
		fields = append(fields, zap.Error(err))
	}
	if ce := p.logger.Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}
