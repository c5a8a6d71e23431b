// Package infrastructure provides reusable infrastructure components for Go applications.
package infrastructure

import (
	"strings"

	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// FxLoggerAdapter adapts a zap.SugaredLogger to the fxevent.Logger interface
// so the Fx framework's own lifecycle logging flows through Zap.
type FxLoggerAdapter struct {
	logger *zap.SugaredLogger
}

// NewFxLoggerAdapter creates a new Fx logger adapter backed by the given logger.
func NewFxLoggerAdapter(logger *zap.Logger) fxevent.Logger {
	return &FxLoggerAdapter{logger: logger.Sugar()}
}

// LogEvent implements fxevent.Logger. Routine dependency-graph events log at
// debug; failures and shutdown events log at their natural levels.
func (p *FxLoggerAdapter) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		p.hookResult("OnStart", e.FunctionName, e.Err)
	case *fxevent.OnStopExecuted:
		p.hookResult("OnStop", e.FunctionName, e.Err)
	case *fxevent.Provided:
		if e.Err != nil {
			p.logger.Errorf("PROVIDE failed: %v", e.Err)
		} else {
			p.logger.Debugf("PROVIDE: %s", strings.Join(e.OutputTypeNames, ", "))
		}
	case *fxevent.Invoked:
		if e.Err != nil {
			p.logger.Errorf("INVOKE failed: %s, error: %v", e.FunctionName, e.Err)
		} else {
			p.logger.Debugf("INVOKE: %s", e.FunctionName)
		}
	case *fxevent.Started:
		if e.Err != nil {
			p.logger.Errorf("START failed: %v", e.Err)
		} else {
			p.logger.Debug("STARTED")
		}
	case *fxevent.Stopping:
		p.logger.Infof("STOPPING: %s", e.Signal)
	case *fxevent.Stopped:
		if e.Err != nil {
			p.logger.Errorf("STOPPED with error: %v", e.Err)
		}
	case *fxevent.RollingBack:
		p.logger.Errorf("ROLLING BACK: %v", e.StartErr)
	default:
		p.logger.Debugf("fx event: %T", event)
	}
}

func (p *FxLoggerAdapter) hookResult(hook, function string, err error) {
	if err != nil {
		p.logger.Errorf("HOOK %s failed: %s, error: %v", hook, function, err)
	} else {
		p.logger.Debugf("HOOK %s executed: %s", hook, function)
	}
}
