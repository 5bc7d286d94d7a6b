package logsvc

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/eduspark/eduspark/core"
)

// ConsoleLogger is the structured development logger. Production error
// reporting goes through RollbarLogger instead.
type ConsoleLogger struct {
	log     zerolog.Logger
	enabled bool
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(conf *core.Config) *ConsoleLogger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if conf.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}
	return &ConsoleLogger{log: logger, enabled: true}
}

func (l *ConsoleLogger) Enable(enabled bool) {
	l.enabled = enabled
}

func (l *ConsoleLogger) emit(ev *zerolog.Event, msg string, args []interface{}) {
	if !l.enabled {
		return
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case error:
			ev = ev.Err(v)
		case map[string]interface{}:
			ev = ev.Fields(v)
		default:
			ev = ev.Interface("detail", v)
		}
	}
	ev.Msg(msg)
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	l.emit(l.log.Debug(), msg, args)
}

func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	l.emit(l.log.Info(), msg, args)
}

func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	l.emit(l.log.Warn(), msg, args)
}

func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	l.emit(l.log.Error(), msg, args)
}

func (l *ConsoleLogger) Fatal(msg string, args ...interface{}) {
	l.emit(l.log.Fatal(), msg, args)
}
