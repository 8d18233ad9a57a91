package cart

import "log/slog"

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier delivers user-visible messages.
type Notifier interface {
	Notify(level Level, message string)
}

type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) { f(level, message) }

// LogNotifier writes messages to a logger, for headless use.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(level Level, message string) {
	switch level {
	case LevelError:
		n.Logger.Error(message)
	default:
		n.Logger.Info(message, "level", string(level))
	}
}
