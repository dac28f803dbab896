package finance

import (
	"go.uber.org/zap"

	"github.com/simaogato/finance-dashboard/internal/logging"
)

// NotificationLevel tells the user-facing layer how to present a notification
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationFailure NotificationLevel = "failure"
)

// Notification is a transient message for the user-facing layer.
// For failures Message is the underlying error message.
type Notification struct {
	Level   NotificationLevel
	Intent  string
	Message string
}

// Notifier delivers notifications produced by intents
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier writes notifications to the log. Used when no presentation
// layer is attached.
type LogNotifier struct {
	logger *logging.Logger
}

func NewLogNotifier(logger *logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify")}
}

func (n *LogNotifier) Notify(note Notification) {
	fields := []zap.Field{
		zap.String("intent", note.Intent),
		zap.String("message", note.Message),
	}
	if note.Level == NotificationFailure {
		n.logger.Warn("intent failed", fields...)
		return
	}
	n.logger.Info("intent succeeded", fields...)
}
