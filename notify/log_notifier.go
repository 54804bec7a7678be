package notify

import "github.com/rs/zerolog"

// LogNotifier writes notifications to a zerolog logger. Used by the CLI where
// there is no banner to render.
type LogNotifier struct {
	logger zerolog.Logger
}

var _ Notifier = LogNotifier{}

func NewLogNotifier(logger zerolog.Logger) LogNotifier {
	return LogNotifier{logger: logger}
}

func (l LogNotifier) Notify(n Notification) {
	var event *zerolog.Event
	switch n.Severity {
	case SeverityError:
		event = l.logger.Error()
	case SeverityWarning:
		event = l.logger.Warn()
	default:
		event = l.logger.Info()
	}
	event.Str("severity", string(n.Severity)).Msg(n.Message)
}
