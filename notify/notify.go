package notify

// Severity of a user facing notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is a transient message for the presentation layer.
type Notification struct {
	Severity Severity `json:"type"`
	Message  string   `json:"message"`
}

// Notifier receives notifications. Implementations must not block the caller.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a plain function to a Notifier.
type Func func(n Notification)

func (f Func) Notify(n Notification) {
	f(n)
}

// Discard drops every notification.
var Discard Notifier = Func(func(Notification) {})

type multi []Notifier

func (m multi) Notify(n Notification) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}

// Multi fans a notification out to every non-nil notifier.
func Multi(notifiers ...Notifier) Notifier {
	m := make(multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}
	return m
}

func Success(n Notifier, message string) {
	send(n, SeveritySuccess, message)
}

func Error(n Notifier, message string) {
	send(n, SeverityError, message)
}

func Warning(n Notifier, message string) {
	send(n, SeverityWarning, message)
}

func Info(n Notifier, message string) {
	send(n, SeverityInfo, message)
}

func send(n Notifier, severity Severity, message string) {
	if n == nil {
		return
	}
	n.Notify(Notification{Severity: severity, Message: message})
}
