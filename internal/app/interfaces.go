package app

// Logger is the event log the controller writes to. *telemetry.JSONLogger
// satisfies it.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
	Close() error
}
