package interfaces

import "context"

// LoggerProvider returns the logger for a module name such as "blog.search".
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// Logger is the leveled logger every blog component writes to. Arguments
// after msg are alternating keys and values. The method set matches
// go-logger so its loggers adapt without translation.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	// WithContext binds ctx so fields stored by logging.ContextWithFields
	// are included in later entries.
	WithContext(ctx context.Context) Logger
}

// FieldsLogger is implemented by loggers that can carry fixed fields.
// Use logging.WithFields rather than asserting it directly.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
