package port

// Fields carries structured log attributes.
type Fields map[string]interface{}

// LoggerPort is the logging abstraction the core depends on. Adapters
// exist for slog (tint) and Fluent Bit; a multilogger fans out to both.
type LoggerPort interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	WithFields(fields Fields) LoggerPort
}
