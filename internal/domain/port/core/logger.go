package core

// LogLevel orders logging severities from most to least verbose.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// Logger is the structured logger used throughout the engine. Fields
// carry request and settlement context alongside the message.
type Logger interface {
	// SetLevel sets the minimum severity that will be emitted.
	SetLevel(level LogLevel)
	// GetLevel reports the current minimum severity.
	GetLevel() LogLevel
	Debug(message string, fields map[string]any)
	Info(message string, fields map[string]any)
	Warn(message string, fields map[string]any)
	Error(message string, fields map[string]any)
	// Flush writes out any buffered entries before shutdown.
	Flush() error
}
