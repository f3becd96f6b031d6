package core

// Logger interface for optimization and CLI output
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards every message
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
