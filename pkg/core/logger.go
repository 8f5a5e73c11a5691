package core

// Logger receives progress messages from the renderer
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards every message
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}
