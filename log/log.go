/*

Package log provides a small structured-logging abstraction so the decoder
does not depend directly on any particular logging library.

Typical usage wires a concrete backend once, near program start:

	log.SetLogger(log.NewZerologAdapter(zerolog.New(os.Stderr)))
	...
	log.Debug("anchor resolved", log.F("name", "trigger"), log.F("pos", pos))

Until SetLogger is called, every call is silently discarded.

*/
package log

import "sync"

// Field is a single structured logging key/value pair.
type Field struct {
	Key   string
	Value any
}

// F constructs a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logger is the logging interface the decoder depends on.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...Field) {}
func (noopLogger) Info(string, ...Field)  {}
func (noopLogger) Warn(string, ...Field)  {}
func (noopLogger) Error(string, ...Field) {}

var (
	mu           sync.RWMutex
	globalLogger Logger = noopLogger{}
)

// SetLogger installs l as the package-level logger. Passing nil restores
// the no-op logger.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		globalLogger = noopLogger{}
		return
	}
	globalLogger = l
}

// GetLogger returns the currently installed logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Debug logs at Debug level using the currently installed logger.
func Debug(msg string, fields ...Field) { GetLogger().Debug(msg, fields...) }

// Info logs at Info level using the currently installed logger.
func Info(msg string, fields ...Field) { GetLogger().Info(msg, fields...) }

// Warn logs at Warn level using the currently installed logger.
func Warn(msg string, fields ...Field) { GetLogger().Warn(msg, fields...) }

// Error logs at Error level using the currently installed logger.
func Error(msg string, fields ...Field) { GetLogger().Error(msg, fields...) }
