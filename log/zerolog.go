package log

import "github.com/rs/zerolog"

// zerologAdapter adapts a zerolog.Logger to the Logger interface.
type zerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps a zerolog.Logger as a Logger.
func NewZerologAdapter(logger zerolog.Logger) Logger {
	return &zerologAdapter{logger: logger}
}

func (a *zerologAdapter) Debug(msg string, fields ...Field) {
	addFields(a.logger.Debug(), fields).Msg(msg)
}

func (a *zerologAdapter) Info(msg string, fields ...Field) {
	addFields(a.logger.Info(), fields).Msg(msg)
}

func (a *zerologAdapter) Warn(msg string, fields ...Field) {
	addFields(a.logger.Warn(), fields).Msg(msg)
}

func (a *zerologAdapter) Error(msg string, fields ...Field) {
	addFields(a.logger.Error(), fields).Msg(msg)
}

func addFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		event = addField(event, f)
	}
	return event
}

func addField(event *zerolog.Event, f Field) *zerolog.Event {
	switch v := f.Value.(type) {
	case string:
		return event.Str(f.Key, v)
	case int:
		return event.Int(f.Key, v)
	case int8:
		return event.Int8(f.Key, v)
	case int16:
		return event.Int16(f.Key, v)
	case int32:
		return event.Int32(f.Key, v)
	case int64:
		return event.Int64(f.Key, v)
	case uint:
		return event.Uint(f.Key, v)
	case uint8:
		return event.Uint8(f.Key, v)
	case uint16:
		return event.Uint16(f.Key, v)
	case uint32:
		return event.Uint32(f.Key, v)
	case uint64:
		return event.Uint64(f.Key, v)
	case float32:
		return event.Float32(f.Key, v)
	case float64:
		return event.Float64(f.Key, v)
	case bool:
		return event.Bool(f.Key, v)
	case error:
		return event.AnErr(f.Key, v)
	case []byte:
		return event.Bytes(f.Key, v)
	default:
		return event.Interface(f.Key, v)
	}
}
