package logx

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// NewJSONLogger returns a logger writing to w at the given minimum level.
func NewJSONLogger(w io.Writer, level Level) *JSONLogger {
	return &JSONLogger{writer: w, level: level, fields: make([]Field, 0)}
}

// NewDefaultLogger returns a logger writing to stdout at info level.
func NewDefaultLogger() *JSONLogger { return NewJSONLogger(os.Stdout, InfoLevel) }

func (l *JSONLogger) log(level Level, msg string, fields ...Field) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	fieldMap := make(map[string]any)
	for _, f := range l.fields {
		fieldMap[f.Key] = f.Value
	}
	for _, f := range fields {
		fieldMap[f.Key] = f.Value
	}

	entry := Entry{
		Time:    time.Now().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
	}
	if len(fieldMap) > 0 {
		entry.Fields = fieldMap
	}

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(l.writer, "[ERROR] failed to marshal log entry: %v\n", err)
		return
	}
	l.writer.Write(data)
	l.writer.Write([]byte("\n"))
}

func (l *JSONLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields...) }
func (l *JSONLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields...) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields...) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields...) }

// With returns a child logger carrying fields on every subsequent entry.
func (l *JSONLogger) With(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	newFields := make([]Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)
	return &JSONLogger{writer: l.writer, level: l.level, fields: newFields}
}

func (l *JSONLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *JSONLogger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// StartTimer begins timing a pipeline stage.
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{logger: logger, msg: msg, start: time.Now(), fields: fields}
}

// End logs the operation at info level with its elapsed duration.
func (t *TimedOperation) End() {
	t.logger.Info(t.msg, append(t.fields, Latency(time.Since(t.start)))...)
}

// EndError logs the operation as an error with its elapsed duration.
func (t *TimedOperation) EndError(err error) {
	t.logger.Error(t.msg, append(t.fields, Latency(time.Since(t.start)), Error(err))...)
}
