package logx

import "time"

func String(key, value string) Field   { return Field{Key: key, Value: value} }
func Int(key string, value int) Field  { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field { return Field{Key: key, Value: value} }

// Stage names the initialization stage a log line belongs to: "load",
// "pass1", "pass2", "validate".
func Stage(name string) Field { return String("stage", name) }

// File names the input file a log line concerns.
func File(path string) Field { return String("file", path) }

// Element names the qualified element name a log line concerns.
func Element(name string) Field { return String("element", name) }

func Latency(d time.Duration) Field { return Duration("latency", d) }

func Count(n int) Field { return Int("count", n) }
