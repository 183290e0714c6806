package logx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.trai.ch/zerr"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "debug"
	}
}

// ErrUnknownLevel is returned by ParseLevel.
var ErrUnknownLevel = zerr.New("unknown log level")

// ParseLevel maps "debug", "info", "warn" and "error" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "", "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelWarn, zerr.With(ErrUnknownLevel, "level", s)
	}
}

// Fields are structured key/value pairs attached to a log line.
type Fields map[string]any

const truncateLimit = 2 * 1024

var (
	mu       sync.RWMutex
	minLevel           = LevelWarn
	out      io.Writer = io.Discard
	verbose  bool
)

// SetOutput sets the destination for logs. nil discards them.
func SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	mu.Lock()
	out = w
	mu.Unlock()
}

// SetMinLevel sets the minimum level to emit.
func SetMinLevel(l Level) { mu.Lock(); minLevel = l; mu.Unlock() }

// SetVerbose toggles verbose output (no truncation of long messages and fields).
func SetVerbose(v bool) { mu.Lock(); verbose = v; mu.Unlock() }

// Enabled reports whether lines at l are emitted.
func Enabled(l Level) bool { mu.RLock(); defer mu.RUnlock(); return l >= minLevel }

// StdlogWriter wraps writes as JSON lines at a fixed level, for use as the
// output of a standard library *log.Logger. A nil w writes to whatever
// SetOutput last configured.
func StdlogWriter(level Level, w io.Writer) io.Writer {
	return &stdlogWriter{level: level, w: w}
}

type stdlogWriter struct {
	level Level
	w     io.Writer
}

func (sw *stdlogWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		w := sw.w
		if w == nil {
			mu.RLock()
			w = out
			mu.RUnlock()
		}
		if err := emit(w, sw.level, string(line), nil); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Debugf logs a debug message.
func Debugf(format string, args ...any) { logf(LevelDebug, format, args...) }

// Infof logs an info message.
func Infof(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warnf logs a warning message.
func Warnf(format string, args ...any) { logf(LevelWarn, format, args...) }

// Errorf logs an error message.
func Errorf(format string, args ...any) { logf(LevelError, format, args...) }

// Log emits msg with structured fields.
func Log(l Level, msg string, fields Fields) {
	mu.RLock()
	w := out
	mu.RUnlock()
	_ = emit(w, l, msg, fields)
}

func logf(l Level, format string, args ...any) {
	if !Enabled(l) {
		return
	}
	Log(l, fmt.Sprintf(format, args...), nil)
}

type entry struct {
	TS     string `json:"ts"`
	Level  string `json:"level"`
	Msg    string `json:"msg"`
	Fields Fields `json:"fields,omitempty"`
}

func emit(w io.Writer, lvl Level, msg string, fields Fields) error {
	mu.RLock()
	ml := minLevel
	v := verbose
	mu.RUnlock()
	if lvl < ml {
		return nil
	}
	if !v {
		msg = truncate(msg, truncateLimit)
	}
	var copied Fields
	if len(fields) > 0 {
		copied = make(Fields, len(fields))
		for k, val := range fields {
			switch x := val.(type) {
			case string:
				if !v {
					x = truncate(x, truncateLimit)
				}
				copied[k] = x
			case error:
				copied[k] = x.Error()
			default:
				copied[k] = val
			}
		}
	}
	b, err := json.Marshal(entry{
		TS:     time.Now().Format(time.RFC3339Nano),
		Level:  lvl.String(),
		Msg:    msg,
		Fields: copied,
	})
	if err != nil {
		_, err2 := io.WriteString(w, msg+"\n")
		return err2
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	// keep last 10 chars to aid context
	suffix := "… [truncated]"
	if limit > len(suffix)+10 {
		head := s[:limit-len(suffix)-10]
		tail := s[len(s)-10:]
		return head + suffix + tail
	}
	return s[:limit]
}
