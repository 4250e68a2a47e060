package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// ParseLevel преобразует строку из конфигурации в уровень логирования
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger пишет сообщения одновременно в stdout и в файл (если указан)
type Logger struct {
	level  Level
	out    *log.Logger
	file   *os.File
	exitFn func(int)
}

// New создает логгер. Пустой path означает вывод только в stdout.
func New(path string, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var (
		writer io.Writer = os.Stdout
		file   *os.File
	)

	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create log dir: %w", err)
			}
		}
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writer = io.MultiWriter(os.Stdout, file)
	}

	return &Logger{
		level:  lvl,
		out:    log.New(writer, "", log.LstdFlags|log.Lmicroseconds),
		file:   file,
		exitFn: os.Exit,
	}, nil
}

// NewWithWriter создает логгер поверх произвольного writer (используется в тестах)
func NewWithWriter(w io.Writer, level Level) *Logger {
	return &Logger{
		level:  level,
		out:    log.New(w, "", 0),
		exitFn: os.Exit,
	}
}

func (l *Logger) Debug(format string, v ...interface{}) { l.write(LevelDebug, format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.write(LevelInfo, format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.write(LevelWarn, format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.write(LevelError, format, v...) }

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.out.Printf("[FATAL] "+format, v...)
	l.Close()
	l.exitFn(1)
}

// Close закрывает файл лога
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) write(level Level, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf("["+levelNames[level]+"] "+format, v...)
}
