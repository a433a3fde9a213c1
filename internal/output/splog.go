package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// simpleHandler is a custom slog handler that writes messages without timestamps or level prefixes
type simpleHandler struct {
	writer    io.Writer
	debugMode bool
	quiet     *bool
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	// Debug messages only enabled in debug mode
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return true
}

func (h *simpleHandler) Handle(_ context.Context, record slog.Record) error {
	// Quiet mode keeps warnings and errors on the console
	if *h.quiet && record.Level < slog.LevelWarn {
		return nil
	}
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *simpleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Rotation defaults for the log file; each can be overridden from the
// environment. Sizes are in megabytes and ages in days.
const (
	defaultLogMaxSize    = 1
	defaultLogMaxBackups = 2
	defaultLogMaxAge     = 30
)

// createLumberjackLogger builds the rotating writer behind the log file.
// DENDRIFY_LOG_MAX_SIZE, DENDRIFY_LOG_MAX_BACKUPS and DENDRIFY_LOG_MAX_AGE
// override the defaults; malformed values are ignored.
func createLumberjackLogger(logFilePath string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    envInt("DENDRIFY_LOG_MAX_SIZE", defaultLogMaxSize, 1),
		MaxBackups: envInt("DENDRIFY_LOG_MAX_BACKUPS", defaultLogMaxBackups, 0),
		MaxAge:     envInt("DENDRIFY_LOG_MAX_AGE", defaultLogMaxAge, 1),
	}
}

// envInt reads an integer of at least minimum from the environment
func envInt(name string, fallback, minimum int) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil || v < minimum {
		return fallback
	}
	return v
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// Splog provides structured logging and output
type Splog struct {
	logger    *slog.Logger
	console   slog.Handler
	logWriter io.WriteCloser // rotating log file, nil when closed or unset
	quiet     bool
}

// NewSplog creates a console-only splog writing to w.
// Debug messages are enabled when the DEBUG environment variable is set.
func NewSplog(w io.Writer) *Splog {
	splog, _ := NewSplogWithConfig(w, "")
	return splog
}

// NewSplogWithConfig creates a splog writing to w, and also to a rotating log
// file when logFilePath is set
func NewSplogWithConfig(w io.Writer, logFilePath string) (*Splog, error) {
	splog := &Splog{}

	consoleHandler := &simpleHandler{
		writer:    w,
		debugMode: os.Getenv("DEBUG") != "",
		quiet:     &splog.quiet,
	}
	splog.console = consoleHandler
	handlers := []slog.Handler{consoleHandler}

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		lumberjackLogger := createLumberjackLogger(logFilePath)
		splog.logWriter = lumberjackLogger

		// File logs always carry everything, with timestamps
		fileHandler := slog.NewTextHandler(lumberjackLogger, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				return a
			},
		})
		handlers = append(handlers, fileHandler)
	}

	splog.logger = slog.New(&multiHandler{handlers: handlers})
	return splog, nil
}

// SetQuiet suppresses info and debug output on the console. The log file,
// if any, still receives everything.
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet = quiet
}

func (s *Splog) logMessage(level slog.Level, msg string) {
	s.logger.Log(context.Background(), level, msg)
}

func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Info writes an info message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Info(format string, args ...interface{}) {
	s.logMessage(slog.LevelInfo, sprintf(format, args))
}

// Warn writes a warning message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Warn(format string, args ...interface{}) {
	s.logMessage(slog.LevelWarn, "⚠️  "+sprintf(format, args))
}

// Error writes an error message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Error(format string, args ...interface{}) {
	s.logMessage(slog.LevelError, ColorRed(sprintf(format, args)))
}

// Debug writes a debug message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Debug(format string, args ...interface{}) {
	s.logMessage(slog.LevelDebug, sprintf(format, args))
}

// Report implements engine.Reporter, logging each progress line at info level
func (s *Splog) Report(line string) {
	s.logMessage(slog.LevelInfo, line)
}

// Close closes the log file if one was opened. Later messages only reach
// the console. Closing twice is harmless.
func (s *Splog) Close() error {
	if s.logWriter == nil {
		return nil
	}
	err := s.logWriter.Close()
	s.logWriter = nil
	s.logger = slog.New(s.console)
	return err
}
