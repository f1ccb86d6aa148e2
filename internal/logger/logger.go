package logger

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/muliwe/package-sorter/internal/classifier"
	"github.com/muliwe/package-sorter/internal/sorting"
)

// LogEntry represents a single sorting decision
type LogEntry struct {
	Timestamp      time.Time       `json:"timestamp"`
	RequestID      string          `json:"request_id"`
	RemoteAddr     string          `json:"remote_addr,omitempty"`
	Package        sorting.Package `json:"package"`
	Volume         float64         `json:"volume"`
	Bulky          bool            `json:"bulky"`
	Heavy          bool            `json:"heavy"`
	Stack          sorting.Stack   `json:"stack"`
	Reason         string          `json:"reason"`
	ResponseTimeMs int64           `json:"response_time_ms"`
}

// Logger appends sorting decisions to a JSONL file. It is safe for
// concurrent use.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
}

// Config holds decision log configuration
type Config struct {
	LogDir   string // Directory for log files
	FileName string // Log file name (default: decisions.jsonl)
	Stdout   bool   // Also write to stdout
}

// DefaultConfig returns default decision log configuration
func DefaultConfig() Config {
	return Config{
		LogDir:   "logs",
		FileName: "decisions.jsonl",
		Stdout:   false,
	}
}

// New creates a decision logger, creating the log directory if needed
func New(cfg Config) (*Logger, error) {
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, err
	}

	logPath := filepath.Join(cfg.LogDir, cfg.FileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	var writer io.Writer = file
	if cfg.Stdout {
		writer = io.MultiWriter(file, os.Stdout)
	}

	return &Logger{
		file:    file,
		encoder: json.NewEncoder(writer),
	}, nil
}

// Log writes an entry to the log
func (l *Logger) Log(entry LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.encoder.Encode(entry)
}

// LogResult logs a classification result with request metadata
func (l *Logger) LogResult(result classifier.Result, remoteAddr string, responseTimeMs int64) error {
	return l.Log(LogEntry{
		Timestamp:      result.Timestamp,
		RequestID:      result.RequestID,
		RemoteAddr:     remoteAddr,
		Package:        result.Package,
		Volume:         result.Volume,
		Bulky:          result.Bulky,
		Heavy:          result.Heavy,
		Stack:          result.Stack,
		Reason:         result.Reason,
		ResponseTimeMs: responseTimeMs,
	})
}

// Close closes the logger
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// LogPath returns the path to the log file
func (l *Logger) LogPath() string {
	if l.file != nil {
		return l.file.Name()
	}
	return ""
}
