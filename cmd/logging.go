package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

func logFileName(t time.Time) string {
	return fmt.Sprintf("log_%s.log", t.Format("2006-01-02"))
}

// dailyLogFile appends to <dir>/log_YYYY-MM-DD.log and switches files when
// Rotate is called on a new day.
type dailyLogFile struct {
	dir  string
	now  func() time.Time
	mu   sync.Mutex
	file *os.File
	name string
}

func openDailyLogFile(dir string, now func() time.Time) (*dailyLogFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	d := &dailyLogFile{dir: dir, now: now}
	if err := d.Rotate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *dailyLogFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.file.Write(p)
}

// Rotate opens today's file if it is not already the active one.
func (d *dailyLogFile) Rotate() error {
	name := logFileName(d.now())

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file != nil && d.name == name {
		return nil
	}

	file, err := os.OpenFile(filepath.Join(d.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if d.file != nil {
		d.file.Close()
	}
	d.file = file
	d.name = name
	return nil
}

func (d *dailyLogFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// setupLogging routes slog to stdout and the daily log file, and schedules
// the midnight file switch.
func setupLogging(logDir string) (*dailyLogFile, *cron.Cron, error) {
	logFile, err := openDailyLogFile(logDir, time.Now)
	if err != nil {
		return nil, nil, err
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, logFile), &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(handler))

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		if err := logFile.Rotate(); err != nil {
			slog.Error("failed to rotate log file", "error", err)
		}
	}); err != nil {
		logFile.Close()
		return nil, nil, fmt.Errorf("failed to schedule log rotation: %w", err)
	}
	scheduler.Start()

	abs, _ := filepath.Abs(filepath.Join(logDir, logFileName(time.Now())))
	slog.Info("logging initialized", "file", abs)
	return logFile, scheduler, nil
}
