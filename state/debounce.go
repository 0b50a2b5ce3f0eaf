package state

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Debouncer runs fn with the most recent payload once no new payload has
// arrived for the delay. Safe for concurrent use.
type Debouncer struct {
	delay time.Duration
	fn    func(string)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	armed   bool
}

// NewDebouncer creates a trailing-edge debouncer.
func NewDebouncer(delay time.Duration, fn func(string)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger replaces the pending payload and restarts the delay.
func (d *Debouncer) Trigger(payload string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = payload
	d.armed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.armed {
		d.mu.Unlock()
		return
	}
	payload := d.pending
	d.armed = false
	d.mu.Unlock()

	d.fn(payload)
}

// Flush runs the pending payload immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.fire()
}

// Stop cancels the pending payload.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.armed = false
}

// FileSink writes fragments to a file, replacing it atomically.
type FileSink struct {
	Path string
}

// Write stores fragment. Errors are logged; the sketch keeps running.
func (s FileSink) Write(fragment string) {
	if s.Path == "" {
		return
	}
	if err := s.write(fragment); err != nil {
		slog.Error("writing state", "path", s.Path, "error", err)
	}
}

func (s FileSink) write(fragment string) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(fragment + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}

// Read loads the stored fragment.
func (s FileSink) Read() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
