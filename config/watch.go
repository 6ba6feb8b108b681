package config

import (
	"context"
	"os"
	"time"
)

// Watcher polls file mtimes and invokes the callback when any of them changes.
// It is the fallback when an fsnotify watcher cannot be created.
type Watcher struct {
	Paths    []string
	Interval time.Duration
}

// Start polls until ctx is done. A file that disappears or appears counts as a change.
func (w Watcher) Start(ctx context.Context, onChange func()) error {
	if w.Interval <= 0 {
		w.Interval = 2 * time.Second
	}
	last := make(map[string]time.Time, len(w.Paths))
	for _, p := range w.Paths {
		last[p] = modTime(p)
	}
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			changed := false
			for _, p := range w.Paths {
				mod := modTime(p)
				if !mod.Equal(last[p]) {
					last[p] = mod
					changed = true
				}
			}
			if changed && onChange != nil {
				onChange()
			}
		}
	}
}

// modTime returns the zero time for files that cannot be stat'ed.
func modTime(path string) time.Time {
	info, err := readFileInfo(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// readFileInfo is extracted for testing/mocking.
var readFileInfo = func(path string) (info interface{ ModTime() time.Time }, err error) {
	return os.Stat(path)
}
