package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// Janitor removes stale files (uploaded logos, generated previews) from the
// watched directories. Exports themselves are streamed, never written to
// disk, so the only state to reap is what upload handlers leave behind.
type Janitor struct {
	Dirs     []string
	MaxAge   time.Duration
	Interval time.Duration
}

// Run sweeps until the context is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	interval := j.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep()
		}
	}
}

// Sweep deletes files older than MaxAge in every watched directory.
func (j *Janitor) Sweep() {
	cutoff := time.Now().Add(-j.MaxAge)
	for _, dir := range j.Dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(cutoff) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if err := os.Remove(path); err != nil {
				log.WithError(err).WithField("file", path).Warn("cleanup remove failed")
				continue
			}
			log.WithField("file", path).Debug("cleaned up stale file")
		}
	}
}
