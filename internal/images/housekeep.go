package images

import (
	"fmt"
	"os"
	"time"
)

// PrepareDir makes sure a board's image directory is ready for downloads.
// The shared root is created if missing. A directory whose last modification
// is older than cleanupAfter is deleted wholesale first: images are
// disposable and cheaply re-downloadable. skipCleanup must be set when a
// prior partial download attempt may still be resumed, so in-progress state
// is not destroyed mid-retry.
func PrepareDir(root, dir string, cleanupAfter time.Duration, skipCleanup bool) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("creating image root: %w", err)
	}

	if !skipCleanup {
		if info, err := os.Stat(dir); err == nil {
			if time.Since(info.ModTime()) > cleanupAfter {
				if err := os.RemoveAll(dir); err != nil {
					return fmt.Errorf("purging stale image dir: %w", err)
				}
			}
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating image dir: %w", err)
	}
	return nil
}
