package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/boardfeed/boardfeed/internal/cache"
	"github.com/boardfeed/boardfeed/internal/config"
)

var flagPruneOlderThan string

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove stale board image directories",
	Long: `Delete per-board image directories whose contents have not been touched
within the cleanup interval and reclaim disk space.

Uses the cleanup_after value from config (default: 72h) unless overridden
with --older-than. Images are cheaply re-downloaded on the next fetch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		maxAge := cfg.CleanupAfter()
		if flagPruneOlderThan != "" {
			d, err := parseSince(flagPruneOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			maxAge = d
		}

		removed, err := pruneImageDirs(config.ImageRoot(), maxAge)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		if removed == 0 {
			fmt.Println("Nothing to prune.")
		} else {
			fmt.Printf("Pruned %d board image director%s older than %s.\n",
				removed, pluralY(removed), formatDuration(maxAge))
		}
		return nil
	},
}

// pruneImageDirs removes every directory under root whose mtime is older
// than maxAge and returns how many were removed.
func pruneImageDirs(root string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	cutoff := time.Now().Add(-maxAge)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, e.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.CachePath()
		store, err := cache.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()

		count, size, err := store.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}
		boards, err := store.Boards(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing boards: %w", err)
		}

		fmt.Printf("Cache: %s\n", dbPath)
		fmt.Printf("Boards: %d\n", count)
		for _, b := range boards {
			fmt.Printf("  %s\n", b)
		}
		fmt.Printf("Size: %s\n", formatBytes(size))
		fmt.Printf("Images: %s (%s)\n", config.ImageRoot(), formatBytes(dirSize(config.ImageRoot())))
		return nil
	},
}

func dirSize(root string) int64 {
	var total int64
	filepath.Walk(root, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return total
}

func init() {
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "", "override cleanup interval (e.g., 30d, 720h)")
}

func parseSince(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
