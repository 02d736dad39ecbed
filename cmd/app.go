package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boardfeed/boardfeed/internal/cache"
	"github.com/boardfeed/boardfeed/internal/config"
	"github.com/boardfeed/boardfeed/internal/diag"
	"github.com/boardfeed/boardfeed/internal/entry"
	"github.com/boardfeed/boardfeed/internal/forum"
	"github.com/boardfeed/boardfeed/internal/images"
	"github.com/boardfeed/boardfeed/internal/tui"
	"github.com/boardfeed/boardfeed/internal/update"
)

// buildOrchestrator wires the orchestrator and its collaborators from config.
// The returned store must be closed by the caller.
func buildOrchestrator(cfg *config.Config) (*entry.Orchestrator, *cache.Store, error) {
	store, err := cache.Open(config.CachePath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}

	sink := diag.NewLogSink(cfg.Log)
	fetcher := images.NewHTTPFetcher(cfg.ImageTimeout())
	prefetcher := images.NewPrefetcher(
		fetcher,
		sink,
		config.ImageRoot(),
		cfg.MaxImageBytes(),
		cfg.AbstractThreshold(),
		cfg.CleanupAfter(),
	)
	source := forum.NewRSSClient(cfg.EnabledBoards())

	orch := entry.NewOrchestrator(source, store, prefetcher, cfg, sink, entry.Options{
		PostTimeout:     cfg.PostTimeout(),
		ImageTimeout:    cfg.ImageTimeout(),
		MaxItems:        cfg.MaxItems(),
		RefreshInterval: cfg.RefreshDuration(),
		ImageRoot:       config.ImageRoot(),
	})
	return orch, store, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	orch, store, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Release check runs while the TUI is up; the result is only
	// printed once the alternate screen is torn down.
	relCh := make(chan *update.Release, 1)
	go func() { relCh <- update.Check(context.Background(), version) }()

	if err := tui.Run(tui.RunOpts{Cfg: cfg, Orch: orch, ForceReload: flagRefresh}); err != nil {
		return err
	}

	select {
	case rel := <-relCh:
		if rel != nil {
			fmt.Printf("A new release is available: %s (%s)\n", rel.Version, rel.URL)
		}
	default:
	}
	return nil
}
