package images

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/boardfeed/boardfeed/internal/diag"
	"github.com/boardfeed/boardfeed/internal/model"
)

// Prefetcher downloads the selected images for each item of a board into the
// board's image directory. It mutates the items it is given; persistence is
// the caller's job.
type Prefetcher struct {
	fetcher           Fetcher
	sink              diag.Sink
	root              string
	maxBytes          int64
	abstractThreshold int
	cleanupAfter      time.Duration
}

func NewPrefetcher(f Fetcher, sink diag.Sink, root string, maxBytes int64, abstractThreshold int, cleanupAfter time.Duration) *Prefetcher {
	if sink == nil {
		sink = diag.Nop{}
	}
	return &Prefetcher{
		fetcher:           f,
		sink:              sink,
		root:              root,
		maxBytes:          maxBytes,
		abstractThreshold: abstractThreshold,
		cleanupAfter:      cleanupAfter,
	}
}

// LocalFilename derives the on-disk filename for a locator: the final path
// segment of its URL. The derivation is stable, which makes downloaded-state
// detection filesystem-idempotent across crashes and restarts.
func LocalFilename(locator string) (string, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return "", fmt.Errorf("parsing locator %s: %w", locator, err)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("locator %s has no usable filename", locator)
	}
	return name, nil
}

// Run executes one board's prefetch pass: directory preparation, then every
// item's downloads started together and jointly waited on. partial flags that
// a prior attempt may have left resumable state in dir, which suppresses the
// staleness cleanup. Returns true iff every item finished its images.
func (p *Prefetcher) Run(ctx context.Context, dir string, items []model.Item, partial bool) bool {
	if err := PrepareDir(p.root, dir, p.cleanupAfter, partial); err != nil {
		p.sink.Error("images.prepare", err)
		return false
	}

	ok := make([]bool, len(items))
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok[i] = p.DownloadImages(ctx, dir, &items[i])
		}(i)
	}
	wg.Wait()

	for _, b := range ok {
		if !b {
			return false
		}
	}
	return true
}

// DownloadImages resolves one item's images. It returns true when the item
// has reached a terminal state: everything selected is on disk, or nothing
// qualified for download in the first place. On partial failure the item
// keeps ImagesDownloaded == false so a later pass retries only the missing
// files.
func (p *Prefetcher) DownloadImages(ctx context.Context, dir string, item *model.Item) bool {
	if item.ImagesDownloaded {
		return true
	}
	if len(item.ImageLocators) == 0 {
		// No images is a terminal success state.
		item.ImagesDownloaded = true
		return true
	}

	budget := CountForAbstract(item.Abstract, p.abstractThreshold)
	selected := SelectBySize(ctx, p.fetcher, item.ImageLocators, p.maxBytes, budget)
	if len(selected) == 0 {
		// Nothing qualified; not retriable.
		item.ImagesDownloaded = true
		return true
	}

	if item.ImagePaths == nil {
		item.ImagePaths = []string{}
	}
	// Sentinel: download attempted, not yet known-complete.
	item.ImagesDownloaded = false

	tracked := make(map[string]bool, len(item.ImagePaths))
	for _, known := range item.ImagePaths {
		tracked[known] = true
	}

	var pending []pendingDownload
	failures := 0
	for _, loc := range selected {
		name, err := LocalFilename(loc)
		if err != nil {
			p.sink.Error("images.filename", err)
			failures++
			continue
		}
		target := filepath.Join(dir, name)
		if tracked[target] {
			continue
		}
		if _, err := os.Stat(target); err == nil {
			// Downloaded by an earlier attempt but never recorded:
			// repair the bookkeeping instead of re-fetching.
			item.ImagePaths = append(item.ImagePaths, target)
			tracked[target] = true
			continue
		}
		pending = append(pending, pendingDownload{locator: loc, target: target})
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		failed int
	)
	for _, dl := range pending {
		wg.Add(1)
		go func(dl pendingDownload) {
			defer wg.Done()
			if err := p.downloadOne(ctx, dl); err != nil {
				p.sink.Error("images.download", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			item.ImagePaths = append(item.ImagePaths, dl.target)
			mu.Unlock()
		}(dl)
	}
	wg.Wait()

	if failures+failed == 0 {
		item.ImagesDownloaded = true
		return true
	}
	return false
}

type pendingDownload struct {
	locator string
	target  string
}

func (p *Prefetcher) downloadOne(ctx context.Context, dl pendingDownload) error {
	data, err := p.fetcher.Get(ctx, dl.locator)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dl.target, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dl.target, err)
	}
	return nil
}
