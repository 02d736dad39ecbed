// Package entry is the top-level cache-and-prefetch policy: decide whether a
// board's cached posts are fresh enough to reuse, fetch new ones under a
// timeout when they are not, keep image prefetch progressing either way, and
// degrade to stale data when the network misbehaves.
package entry

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/boardfeed/boardfeed/internal/diag"
	"github.com/boardfeed/boardfeed/internal/model"
	"github.com/boardfeed/boardfeed/internal/timeout"
)

// Source fetches a board's current posts. Always invoked under a timeout.
type Source interface {
	Fetch(ctx context.Context, board string, maxItems int) ([]model.Item, error)
}

// Store is the durable per-board record store.
type Store interface {
	Get(ctx context.Context, board string) (*model.Record, error)
	Put(ctx context.Context, board string, rec *model.Record) error
}

// ImagePass runs one board's image prefetch over items, mutating them.
// partial suppresses directory cleanup to protect resumable state.
type ImagePass interface {
	Run(ctx context.Context, dir string, items []model.Item, partial bool) bool
}

// Preferences is the read-only user preference lookup. Only the refresh
// interval is consulted here.
type Preferences interface {
	Preference(key string) (string, bool)
}

// Options are the orchestrator's operation budgets and defaults.
type Options struct {
	PostTimeout     time.Duration
	ImageTimeout    time.Duration
	MaxItems        int
	RefreshInterval time.Duration
	ImageRoot       string
}

// Result is what a caller gets back. Items is nil only when no cache ever
// existed and the remote fetch failed; CapturedAt is zero in the same case.
type Result struct {
	Items      []model.Item
	CapturedAt time.Time
}

type Orchestrator struct {
	source Source
	store  Store
	pass   ImagePass
	prefs  Preferences
	sink   diag.Sink
	opts   Options

	now func() time.Time
}

func NewOrchestrator(source Source, store Store, pass ImagePass, prefs Preferences, sink diag.Sink, opts Options) *Orchestrator {
	if sink == nil {
		sink = diag.Nop{}
	}
	return &Orchestrator{
		source: source,
		store:  store,
		pass:   pass,
		prefs:  prefs,
		sink:   sink,
		opts:   opts,
		now:    time.Now,
	}
}

// GetEntry returns a board's posts, from cache when fresh enough, otherwise
// freshly fetched with the prior cache as fallback. Failures degrade rather
// than escape: the worst outcome is an empty Result.
func (o *Orchestrator) GetEntry(ctx context.Context, board string, force bool) Result {
	rec, err := o.store.Get(ctx, board)
	if err != nil {
		o.sink.Error("cache.get", err)
		rec = nil
	}

	if !force && o.fresh(rec) {
		if !rec.AllImagesDownloaded {
			// Items are fresh but images lag behind: resume the
			// prefetch without touching the directory contents.
			o.prefetchAndPersist(ctx, board, rec, true)
		}
		return Result{Items: rec.Items, CapturedAt: rec.CapturedAt}
	}

	items, err := timeout.Run(ctx, o.opts.PostTimeout, func(ctx context.Context) ([]model.Item, error) {
		return o.source.Fetch(ctx, board, o.opts.MaxItems)
	})
	if err != nil {
		o.sink.Error("fetch."+board, err)
		if rec != nil {
			// A failed fetch never discards the existing record.
			return Result{Items: rec.Items, CapturedAt: rec.CapturedAt}
		}
		return Result{}
	}

	next := &model.Record{Items: items, CapturedAt: o.now()}
	o.prefetchAndPersist(ctx, board, next, false)
	return Result{Items: next.Items, CapturedAt: next.CapturedAt}
}

// fresh reports whether the record can be served without a remote fetch.
func (o *Orchestrator) fresh(rec *model.Record) bool {
	if rec == nil || len(rec.Items) == 0 || rec.CapturedAt.IsZero() {
		return false
	}
	return o.now().Sub(rec.CapturedAt) < o.refreshInterval()
}

func (o *Orchestrator) refreshInterval() time.Duration {
	if o.prefs != nil {
		if v, ok := o.prefs.Preference("refresh_interval"); ok {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				return d
			}
		}
	}
	return o.opts.RefreshInterval
}

// prefetchAndPersist runs the image pass over a clone of the record's items
// under the image budget, merges the clone back only when the pass settles in
// time, recomputes the completion flag, and persists. A timed-out pass keeps
// running against its clone; its file writes are recovered by the
// already-exists repair on the next invocation.
func (o *Orchestrator) prefetchAndPersist(ctx context.Context, board string, rec *model.Record, partial bool) {
	dir := filepath.Join(o.opts.ImageRoot, BoardDir(board))

	working := model.CloneItems(rec.Items)
	done, err := timeout.Run(ctx, o.opts.ImageTimeout, func(ctx context.Context) (bool, error) {
		return o.pass.Run(ctx, dir, working, partial), nil
	})
	if err != nil {
		o.sink.Error("images."+board, err)
	} else {
		rec.Items = working
		if !done {
			o.sink.Error("images."+board, errors.New("prefetch pass incomplete"))
		}
	}

	rec.AllImagesDownloaded = model.AllImagesDone(rec.Items)
	if err := o.store.Put(ctx, board, rec); err != nil {
		o.sink.Error("cache.put", err)
	}
}

// BoardDir maps a board name to its directory name under the image root.
func BoardDir(board string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, board)
	return mapped
}
