package images

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

// fakeFetcher serves canned probe sizes and bodies, and records traffic.
// Safe for the concurrent access the prefetcher subjects it to.
type fakeFetcher struct {
	sizes     map[string]int64
	probeErrs map[string]error
	bodies    map[string][]byte
	getErrs   map[string]error

	mu     sync.Mutex
	probed []string
	got    []string
}

func (f *fakeFetcher) Probe(_ context.Context, url string) (int64, error) {
	f.mu.Lock()
	f.probed = append(f.probed, url)
	f.mu.Unlock()
	if err, ok := f.probeErrs[url]; ok {
		return 0, err
	}
	size, ok := f.sizes[url]
	if !ok {
		return 0, fmt.Errorf("no probe fixture for %s", url)
	}
	return size, nil
}

func (f *fakeFetcher) Get(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.got = append(f.got, url)
	f.mu.Unlock()
	if err, ok := f.getErrs[url]; ok {
		return nil, err
	}
	body, ok := f.bodies[url]
	if !ok {
		return nil, fmt.Errorf("no body fixture for %s", url)
	}
	return body, nil
}

func TestCountForAbstract(t *testing.T) {
	tests := []struct {
		name     string
		abstract string
		want     int
	}{
		{"no abstract", "", 3},
		{"short abstract", "brief", 2},
		{"short multibyte abstract", "短い要約です", 2},
		{"long abstract", "this abstract is definitely longer than the configured threshold of sixty runes in total", 1},
	}
	for _, tt := range tests {
		if got := CountForAbstract(tt.abstract, 60); got != tt.want {
			t.Errorf("%s: CountForAbstract = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestSelectBySizeCountLimit(t *testing.T) {
	f := &fakeFetcher{sizes: map[string]int64{
		"u1": 100, "u2": 100, "u3": 100, "u4": 100, "u5": 100,
	}}
	got := SelectBySize(context.Background(), f, []string{"u1", "u2", "u3", "u4", "u5"}, 1<<20, 3)

	if len(got) != 3 {
		t.Fatalf("expected 3 selected, got %d", len(got))
	}
	for i, want := range []string{"u1", "u2", "u3"} {
		if got[i] != want {
			t.Errorf("selection out of order: got %v", got)
		}
	}
	// Short-circuit: u4 and u5 must never be probed.
	if len(f.probed) != 3 {
		t.Errorf("expected 3 probes, got %d (%v)", len(f.probed), f.probed)
	}
}

func TestSelectBySizeByteLimit(t *testing.T) {
	f := &fakeFetcher{sizes: map[string]int64{
		"a": 2 << 20,   // 2MB, over budget
		"b": 500 << 10, // 500KB, fits
	}}
	got := SelectBySize(context.Background(), f, []string{"a", "b"}, 1<<20, 3)
	if len(got) != 1 || got[0] != "b" {
		t.Errorf("expected [b], got %v", got)
	}
}

func TestSelectBySizeRejectsProbeFailures(t *testing.T) {
	f := &fakeFetcher{
		sizes:     map[string]int64{"ok": 100, "zero": 0},
		probeErrs: map[string]error{"bad": errors.New("boom")},
	}
	got := SelectBySize(context.Background(), f, []string{"bad", "zero", "ok"}, 1<<20, 3)
	if len(got) != 1 || got[0] != "ok" {
		t.Errorf("expected [ok], got %v", got)
	}
}

func TestSelectBySizeMayComeUpShort(t *testing.T) {
	f := &fakeFetcher{sizes: map[string]int64{"u1": 100}}
	got := SelectBySize(context.Background(), f, []string{"u1"}, 1<<20, 3)
	if len(got) != 1 {
		t.Errorf("expected 1 selected, got %v", got)
	}
}
