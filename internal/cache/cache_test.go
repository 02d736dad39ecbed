package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/boardfeed/boardfeed/internal/model"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dbPath
}

func sampleRecord() *model.Record {
	return &model.Record{
		Items: []model.Item{
			{Title: "Post A", Link: "https://a.example.com", Abstract: "short", ImageLocators: []string{"https://a.example.com/1.jpg"}},
			{Title: "Post B", Link: "https://b.example.com", ImagesDownloaded: true},
		},
		CapturedAt: time.Now().Truncate(time.Second),
	}
}

func TestPutAndGet(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "golang", sampleRecord()); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(ctx, "golang")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected record, got nil")
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if got.Items[0].Title != "Post A" {
		t.Errorf("unexpected first item: %+v", got.Items[0])
	}
	if !got.Items[1].ImagesDownloaded {
		t.Error("images_downloaded flag not round-tripped")
	}
	if got.CapturedAt.IsZero() {
		t.Error("captured_at not round-tripped")
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	s, _ := testStore(t)
	got, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing board, got %+v", got)
	}
}

func TestGetMalformedPayloadTreatedAsAbsent(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	_, err := s.writeDB.ExecContext(ctx,
		"INSERT INTO records (board, payload, updated_at) VALUES (?, ?, ?)",
		"broken", "{not json", time.Now())
	if err != nil {
		t.Fatalf("seeding malformed row: %v", err)
	}

	got, err := s.Get(ctx, "broken")
	if err != nil {
		t.Fatalf("malformed payload must not be fatal: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for malformed payload, got %+v", got)
	}
}

func TestPutReplacesExisting(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "golang", sampleRecord()); err != nil {
		t.Fatalf("first put: %v", err)
	}
	replacement := &model.Record{
		Items:      []model.Item{{Title: "Only"}},
		CapturedAt: time.Now(),
	}
	if err := s.Put(ctx, "golang", replacement); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, err := s.Get(ctx, "golang")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Title != "Only" {
		t.Errorf("put did not fully replace record: %+v", got)
	}
}

func TestDelete(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "golang", sampleRecord()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Delete(ctx, "golang"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := s.Get(ctx, "golang")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}
}

func TestBoards(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	for _, b := range []string{"zeta", "alpha"} {
		if err := s.Put(ctx, b, sampleRecord()); err != nil {
			t.Fatalf("put %s: %v", b, err)
		}
	}
	boards, err := s.Boards(ctx)
	if err != nil {
		t.Fatalf("boards: %v", err)
	}
	if len(boards) != 2 || boards[0] != "alpha" || boards[1] != "zeta" {
		t.Errorf("unexpected boards: %v", boards)
	}
}

func TestStats(t *testing.T) {
	s, dbPath := testStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "golang", sampleRecord()); err != nil {
		t.Fatalf("put: %v", err)
	}
	count, size, err := s.Stats(dbPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 record, got %d", count)
	}
	if size <= 0 {
		t.Errorf("expected positive db size, got %d", size)
	}
}
