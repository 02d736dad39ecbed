package model

import "testing"

func TestAllImagesDone(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  bool
	}{
		{"empty", nil, true},
		{"all done", []Item{{ImagesDownloaded: true}, {ImagesDownloaded: true}}, true},
		{"one pending", []Item{{ImagesDownloaded: true}, {}}, false},
		{"all pending", []Item{{}, {}}, false},
	}
	for _, tt := range tests {
		if got := AllImagesDone(tt.items); got != tt.want {
			t.Errorf("%s: AllImagesDone = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCloneItemsIsDeep(t *testing.T) {
	orig := []Item{{
		Title:         "post",
		ImageLocators: []string{"https://img.example.com/a.jpg"},
		ImagePaths:    []string{"/tmp/a.jpg"},
	}}

	clone := CloneItems(orig)
	clone[0].ImagePaths = append(clone[0].ImagePaths, "/tmp/b.jpg")
	clone[0].ImageLocators[0] = "changed"
	clone[0].ImagesDownloaded = true

	if len(orig[0].ImagePaths) != 1 {
		t.Errorf("clone shares ImagePaths backing array with original")
	}
	if orig[0].ImageLocators[0] != "https://img.example.com/a.jpg" {
		t.Errorf("clone shares ImageLocators backing array with original")
	}
	if orig[0].ImagesDownloaded {
		t.Errorf("clone mutation leaked into original")
	}
}

func TestCloneItemsNil(t *testing.T) {
	if CloneItems(nil) != nil {
		t.Error("CloneItems(nil) should be nil")
	}
}

func TestRecordValid(t *testing.T) {
	var nilRec *Record
	if nilRec.Valid() {
		t.Error("nil record should be invalid")
	}
	if (&Record{}).Valid() {
		t.Error("record without items slice should be invalid")
	}
	if !(&Record{Items: []Item{}}).Valid() {
		t.Error("record with empty items slice should be valid")
	}
}
