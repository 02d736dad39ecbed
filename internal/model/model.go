// Package model defines the records boardfeed persists per tracked board.
package model

import "time"

// Item is one fetched forum post. ImagePaths and ImagesDownloaded carry the
// durable image-prefetch progress: once ImagesDownloaded is true no further
// download attempts are made for the item, across process restarts.
type Item struct {
	Title         string    `json:"title,omitempty"`
	Link          string    `json:"link,omitempty"`
	Posted        time.Time `json:"posted,omitempty"`
	Abstract      string    `json:"abstract,omitempty"`
	ImageLocators []string  `json:"image_locators,omitempty"`

	ImagesDownloaded bool     `json:"images_downloaded,omitempty"`
	ImagePaths       []string `json:"image_paths,omitempty"`
}

// Record is the cached state for one board. CapturedAt is set once per
// successful remote fetch and never touched by image-download activity;
// freshness is judged purely against it.
type Record struct {
	Items               []Item    `json:"items"`
	CapturedAt          time.Time `json:"captured_at"`
	AllImagesDownloaded bool      `json:"all_images_downloaded"`
}

// AllImagesDone reports whether every item has finished its image downloads.
func AllImagesDone(items []Item) bool {
	for i := range items {
		if !items[i].ImagesDownloaded {
			return false
		}
	}
	return true
}

// CloneItems returns a deep copy of items. The orchestrator hands a clone to
// the image pass it races against a deadline, so an abandoned pass never
// mutates the record that gets persisted.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	for i := range out {
		out[i].ImageLocators = append([]string(nil), items[i].ImageLocators...)
		out[i].ImagePaths = append([]string(nil), items[i].ImagePaths...)
	}
	return out
}

// Valid reports whether a deserialized record is usable. Malformed persisted
// state is treated as an absent cache entry, never as a fatal error.
func (r *Record) Valid() bool {
	if r == nil {
		return false
	}
	return r.Items != nil
}
