package images

import "context"

// CountForAbstract is the per-post image budget: posts with no abstract get
// three images, short abstracts two, long abstracts one. threshold is in
// runes.
func CountForAbstract(abstract string, threshold int) int {
	switch {
	case abstract == "":
		return 3
	case len([]rune(abstract)) < threshold:
		return 2
	default:
		return 1
	}
}

// SelectBySize probes candidate locators in order and returns, in the same
// relative order, the first maxCount whose advertised size is known, positive
// and within maxBytes. Probe failures reject the candidate and are never
// fatal. Once maxCount candidates are accepted the remaining locators are not
// probed at all.
func SelectBySize(ctx context.Context, f Fetcher, locators []string, maxBytes int64, maxCount int) []string {
	var accepted []string
	for _, loc := range locators {
		if len(accepted) >= maxCount {
			break
		}
		size, err := f.Probe(ctx, loc)
		if err != nil || size <= 0 || size > maxBytes {
			continue
		}
		accepted = append(accepted, loc)
	}
	return accepted
}
