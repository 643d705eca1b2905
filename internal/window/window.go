// Package window selects the run of items currently eligible for display.
package window

// Bounds returns the half-open range [start, end) of the visible window.
// While the top card is being removed the window grows by one so the
// departing card and the full stack beneath it render together. The range is
// clipped to len; start == end when the collection is exhausted.
func Bounds(length, shownIndex, visibleCount int, removing bool) (start, end int) {
	count := visibleCount
	if removing {
		count++
	}
	start = min(max(shownIndex, 0), length)
	end = min(length, start+max(count, 0))
	return start, end
}

// SliceOf returns the visible items in source order. The result aliases
// items and must not be retained across mutations of the source collection.
func SliceOf[T any](items []T, shownIndex, visibleCount int, removing bool) []T {
	start, end := Bounds(len(items), shownIndex, visibleCount, removing)
	if start == end {
		return nil
	}
	return items[start:end:end]
}
