// Package shelf holds the reading-progress rules. Progress mutations
// arrive as explicit PageUnlocked events and the reducer applies every
// shelf-status rule in one place, including auto-completion, instead of
// hiding it inside the page tracker.
package shelf // import "github.com/bookdenapp/bookden/shelf"

import "github.com/bookdenapp/bookden/model"

// Result reports what a reduction did to the entry.
type Result struct {
	// Changed is false when the event was stale (the unlocked counter
	// never moves backwards).
	Changed bool
	// Completed is true when this event pushed the entry across the
	// finish line, it fires at most once per entry.
	Completed bool
}

// Apply folds a PageUnlocked event into a shelf entry.
//
// Rules, in order:
//  1. The unlocked counter is monotonically non-decreasing.
//  2. The counter is clamped at the book's total page count.
//  3. unlocked == total flips the status to Read (auto-complete).
//
// The inverse does not hold: a direct status write through AddOrUpdate
// can still leave unlocked < total with status Read, the two are only
// coupled through this reducer.
func Apply(entry *model.ShelfEntry, totalPages int, event model.PageUnlocked) Result {
	if totalPages <= 0 {
		totalPages = model.DefaultTotalPages
	}

	next := event.NewUnlockedCount
	if next > totalPages {
		next = totalPages
	}
	if next <= entry.UnlockedPages {
		return Result{}
	}

	entry.UnlockedPages = next

	result := Result{Changed: true}
	if entry.UnlockedPages == totalPages && entry.Status != model.ShelfStatusRead {
		entry.Status = model.ShelfStatusRead
		result.Completed = true
	}
	return result
}
