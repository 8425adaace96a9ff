package shelf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdenapp/bookden/model"
)

func newEntry() *model.ShelfEntry {
	return &model.ShelfEntry{
		UserID:        1,
		BookID:        1,
		Status:        model.ShelfStatusReading,
		UnlockedPages: 1,
	}
}

func TestApplyAdvances(t *testing.T) {
	entry := newEntry()

	result := Apply(entry, 100, model.PageUnlocked{NewUnlockedCount: 5})
	require.True(t, result.Changed)
	assert.False(t, result.Completed)
	assert.Equal(t, 5, entry.UnlockedPages)
	assert.Equal(t, model.ShelfStatusReading, entry.Status)
}

func TestApplyNeverMovesBackwards(t *testing.T) {
	entry := newEntry()
	entry.UnlockedPages = 42

	for _, stale := range []int{41, 42, 1, 0} {
		result := Apply(entry, 100, model.PageUnlocked{NewUnlockedCount: stale})
		assert.False(t, result.Changed, "count %d must be a no-op", stale)
		assert.Equal(t, 42, entry.UnlockedPages)
	}
}

func TestApplyClampsAtTotalPages(t *testing.T) {
	entry := newEntry()

	result := Apply(entry, 100, model.PageUnlocked{NewUnlockedCount: 5000})
	require.True(t, result.Changed)
	assert.Equal(t, 100, entry.UnlockedPages)
	assert.Equal(t, model.ShelfStatusRead, entry.Status)
}

func TestApplyAutoCompletes(t *testing.T) {
	entry := newEntry()

	result := Apply(entry, 100, model.PageUnlocked{NewUnlockedCount: 100})
	require.True(t, result.Changed)
	assert.True(t, result.Completed)
	assert.Equal(t, model.ShelfStatusRead, entry.Status)
}

// Advancing one page at a time must finish the book with exactly one
// completion signal.
func TestApplyCompletesExactlyOnce(t *testing.T) {
	entry := newEntry()
	totalPages := 30

	completions := 0
	for page := 2; page <= totalPages+5; page++ {
		result := Apply(entry, totalPages, model.PageUnlocked{NewUnlockedCount: page})
		if result.Completed {
			completions++
		}
	}

	assert.Equal(t, 1, completions)
	assert.Equal(t, totalPages, entry.UnlockedPages)
	assert.Equal(t, model.ShelfStatusRead, entry.Status)
}

// A manual status write can mark a book Read without unlocking every
// page. The reducer must not fire a second completion when the counter
// eventually catches up.
func TestApplyManualReadStatus(t *testing.T) {
	entry := newEntry()
	entry.Status = model.ShelfStatusRead

	result := Apply(entry, 100, model.PageUnlocked{NewUnlockedCount: 100})
	require.True(t, result.Changed)
	assert.False(t, result.Completed)
}

func TestApplyDefaultsTotalPages(t *testing.T) {
	entry := newEntry()

	result := Apply(entry, 0, model.PageUnlocked{NewUnlockedCount: model.DefaultTotalPages + 10})
	require.True(t, result.Changed)
	assert.Equal(t, model.DefaultTotalPages, entry.UnlockedPages)
	assert.Equal(t, model.ShelfStatusRead, entry.Status)
}
