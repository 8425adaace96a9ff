package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdenapp/bookden/model"
)

func TestUpsertShelfEntry(t *testing.T) {
	s := newTestStore(t)

	user := createTestUser(t, s, "alice", "alice@example.com")
	book := createTestBook(t, s, "Dune", "Sci-Fi", 4.5)

	entry, err := s.UpsertShelfEntry(&model.ShelfEntry{
		UserID:     user.ID,
		BookID:     book.ID,
		Status:     model.ShelfStatusWantToRead,
		Title:      book.Title,
		Author:     book.Author,
		Genre:      book.Genre,
		CoverImage: book.CoverImage,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ShelfStatusWantToRead, entry.Status)
	assert.Equal(t, 1, entry.UnlockedPages)

	// Any status transition is legal, including Read straight back to
	// Want to Read.
	entry.Status = model.ShelfStatusRead
	entry, err = s.UpsertShelfEntry(entry)
	require.NoError(t, err)
	assert.Equal(t, model.ShelfStatusRead, entry.Status)

	entry.Status = model.ShelfStatusWantToRead
	entry, err = s.UpsertShelfEntry(entry)
	require.NoError(t, err)
	assert.Equal(t, model.ShelfStatusWantToRead, entry.Status)

	entries, err := s.ListShelfEntries(&model.FindShelfEntry{UserID: &user.ID})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestApplyPageUnlockedAdvances(t *testing.T) {
	s := newTestStore(t)

	user := createTestUser(t, s, "alice", "alice@example.com")
	book := createTestBook(t, s, "Dune", "Sci-Fi", 4.5)
	_, err := s.UpsertShelfEntry(&model.ShelfEntry{
		UserID: user.ID,
		BookID: book.ID,
		Status: model.ShelfStatusReading,
		Title:  book.Title,
	})
	require.NoError(t, err)

	entry, err := s.ApplyPageUnlocked(model.PageUnlocked{
		UserID:           user.ID,
		BookID:           book.ID,
		NewUnlockedCount: 42,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, entry.UnlockedPages)
	assert.Equal(t, model.ShelfStatusReading, entry.Status)

	// A stale event changes nothing.
	entry, err = s.ApplyPageUnlocked(model.PageUnlocked{
		UserID:           user.ID,
		BookID:           book.ID,
		NewUnlockedCount: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, entry.UnlockedPages)
}

func TestApplyPageUnlockedAutoCompletes(t *testing.T) {
	s := newTestStore(t)

	user := createTestUser(t, s, "alice", "alice@example.com")
	book := createTestBook(t, s, "Dune", "Sci-Fi", 4.5)
	_, err := s.UpsertShelfEntry(&model.ShelfEntry{
		UserID: user.ID,
		BookID: book.ID,
		Status: model.ShelfStatusReading,
		Title:  book.Title,
	})
	require.NoError(t, err)

	entry, err := s.ApplyPageUnlocked(model.PageUnlocked{
		UserID:           user.ID,
		BookID:           book.ID,
		NewUnlockedCount: book.TotalPages,
	})
	require.NoError(t, err)
	assert.Equal(t, book.TotalPages, entry.UnlockedPages)
	assert.Equal(t, model.ShelfStatusRead, entry.Status)

	// The completed status survives a reload.
	stored, err := s.GetShelfEntry(&model.FindShelfEntry{UserID: &user.ID, BookID: &book.ID})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, model.ShelfStatusRead, stored.Status)
}

func TestApplyPageUnlockedMissingEntry(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ApplyPageUnlocked(model.PageUnlocked{
		UserID:           1,
		BookID:           2,
		NewUnlockedCount: 10,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteShelfEntry(t *testing.T) {
	s := newTestStore(t)

	user := createTestUser(t, s, "alice", "alice@example.com")
	book := createTestBook(t, s, "Dune", "Sci-Fi", 4.5)
	_, err := s.UpsertShelfEntry(&model.ShelfEntry{
		UserID: user.ID,
		BookID: book.ID,
		Status: model.ShelfStatusWantToRead,
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteShelfEntry(user.ID, book.ID))
	require.Error(t, s.DeleteShelfEntry(user.ID, book.ID))
}
