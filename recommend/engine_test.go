package recommend_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookdenapp/bookden/config"
	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/model"
	"github.com/bookdenapp/bookden/recommend"
	"github.com/bookdenapp/bookden/store"
	"github.com/bookdenapp/bookden/store/db"
	"github.com/bookdenapp/bookden/util"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	log.Logger = zap.NewNop()
	config.GetDefaultOptions()
	dir := t.TempDir()
	config.Opts.Data = dir
	config.Opts.DSN = filepath.Join(dir, "bookden_test.db")

	database, err := db.NewDB()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.Migrate(context.Background()))

	return store.NewStore(database.DB)
}

func addBook(t *testing.T, s *store.Store, title, genre string, rating float64) *model.Book {
	t.Helper()
	book, err := s.CreateBook(&model.Book{
		UUID:       util.GenUUID(),
		Title:      title,
		Author:     "Author",
		Genre:      genre,
		TotalPages: 100,
		Rating:     rating,
	})
	require.NoError(t, err)
	return book
}

func addUser(t *testing.T, s *store.Store, email string) *model.User {
	t.Helper()
	user, err := s.CreateUser(&model.User{
		Name:         "reader",
		Email:        email,
		Role:         model.RoleUser,
		PasswordHash: "not-a-real-hash",
	})
	require.NoError(t, err)
	return user
}

func markRead(t *testing.T, s *store.Store, userID int32, book *model.Book) {
	t.Helper()
	_, err := s.UpsertShelfEntry(&model.ShelfEntry{
		UserID: userID,
		BookID: book.ID,
		Status: model.ShelfStatusRead,
		Title:  book.Title,
		Genre:  book.Genre,
	})
	require.NoError(t, err)
}

func TestForUserOnboarding(t *testing.T) {
	s := newTestStore(t)
	engine := recommend.NewEngine(s)

	addBook(t, s, "High", "Sci-Fi", 4.8)
	addBook(t, s, "Low", "Thriller", 2.1)

	// Two Read books is still below the personalization threshold.
	userID := addUser(t, s, "reader@example.com").ID
	markRead(t, s, userID, addBook(t, s, "One", "Sci-Fi", 3.0))
	markRead(t, s, userID, addBook(t, s, "Two", "Sci-Fi", 3.0))

	recommendation, err := engine.ForUser(userID)
	require.NoError(t, err)
	assert.Equal(t, recommend.TypePopular, recommendation.Type)
	assert.NotEmpty(t, recommendation.Books)
	assert.Contains(t, recommendation.Reason, "community favorites")
}

func TestForUserPersonalized(t *testing.T) {
	s := newTestStore(t)
	engine := recommend.NewEngine(s)

	read1 := addBook(t, s, "Dune", "Sci-Fi", 4.5)
	read2 := addBook(t, s, "Hyperion", "Sci-Fi", 4.2)
	read3 := addBook(t, s, "Gone Girl", "Thriller", 4.0)
	fresh := addBook(t, s, "Foundation", "Sci-Fi", 4.1)
	other := addBook(t, s, "Dracula", "Horror", 3.9)

	userID := addUser(t, s, "reader@example.com").ID
	markRead(t, s, userID, read1)
	markRead(t, s, userID, read2)
	markRead(t, s, userID, read3)

	recommendation, err := engine.ForUser(userID)
	require.NoError(t, err)
	assert.Equal(t, recommend.TypePersonalized, recommendation.Type)
	assert.Contains(t, recommendation.Reason, "Sci-Fi")
	assert.Contains(t, recommendation.Reason, "(2 books read)")

	ids := make([]int32, 0, len(recommendation.Books))
	for _, book := range recommendation.Books {
		ids = append(ids, book.ID)
	}
	// Already-read books never come back, unread ones do regardless of
	// genre thanks to the backfill.
	assert.NotContains(t, ids, read1.ID)
	assert.NotContains(t, ids, read2.ID)
	assert.NotContains(t, ids, read3.ID)
	assert.Contains(t, ids, fresh.ID)
	assert.Contains(t, ids, other.ID)

	// The dominant genre leads the list.
	require.NotEmpty(t, recommendation.Books)
	assert.Equal(t, "Sci-Fi", recommendation.Books[0].Genre)
}

func TestForUserCapsResults(t *testing.T) {
	s := newTestStore(t)
	engine := recommend.NewEngine(s)

	for i := 0; i < recommend.MaxResults+10; i++ {
		addBook(t, s, fmt.Sprintf("Book %d", i), "Sci-Fi", 3.0)
	}

	recommendation, err := engine.ForUser(1)
	require.NoError(t, err)
	assert.Len(t, recommendation.Books, recommend.MaxResults)
}

func TestForUserSkipsDeletedBooks(t *testing.T) {
	s := newTestStore(t)
	engine := recommend.NewEngine(s)

	doomed := addBook(t, s, "Doomed", "Horror", 3.0)
	read1 := addBook(t, s, "Dune", "Sci-Fi", 4.5)
	read2 := addBook(t, s, "Hyperion", "Sci-Fi", 4.2)
	addBook(t, s, "Foundation", "Sci-Fi", 4.1)

	userID := addUser(t, s, "reader@example.com").ID
	markRead(t, s, userID, doomed)
	markRead(t, s, userID, read1)
	markRead(t, s, userID, read2)

	// The shelf keeps its snapshot but the catalog record is gone, the
	// tally must skip it instead of failing.
	require.NoError(t, s.DeleteBook(doomed.ID))

	recommendation, err := engine.ForUser(userID)
	require.NoError(t, err)
	assert.Equal(t, recommend.TypePersonalized, recommendation.Type)
	assert.Contains(t, recommendation.Reason, "Sci-Fi")
}
