package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookdenapp/bookden/config"
	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/model"
	"github.com/bookdenapp/bookden/store"
	"github.com/bookdenapp/bookden/store/db"
	"github.com/bookdenapp/bookden/util"
)

// newTestStore opens a throwaway database with the full schema applied.
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

	s := store.NewStore(database.DB)
	require.NoError(t, s.Ping())
	return s
}

func createTestBook(t *testing.T, s *store.Store, title, genre string, rating float64) *model.Book {
	t.Helper()

	book, err := s.CreateBook(&model.Book{
		UUID:       util.GenUUID(),
		Title:      title,
		Author:     "Test Author",
		Genre:      genre,
		TotalPages: 100,
		Rating:     rating,
	})
	require.NoError(t, err)
	return book
}

func createTestUser(t *testing.T, s *store.Store, name, email string) *model.User {
	t.Helper()

	user, err := s.CreateUser(&model.User{
		Name:         name,
		Email:        email,
		Role:         model.RoleUser,
		PasswordHash: "not-a-real-hash",
	})
	require.NoError(t, err)
	return user
}

func TestStoreSeedsDefaultGenres(t *testing.T) {
	s := newTestStore(t)

	genres, err := s.ListGenres(&model.FindGenre{})
	require.NoError(t, err)
	require.NotEmpty(t, genres)
}
