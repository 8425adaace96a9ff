package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdenapp/bookden/model"
)

func TestListBooksGenreFilter(t *testing.T) {
	s := newTestStore(t)

	createTestBook(t, s, "Dune", "Sci-Fi", 4.5)
	createTestBook(t, s, "Hyperion", "Sci-Fi", 4.2)
	createTestBook(t, s, "Gone Girl", "Thriller", 4.0)

	genre := "Sci-Fi"
	books, err := s.ListBooks(&model.FindBook{Genre: &genre})
	require.NoError(t, err)
	require.Len(t, books, 2)
	for _, book := range books {
		assert.Equal(t, "Sci-Fi", book.Genre)
	}

	count, err := s.CountBooks(&model.FindBook{Genre: &genre})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestListBooksPagination(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		createTestBook(t, s, "Book", "Fantasy", 3.0)
	}

	limit, offset := 2, 2
	books, err := s.ListBooks(&model.FindBook{Limit: &limit, Offset: &offset})
	require.NoError(t, err)
	assert.Len(t, books, 2)

	offset = 4
	books, err = s.ListBooks(&model.FindBook{Limit: &limit, Offset: &offset})
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestAvgRatingCountsApprovedOnly(t *testing.T) {
	s := newTestStore(t)

	book := createTestBook(t, s, "Dune", "Sci-Fi", 4.5)
	user := createTestUser(t, s, "alice", "alice@example.com")

	addTestReview := func(rating int) *model.Review {
		review, err := s.AddReview(&model.Review{
			BookID:   book.ID,
			UserID:   user.ID,
			UserName: user.Name,
			Rating:   rating,
			Comment:  "fine",
		})
		require.NoError(t, err)
		return review
	}

	first := addTestReview(5)
	second := addTestReview(4)
	addTestReview(1) // stays pending, must not count

	// No approved reviews yet, the average is 0.
	loaded, err := s.GetBook(&model.FindBook{ID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, 0.0, loaded.AvgRating())

	_, err = s.ApproveReview(book.ID, first.ID)
	require.NoError(t, err)
	_, err = s.ApproveReview(book.ID, second.ID)
	require.NoError(t, err)

	loaded, err = s.GetBook(&model.FindBook{ID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, 4.5, loaded.AvgRating())
	assert.Len(t, loaded.ApprovedReviews(), 2)
	assert.Len(t, loaded.Reviews, 3)
}

func TestAvgRatingRoundsToOneDecimal(t *testing.T) {
	s := newTestStore(t)

	book := createTestBook(t, s, "Dune", "Sci-Fi", 0)
	user := createTestUser(t, s, "alice", "alice@example.com")

	for _, rating := range []int{5, 4, 4} {
		review, err := s.AddReview(&model.Review{
			BookID:   book.ID,
			UserID:   user.ID,
			UserName: user.Name,
			Rating:   rating,
		})
		require.NoError(t, err)
		_, err = s.ApproveReview(book.ID, review.ID)
		require.NoError(t, err)
	}

	loaded, err := s.GetBook(&model.FindBook{ID: &book.ID})
	require.NoError(t, err)
	// 13/3 = 4.333..., rounded to 4.3
	assert.Equal(t, 4.3, loaded.AvgRating())
}

func TestListBooksOrderByRating(t *testing.T) {
	s := newTestStore(t)

	low := createTestBook(t, s, "Low", "Sci-Fi", 2.0)
	high := createTestBook(t, s, "High", "Sci-Fi", 3.0)
	user := createTestUser(t, s, "alice", "alice@example.com")

	// One approved 5-star review lifts the low-seed book to the top.
	review, err := s.AddReview(&model.Review{
		BookID:   low.ID,
		UserID:   user.ID,
		UserName: user.Name,
		Rating:   5,
	})
	require.NoError(t, err)
	_, err = s.ApproveReview(low.ID, review.ID)
	require.NoError(t, err)

	books, err := s.ListBooks(&model.FindBook{OrderByRating: true})
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, low.ID, books[0].ID)
	assert.Equal(t, high.ID, books[1].ID)
}

func TestListBooksExcludeIDs(t *testing.T) {
	s := newTestStore(t)

	keep := createTestBook(t, s, "Keep", "Sci-Fi", 3.0)
	skip := createTestBook(t, s, "Skip", "Sci-Fi", 3.0)

	books, err := s.ListBooks(&model.FindBook{ExcludeIDs: []int32{skip.ID}})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, keep.ID, books[0].ID)
}

func TestUpdateBook(t *testing.T) {
	s := newTestStore(t)

	book := createTestBook(t, s, "Dune", "Sci-Fi", 4.5)

	title := "Dune Messiah"
	totalPages := 412
	updated, err := s.UpdateBook(&model.UpdateBook{
		ID:         book.ID,
		Title:      &title,
		TotalPages: &totalPages,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.Equal(t, 412, updated.TotalPages)
	assert.Equal(t, "Sci-Fi", updated.Genre)
}

func TestDeleteBookCascadesReviews(t *testing.T) {
	s := newTestStore(t)

	book := createTestBook(t, s, "Dune", "Sci-Fi", 4.5)
	user := createTestUser(t, s, "alice", "alice@example.com")
	_, err := s.AddReview(&model.Review{
		BookID:   book.ID,
		UserID:   user.ID,
		UserName: user.Name,
		Rating:   5,
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteBook(book.ID))

	count, err := s.CountReviews()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDeleteBookNotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteBook(404)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateBookDefaultsTotalPages(t *testing.T) {
	s := newTestStore(t)

	book, err := s.CreateBook(&model.Book{
		UUID:   "uuid-default-pages",
		Title:  "No Pages",
		Author: "Anon",
		Genre:  "Mystery",
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTotalPages, book.TotalPages)
}
