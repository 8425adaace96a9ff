package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdenapp/bookden/model"
)

func TestAddReviewStartsPending(t *testing.T) {
	s := newTestStore(t)

	book := createTestBook(t, s, "Dune", "Sci-Fi", 4.5)
	user := createTestUser(t, s, "alice", "alice@example.com")

	review, err := s.AddReview(&model.Review{
		BookID:   book.ID,
		UserID:   user.ID,
		UserName: user.Name,
		Rating:   5,
		Comment:  "A masterpiece",
		// A spoofed status must not survive the insert.
		Status: model.ReviewStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReviewStatusPending, review.Status)
}

func TestAddReviewUnknownBook(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddReview(&model.Review{
		BookID:   404,
		UserID:   1,
		UserName: "alice",
		Rating:   5,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestApproveReviewFlow(t *testing.T) {
	s := newTestStore(t)

	book := createTestBook(t, s, "Dune", "Sci-Fi", 4.5)
	user := createTestUser(t, s, "alice", "alice@example.com")
	review, err := s.AddReview(&model.Review{
		BookID:   book.ID,
		UserID:   user.ID,
		UserName: user.Name,
		Rating:   5,
	})
	require.NoError(t, err)

	pending, err := s.ListPendingReviews()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, review.ID, pending[0].ID)
	assert.Equal(t, "Dune", pending[0].BookTitle)

	approved, err := s.ApproveReview(book.ID, review.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewStatusApproved, approved.Status)

	// The queue drains, the public feed picks it up.
	pending, err = s.ListPendingReviews()
	require.NoError(t, err)
	assert.Empty(t, pending)

	status := model.ReviewStatusApproved
	feed, err := s.ListReviews(&model.FindReview{BookID: &book.ID, Status: &status})
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}

func TestApproveReviewIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	book := createTestBook(t, s, "Dune", "Sci-Fi", 4.5)
	user := createTestUser(t, s, "alice", "alice@example.com")
	review, err := s.AddReview(&model.Review{
		BookID:   book.ID,
		UserID:   user.ID,
		UserName: user.Name,
		Rating:   5,
	})
	require.NoError(t, err)

	_, err = s.ApproveReview(book.ID, review.ID)
	require.NoError(t, err)
	again, err := s.ApproveReview(book.ID, review.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewStatusApproved, again.Status)
}

func TestApproveReviewNotFound(t *testing.T) {
	s := newTestStore(t)

	book := createTestBook(t, s, "Dune", "Sci-Fi", 4.5)

	_, err := s.ApproveReview(book.ID, 404)
	require.Error(t, err)
}

func TestDeleteReviewAnyStatus(t *testing.T) {
	s := newTestStore(t)

	book := createTestBook(t, s, "Dune", "Sci-Fi", 4.5)
	user := createTestUser(t, s, "alice", "alice@example.com")

	pending, err := s.AddReview(&model.Review{
		BookID: book.ID, UserID: user.ID, UserName: user.Name, Rating: 1,
	})
	require.NoError(t, err)
	approved, err := s.AddReview(&model.Review{
		BookID: book.ID, UserID: user.ID, UserName: user.Name, Rating: 5,
	})
	require.NoError(t, err)
	_, err = s.ApproveReview(book.ID, approved.ID)
	require.NoError(t, err)

	// Moderation can pull a review whether or not it went live.
	require.NoError(t, s.DeleteReview(book.ID, pending.ID))
	require.NoError(t, s.DeleteReview(book.ID, approved.ID))

	count, err := s.CountReviews()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDeleteReviewWrongBook(t *testing.T) {
	s := newTestStore(t)

	book := createTestBook(t, s, "Dune", "Sci-Fi", 4.5)
	other := createTestBook(t, s, "Hyperion", "Sci-Fi", 4.2)
	user := createTestUser(t, s, "alice", "alice@example.com")
	review, err := s.AddReview(&model.Review{
		BookID: book.ID, UserID: user.ID, UserName: user.Name, Rating: 5,
	})
	require.NoError(t, err)

	// The review belongs to another book, the delete must miss.
	err = s.DeleteReview(other.ID, review.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
