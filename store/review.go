package store // import "github.com/bookdenapp/bookden/store"

import (
	"strings"

	"github.com/bookdenapp/bookden/model"
	"github.com/pkg/errors"
)

// AddReview appends a review to the owning book's list. Every new
// review starts out pending.
func (s *Store) AddReview(create *model.Review) (*model.Review, error) {
	book, err := s.GetBook(&model.FindBook{ID: &create.BookID})
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errors.Errorf("store: book not found with ID: %d", create.BookID)
	}

	stmt := `
		INSERT INTO review (book_id, user_id, user_name, rating, comment, status)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, book_id, user_id, user_name, rating, comment, status, created_ts
	`
	var review model.Review
	if err := s.db.QueryRow(stmt,
		create.BookID,
		create.UserID,
		create.UserName,
		create.Rating,
		create.Comment,
		model.ReviewStatusPending,
	).Scan(
		&review.ID,
		&review.BookID,
		&review.UserID,
		&review.UserName,
		&review.Rating,
		&review.Comment,
		&review.Status,
		&review.CreatedTs,
	); err != nil {
		return nil, err
	}

	return &review, nil
}

func (s *Store) GetReview(find *model.FindReview) (*model.Review, error) {
	list, err := s.ListReviews(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListReviews(find *model.FindReview) ([]*model.Review, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "book_id = ?"), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "status = ?"), append(args, *v)
	}

	query := `
		SELECT
			id,
			book_id,
			user_id,
			user_name,
			rating,
			comment,
			status,
			created_ts
		FROM review
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Review, 0)
	for rows.Next() {
		var review model.Review
		if err := rows.Scan(
			&review.ID,
			&review.BookID,
			&review.UserID,
			&review.UserName,
			&review.Rating,
			&review.Comment,
			&review.Status,
			&review.CreatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// ListPendingReviews is the moderation queue, joined with the owning
// book's title for display.
func (s *Store) ListPendingReviews() ([]*model.PendingReview, error) {
	query := `
		SELECT
			review.id,
			review.book_id,
			review.user_id,
			review.user_name,
			review.rating,
			review.comment,
			review.status,
			review.created_ts,
			book.title
		FROM review
		JOIN book ON book.id = review.book_id
		WHERE review.status = ?
		ORDER BY review.id ASC`

	rows, err := s.db.Query(query, model.ReviewStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.PendingReview, 0)
	for rows.Next() {
		var pending model.PendingReview
		if err := rows.Scan(
			&pending.ID,
			&pending.BookID,
			&pending.UserID,
			&pending.UserName,
			&pending.Rating,
			&pending.Comment,
			&pending.Status,
			&pending.CreatedTs,
			&pending.BookTitle,
		); err != nil {
			return nil, err
		}
		list = append(list, &pending)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// ApproveReview flips a pending review to approved. Re-approving an
// approved review is a no-op that still succeeds.
func (s *Store) ApproveReview(bookID, reviewID int32) (*model.Review, error) {
	stmt := `
		UPDATE review SET status = ?
		WHERE id = ? AND book_id = ?
		RETURNING id, book_id, user_id, user_name, rating, comment, status, created_ts
	`
	var review model.Review
	if err := s.db.QueryRow(stmt, model.ReviewStatusApproved, reviewID, bookID).Scan(
		&review.ID,
		&review.BookID,
		&review.UserID,
		&review.UserName,
		&review.Rating,
		&review.Comment,
		&review.Status,
		&review.CreatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "store: unable to approve review")
	}
	return &review, nil
}

// DeleteReview removes the review from the owning book's list
// unconditionally, whatever its current status.
func (s *Store) DeleteReview(bookID, reviewID int32) error {
	result, err := s.db.Exec(`DELETE FROM review WHERE id = ? AND book_id = ?`, reviewID, bookID)
	if err != nil {
		return errors.Wrap(err, "store: unable to delete review")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Errorf("store: review not found with ID: %d", reviewID)
	}
	return nil
}

func (s *Store) CountReviews() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM review`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "store: unable to count reviews")
	}
	return count, nil
}
