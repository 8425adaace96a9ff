package store // import "github.com/bookdenapp/bookden/store"

import (
	"fmt"
	"strings"

	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const bookFields = `
	id,
	uuid,
	created_ts,
	updated_ts,
	title,
	author,
	genre,
	description,
	cover_image,
	total_pages,
	rating
`

// avgRatingExpr ranks a book by the mean of its approved reviews. Books
// without approved reviews rank as 0, the editorial seed rating breaks
// ties.
const avgRatingExpr = `COALESCE((SELECT AVG(rating) FROM review WHERE review.book_id = book.id AND review.status = 'approved'), 0)`

func (s *Store) GetBook(find *model.FindBook) (*model.Book, error) {
	list, err := s.ListBooks(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := bookFilter(find)

	orderBy := "created_ts DESC, id DESC"
	if find.OrderByRating {
		orderBy = avgRatingExpr + " DESC, rating DESC, id ASC"
	}

	query := `SELECT ` + bookFields + ` FROM book WHERE ` + strings.Join(where, " AND ") + ` ORDER BY ` + orderBy
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
		if o := find.Offset; o != nil {
			query += fmt.Sprintf(" OFFSET %d", *o)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Debug("Error querying books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(
			&book.ID,
			&book.UUID,
			&book.CreatedTs,
			&book.UpdatedTs,
			&book.Title,
			&book.Author,
			&book.Genre,
			&book.Description,
			&book.CoverImage,
			&book.TotalPages,
			&book.Rating,
		); err != nil {
			return nil, err
		}
		book.Reviews = make([]*model.Review, 0)
		list = append(list, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachReviews(list); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) CountBooks(find *model.FindBook) (int, error) {
	where, args := bookFilter(find)
	query := `SELECT COUNT(*) FROM book WHERE ` + strings.Join(where, " AND ")

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "store: unable to count books")
	}
	return count, nil
}

func bookFilter(find *model.FindBook) ([]string, []any) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UUID; v != nil {
		where, args = append(where, "uuid = ?"), append(args, *v)
	}
	if v := find.Genre; v != nil {
		where, args = append(where, "genre = ?"), append(args, *v)
	}
	if v := find.NotGenre; v != nil {
		where, args = append(where, "genre != ?"), append(args, *v)
	}
	if len(find.ExcludeIDs) > 0 {
		placeholder := make([]string, 0, len(find.ExcludeIDs))
		for _, id := range find.ExcludeIDs {
			placeholder = append(placeholder, "?")
			args = append(args, id)
		}
		where = append(where, "id NOT IN ("+strings.Join(placeholder, ", ")+")")
	}

	return where, args
}

// attachReviews loads the embedded review list of each book, ordered by
// insertion.
func (s *Store) attachReviews(books []*model.Book) error {
	if len(books) == 0 {
		return nil
	}

	byID := make(map[int32]*model.Book, len(books))
	placeholder := make([]string, 0, len(books))
	args := make([]any, 0, len(books))
	for _, book := range books {
		byID[book.ID] = book
		placeholder = append(placeholder, "?")
		args = append(args, book.ID)
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
		WHERE book_id IN (` + strings.Join(placeholder, ", ") + `) ORDER BY id ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

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
			return err
		}
		if book, ok := byID[review.BookID]; ok {
			book.Reviews = append(book.Reviews, &review)
		}
	}

	return rows.Err()
}

func (s *Store) CreateBook(create *model.Book) (*model.Book, error) {
	if create.TotalPages <= 0 {
		create.TotalPages = model.DefaultTotalPages
	}

	fields := []string{"`uuid`", "`title`", "`author`", "`genre`", "`description`", "`cover_image`", "`total_pages`", "`rating`"}
	placeholder := []string{"?", "?", "?", "?", "?", "?", "?", "?"}
	args := []any{create.UUID, create.Title, create.Author, create.Genre, create.Description, create.CoverImage, create.TotalPages, create.Rating}
	stmt := "INSERT INTO book (" + strings.Join(fields, ", ") + ") VALUES (" + strings.Join(placeholder, ", ") +
		") RETURNING " + bookFields

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var book model.Book
	if err := tx.QueryRow(stmt, args...).Scan(
		&book.ID,
		&book.UUID,
		&book.CreatedTs,
		&book.UpdatedTs,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.Description,
		&book.CoverImage,
		&book.TotalPages,
		&book.Rating,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	book.Reviews = make([]*model.Review, 0)
	return &book, nil
}

func (s *Store) UpdateBook(update *model.UpdateBook) (*model.Book, error) {
	set, args := []string{}, []any{}
	if v := update.Title; v != nil {
		set, args = append(set, "title = ?"), append(args, *v)
	}
	if v := update.Author; v != nil {
		set, args = append(set, "author = ?"), append(args, *v)
	}
	if v := update.Genre; v != nil {
		set, args = append(set, "genre = ?"), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = ?"), append(args, *v)
	}
	if v := update.CoverImage; v != nil {
		set, args = append(set, "cover_image = ?"), append(args, *v)
	}
	if v := update.TotalPages; v != nil {
		set, args = append(set, "total_pages = ?"), append(args, *v)
	}
	if v := update.Rating; v != nil {
		set, args = append(set, "rating = ?"), append(args, *v)
	}
	if len(set) == 0 {
		return nil, errors.New("store: nothing to update")
	}
	set = append(set, "updated_ts = strftime('%s', 'now')")
	args = append(args, update.ID)

	stmt := "UPDATE book SET " + strings.Join(set, ", ") + " WHERE id = ? RETURNING " + bookFields

	var book model.Book
	if err := s.db.QueryRow(stmt, args...).Scan(
		&book.ID,
		&book.UUID,
		&book.CreatedTs,
		&book.UpdatedTs,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.Description,
		&book.CoverImage,
		&book.TotalPages,
		&book.Rating,
	); err != nil {
		return nil, errors.Wrap(err, "store: unable to update book")
	}

	book.Reviews = make([]*model.Review, 0)
	if err := s.attachReviews([]*model.Book{&book}); err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *Store) DeleteBook(bookID int32) error {
	result, err := s.db.Exec(`DELETE FROM book WHERE id = ?`, bookID)
	if err != nil {
		return errors.Wrap(err, "store: unable to delete book")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Errorf("store: book not found with ID: %d", bookID)
	}
	return nil
}
