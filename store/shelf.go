package store // import "github.com/bookdenapp/bookden/store"

import (
	"strings"

	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/model"
	"github.com/bookdenapp/bookden/shelf"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const shelfFields = `user_id, book_id, status, unlocked_pages, title, author, genre, cover_image, updated_ts`

func (s *Store) GetShelfEntry(find *model.FindShelfEntry) (*model.ShelfEntry, error) {
	list, err := s.ListShelfEntries(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListShelfEntries(find *model.FindShelfEntry) ([]*model.ShelfEntry, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "book_id = ?"), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "status = ?"), append(args, *v)
	}

	query := `SELECT ` + shelfFields + ` FROM shelf WHERE ` + strings.Join(where, " AND ") + ` ORDER BY updated_ts DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.ShelfEntry, 0)
	for rows.Next() {
		var entry model.ShelfEntry
		if err := rows.Scan(
			&entry.UserID,
			&entry.BookID,
			&entry.Status,
			&entry.UnlockedPages,
			&entry.Title,
			&entry.Author,
			&entry.Genre,
			&entry.CoverImage,
			&entry.UpdatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// UpsertShelfEntry overwrites the denormalized snapshot. Any status
// transition is legal here, including Read back to Want to Read, the
// client owns its shelf.
func (s *Store) UpsertShelfEntry(upsert *model.ShelfEntry) (*model.ShelfEntry, error) {
	if upsert.UnlockedPages < 1 {
		upsert.UnlockedPages = 1
	}

	stmt := `
		INSERT INTO shelf (user_id, book_id, status, unlocked_pages, title, author, genre, cover_image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, book_id) DO UPDATE
		SET
			status=EXCLUDED.status,
			unlocked_pages=EXCLUDED.unlocked_pages,
			title=EXCLUDED.title,
			author=EXCLUDED.author,
			genre=EXCLUDED.genre,
			cover_image=EXCLUDED.cover_image,
			updated_ts=strftime('%s', 'now')
		RETURNING ` + shelfFields

	var entry model.ShelfEntry
	if err := s.db.QueryRow(stmt,
		upsert.UserID,
		upsert.BookID,
		upsert.Status,
		upsert.UnlockedPages,
		upsert.Title,
		upsert.Author,
		upsert.Genre,
		upsert.CoverImage,
	).Scan(
		&entry.UserID,
		&entry.BookID,
		&entry.Status,
		&entry.UnlockedPages,
		&entry.Title,
		&entry.Author,
		&entry.Genre,
		&entry.CoverImage,
		&entry.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "store: unable to upsert shelf entry")
	}

	return &entry, nil
}

func (s *Store) DeleteShelfEntry(userID, bookID int32) error {
	result, err := s.db.Exec(`DELETE FROM shelf WHERE user_id = ? AND book_id = ?`, userID, bookID)
	if err != nil {
		return errors.Wrap(err, "store: unable to delete shelf entry")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Errorf("store: shelf entry not found for user %d book %d", userID, bookID)
	}
	return nil
}

// ApplyPageUnlocked folds a reading-progress event into the stored
// shelf entry through the reducer and persists the outcome.
func (s *Store) ApplyPageUnlocked(event model.PageUnlocked) (*model.ShelfEntry, error) {
	entry, err := s.GetShelfEntry(&model.FindShelfEntry{UserID: &event.UserID, BookID: &event.BookID})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors.Errorf("store: shelf entry not found for user %d book %d", event.UserID, event.BookID)
	}

	totalPages := model.DefaultTotalPages
	book, err := s.GetBook(&model.FindBook{ID: &event.BookID})
	if err != nil {
		return nil, err
	}
	if book != nil {
		totalPages = book.TotalPages
	}

	result := shelf.Apply(entry, totalPages, event)
	if !result.Changed {
		return entry, nil
	}
	if result.Completed {
		log.Debug("Book finished",
			zap.Int32("user_id", event.UserID),
			zap.Int32("book_id", event.BookID),
		)
	}

	return s.UpsertShelfEntry(entry)
}
