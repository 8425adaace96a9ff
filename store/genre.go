package store // import "github.com/bookdenapp/bookden/store"

import (
	"strings"

	"github.com/bookdenapp/bookden/model"
	"github.com/pkg/errors"
)

func (s *Store) GetGenre(find *model.FindGenre) (*model.Genre, error) {
	list, err := s.ListGenres(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListGenres(find *model.FindGenre) ([]*model.Genre, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, "name = ?"), append(args, *v)
	}

	query := `SELECT id, name FROM genre WHERE ` + strings.Join(where, " AND ") + ` ORDER BY name ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Genre, 0)
	for rows.Next() {
		var genre model.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, err
		}
		list = append(list, &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) CreateGenre(name string) (*model.Genre, error) {
	var genre model.Genre
	stmt := `INSERT INTO genre (name) VALUES (?) RETURNING id, name`
	if err := s.db.QueryRow(stmt, name).Scan(&genre.ID, &genre.Name); err != nil {
		return nil, err
	}
	return &genre, nil
}

// RenameGenre renames the catalog entry only, books keep their
// denormalized genre text.
func (s *Store) RenameGenre(genreID int32, name string) (*model.Genre, error) {
	var genre model.Genre
	stmt := `UPDATE genre SET name = ? WHERE id = ? RETURNING id, name`
	if err := s.db.QueryRow(stmt, name, genreID).Scan(&genre.ID, &genre.Name); err != nil {
		return nil, errors.Wrap(err, "store: unable to rename genre")
	}
	return &genre, nil
}

func (s *Store) DeleteGenre(genreID int32) error {
	result, err := s.db.Exec(`DELETE FROM genre WHERE id = ?`, genreID)
	if err != nil {
		return errors.Wrap(err, "store: unable to delete genre")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Errorf("store: genre not found with ID: %d", genreID)
	}
	return nil
}
