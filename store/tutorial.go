package store // import "github.com/bookdenapp/bookden/store"

import (
	"github.com/bookdenapp/bookden/model"
	"github.com/pkg/errors"
)

func (s *Store) ListTutorials() ([]*model.Tutorial, error) {
	query := `SELECT id, title, url, tag, created_ts FROM tutorial ORDER BY created_ts DESC, id DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Tutorial, 0)
	for rows.Next() {
		var tutorial model.Tutorial
		if err := rows.Scan(
			&tutorial.ID,
			&tutorial.Title,
			&tutorial.URL,
			&tutorial.Tag,
			&tutorial.CreatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, &tutorial)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) CreateTutorial(create *model.Tutorial) (*model.Tutorial, error) {
	if create.Tag == "" {
		create.Tag = model.DefaultTutorialTag
	}

	stmt := `
		INSERT INTO tutorial (title, url, tag)
		VALUES (?, ?, ?)
		RETURNING id, title, url, tag, created_ts
	`
	var tutorial model.Tutorial
	if err := s.db.QueryRow(stmt, create.Title, create.URL, create.Tag).Scan(
		&tutorial.ID,
		&tutorial.Title,
		&tutorial.URL,
		&tutorial.Tag,
		&tutorial.CreatedTs,
	); err != nil {
		return nil, err
	}
	return &tutorial, nil
}

func (s *Store) DeleteTutorial(tutorialID int32) error {
	result, err := s.db.Exec(`DELETE FROM tutorial WHERE id = ?`, tutorialID)
	if err != nil {
		return errors.Wrap(err, "store: unable to delete tutorial")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Errorf("store: tutorial not found with ID: %d", tutorialID)
	}
	return nil
}
