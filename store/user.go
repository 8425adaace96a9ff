package store // import "github.com/bookdenapp/bookden/store"

import (
	"fmt"
	"strings"

	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (s *Store) GetUser(find *model.FindUser) (*model.User, error) {
	if find.ID != nil {
		if cache, ok := s.UserCache.Load(*find.ID); ok {
			return cache.(*model.User), nil
		}
	}

	list, err := s.ListUsers(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	user := list[0]
	s.UserCache.Store(user.ID, user)
	return user, nil
}

func (s *Store) ListUsers(find *model.FindUser) ([]*model.User, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Email; v != nil {
		where, args = append(where, "email = ?"), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, "name = ?"), append(args, *v)
	}
	if v := find.Role; v != nil {
		where, args = append(where, "role = ?"), append(args, *v)
	}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "row_status = ?"), append(args, *v)
	}

	// Here will return password_hash, so need to be careful.
	// Use response.UserResponse before sending a user to the client.
	query := `
		SELECT
			id,
			row_status,
			created_ts,
			updated_ts,
			name,
			email,
			role,
			password_hash,
			photo_url,
			last_login_ts
		FROM user
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Debug("Error querying users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID,
			&user.RowStatus,
			&user.CreatedTs,
			&user.UpdatedTs,
			&user.Name,
			&user.Email,
			&user.Role,
			&user.PasswordHash,
			&user.PhotoURL,
			&user.LastLoginTs,
		); err != nil {
			return nil, err
		}
		list = append(list, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) CreateUser(create *model.User) (*model.User, error) {
	fields := []string{"`name`", "`email`", "`role`", "`password_hash`", "`photo_url`"}
	placeholder := []string{"?", "?", "?", "?", "?"}
	args := []any{create.Name, create.Email, create.Role, create.PasswordHash, create.PhotoURL}
	stmt := "INSERT INTO user (" + strings.Join(fields, ", ") + ") VALUES (" + strings.Join(placeholder, ", ") +
		") RETURNING id, row_status, created_ts, updated_ts, name, email, role, password_hash, photo_url, last_login_ts"

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var user model.User
	if err := tx.QueryRow(stmt, args...).Scan(
		&user.ID,
		&user.RowStatus,
		&user.CreatedTs,
		&user.UpdatedTs,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.PasswordHash,
		&user.PhotoURL,
		&user.LastLoginTs,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Store) UpdateUser(update *model.UpdateUser) (*model.User, error) {
	set, args := []string{}, []any{}
	if v := update.Role; v != nil {
		set, args = append(set, "role = ?"), append(args, *v)
	}
	if v := update.RowStatus; v != nil {
		set, args = append(set, "row_status = ?"), append(args, *v)
	}
	if v := update.PhotoURL; v != nil {
		set, args = append(set, "photo_url = ?"), append(args, *v)
	}
	if len(set) == 0 {
		return nil, errors.New("store: nothing to update")
	}
	set = append(set, "updated_ts = strftime('%s', 'now')")
	args = append(args, update.ID)

	stmt := "UPDATE user SET " + strings.Join(set, ", ") + " WHERE id = ? " +
		"RETURNING id, row_status, created_ts, updated_ts, name, email, role, password_hash, photo_url, last_login_ts"

	var user model.User
	if err := s.db.QueryRow(stmt, args...).Scan(
		&user.ID,
		&user.RowStatus,
		&user.CreatedTs,
		&user.UpdatedTs,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.PasswordHash,
		&user.PhotoURL,
		&user.LastLoginTs,
	); err != nil {
		return nil, errors.Wrap(err, "store: unable to update user")
	}

	// Drop the stale cache entry, the next GetUser reloads it.
	s.UserCache.Delete(user.ID)

	return &user, nil
}

func (s *Store) SetLastLogin(userID int32) error {
	stmt := `UPDATE user SET last_login_ts = strftime('%s', 'now') WHERE id = ?`
	if _, err := s.db.Exec(stmt, userID); err != nil {
		return errors.Wrap(err, "store: unable to update last login date")
	}
	s.UserCache.Delete(userID)
	return nil
}

func (s *Store) CountUsers() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM user`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "store: unable to count users")
	}
	return count, nil
}
