package store // import "github.com/bookdenapp/bookden/store"

import (
	"database/sql"

	"github.com/bookdenapp/bookden/model"
	"github.com/pkg/errors"
)

const userStatsFields = `user_email, annual_goal, reading_streak, last_read_ts, created_ts, updated_ts`

// GetOrCreateUserStats lazily upserts the per-user reading profile on
// first read.
func (s *Store) GetOrCreateUserStats(email string) (*model.UserStats, error) {
	stats, err := s.getUserStats(email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		stmt := `
			INSERT INTO user_stats (user_email, annual_goal, reading_streak)
			VALUES (?, ?, 0)
			RETURNING ` + userStatsFields
		stats = &model.UserStats{}
		if err := s.db.QueryRow(stmt, email, model.DefaultAnnualGoal).Scan(
			&stats.UserEmail,
			&stats.AnnualGoal,
			&stats.ReadingStreak,
			&stats.LastReadTs,
			&stats.CreatedTs,
			&stats.UpdatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "store: unable to create user stats")
		}
	}
	return stats, nil
}

func (s *Store) getUserStats(email string) (*model.UserStats, error) {
	query := `SELECT ` + userStatsFields + ` FROM user_stats WHERE user_email = ?`

	var stats model.UserStats
	if err := s.db.QueryRow(query, email).Scan(
		&stats.UserEmail,
		&stats.AnnualGoal,
		&stats.ReadingStreak,
		&stats.LastReadTs,
		&stats.CreatedTs,
		&stats.UpdatedTs,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Store) UpdateAnnualGoal(email string, newGoal int) (*model.UserStats, error) {
	stmt := `
		UPDATE user_stats
		SET annual_goal = ?, updated_ts = strftime('%s', 'now')
		WHERE user_email = ?
		RETURNING ` + userStatsFields

	var stats model.UserStats
	if err := s.db.QueryRow(stmt, newGoal, email).Scan(
		&stats.UserEmail,
		&stats.AnnualGoal,
		&stats.ReadingStreak,
		&stats.LastReadTs,
		&stats.CreatedTs,
		&stats.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "store: unable to update annual goal")
	}
	return &stats, nil
}

// DashboardStats is recomputed on every request, nothing is cached.
type DashboardStats struct {
	TotalBooks   int `json:"totalBooks"`
	TotalUsers   int `json:"totalUsers"`
	TotalReviews int `json:"totalReviews"`
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	books, err := s.CountBooks(&model.FindBook{})
	if err != nil {
		return nil, err
	}
	users, err := s.CountUsers()
	if err != nil {
		return nil, err
	}
	reviews, err := s.CountReviews()
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		TotalBooks:   books,
		TotalUsers:   users,
		TotalReviews: reviews,
	}, nil
}
