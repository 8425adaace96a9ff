package store // import "github.com/bookdenapp/bookden/store"

import (
	"database/sql"
	"encoding/json"

	"github.com/bookdenapp/bookden/model"
	"github.com/bookdenapp/bookden/util"
	"github.com/pkg/errors"
)

func (s *Store) GetSystemSetting(name string) (*model.SystemSetting, error) {
	if cache, ok := s.SystemSettingCache.Load(name); ok {
		return cache.(*model.SystemSetting), nil
	}

	setting := &model.SystemSetting{}
	stmt := `SELECT name, value, description FROM system_setting WHERE name = ?`
	if err := s.db.QueryRow(stmt, name).Scan(&setting.Name, &setting.Value, &setting.Description); err != nil {
		return nil, err
	}

	s.SystemSettingCache.Store(setting.Name, setting)
	return setting, nil
}

func (s *Store) GetSystemGeneralSetting() (*model.SystemSettingGeneral, error) {
	systemSetting, err := s.GetSystemSetting(model.SettingTypeGeneral)
	if err != nil {
		return nil, err
	}
	return systemSetting.GetGeneral()
}

func (s *Store) UpsetSystemSetting(setting *model.SystemSetting) (*model.SystemSetting, error) {
	stmt := `
		INSERT INTO system_setting (name, value, description)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE
		SET
			value=EXCLUDED.value,
			description=EXCLUDED.description
		RETURNING name, value, description
	`
	newSetting := &model.SystemSetting{}
	if err := s.db.QueryRow(stmt, setting.Name, setting.Value, setting.Description).Scan(
		&newSetting.Name,
		&newSetting.Value,
		&newSetting.Description,
	); err != nil {
		return nil, errors.Wrap(err, "store: unable to upsert system setting")
	}

	s.SystemSettingCache.Store(newSetting.Name, newSetting)
	return newSetting, nil
}

// GetOrUpsetSystemSecuritySetting returns the security setting,
// generating and persisting the JWT secret on first boot.
func (s *Store) GetOrUpsetSystemSecuritySetting() (*model.SystemSettingSecurity, error) {
	systemSetting, err := s.GetSystemSetting(model.SettingTypeSecurity)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		security := &model.SystemSettingSecurity{JWTSecret: util.GenUUID()}
		value, err := json.Marshal(security)
		if err != nil {
			return nil, errors.Wrap(err, "store: unable to marshal security setting")
		}
		if _, err := s.UpsetSystemSetting(&model.SystemSetting{
			Name:        model.SettingTypeSecurity,
			Value:       string(value),
			Description: "Security settings, generated at first boot",
		}); err != nil {
			return nil, err
		}
		return security, nil
	}

	return systemSetting.GetSecurity()
}
