package model // import "github.com/bookdenapp/bookden/model"

import "encoding/json"

const (
	SettingTypeGeneral  = "SETTINGS_GENERAL"
	SettingTypeSecurity = "SETTINGS_SECURITY"
)

type SystemSetting struct {
	Name        string `json:"name,omitempty"`
	Value       string `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
}

type SystemSettingGeneral struct {
	DisableSignup bool `json:"disallow_registration"`
}

func (s *SystemSettingGeneral) ToJSON() string {
	b, _ := json.Marshal(s)
	return string(b)
}

type SystemSettingSecurity struct {
	JWTSecret string `json:"jwt_secret,omitempty"`
}

func (s *SystemSettingSecurity) ToJSON() string {
	b, _ := json.Marshal(s)
	return string(b)
}

func (s *SystemSetting) GetGeneral() (*SystemSettingGeneral, error) {
	var general SystemSettingGeneral
	if err := json.Unmarshal([]byte(s.Value), &general); err != nil {
		return nil, err
	}
	return &general, nil
}

func (s *SystemSetting) GetSecurity() (*SystemSettingSecurity, error) {
	var security SystemSettingSecurity
	if err := json.Unmarshal([]byte(s.Value), &security); err != nil {
		return nil, err
	}
	return &security, nil
}
