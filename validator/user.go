package validator // import "github.com/bookdenapp/bookden/validator"

import (
	"github.com/pkg/errors"

	"github.com/bookdenapp/bookden/model"
	"github.com/bookdenapp/bookden/store"
	"github.com/bookdenapp/bookden/util"
)

func ValidateRegisterRequest(s *store.Store, register *model.UserRegisterRequest) error {
	if register == nil {
		return errors.New("request is nil")
	}
	if register.Name == "" {
		return errors.New("name is empty")
	}
	if register.Email == "" {
		return errors.New("email is empty")
	}
	if !util.ValidateEmail(register.Email) {
		return errors.New("email is invalid")
	}
	if user, _ := s.GetUser(&model.FindUser{Email: &register.Email}); user != nil {
		return errors.New("User already exists")
	}
	if err := validatePassword(register.Password); err != nil {
		return err
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password is too short")
	}
	return nil
}
