package v1 // import "github.com/bookdenapp/bookden/api/v1"

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookdenapp/bookden/api/auth"
	"github.com/bookdenapp/bookden/http/response"
	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/model"
	"github.com/bookdenapp/bookden/validator"
	"go.uber.org/zap"
)

type authResponse struct {
	Token string         `json:"token"`
	User  *response.User `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var registerRequest model.UserRegisterRequest
	if err := decodeJSON(r, &registerRequest); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if err := validator.ValidateRegisterRequest(h.store, &registerRequest); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(registerRequest.Password), bcrypt.DefaultCost)
	if err != nil {
		response.ServerError(w, r, errors.Wrap(err, "hash password"))
		return
	}

	// The first account becomes the admin, everyone after that is a
	// regular reader.
	role := model.RoleUser
	count, err := h.store.CountUsers()
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if count == 0 {
		role = model.RoleAdmin
	}

	user, err := h.store.CreateUser(&model.User{
		Name:         registerRequest.Name,
		Email:        registerRequest.Email,
		Role:         role,
		PasswordHash: string(passwordHash),
		PhotoURL:     registerRequest.PhotoURL,
	})
	if err != nil {
		response.ServerError(w, r, errors.Wrap(err, "create user"))
		return
	}

	log.Info("User registered",
		zap.Int32("user_id", user.ID),
		zap.String("role", user.Role.String()),
	)

	token, err := h.issueAccessToken(w, user)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.Created(w, r, &authResponse{
		Token: token,
		User:  response.UserResponse(user),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var loginRequest model.UserLoginRequest
	if err := decodeJSON(r, &loginRequest); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	user, err := h.store.GetUser(&model.FindUser{Email: &loginRequest.Email})
	if err != nil {
		response.ServerError(w, r, errors.Wrap(err, "get user"))
		return
	}
	// A missing account and a wrong password answer the same way, the
	// response must not reveal which one happened.
	if user == nil || user.RowStatus == model.Archived {
		response.BadRequest(w, r, errors.New("Invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(loginRequest.Password)); err != nil {
		response.BadRequest(w, r, errors.New("Invalid credentials"))
		return
	}

	if err := h.store.SetLastLogin(user.ID); err != nil {
		log.Error("Error updating last login time", zap.Error(err))
	}

	token, err := h.issueAccessToken(w, user)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, &authResponse{
		Token: token,
		User:  response.UserResponse(user),
	})
}

func (h *Handler) issueAccessToken(w http.ResponseWriter, user *model.User) (string, error) {
	sSetting, err := h.store.GetOrUpsetSystemSecuritySetting()
	if err != nil {
		return "", errors.Wrap(err, "get security setting")
	}

	expiresAt := time.Now().Add(auth.AccessTokenDuration)
	token, err := auth.GenerateAccessToken(user.Email, user.ID, expiresAt, []byte(sSetting.JWTSecret))
	if err != nil {
		return "", errors.Wrap(err, "generate access token")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return token, nil
}
