package v1 // import "github.com/bookdenapp/bookden/api/v1"

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/bookdenapp/bookden/http/request"
	"github.com/bookdenapp/bookden/http/response"
	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/model"
	"go.uber.org/zap"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(&model.FindUser{})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, response.UsersResponse(users))
}

func (h *Handler) updateUserRole(w http.ResponseWriter, r *http.Request) {
	userID := request.RouteInt32Param(r, "id")
	if userID == 0 {
		response.BadRequest(w, r, errors.New("invalid user id"))
		return
	}

	var roleRequest struct {
		Role model.Role `json:"role"`
	}
	if err := decodeJSON(r, &roleRequest); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if roleRequest.Role != model.RoleAdmin && roleRequest.Role != model.RoleUser {
		response.BadRequest(w, r, errors.Errorf("unknown role: %s", roleRequest.Role))
		return
	}
	// An admin cannot demote themselves, that could strand the system
	// without any admin at all.
	if userID == request.GetUserID(r) && roleRequest.Role != model.RoleAdmin {
		response.BadRequest(w, r, errors.New("cannot change your own role"))
		return
	}

	user, err := h.store.GetUser(&model.FindUser{ID: &userID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.NotFound(w, r)
		return
	}

	updated, err := h.store.UpdateUser(&model.UpdateUser{
		ID:   userID,
		Role: &roleRequest.Role,
	})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	log.Info("User role updated",
		zap.Int32("user_id", userID),
		zap.String("role", updated.Role.String()),
	)
	response.OK(w, r, response.UserResponse(updated))
}
