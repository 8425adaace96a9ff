package v1 // import "github.com/bookdenapp/bookden/api/v1"

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/bookdenapp/bookden/http/request"
	"github.com/bookdenapp/bookden/http/response"
	"github.com/bookdenapp/bookden/model"
)

// getUserStats lazily creates the reading profile on first read, a
// brand-new user gets the defaults back instead of a 404.
func (h *Handler) getUserStats(w http.ResponseWriter, r *http.Request) {
	email := request.RouteStringParam(r, "email")
	if email == "" {
		response.BadRequest(w, r, errors.New("email is empty"))
		return
	}
	if request.GetUserEmail(r) != email && !request.IsAdmin(r) {
		response.Forbidden(w, r)
		return
	}

	stats, err := h.store.GetOrCreateUserStats(email)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, stats)
}

func (h *Handler) updateGoal(w http.ResponseWriter, r *http.Request) {
	var goalRequest model.UpdateGoalRequest
	if err := decodeJSON(r, &goalRequest); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if goalRequest.NewGoal < 1 {
		response.BadRequest(w, r, errors.New("goal must be at least 1"))
		return
	}
	// Only admins can touch someone else's goal.
	email := goalRequest.Email
	if email == "" {
		email = request.GetUserEmail(r)
	}
	if request.GetUserEmail(r) != email && !request.IsAdmin(r) {
		response.Forbidden(w, r)
		return
	}

	if _, err := h.store.GetOrCreateUserStats(email); err != nil {
		response.ServerError(w, r, err)
		return
	}
	stats, err := h.store.UpdateAnnualGoal(email, goalRequest.NewGoal)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, stats)
}

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetDashboardStats()
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, stats)
}
