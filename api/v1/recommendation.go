package v1 // import "github.com/bookdenapp/bookden/api/v1"

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/bookdenapp/bookden/http/request"
	"github.com/bookdenapp/bookden/http/response"
)

type recommendationResponse struct {
	Type   string          `json:"type"`
	Books  []*bookResponse `json:"books"`
	Reason string          `json:"reason"`
}

func (h *Handler) personalized(w http.ResponseWriter, r *http.Request) {
	userID := request.RouteInt32Param(r, "userId")
	if userID == 0 {
		response.BadRequest(w, r, errors.New("invalid user id"))
		return
	}
	if request.GetUserID(r) != userID && !request.IsAdmin(r) {
		response.Forbidden(w, r)
		return
	}

	recommendation, err := h.engine.ForUser(userID)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, &recommendationResponse{
		Type:   recommendation.Type,
		Books:  newBookListResponse(recommendation.Books),
		Reason: recommendation.Reason,
	})
}
