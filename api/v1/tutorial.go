package v1 // import "github.com/bookdenapp/bookden/api/v1"

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/bookdenapp/bookden/http/request"
	"github.com/bookdenapp/bookden/http/response"
	"github.com/bookdenapp/bookden/model"
)

type tutorialCreateRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Tag   string `json:"tag"`
}

func (h *Handler) listTutorials(w http.ResponseWriter, r *http.Request) {
	tutorials, err := h.store.ListTutorials()
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, tutorials)
}

func (h *Handler) addTutorial(w http.ResponseWriter, r *http.Request) {
	var createRequest tutorialCreateRequest
	if err := decodeJSON(r, &createRequest); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if createRequest.Title == "" {
		response.BadRequest(w, r, errors.New("title is empty"))
		return
	}
	if createRequest.URL == "" {
		response.BadRequest(w, r, errors.New("url is empty"))
		return
	}

	tutorial, err := h.store.CreateTutorial(&model.Tutorial{
		Title: createRequest.Title,
		URL:   createRequest.URL,
		Tag:   createRequest.Tag,
	})
	if err != nil {
		response.ServerError(w, r, errors.Wrap(err, "create tutorial"))
		return
	}
	response.Created(w, r, tutorial)
}

func (h *Handler) deleteTutorial(w http.ResponseWriter, r *http.Request) {
	tutorialID := request.RouteInt32Param(r, "id")
	if tutorialID == 0 {
		response.BadRequest(w, r, errors.New("invalid tutorial id"))
		return
	}

	if err := h.store.DeleteTutorial(tutorialID); err != nil {
		if isNotFound(err) {
			response.NotFound(w, r)
			return
		}
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}
