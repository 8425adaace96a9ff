package v1 // import "github.com/bookdenapp/bookden/api/v1"

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/bookdenapp/bookden/http/request"
	"github.com/bookdenapp/bookden/http/response"
	"github.com/bookdenapp/bookden/model"
)

type genreRequest struct {
	Name string `json:"name"`
}

func (h *Handler) listGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.store.ListGenres(&model.FindGenre{})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, genres)
}

func (h *Handler) createGenre(w http.ResponseWriter, r *http.Request) {
	var createRequest genreRequest
	if err := decodeJSON(r, &createRequest); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if createRequest.Name == "" {
		response.BadRequest(w, r, errors.New("name is empty"))
		return
	}

	if existing, err := h.store.GetGenre(&model.FindGenre{Name: &createRequest.Name}); err != nil {
		response.ServerError(w, r, err)
		return
	} else if existing != nil {
		response.BadRequest(w, r, errors.New("Genre already exists"))
		return
	}

	genre, err := h.store.CreateGenre(createRequest.Name)
	if err != nil {
		response.ServerError(w, r, errors.Wrap(err, "create genre"))
		return
	}
	response.Created(w, r, genre)
}

func (h *Handler) renameGenre(w http.ResponseWriter, r *http.Request) {
	genreID := request.RouteInt32Param(r, "id")
	if genreID == 0 {
		response.BadRequest(w, r, errors.New("invalid genre id"))
		return
	}

	var renameRequest genreRequest
	if err := decodeJSON(r, &renameRequest); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if renameRequest.Name == "" {
		response.BadRequest(w, r, errors.New("name is empty"))
		return
	}

	genre, err := h.store.RenameGenre(genreID, renameRequest.Name)
	if err != nil {
		if isNotFound(err) {
			response.NotFound(w, r)
			return
		}
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, genre)
}

func (h *Handler) deleteGenre(w http.ResponseWriter, r *http.Request) {
	genreID := request.RouteInt32Param(r, "id")
	if genreID == 0 {
		response.BadRequest(w, r, errors.New("invalid genre id"))
		return
	}

	if err := h.store.DeleteGenre(genreID); err != nil {
		if isNotFound(err) {
			response.NotFound(w, r)
			return
		}
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}
