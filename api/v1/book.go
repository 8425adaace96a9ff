package v1 // import "github.com/bookdenapp/bookden/api/v1"

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/bookdenapp/bookden/config"
	"github.com/bookdenapp/bookden/http/request"
	"github.com/bookdenapp/bookden/http/response"
	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/model"
	"github.com/bookdenapp/bookden/util"
	"github.com/bookdenapp/bookden/validator"
	"go.uber.org/zap"
)

type bookListResponse struct {
	Books       []*bookResponse `json:"books"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	page := request.QueryIntParam(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := request.QueryIntParam(r, "limit", config.Opts.PageLimit)
	if limit < 1 {
		limit = config.Opts.PageLimit
	}
	if limit > config.Opts.MaxPageLimit {
		limit = config.Opts.MaxPageLimit
	}

	find := &model.FindBook{}
	// "All" is the catalog's no-filter sentinel.
	if genre := request.QueryStringParam(r, "genre", ""); genre != "" && genre != "All" {
		find.Genre = &genre
	}

	count, err := h.store.CountBooks(find)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	totalPages := (count + limit - 1) / limit

	offset := (page - 1) * limit
	find.Limit = &limit
	find.Offset = &offset
	books, err := h.store.ListBooks(find)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &bookListResponse{
		Books:       newBookListResponse(books),
		TotalPages:  totalPages,
		CurrentPage: page,
	})
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteInt32Param(r, "id")
	if bookID == 0 {
		response.BadRequest(w, r, errors.New("invalid book id"))
		return
	}

	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, newBookResponse(book))
}

func (h *Handler) addBook(w http.ResponseWriter, r *http.Request) {
	var createRequest model.BookCreateRequest
	if err := decodeJSON(r, &createRequest); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if err := validator.ValidateBookCreateRequest(&createRequest); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	book, err := h.store.CreateBook(&model.Book{
		UUID:        util.GenUUID(),
		Title:       createRequest.Title,
		Author:      createRequest.Author,
		Genre:       createRequest.Genre,
		Description: createRequest.Description,
		CoverImage:  createRequest.CoverImage,
		TotalPages:  createRequest.TotalPages,
		Rating:      createRequest.Rating,
	})
	if err != nil {
		response.ServerError(w, r, errors.Wrap(err, "create book"))
		return
	}

	log.Info("Book added to catalog",
		zap.Int32("book_id", book.ID),
		zap.String("title", book.Title),
	)
	response.Created(w, r, newBookResponse(book))
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteInt32Param(r, "id")
	if bookID == 0 {
		response.BadRequest(w, r, errors.New("invalid book id"))
		return
	}

	var updateRequest model.UpdateBook
	if err := decodeJSON(r, &updateRequest); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	updateRequest.ID = bookID

	book, err := h.store.UpdateBook(&updateRequest)
	if err != nil {
		if isNotFound(err) {
			response.NotFound(w, r)
			return
		}
		response.BadRequest(w, r, err)
		return
	}
	response.OK(w, r, newBookResponse(book))
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteInt32Param(r, "id")
	if bookID == 0 {
		response.BadRequest(w, r, errors.New("invalid book id"))
		return
	}

	if err := h.store.DeleteBook(bookID); err != nil {
		if isNotFound(err) {
			response.NotFound(w, r)
			return
		}
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}
