package v1 // import "github.com/bookdenapp/bookden/api/v1"

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/bookdenapp/bookden/http/request"
	"github.com/bookdenapp/bookden/http/response"
	"github.com/bookdenapp/bookden/model"
)

// shelfOwnerOnly guards the shelf routes, a reader can only touch their
// own shelf. Admins pass for support tooling.
func shelfOwnerOnly(w http.ResponseWriter, r *http.Request) (int32, bool) {
	userID := request.RouteInt32Param(r, "userId")
	if userID == 0 {
		response.BadRequest(w, r, errors.New("invalid user id"))
		return 0, false
	}
	if request.GetUserID(r) != userID && !request.IsAdmin(r) {
		response.Forbidden(w, r)
		return 0, false
	}
	return userID, true
}

func (h *Handler) listShelf(w http.ResponseWriter, r *http.Request) {
	userID, ok := shelfOwnerOnly(w, r)
	if !ok {
		return
	}

	entries, err := h.store.ListShelfEntries(&model.FindShelfEntry{UserID: &userID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, entries)
}

// upsertShelfEntry saves the client's categorization of a book. The
// client owns its shelf, any status transition is accepted as-is.
func (h *Handler) upsertShelfEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := shelfOwnerOnly(w, r)
	if !ok {
		return
	}
	bookID := request.RouteInt32Param(r, "bookId")
	if bookID == 0 {
		response.BadRequest(w, r, errors.New("invalid book id"))
		return
	}

	var upsertRequest model.ShelfUpsertRequest
	if err := decodeJSON(r, &upsertRequest); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if !upsertRequest.Status.Valid() {
		response.BadRequest(w, r, errors.Errorf("unknown shelf status: %s", upsertRequest.Status))
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

	// Re-shelving must not reset reading progress.
	unlockedPages := 1
	existing, err := h.store.GetShelfEntry(&model.FindShelfEntry{UserID: &userID, BookID: &bookID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if existing != nil {
		unlockedPages = existing.UnlockedPages
	}

	entry, err := h.store.UpsertShelfEntry(&model.ShelfEntry{
		UserID:        userID,
		BookID:        bookID,
		Status:        upsertRequest.Status,
		UnlockedPages: unlockedPages,
		Title:         book.Title,
		Author:        book.Author,
		Genre:         book.Genre,
		CoverImage:    book.CoverImage,
	})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, entry)
}

func (h *Handler) deleteShelfEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := shelfOwnerOnly(w, r)
	if !ok {
		return
	}
	bookID := request.RouteInt32Param(r, "bookId")
	if bookID == 0 {
		response.BadRequest(w, r, errors.New("invalid book id"))
		return
	}

	if err := h.store.DeleteShelfEntry(userID, bookID); err != nil {
		if isNotFound(err) {
			response.NotFound(w, r)
			return
		}
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

// advancePage queues a reading-progress event for the background
// workers and answers before it is applied. The caller gets a 202, not
// the updated entry.
func (h *Handler) advancePage(w http.ResponseWriter, r *http.Request) {
	userID, ok := shelfOwnerOnly(w, r)
	if !ok {
		return
	}
	bookID := request.RouteInt32Param(r, "bookId")
	if bookID == 0 {
		response.BadRequest(w, r, errors.New("invalid book id"))
		return
	}

	var event model.PageUnlocked
	if err := decodeJSON(r, &event); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if event.NewUnlockedCount < 1 {
		response.BadRequest(w, r, errors.New("unlocked count must be at least 1"))
		return
	}
	event.UserID = userID
	event.BookID = bookID

	h.progressPool.Push(model.Job{
		UserID: userID,
		Status: model.JobStatusPending,
		Event:  event,
	})
	response.Accepted(w, r)
}
