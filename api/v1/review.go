package v1 // import "github.com/bookdenapp/bookden/api/v1"

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/bookdenapp/bookden/http/request"
	"github.com/bookdenapp/bookden/http/response"
	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/model"
	"github.com/bookdenapp/bookden/validator"
	"go.uber.org/zap"
)

func (h *Handler) addReview(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteInt32Param(r, "id")
	if bookID == 0 {
		response.BadRequest(w, r, errors.New("invalid book id"))
		return
	}

	var createRequest model.ReviewCreateRequest
	if err := decodeJSON(r, &createRequest); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	// The reviewer identity comes from the verified token, not from the
	// payload.
	createRequest.UserID = request.GetUserID(r)
	if createRequest.UserName == "" {
		createRequest.UserName = request.GetUserName(r)
	}
	if err := validator.ValidateReviewCreateRequest(&createRequest); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	review, err := h.store.AddReview(&model.Review{
		BookID:   bookID,
		UserID:   createRequest.UserID,
		UserName: createRequest.UserName,
		Rating:   createRequest.Rating,
		Comment:  createRequest.Comment,
	})
	if err != nil {
		if isNotFound(err) {
			response.NotFound(w, r)
			return
		}
		response.ServerError(w, r, errors.Wrap(err, "add review"))
		return
	}

	log.Debug("Review submitted for moderation",
		zap.Int32("book_id", bookID),
		zap.Int32("review_id", review.ID),
	)
	response.Created(w, r, review)
}

// listBookReviews serves the public feed, approved reviews only.
func (h *Handler) listBookReviews(w http.ResponseWriter, r *http.Request) {
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
	response.OK(w, r, book.ApprovedReviews())
}

func (h *Handler) listPendingReviews(w http.ResponseWriter, r *http.Request) {
	pending, err := h.store.ListPendingReviews()
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, pending)
}

func (h *Handler) moderateReview(w http.ResponseWriter, r *http.Request) {
	var moderation model.ModerationRequest
	if err := decodeJSON(r, &moderation); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if moderation.ReviewID == 0 || moderation.BookID == 0 {
		response.BadRequest(w, r, errors.New("review id and book id are required"))
		return
	}

	switch moderation.Action {
	case model.ModerationActionApprove:
		review, err := h.store.ApproveReview(moderation.BookID, moderation.ReviewID)
		if err != nil {
			if isNotFound(err) {
				response.NotFound(w, r)
				return
			}
			response.ServerError(w, r, err)
			return
		}
		log.Info("Review approved",
			zap.Int32("book_id", moderation.BookID),
			zap.Int32("review_id", moderation.ReviewID),
		)
		response.OK(w, r, review)
	case model.ModerationActionDelete:
		if err := h.store.DeleteReview(moderation.BookID, moderation.ReviewID); err != nil {
			if isNotFound(err) {
				response.NotFound(w, r)
				return
			}
			response.ServerError(w, r, err)
			return
		}
		log.Info("Review deleted",
			zap.Int32("book_id", moderation.BookID),
			zap.Int32("review_id", moderation.ReviewID),
		)
		response.NoContent(w, r)
	default:
		response.BadRequest(w, r, errors.Errorf("unknown moderation action: %s", moderation.Action))
	}
}
