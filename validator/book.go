package validator // import "github.com/bookdenapp/bookden/validator"

import (
	"github.com/pkg/errors"

	"github.com/bookdenapp/bookden/model"
)

func ValidateBookCreateRequest(book *model.BookCreateRequest) error {
	if book == nil {
		return errors.New("request is nil")
	}
	if book.Title == "" {
		return errors.New("title is empty")
	}
	if book.Author == "" {
		return errors.New("author is empty")
	}
	if book.Genre == "" {
		return errors.New("genre is empty")
	}
	if book.TotalPages < 0 {
		return errors.New("total pages is negative")
	}
	return nil
}

func ValidateReviewCreateRequest(review *model.ReviewCreateRequest) error {
	if review == nil {
		return errors.New("request is nil")
	}
	if review.UserName == "" {
		return errors.New("user name is empty")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}
