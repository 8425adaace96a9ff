package v1 // import "github.com/bookdenapp/bookden/api/v1"

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/bookdenapp/bookden/model"
)

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(err, "malformed request body")
	}
	return nil
}

// isNotFound unwraps the store's not-found errors so handlers can map
// them to a 404 instead of a 500.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	return strings.Contains(err.Error(), "not found")
}

// bookResponse decorates a catalog book with its computed fields. The
// embedded review list is narrowed to the approved feed, pending
// reviews never leave the server outside the moderation queue.
type bookResponse struct {
	*model.Book
	AvgRating    float64         `json:"avgRating"`
	TotalReviews int             `json:"totalReviews"`
	Reviews      []*model.Review `json:"reviews"`
}

func newBookResponse(book *model.Book) *bookResponse {
	approved := book.ApprovedReviews()
	return &bookResponse{
		Book:         book,
		AvgRating:    book.AvgRating(),
		TotalReviews: len(approved),
		Reviews:      approved,
	}
}

func newBookListResponse(books []*model.Book) []*bookResponse {
	list := make([]*bookResponse, 0, len(books))
	for _, book := range books {
		list = append(list, newBookResponse(book))
	}
	return list
}
