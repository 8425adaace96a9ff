package model // import "github.com/bookdenapp/bookden/model"

import "math"

const DefaultTotalPages = 100

// Book is the aggregate root of the catalog. It owns an ordered list of
// reviews, moderation goes through the aggregate instead of touching
// the review rows directly.
type Book struct {
	ID   int32  `json:"id"`
	UUID string `json:"uuid"`

	CreatedTs int64 `json:"created_ts"`
	UpdatedTs int64 `json:"updated_ts"`

	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
	TotalPages  int    `json:"totalPages"`
	// Rating is the editorial seed rating, kept as the secondary sort
	// key under the computed average.
	Rating float64 `json:"rating"`

	Reviews []*Review `json:"reviews"`
}

// AvgRating is the mean of the approved reviews' ratings rounded to one
// decimal, 0 when there are none.
func (b *Book) AvgRating() float64 {
	sum, n := 0, 0
	for _, review := range b.Reviews {
		if review.Status == ReviewStatusApproved {
			sum += review.Rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*10) / 10
}

// ApprovedReviews returns the public feed for the book.
func (b *Book) ApprovedReviews() []*Review {
	approved := make([]*Review, 0)
	for _, review := range b.Reviews {
		if review.Status == ReviewStatusApproved {
			approved = append(approved, review)
		}
	}
	return approved
}

type FindBook struct {
	ID    *int32  `json:"id"`
	UUID  *string `json:"uuid"`
	Genre *string `json:"genre"`
	// NotGenre excludes a genre, used by the recommendation backfill.
	NotGenre *string `json:"not_genre"`
	// ExcludeIDs filters out books the user has already read.
	ExcludeIDs []int32 `json:"exclude_ids"`

	// OrderByRating orders by computed average rating descending instead
	// of creation time.
	OrderByRating bool `json:"order_by_rating"`

	Offset *int `json:"offset"`
	// The maximum number of books to return.
	Limit *int `json:"limit"`
}

type UpdateBook struct {
	ID int32 `json:"id"`

	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Genre       *string  `json:"genre"`
	Description *string  `json:"description"`
	CoverImage  *string  `json:"coverImage"`
	TotalPages  *int     `json:"totalPages"`
	Rating      *float64 `json:"rating"`
}

type BookCreateRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Genre       string  `json:"genre"`
	Description string  `json:"description"`
	CoverImage  string  `json:"coverImage"`
	TotalPages  int     `json:"totalPages"`
	Rating      float64 `json:"rating"`
}

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
)

type Review struct {
	ID     int32 `json:"id"`
	BookID int32 `json:"bookId"`

	UserID   int32  `json:"userId"`
	UserName string `json:"userName"`

	Rating  int          `json:"rating"`
	Comment string       `json:"comment"`
	Status  ReviewStatus `json:"status"`

	CreatedTs int64 `json:"created_ts"`
}

type FindReview struct {
	ID     *int32        `json:"id"`
	BookID *int32        `json:"bookId"`
	Status *ReviewStatus `json:"status"`
}

// PendingReview is a moderation queue entry, the owning book is joined
// in so the dashboard can label it.
type PendingReview struct {
	Review
	BookTitle string `json:"bookTitle"`
}

type ReviewCreateRequest struct {
	UserID   int32  `json:"userId"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

const (
	ModerationActionApprove = "approve"
	ModerationActionDelete  = "delete"
)

type ModerationRequest struct {
	ReviewID int32  `json:"reviewId"`
	BookID   int32  `json:"bookId"`
	Action   string `json:"action"`
}
