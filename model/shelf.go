package model // import "github.com/bookdenapp/bookden/model"

// ShelfStatus is the user's categorization of a book.
type ShelfStatus string

const (
	ShelfStatusWantToRead ShelfStatus = "Want to Read"
	ShelfStatusReading    ShelfStatus = "Currently Reading"
	ShelfStatusRead       ShelfStatus = "Read"
)

func (s ShelfStatus) Valid() bool {
	switch s {
	case ShelfStatusWantToRead, ShelfStatusReading, ShelfStatusRead:
		return true
	}
	return false
}

// ShelfEntry is the server-side copy of a user's shelf state. The
// client remains the writer of record, the server keeps a sync copy so
// recommendations can see the Read history across devices. The book
// fields are a denormalized snapshot taken at save time.
type ShelfEntry struct {
	UserID int32 `json:"userId"`
	BookID int32 `json:"bookId"`

	Status ShelfStatus `json:"status"`
	// UnlockedPages is monotonically non-decreasing and bounded by the
	// book's total page count.
	UnlockedPages int `json:"unlockedPages"`

	Title      string `json:"title"`
	Author     string `json:"author"`
	Genre      string `json:"genre"`
	CoverImage string `json:"coverImage"`

	UpdatedTs int64 `json:"updated_ts"`
}

type FindShelfEntry struct {
	UserID *int32       `json:"userId"`
	BookID *int32       `json:"bookId"`
	Status *ShelfStatus `json:"status"`
}

type ShelfUpsertRequest struct {
	Status ShelfStatus `json:"status"`
}

// PageUnlocked is the reading-progress event. The auto-complete rule
// (unlocked == total => status Read) lives in the shelf reducer that
// consumes it, not in the progress tracker.
type PageUnlocked struct {
	UserID           int32 `json:"userId"`
	BookID           int32 `json:"bookId"`
	NewUnlockedCount int   `json:"newUnlockedCount"`
}

const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
)

// Job carries a reading-progress event through the worker pool.
type Job struct {
	ID     int
	UserID int32
	Status string
	Event  PageUnlocked
}
