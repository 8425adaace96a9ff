package model // import "github.com/bookdenapp/bookden/model"

// Genre is a managed catalog entity. Book.Genre stays denormalized
// free text, deleting a genre never touches books.
type Genre struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

type FindGenre struct {
	ID   *int32  `json:"id"`
	Name *string `json:"name"`
}

type Tutorial struct {
	ID        int32  `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Tag       string `json:"tag"`
	CreatedTs int64  `json:"created_ts"`
}

const DefaultTutorialTag = "Admin Pick"
