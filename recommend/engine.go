// Package recommend ranks catalog books against a user's completed
// reading history.
package recommend // import "github.com/bookdenapp/bookden/recommend"

import (
	"fmt"

	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/model"
	"github.com/bookdenapp/bookden/store"
	"go.uber.org/zap"
)

const (
	// TypePopular labels the onboarding list served before a user has
	// enough history.
	TypePopular = "Popular"
	// TypePersonalized labels a genre-affinity ranked list.
	TypePersonalized = "Personalized"

	// MinReadBooks is the history size below which only the popular
	// list is served.
	MinReadBooks = 3
	// MaxResults caps every recommendation list.
	MaxResults = 15

	onboardingReason = "Since you're new, here are some community favorites to start your journey!"
)

type Recommendation struct {
	Type   string        `json:"type"`
	Books  []*model.Book `json:"books"`
	Reason string        `json:"reason"`
}

type Engine struct {
	store *store.Store
}

func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s}
}

// ForUser builds a ranked list of up to MaxResults books.
//
// With fewer than MinReadBooks completed books the whole catalog is
// returned by descending rating. Otherwise the dominant genre of the
// Read shelf drives the list, already-read books are excluded and the
// remainder is backfilled with the highest-rated books of other genres.
func (e *Engine) ForUser(userID int32) (*Recommendation, error) {
	readStatus := model.ShelfStatusRead
	readEntries, err := e.store.ListShelfEntries(&model.FindShelfEntry{
		UserID: &userID,
		Status: &readStatus,
	})
	if err != nil {
		return nil, err
	}

	if len(readEntries) < MinReadBooks {
		limit := MaxResults
		books, err := e.store.ListBooks(&model.FindBook{
			OrderByRating: true,
			Limit:         &limit,
		})
		if err != nil {
			return nil, err
		}
		return &Recommendation{
			Type:   TypePopular,
			Books:  books,
			Reason: onboardingReason,
		}, nil
	}

	topGenre, genreCount, readIDs, err := e.topGenre(readEntries)
	if err != nil {
		return nil, err
	}

	limit := MaxResults
	books, err := e.store.ListBooks(&model.FindBook{
		Genre:         &topGenre,
		ExcludeIDs:    readIDs,
		OrderByRating: true,
		Limit:         &limit,
	})
	if err != nil {
		return nil, err
	}

	if len(books) < MaxResults {
		exclude := make([]int32, 0, len(readIDs)+len(books))
		exclude = append(exclude, readIDs...)
		for _, book := range books {
			exclude = append(exclude, book.ID)
		}
		remaining := MaxResults - len(books)
		backfill, err := e.store.ListBooks(&model.FindBook{
			NotGenre:      &topGenre,
			ExcludeIDs:    exclude,
			OrderByRating: true,
			Limit:         &remaining,
		})
		if err != nil {
			return nil, err
		}
		books = append(books, backfill...)
	}

	log.Debug("Personalized recommendation",
		zap.Int32("user_id", userID),
		zap.String("top_genre", topGenre),
		zap.Int("read_count", genreCount),
	)

	return &Recommendation{
		Type:   TypePersonalized,
		Books:  books,
		Reason: fmt.Sprintf("Matches your preference for %s (%d books read) and other high-rated gems.", topGenre, genreCount),
	}, nil
}

// topGenre tallies genre frequency over the Read shelf. Entries whose
// catalog record no longer exists are skipped. On a tie the genre seen
// first wins, no deliberate tie-break rule exists.
func (e *Engine) topGenre(readEntries []*model.ShelfEntry) (string, int, []int32, error) {
	counts := make(map[string]int)
	order := make([]string, 0)
	readIDs := make([]int32, 0, len(readEntries))

	for _, entry := range readEntries {
		readIDs = append(readIDs, entry.BookID)

		book, err := e.store.GetBook(&model.FindBook{ID: &entry.BookID})
		if err != nil {
			return "", 0, nil, err
		}
		if book == nil || book.Genre == "" {
			continue
		}
		if _, seen := counts[book.Genre]; !seen {
			order = append(order, book.Genre)
		}
		counts[book.Genre]++
	}

	top, best := "", 0
	for _, genre := range order {
		if counts[genre] > best {
			top, best = genre, counts[genre]
		}
	}
	return top, best, readIDs, nil
}
