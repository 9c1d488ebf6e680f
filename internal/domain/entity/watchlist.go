package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxWatchlistMovies caps the number of entries in a single watchlist.
const MaxWatchlistMovies = 1000

// Watchlist is an owner-scoped, ordered collection of catalog references.
type Watchlist struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	IsPublic    bool               `bson:"isPublic" json:"isPublic"`
	Movies      []WatchlistMovie   `bson:"movies" json:"movies"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WatchlistMovie is an embedded entry, unique per movieId within a list.
type WatchlistMovie struct {
	MovieID    int       `bson:"movieId" json:"movieId"`
	Title      string    `bson:"title" json:"title"`
	PosterPath string    `bson:"posterPath,omitempty" json:"posterPath,omitempty"`
	AddedAt    time.Time `bson:"addedAt" json:"addedAt"`
}

// HasMovie reports whether movieID is already in the list.
func (w *Watchlist) HasMovie(movieID int) bool {
	for _, m := range w.Movies {
		if m.MovieID == movieID {
			return true
		}
	}
	return false
}
