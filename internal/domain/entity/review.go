package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is scoped to exactly one (user, movie) pair; the store enforces the
// uniqueness with a compound index.
type Review struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID   `bson:"userId" json:"userId"`
	MovieID          int                  `bson:"movieId" json:"movieId"`
	Rating           int                  `bson:"rating" json:"rating"` // 1-10
	Body             string               `bson:"body,omitempty" json:"body,omitempty"`
	ContainsSpoilers bool                 `bson:"containsSpoilers" json:"containsSpoilers"`
	MovieTitle       string               `bson:"movieTitle,omitempty" json:"movieTitle,omitempty"`
	PosterPath       string               `bson:"posterPath,omitempty" json:"posterPath,omitempty"`
	Likes            []primitive.ObjectID `bson:"likes" json:"-"`
	Reports          []ReviewReport       `bson:"reports" json:"-"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ReviewReport is an abuse report; at most one per reporting user.
type ReviewReport struct {
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Reason     string             `bson:"reason" json:"reason"`
	ReportedAt time.Time          `bson:"reportedAt" json:"reportedAt"`
}

// LikedBy reports whether userID is in the likers set.
func (r *Review) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range r.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ReportedBy reports whether userID already filed a report.
func (r *Review) ReportedBy(userID primitive.ObjectID) bool {
	for _, rep := range r.Reports {
		if rep.UserID == userID {
			return true
		}
	}
	return false
}

// ReviewStats aggregates review figures for a movie.
type ReviewStats struct {
	MovieID       int         `json:"movieId"`
	ReviewCount   int         `json:"reviewCount"`
	AverageRating float64     `json:"averageRating"`
	Distribution  map[int]int `json:"ratingDistribution"` // rating -> count
}
