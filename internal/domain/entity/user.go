package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes and never serialized to JSON.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`

	IsEmailVerified         bool       `bson:"isEmailVerified" json:"isEmailVerified"`
	EmailVerificationToken  *string    `bson:"emailVerificationToken,omitempty" json:"-"`
	EmailVerificationExpiry *time.Time `bson:"emailVerificationExpires,omitempty" json:"-"`
	PasswordResetToken      *string    `bson:"passwordResetToken,omitempty" json:"-"`
	PasswordResetExpiry     *time.Time `bson:"passwordResetExpires,omitempty" json:"-"`

	AvatarURL   string      `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Bio         string      `bson:"bio,omitempty" json:"bio,omitempty"`
	Preferences Preferences `bson:"preferences" json:"preferences"`

	Favorites []FavoriteMovie `bson:"favorites" json:"favorites"`
	Watched   []WatchedMovie  `bson:"watched" json:"watched"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Preferences holds per-user UI and recommendation settings.
type Preferences struct {
	Theme  string `bson:"theme" json:"theme"` // light or dark
	Genres []int  `bson:"genres" json:"genres"`
}

// FavoriteMovie is an embedded catalog reference, unique per movieId within a user.
type FavoriteMovie struct {
	MovieID    int       `bson:"movieId" json:"movieId"`
	Title      string    `bson:"title" json:"title"`
	PosterPath string    `bson:"posterPath,omitempty" json:"posterPath,omitempty"`
	AddedAt    time.Time `bson:"addedAt" json:"addedAt"`
}

// WatchedMovie records watch history, unique per movieId within a user.
// Rating is optional, 1-10 when present.
type WatchedMovie struct {
	MovieID    int       `bson:"movieId" json:"movieId"`
	Title      string    `bson:"title" json:"title"`
	PosterPath string    `bson:"posterPath,omitempty" json:"posterPath,omitempty"`
	WatchedAt  time.Time `bson:"watchedAt" json:"watchedAt"`
	Rating     *int      `bson:"rating,omitempty" json:"rating,omitempty"`
}

// HasFavorite reports whether movieID is already in the favorites list.
func (u *User) HasFavorite(movieID int) bool {
	for _, f := range u.Favorites {
		if f.MovieID == movieID {
			return true
		}
	}
	return false
}

// HasWatched reports whether movieID is already in the watched list.
func (u *User) HasWatched(movieID int) bool {
	for _, w := range u.Watched {
		if w.MovieID == movieID {
			return true
		}
	}
	return false
}
