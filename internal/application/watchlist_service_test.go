package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/entity"
	repo "github.com/oreoluwa212/movie-recommendation-api/internal/domain/repository"
)

type fakeWatchlistRepo struct {
	mu    sync.Mutex
	lists map[string]*entity.Watchlist
}

func newFakeWatchlistRepo() *fakeWatchlistRepo {
	return &fakeWatchlistRepo{lists: make(map[string]*entity.Watchlist)}
}

func copyList(w *entity.Watchlist) *entity.Watchlist {
	c := *w
	c.Movies = append([]entity.WatchlistMovie(nil), w.Movies...)
	return &c
}

func (f *fakeWatchlistRepo) Create(_ context.Context, w *entity.Watchlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.ID = primitive.NewObjectID()
	w.CreatedAt = time.Now().UTC()
	w.UpdatedAt = w.CreatedAt
	if w.Movies == nil {
		w.Movies = []entity.WatchlistMovie{}
	}
	f.lists[w.ID.Hex()] = copyList(w)
	return nil
}

func (f *fakeWatchlistRepo) GetByID(_ context.Context, id string) (*entity.Watchlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.lists[id]; ok {
		return copyList(w), nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeWatchlistRepo) ListByUser(_ context.Context, userID string) ([]entity.Watchlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Watchlist
	for _, w := range f.lists {
		if w.UserID.Hex() == userID {
			out = append(out, *copyList(w))
		}
	}
	return out, nil
}

func (f *fakeWatchlistRepo) Update(_ context.Context, w *entity.Watchlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.lists[w.ID.Hex()]
	if !ok || stored.UserID != w.UserID {
		return repo.ErrNotFound
	}
	f.lists[w.ID.Hex()] = copyList(w)
	return nil
}

func (f *fakeWatchlistRepo) Delete(_ context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.lists[id]
	if !ok || w.UserID.Hex() != userID {
		return repo.ErrNotFound
	}
	delete(f.lists, id)
	return nil
}

func (f *fakeWatchlistRepo) AddMovie(_ context.Context, id, userID string, m entity.WatchlistMovie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.lists[id]
	if !ok || w.UserID.Hex() != userID {
		return repo.ErrNotFound
	}
	if w.HasMovie(m.MovieID) || len(w.Movies) >= entity.MaxWatchlistMovies {
		return repo.ErrDuplicate
	}
	w.Movies = append(w.Movies, m)
	return nil
}

func (f *fakeWatchlistRepo) RemoveMovie(_ context.Context, id, userID string, movieID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.lists[id]
	if !ok || w.UserID.Hex() != userID {
		return repo.ErrNotFound
	}
	for i, m := range w.Movies {
		if m.MovieID == movieID {
			w.Movies = append(w.Movies[:i], w.Movies[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func newWatchlistService() (*WatchlistService, *fakeWatchlistRepo) {
	r := newFakeWatchlistRepo()
	return NewWatchlistService(r, testLogger()), r
}

func TestWatchlistCreateAndGet(t *testing.T) {
	svc, _ := newWatchlistService()
	owner := primitive.NewObjectID().Hex()

	w, err := svc.Create(context.Background(), owner, WatchlistInput{Name: "Weekend", IsPublic: false})
	require.NoError(t, err)
	require.False(t, w.ID.IsZero())

	got, err := svc.Get(context.Background(), w.ID.Hex(), owner)
	require.NoError(t, err)
	assert.Equal(t, "Weekend", got.Name)
}

func TestWatchlistGet_PrivateHiddenFromOthers(t *testing.T) {
	svc, _ := newWatchlistService()
	owner := primitive.NewObjectID().Hex()
	stranger := primitive.NewObjectID().Hex()

	w, err := svc.Create(context.Background(), owner, WatchlistInput{Name: "Private", IsPublic: false})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), w.ID.Hex(), stranger)
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)

	_, err = svc.Get(context.Background(), w.ID.Hex(), "")
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)

	// A missing list fails the same way, so existence never leaks.
	_, err = svc.Get(context.Background(), primitive.NewObjectID().Hex(), stranger)
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
}

func TestWatchlistGet_PublicVisibleToAnyone(t *testing.T) {
	svc, _ := newWatchlistService()
	owner := primitive.NewObjectID().Hex()

	w, err := svc.Create(context.Background(), owner, WatchlistInput{Name: "Shared", IsPublic: true})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), w.ID.Hex(), "")
	require.NoError(t, err)
	assert.Equal(t, "Shared", got.Name)
}

func TestWatchlistUpdate_OnlyOwner(t *testing.T) {
	svc, _ := newWatchlistService()
	owner := primitive.NewObjectID().Hex()
	stranger := primitive.NewObjectID().Hex()

	w, err := svc.Create(context.Background(), owner, WatchlistInput{Name: "Original"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), w.ID.Hex(), stranger, WatchlistInput{Name: "Hijacked"})
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)

	updated, err := svc.Update(context.Background(), w.ID.Hex(), owner, WatchlistInput{Name: "Renamed", IsPublic: true})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, updated.IsPublic)
}

func TestWatchlistDelete_OnlyOwner(t *testing.T) {
	svc, _ := newWatchlistService()
	owner := primitive.NewObjectID().Hex()
	stranger := primitive.NewObjectID().Hex()

	w, err := svc.Create(context.Background(), owner, WatchlistInput{Name: "Doomed"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), w.ID.Hex(), stranger), ErrNotFoundOrForbidden)
	require.NoError(t, svc.Delete(context.Background(), w.ID.Hex(), owner))

	_, err = svc.Get(context.Background(), w.ID.Hex(), owner)
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
}

func TestWatchlistAddMovie_Duplicate(t *testing.T) {
	svc, _ := newWatchlistService()
	owner := primitive.NewObjectID().Hex()

	w, err := svc.Create(context.Background(), owner, WatchlistInput{Name: "Dupes"})
	require.NoError(t, err)

	_, err = svc.AddMovie(context.Background(), w.ID.Hex(), owner, MovieRef{MovieID: 550, Title: "Fight Club"})
	require.NoError(t, err)

	_, err = svc.AddMovie(context.Background(), w.ID.Hex(), owner, MovieRef{MovieID: 550, Title: "Fight Club"})
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	got, err := svc.Get(context.Background(), w.ID.Hex(), owner)
	require.NoError(t, err)
	assert.Len(t, got.Movies, 1)
}

func TestWatchlistAddMovie_CapEnforced(t *testing.T) {
	svc, r := newWatchlistService()
	owner := primitive.NewObjectID().Hex()

	w, err := svc.Create(context.Background(), owner, WatchlistInput{Name: "Full"})
	require.NoError(t, err)

	// Fill the stored list directly rather than looping a thousand adds.
	r.mu.Lock()
	stored := r.lists[w.ID.Hex()]
	for i := 0; i < entity.MaxWatchlistMovies; i++ {
		stored.Movies = append(stored.Movies, entity.WatchlistMovie{MovieID: i + 1})
	}
	r.mu.Unlock()

	_, err = svc.AddMovie(context.Background(), w.ID.Hex(), owner, MovieRef{MovieID: 99999, Title: "One Too Many"})
	assert.ErrorIs(t, err, ErrWatchlistFull)
}

func TestWatchlistRemoveMovie(t *testing.T) {
	svc, _ := newWatchlistService()
	owner := primitive.NewObjectID().Hex()

	w, err := svc.Create(context.Background(), owner, WatchlistInput{Name: "List"})
	require.NoError(t, err)
	_, err = svc.AddMovie(context.Background(), w.ID.Hex(), owner, MovieRef{MovieID: 278, Title: "Shawshank"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RemoveMovie(context.Background(), w.ID.Hex(), owner, 12345), ErrEntryNotFound)
	require.NoError(t, svc.RemoveMovie(context.Background(), w.ID.Hex(), owner, 278))

	got, err := svc.Get(context.Background(), w.ID.Hex(), owner)
	require.NoError(t, err)
	assert.Empty(t, got.Movies)
}

func TestWatchlistListOwn(t *testing.T) {
	svc, _ := newWatchlistService()
	owner := primitive.NewObjectID().Hex()
	other := primitive.NewObjectID().Hex()

	_, err := svc.Create(context.Background(), owner, WatchlistInput{Name: "A"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), owner, WatchlistInput{Name: "B"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), other, WatchlistInput{Name: "C"})
	require.NoError(t, err)

	lists, err := svc.ListOwn(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, lists, 2)
}
