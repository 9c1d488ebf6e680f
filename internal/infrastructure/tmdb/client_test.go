package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", srv.URL, 2*time.Second)
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("api_key"))
		assert.Equal(t, "fight club", q.Get("query"))
		assert.Equal(t, "2", q.Get("page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"page": 2, "total_pages": 3, "total_results": 41,
			"results": [{"id": 550, "title": "Fight Club", "vote_average": 8.4, "genre_ids": [18]}]
		}`))
	})

	page, err := c.Search(context.Background(), "fight club", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 41, page.TotalResults)
	require.Len(t, page.Results, 1)
	assert.Equal(t, 550, page.Results[0].ID)
	assert.Equal(t, []int{18}, page.Results[0].GenreIDs)
}

func TestSearch_PageNormalized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
	})

	_, err := c.Search(context.Background(), "x", 0)
	require.NoError(t, err)
}

func TestDiscover_FilterParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "28", q.Get("with_genres"))
		assert.Equal(t, "1999", q.Get("primary_release_year"))
		assert.Equal(t, "7.5", q.Get("vote_average.gte"))
		assert.Equal(t, "popularity.desc", q.Get("sort_by"))
		_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
	})

	_, err := c.Discover(context.Background(), DiscoverFilter{
		GenreID:   28,
		Year:      1999,
		MinRating: 7.5,
		SortBy:    "popularity.desc",
	})
	require.NoError(t, err)
}

func TestDiscover_EmptyFilterOmitsParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.False(t, q.Has("with_genres"))
		assert.False(t, q.Has("primary_release_year"))
		assert.False(t, q.Has("vote_average.gte"))
		assert.False(t, q.Has("sort_by"))
		_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
	})

	_, err := c.Discover(context.Background(), DiscoverFilter{})
	require.NoError(t, err)
}

func TestGenres(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/genre/movie/list", r.URL.Path)
		_, _ = w.Write([]byte(`{"genres":[{"id":28,"name":"Action"},{"id":18,"name":"Drama"}]}`))
	})

	genres, err := c.Genres(context.Background())
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "Action", genres[0].Name)
}

func TestDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/550", r.URL.Path)
		assert.Equal(t, "credits,videos", r.URL.Query().Get("append_to_response"))
		_, _ = w.Write([]byte(`{
			"id": 550, "title": "Fight Club", "runtime": 139,
			"genres": [{"id":18,"name":"Drama"}],
			"credits": {"cast": [{"id":819,"name":"Edward Norton","character":"The Narrator","order":0}]},
			"videos": {"results": [{"key":"abc","site":"YouTube","type":"Trailer"}]}
		}`))
	})

	d, err := c.Details(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, 139, d.Runtime)
	require.Len(t, d.Credits.Cast, 1)
	assert.Equal(t, "The Narrator", d.Credits.Cast[0].Character)
	require.Len(t, d.Videos.Results, 1)
	assert.Equal(t, "Trailer", d.Videos.Results[0].Type)
}

func TestRecommendations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/550/recommendations", r.URL.Path)
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":807,"title":"Se7en"}]}`))
	})

	page, err := c.Recommendations(context.Background(), 550, 1)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Se7en", page.Results[0].Title)
}

func TestUpstreamErrorSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Details(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestMissingAPIKey(t *testing.T) {
	c := NewClient("", "http://localhost:0", time.Second)
	_, err := c.Popular(context.Background(), 1)
	require.Error(t, err)
}
