package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a thin read-only wrapper over the external movie catalog API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// DiscoverFilter holds the optional filters for the discover endpoint.
type DiscoverFilter struct {
	GenreID   int
	Year      int
	MinRating float64
	SortBy    string // e.g. popularity.desc, vote_average.desc
	Page      int
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("tmdb: api key not configured")
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb: unexpected status %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tmdb: decoding response: %w", err)
	}
	return nil
}

func (c *Client) Search(ctx context.Context, query string, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(normPage(page)))
	var out MoviePage
	if err := c.get(ctx, "/search/movie", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Popular(ctx context.Context, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(normPage(page)))
	var out MoviePage
	if err := c.get(ctx, "/movie/popular", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TopRated(ctx context.Context, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(normPage(page)))
	var out MoviePage
	if err := c.get(ctx, "/movie/top_rated", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Discover(ctx context.Context, f DiscoverFilter) (*MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(normPage(f.Page)))
	if f.GenreID > 0 {
		params.Set("with_genres", strconv.Itoa(f.GenreID))
	}
	if f.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(f.Year))
	}
	if f.MinRating > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(f.MinRating, 'f', 1, 64))
	}
	if f.SortBy != "" {
		params.Set("sort_by", f.SortBy)
	}
	var out MoviePage
	if err := c.get(ctx, "/discover/movie", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var out genreList
	if err := c.get(ctx, "/genre/movie/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

func (c *Client) Details(ctx context.Context, movieID int) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos")
	var out MovieDetails
	if err := c.get(ctx, "/movie/"+strconv.Itoa(movieID), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Recommendations(ctx context.Context, movieID, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(normPage(page)))
	var out MoviePage
	if err := c.get(ctx, "/movie/"+strconv.Itoa(movieID)+"/recommendations", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func normPage(p int) int {
	if p < 1 {
		return 1
	}
	return p
}
