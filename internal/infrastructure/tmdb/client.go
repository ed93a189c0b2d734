package tmdb

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"resty.dev/v3"

	"movision-server/internal/domain/movie"
	"movision-server/internal/infrastructure/metrics"
	"movision-server/internal/utils/apperrors"
)

const (
	posterSize   = "w500"
	backdropSize = "w1280"

	trailerType = "Trailer"
	trailerSite = "YouTube"

	// Trailer resolution for listing pages fans out per row.
	trailerLookupConcurrency = 8
)

// genreLabels maps TMDB numeric genre ids to display labels. Unknown ids
// are dropped.
var genreLabels = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Sci-Fi",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// Page is one page of catalog listings.
type Page struct {
	Movies     []movie.Metadata
	Page       int
	TotalPages int
}

// SearchPage extends Page with the provider's total hit count.
type SearchPage struct {
	Page
	TotalResults int
}

// Client is the TMDB API client.
type Client struct {
	httpClient   *resty.Client
	baseURL      string
	imageBaseURL string
	apiKey       string
}

func NewClient(baseURL, imageBaseURL, apiKey string, timeout time.Duration) *Client {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{
		httpClient:   client,
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		imageBaseURL: strings.TrimRight(strings.TrimSpace(imageBaseURL), "/"),
		apiKey:       apiKey,
	}
}

type movieResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date"`
	GenreIDs     []int   `json:"genre_ids"`
}

type listResponse struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type videosResponse struct {
	Results []struct {
		Key  string `json:"key"`
		Site string `json:"site"`
		Type string `json:"type"`
	} `json:"results"`
}

// SearchMovie resolves a title to catalog metadata, taking the provider's
// first result. A (nil, nil) return means no match.
func (c *Client) SearchMovie(ctx context.Context, title string) (*movie.Metadata, error) {
	var body listResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetQueryParam("query", title).
		SetResult(&body).
		Get(c.baseURL + "/search/movie")
	if err != nil {
		metrics.RecordProviderError("tmdb", "transport")
		return nil, apperrors.NewError(ctx, apperrors.LayerInfrastructure, apperrors.ErrorTypeUpstream, "tmdb search failed", err)
	}
	if resp.IsError() {
		metrics.RecordProviderError("tmdb", "status")
		return nil, apperrors.NewError(ctx, apperrors.LayerInfrastructure, apperrors.ErrorTypeUpstream,
			fmt.Sprintf("tmdb search failed: status %d", resp.StatusCode()), nil)
	}
	if len(body.Results) == 0 {
		return nil, nil
	}

	metadata := c.toMetadata(body.Results[0])
	metadata.Trailer = c.trailerURL(ctx, metadata.TMDBID)
	return &metadata, nil
}

// Trending fetches one page of this week's trending movies, resolving
// trailers for each row concurrently.
func (c *Client) Trending(ctx context.Context, page int) (*Page, error) {
	body, err := c.fetchList(ctx, c.baseURL+"/trending/movie/week", page, nil)
	if err != nil {
		return nil, err
	}
	return &Page{
		Movies:     c.resolveRows(ctx, body.Results),
		Page:       body.Page,
		TotalPages: body.TotalPages,
	}, nil
}

// Search fetches one page of title search results, resolving trailers for
// each row concurrently.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchPage, error) {
	body, err := c.fetchList(ctx, c.baseURL+"/search/movie", page, map[string]string{"query": query})
	if err != nil {
		return nil, err
	}
	return &SearchPage{
		Page: Page{
			Movies:     c.resolveRows(ctx, body.Results),
			Page:       body.Page,
			TotalPages: body.TotalPages,
		},
		TotalResults: body.TotalResults,
	}, nil
}

func (c *Client) fetchList(ctx context.Context, endpoint string, page int, params map[string]string) (*listResponse, error) {
	if page < 1 {
		page = 1
	}

	req := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetQueryParam("page", strconv.Itoa(page))
	for key, value := range params {
		req.SetQueryParam(key, value)
	}

	var body listResponse
	resp, err := req.SetResult(&body).Get(endpoint)
	if err != nil {
		metrics.RecordProviderError("tmdb", "transport")
		return nil, apperrors.NewError(ctx, apperrors.LayerInfrastructure, apperrors.ErrorTypeUpstream, "tmdb list request failed", err)
	}
	if resp.IsError() {
		metrics.RecordProviderError("tmdb", "status")
		return nil, apperrors.NewError(ctx, apperrors.LayerInfrastructure, apperrors.ErrorTypeUpstream,
			fmt.Sprintf("tmdb list request failed: status %d", resp.StatusCode()), nil)
	}
	return &body, nil
}

func (c *Client) resolveRows(ctx context.Context, results []movieResult) []movie.Metadata {
	movies := make([]movie.Metadata, len(results))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(trailerLookupConcurrency)
	for i, result := range results {
		i, result := i, result
		group.Go(func() error {
			metadata := c.toMetadata(result)
			metadata.Trailer = c.trailerURL(groupCtx, result.ID)
			movies[i] = metadata
			return nil
		})
	}
	_ = group.Wait()
	return movies
}

// trailerURL looks up the first YouTube trailer for a movie id. Any
// failure degrades to no trailer.
func (c *Client) trailerURL(ctx context.Context, movieID int) string {
	var body videosResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetResult(&body).
		Get(fmt.Sprintf("%s/movie/%d/videos", c.baseURL, movieID))
	if err != nil || resp.IsError() {
		return ""
	}
	for _, video := range body.Results {
		if video.Type == trailerType && video.Site == trailerSite {
			return "https://www.youtube.com/watch?v=" + video.Key
		}
	}
	return ""
}

func (c *Client) toMetadata(result movieResult) movie.Metadata {
	return movie.Metadata{
		TMDBID:      result.ID,
		Title:       result.Title,
		Overview:    result.Overview,
		Poster:      c.imageURL(result.PosterPath, posterSize),
		Backdrop:    c.imageURL(result.BackdropPath, backdropSize),
		Rating:      result.VoteAverage,
		ReleaseDate: result.ReleaseDate,
		Year:        yearOf(result.ReleaseDate),
		Genre:       genreLabel(result.GenreIDs),
	}
}

// imageURL expands a provider image path to an absolute URL; an absent
// path maps to no image rather than a broken URL.
func (c *Client) imageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s%s", c.imageBaseURL, size, path)
}

func yearOf(releaseDate string) string {
	if releaseDate == "" {
		return ""
	}
	return strings.SplitN(releaseDate, "-", 2)[0]
}

func genreLabel(ids []int) string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if label, ok := genreLabels[id]; ok {
			labels = append(labels, label)
		}
	}
	return strings.Join(labels, ", ")
}
