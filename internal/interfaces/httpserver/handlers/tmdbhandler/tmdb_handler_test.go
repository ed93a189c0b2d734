package tmdbhandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"movision-server/internal/infrastructure/tmdb"
)

func newTestRouter(upstream http.HandlerFunc) (*gin.Engine, *httptest.Server) {
	gin.SetMode(gin.TestMode)
	server := httptest.NewServer(upstream)
	client := tmdb.NewClient(server.URL, server.URL+"/t/p", "test-key", 2*time.Second)
	handler := NewTMDBHandler(client, zerolog.Nop())

	router := gin.New()
	router.GET("/trending", handler.Trending)
	router.GET("/search", handler.Search)
	return router, server
}

type pageBody struct {
	Movies []struct {
		Title string `json:"title"`
	} `json:"movies"`
	Page         int `json:"page"`
	TotalPages   int `json:"totalPages"`
	TotalResults int `json:"totalResults"`
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", path, nil))
	return recorder
}

func TestTrendingReturnsPage(t *testing.T) {
	router, server := newTestRouter(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/trending/movie/week":
			json.NewEncoder(w).Encode(map[string]any{
				"page":        1,
				"total_pages": 4,
				"results":     []map[string]any{{"id": 1, "title": "Big Movie"}},
			})
		default:
			json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
		}
	})
	defer server.Close()

	recorder := get(router, "/trending")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	var body pageBody
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Movies) != 1 || body.Movies[0].Title != "Big Movie" {
		t.Fatalf("movies = %+v", body.Movies)
	}
	if body.TotalPages != 4 {
		t.Fatalf("totalPages = %d, want 4", body.TotalPages)
	}
}

func TestTrendingDegradesToEmptyPage(t *testing.T) {
	router, server := newTestRouter(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer server.Close()

	recorder := get(router, "/trending")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with empty page", recorder.Code)
	}
	var body pageBody
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Movies) != 0 {
		t.Fatalf("movies = %d, want 0", len(body.Movies))
	}
	if body.Page != 1 || body.TotalPages != 1 {
		t.Fatalf("page = %d/%d, want 1/1", body.Page, body.TotalPages)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	router, server := newTestRouter(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for a blank query")
	})
	defer server.Close()

	recorder := get(router, "/search?q=%20")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestSearchDegradesToEmptyPage(t *testing.T) {
	router, server := newTestRouter(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	recorder := get(router, "/search?q=heist")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with empty page", recorder.Code)
	}
	var body pageBody
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Movies) != 0 || body.Page != 1 || body.TotalPages != 1 {
		t.Fatalf("degraded body = %+v", body)
	}
}

func TestSearchInvalidPageDefaultsToOne(t *testing.T) {
	var gotPage string
	router, server := newTestRouter(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search/movie":
			gotPage = r.URL.Query().Get("page")
			json.NewEncoder(w).Encode(map[string]any{
				"page": 1, "total_pages": 1, "total_results": 0,
				"results": []any{},
			})
		default:
			json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
		}
	})
	defer server.Close()

	recorder := get(router, "/search?q=heist&page=-3")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if gotPage != "1" {
		t.Fatalf("upstream page = %q, want 1", gotPage)
	}
}
