package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviehub/internal/microservices/http-api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_FilterMovies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/filter/", r.URL.Path)
		assert.Equal(t, []string{"1979", "1980"}, r.URL.Query()["year"])
		assert.Equal(t, []string{"horror"}, r.URL.Query()["genres"])
		json.NewEncoder(w).Encode(dto.MovieListResponse{Movies: []dto.MovieSummary{{Title: "Alien", URL: "alien"}}})
	}))
	defer srv.Close()

	list, err := NewHTTPClient(srv.URL).FilterMovies([]int{1979, 1980}, []string{"horror"})
	require.NoError(t, err)
	require.Len(t, list.Movies, 1)
	assert.Equal(t, "alien", list.Movies[0].URL)
}

func TestHTTPClient_AdminActionSendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/movie/actions/publish", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body struct {
			IDs []int64 `json:"ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []int64{1, 2}, body.IDs)
		json.NewEncoder(w).Encode(map[string]string{"message": "2 Movies were published successfully."})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetToken("tok")
	msg, err := c.RunAdminAction("movie", "publish", []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "2 Movies were published successfully.", msg)
}

func TestHTTPClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL).MovieDetail("nope")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not found", apiErr.Message)
}
