package client

// http_client.go talks to the moviehub API on behalf of the CLI commands.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"moviehub/internal/microservices/http-api/dto"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// APIError carries the status and error text of a failed request.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

type actionResponse struct {
	Message string `json:"message"`
}

type messagesResponse struct {
	Messages []string `json:"messages"`
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) do(method, path string, body, out interface{}, want int) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			apiErr.Message, apiErr.Fields = payload.Error, payload.Fields
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) Login(request *dto.LoginRequest) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	if err := c.do(http.MethodPost, "/auth/login", request, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Refresh(refreshToken string) (*dto.RefreshResponse, error) {
	var result dto.RefreshResponse
	req := dto.RefreshTokenRequest{RefreshToken: refreshToken}
	if err := c.do(http.MethodPost, "/auth/refresh", req, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Revoke(refreshToken string) error {
	req := dto.RefreshTokenRequest{RefreshToken: refreshToken}
	return c.do(http.MethodPost, "/auth/revoke", req, nil, http.StatusOK)
}

func (c *HTTPClient) ListMovies() (*dto.MovieListResponse, error) {
	var result dto.MovieListResponse
	if err := c.do(http.MethodGet, "/", nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) MovieDetail(slug string) (*dto.MovieDetailResponse, error) {
	var result dto.MovieDetailResponse
	if err := c.do(http.MethodGet, "/movie/"+url.PathEscape(slug)+"/", nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

// FilterMovies matches movies released in any of years or tagged with any of
// genres (ids or url slugs).
func (c *HTTPClient) FilterMovies(years []int, genres []string) (*dto.MovieListResponse, error) {
	q := url.Values{}
	for _, y := range years {
		q.Add("year", strconv.Itoa(y))
	}
	for _, g := range genres {
		q.Add("genres", g)
	}
	var result dto.MovieListResponse
	if err := c.do(http.MethodGet, "/filter/?"+q.Encode(), nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListGenres reads the genre list from the filter context of the home page.
func (c *HTTPClient) ListGenres() ([]dto.GenreResponse, error) {
	list, err := c.ListMovies()
	if err != nil {
		return nil, err
	}
	return list.Filter.Genres, nil
}

// RunAdminAction applies a bulk action of an admin screen and returns its message.
func (c *HTTPClient) RunAdminAction(screen, action string, ids []int64) (string, error) {
	var result actionResponse
	body := map[string][]int64{"ids": ids}
	path := "/admin/" + url.PathEscape(screen) + "/actions/" + url.PathEscape(action)
	if err := c.do(http.MethodPost, path, body, &result, http.StatusOK); err != nil {
		return "", err
	}
	return result.Message, nil
}

// AdminMessages pops the pending admin notices of the logged in user.
func (c *HTTPClient) AdminMessages() ([]string, error) {
	var result messagesResponse
	if err := c.do(http.MethodGet, "/admin/messages", nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return result.Messages, nil
}
