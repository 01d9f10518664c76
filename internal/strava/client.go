package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fdg312/coach-hub/internal/config"
)

const (
	defaultPerPage = 10
	maxPerPage     = 30 // provider maximum
)

// Client — тонкий клиент Strava API: список активностей, профиль атлета,
// детали активности. Одна страница, без батчей и кэша.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

func NewClient(cfg config.StravaConfig, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
	}
}

// ListActivities возвращает одну страницу активностей атлета.
// perPage <= 0 — default 10; всё выше 30 режется до провайдерского максимума.
// after (unix) фильтрует активности, начавшиеся после отметки.
func (c *Client) ListActivities(ctx context.Context, perPage int, after *time.Time) ([]Activity, error) {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	query := url.Values{}
	query.Set("per_page", strconv.Itoa(perPage))
	if after != nil {
		query.Set("after", strconv.FormatInt(after.Unix(), 10))
	}

	var activities []Activity
	if err := c.get(ctx, "/athlete/activities?"+query.Encode(), &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetAthlete возвращает профиль авторизованного атлета
func (c *Client) GetAthlete(ctx context.Context) (*Athlete, error) {
	var athlete Athlete
	if err := c.get(ctx, "/athlete", &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}

// GetActivity возвращает детали одной активности по id
func (c *Client) GetActivity(ctx context.Context, id int64) (*Activity, error) {
	var activity Activity
	if err := c.get(ctx, "/activities/"+strconv.FormatInt(id, 10), &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode strava response: %w", err)
	}
	return nil
}
