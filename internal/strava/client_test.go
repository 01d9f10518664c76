package strava

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fdg312/coach-hub/internal/config"
)

type staticTokens struct{ token string }

func (s staticTokens) AccessToken(context.Context) (string, error) { return s.token, nil }

func TestListActivitiesPerPageCappedAtProviderMax(t *testing.T) {
	var gotPerPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPerPage = r.URL.Query().Get("per_page")
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected bearer token, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Morning Run","type":"Run","distance":5000,"moving_time":1500}]`))
	}))
	defer srv.Close()

	c := NewClient(config.StravaConfig{APIBaseURL: srv.URL}, staticTokens{"tok"})

	activities, err := c.ListActivities(context.Background(), 100, nil)
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if gotPerPage != "30" {
		t.Errorf("expected per_page capped to 30, got %s", gotPerPage)
	}
	if len(activities) != 1 || activities[0].Name != "Morning Run" {
		t.Errorf("unexpected activities: %+v", activities)
	}
}

func TestListActivitiesDefaultPerPage(t *testing.T) {
	var gotPerPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPerPage = r.URL.Query().Get("per_page")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(config.StravaConfig{APIBaseURL: srv.URL}, staticTokens{"tok"})

	if _, err := c.ListActivities(context.Background(), 0, nil); err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if gotPerPage != "10" {
		t.Errorf("expected default per_page 10, got %s", gotPerPage)
	}
}

func TestGetActivityAPIErrorSurfacesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Record Not Found"}`))
	}))
	defer srv.Close()

	c := NewClient(config.StravaConfig{APIBaseURL: srv.URL}, staticTokens{"tok"})

	_, err := c.GetActivity(context.Background(), 42)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", apiErr.StatusCode)
	}
	if apiErr.Body == "" {
		t.Error("expected provider body surfaced verbatim")
	}
}

func TestGetAthlete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/athlete" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":7,"firstname":"Ivan","lastname":"Petrov","sex":"M","weight":81.6}`))
	}))
	defer srv.Close()

	c := NewClient(config.StravaConfig{APIBaseURL: srv.URL}, staticTokens{"tok"})

	athlete, err := c.GetAthlete(context.Background())
	if err != nil {
		t.Fatalf("GetAthlete: %v", err)
	}
	if athlete.ID != 7 || athlete.Firstname != "Ivan" {
		t.Errorf("unexpected athlete: %+v", athlete)
	}
}
