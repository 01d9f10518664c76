package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/fdg312/coach-hub/internal/blob"
	"github.com/fdg312/coach-hub/internal/profile"
	"github.com/fdg312/coach-hub/internal/progress"
	"github.com/fdg312/coach-hub/internal/rag"
	"github.com/fdg312/coach-hub/internal/reports"
	"github.com/fdg312/coach-hub/internal/storage/memory"
)

func newTestCatalog(t *testing.T) *Registry {
	t.Helper()

	store := memory.New()
	profiles := profile.NewService(store)
	progressService := progress.NewService(store, profiles, 4)
	ragService := rag.NewService(store, rag.MockIngester{}, 4000)

	localStore, err := blob.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("local blob store: %v", err)
	}
	reportsService := reports.NewService(profiles, progressService, localStore, 600)

	return NewCatalog(Services{
		Profiles: profiles,
		Progress: progressService,
		RAG:      ragService,
		Reports:  reportsService,
	})
}

func TestCatalogHasAllTools(t *testing.T) {
	r := newTestCatalog(t)

	want := []string{
		"get_recent_activities", "get_athlete_profile", "get_activity_details",
		"get_training_load", "setup_user_profile", "log_progress",
		"get_coaching_advice", "get_daily_advice", "search_knowledge",
		"add_website_knowledge", "add_file_knowledge", "export_progress_report",
	}

	list := r.List()
	if len(list) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(list))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("tool %d: expected %s, got %s", i, name, list[i].Name)
		}
	}
}

func TestSetupThenCoachingAdviceFlow(t *testing.T) {
	r := newTestCatalog(t)
	ctx := context.Background()

	// Аргументы как после JSON-декодера: числа — float64
	result := r.Dispatch(ctx, "u1", "setup_user_profile", map[string]any{
		"age":            float64(30),
		"gender":         "male",
		"weight_lbs":     float64(180),
		"height_inches":  float64(70),
		"goal":           "lose_weight",
		"activity_level": "moderately_active",
	})
	if result.IsError {
		t.Fatalf("setup failed: %s", result.Content[0].Text)
	}
	if !strings.Contains(result.Content[0].Text, "2263") {
		t.Errorf("expected calorie target 2263 in response, got: %s", result.Content[0].Text)
	}
	if !strings.Contains(result.Content[0].Text, "180 g") {
		t.Errorf("expected protein target 180 g in response, got: %s", result.Content[0].Text)
	}

	dates := []struct {
		date   string
		weight float64
	}{
		{"2026-08-01", 182},
		{"2026-08-04", 181.3},
		{"2026-08-08", 180.5},
	}
	for _, d := range dates {
		result = r.Dispatch(ctx, "u1", "log_progress", map[string]any{
			"date":               d.date,
			"weight_lbs":         d.weight,
			"workouts_completed": float64(2),
		})
		if result.IsError {
			t.Fatalf("log_progress %s failed: %s", d.date, result.Content[0].Text)
		}
	}

	result = r.Dispatch(ctx, "u1", "get_coaching_advice", nil)
	if result.IsError {
		t.Fatalf("coaching advice failed: %s", result.Content[0].Text)
	}
	if !strings.Contains(result.Content[0].Text, "Status:") {
		t.Errorf("expected an assessment, got: %s", result.Content[0].Text)
	}
}

func TestCoachingAdviceWithoutProfile(t *testing.T) {
	r := newTestCatalog(t)

	result := r.Dispatch(context.Background(), "nobody", "get_coaching_advice", nil)
	if result.IsError {
		t.Fatal("missing profile is a user-facing message, not an error envelope")
	}
	if !strings.Contains(result.Content[0].Text, "setup_user_profile") {
		t.Errorf("expected setup hint, got: %s", result.Content[0].Text)
	}
}

func TestSearchKnowledgeTool(t *testing.T) {
	r := newTestCatalog(t)

	result := r.Dispatch(context.Background(), "u1", "search_knowledge", map[string]any{
		"query": "how much sleep for recovery",
	})
	if result.IsError {
		t.Fatalf("search failed: %s", result.Content[0].Text)
	}
	if !strings.Contains(result.Content[0].Text, "[recovery]") {
		t.Errorf("expected a recovery document in results, got: %s", result.Content[0].Text)
	}
}

func TestSearchKnowledgeMissingQuery(t *testing.T) {
	r := newTestCatalog(t)

	result := r.Dispatch(context.Background(), "u1", "search_knowledge", map[string]any{})
	if !result.IsError {
		t.Fatal("expected validation error without query")
	}
}

func TestAddWebsiteKnowledgeTool(t *testing.T) {
	r := newTestCatalog(t)

	result := r.Dispatch(context.Background(), "u1", "add_website_knowledge", map[string]any{
		"url":      "https://example.com/strength",
		"category": "training",
	})
	if result.IsError {
		t.Fatalf("add website failed: %s", result.Content[0].Text)
	}
	if !strings.Contains(result.Content[0].Text, "https://example.com/strength") {
		t.Errorf("expected source in confirmation, got: %s", result.Content[0].Text)
	}
}

func TestExportProgressReportCSV(t *testing.T) {
	r := newTestCatalog(t)
	ctx := context.Background()

	r.Dispatch(ctx, "u1", "setup_user_profile", map[string]any{
		"age":            float64(30),
		"gender":         "female",
		"weight_lbs":     float64(150),
		"height_inches":  float64(65),
		"goal":           "get_fit",
		"activity_level": "lightly_active",
	})
	r.Dispatch(ctx, "u1", "log_progress", map[string]any{
		"date":       "2026-08-10",
		"weight_lbs": float64(150),
	})

	result := r.Dispatch(ctx, "u1", "export_progress_report", map[string]any{
		"format": "csv",
		"days":   float64(30),
	})
	if result.IsError {
		t.Fatalf("export failed: %s", result.Content[0].Text)
	}
	if !strings.Contains(result.Content[0].Text, "Report ready:") {
		t.Errorf("expected report location, got: %s", result.Content[0].Text)
	}
	if !strings.Contains(result.Content[0].Text, ".csv") {
		t.Errorf("expected csv artifact, got: %s", result.Content[0].Text)
	}
}

func TestDailyAdviceToolNoHistory(t *testing.T) {
	r := newTestCatalog(t)

	result := r.Dispatch(context.Background(), "u1", "get_daily_advice", nil)
	if result.IsError {
		t.Fatalf("daily advice failed: %s", result.Content[0].Text)
	}
	if !strings.Contains(result.Content[0].Text, "No workouts logged yet") {
		t.Errorf("expected starter message, got: %s", result.Content[0].Text)
	}
}
